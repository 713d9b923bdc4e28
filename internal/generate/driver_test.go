package generate

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/regen/internal/execx"
	"github.com/vk/regen/internal/manifest"
	"github.com/vk/regen/internal/testutil"
	"github.com/vk/regen/internal/workspace"
)

func testEntries() []manifest.Entry {
	return []manifest.Entry{
		{Name: "one", Target: "one.h", Category: manifest.Interface},
		{Name: "two", Target: "two.h", Category: manifest.Interface},
		{Name: "three", Target: "three.h", Category: manifest.Common},
	}
}

func TestRun_InvokesGeneratorPerEntryInOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	runner := &testutil.FakeRunner{}
	driver := &Driver{Runner: runner, Command: "genscript"}
	ws := workspace.Workspace{Root: "/out"}

	// --- Act ---
	err := driver.Run(context.Background(), "/sdk/registry", ws, testEntries())

	// --- Assert ---
	require.NoError(t, err)
	calls := runner.Calls()
	require.Len(t, calls, 3)
	require.Equal(t, []string{"-registry", "/sdk/registry", "-o", "one.h"}, calls[0].Args)
	require.Equal(t, filepath.Join("/out", "interface"), calls[0].Dir)
	require.Equal(t, "two.h", calls[1].Args[3])
	require.Equal(t, filepath.Join("/out", "common"), calls[2].Dir)
}

func TestRun_FailFastSkipsRemainingEntries(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	boom := errors.New("generator exploded")
	runner := &testutil.FakeRunner{
		FailOn: func(cmd execx.Command) error {
			if cmd.Args[3] == "two.h" {
				return boom
			}
			return nil
		},
	}
	driver := &Driver{Runner: runner, Command: "genscript"}

	// --- Act ---
	err := driver.Run(context.Background(), "/sdk/registry", workspace.Workspace{Root: "/out"}, testEntries())

	// --- Assert ---
	var genErr *Error
	require.ErrorAs(t, err, &genErr)
	require.Equal(t, "two", genErr.Entry.Name)
	require.ErrorIs(t, err, boom)
	// Entry three must never have been invoked.
	require.Len(t, runner.Calls(), 2)
}

func TestRun_IsIdempotentForFixedInputs(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	first := &testutil.FakeRunner{}
	second := &testutil.FakeRunner{}
	ws := workspace.Workspace{Root: "/out"}

	// --- Act ---
	require.NoError(t, (&Driver{Runner: first, Command: "genscript"}).Run(context.Background(), "/sdk/registry", ws, testEntries()))
	require.NoError(t, (&Driver{Runner: second, Command: "genscript"}).Run(context.Background(), "/sdk/registry", ws, testEntries()))

	// --- Assert ---
	require.Equal(t, first.Calls(), second.Calls(), "two runs against unchanged inputs must issue identical invocations")
}

func TestRun_CanceledContextStopsBeforeInvoking(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	runner := &testutil.FakeRunner{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// --- Act ---
	err := (&Driver{Runner: runner, Command: "genscript"}).Run(ctx, "/sdk/registry", workspace.Workspace{Root: "/out"}, testEntries())

	// --- Assert ---
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, runner.Calls())
}

func TestRun_ParallelGeneratesEverything(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	runner := &testutil.FakeRunner{}
	driver := &Driver{Runner: runner, Command: "genscript", Workers: 3}

	// --- Act ---
	err := driver.Run(context.Background(), "/sdk/registry", workspace.Workspace{Root: "/out"}, testEntries())

	// --- Assert ---
	require.NoError(t, err)
	targets := map[string]bool{}
	for _, c := range runner.Calls() {
		targets[c.Args[3]] = true
	}
	require.Len(t, targets, 3)
}

func TestRun_ParallelSurfacesFirstFailure(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	boom := errors.New("generator exploded")
	runner := &testutil.FakeRunner{
		FailOn: func(cmd execx.Command) error {
			if cmd.Args[3] == "one.h" {
				return boom
			}
			return nil
		},
	}
	driver := &Driver{Runner: runner, Command: "genscript", Workers: 2}

	// --- Act ---
	err := driver.Run(context.Background(), "/sdk/registry", workspace.Workspace{Root: "/out"}, testEntries())

	// --- Assert ---
	var genErr *Error
	require.ErrorAs(t, err, &genErr)
	require.ErrorIs(t, err, boom)
}
