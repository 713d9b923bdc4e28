// Package testutil provides shared helpers for pipeline tests: a thread-safe
// log buffer and a fake external-command runner.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/vk/regen/internal/execx"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// FakeRunner records every external invocation instead of spawning
// processes. It implements execx.Runner.
type FakeRunner struct {
	mu    sync.Mutex
	calls []execx.Command

	// FailOn, when set, decides per command whether Run fails.
	FailOn func(cmd execx.Command) error
	// Outputs maps a command name to the stdout Output returns for it.
	Outputs map[string]string
	// Missing lists tool names LookPath reports as not installed.
	Missing map[string]bool
}

// Run implements execx.Runner.
func (f *FakeRunner) Run(ctx context.Context, cmd execx.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.record(cmd)
	if f.FailOn != nil {
		return f.FailOn(cmd)
	}
	return nil
}

// Output implements execx.Runner.
func (f *FakeRunner) Output(ctx context.Context, cmd execx.Command) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.record(cmd)
	if out, ok := f.Outputs[cmd.Name]; ok {
		return out, nil
	}
	return "", fmt.Errorf("%s: no fake output registered", cmd.Name)
}

// LookPath implements execx.Runner.
func (f *FakeRunner) LookPath(name string) (string, error) {
	if f.Missing[name] {
		return "", fmt.Errorf("%s: executable file not found in $PATH", name)
	}
	return "/usr/bin/" + name, nil
}

// Calls returns a snapshot of every recorded invocation, in order.
func (f *FakeRunner) Calls() []execx.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]execx.Command{}, f.calls...)
}

// CallsTo returns the recorded invocations of the named command.
func (f *FakeRunner) CallsTo(name string) []execx.Command {
	var out []execx.Command
	for _, c := range f.Calls() {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeRunner) record(cmd execx.Command) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cmd)
}
