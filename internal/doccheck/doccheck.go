// Package doccheck is the warn-only documentation consistency check. It
// re-derives the artifact set present in the output tree, compares it against
// the recorded reference index, and runs the external stats collaborator.
// Drift never blocks the build: every failure mode degrades to a warning,
// and an environment where the check is not applicable degrades to a skip.
package doccheck

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vk/regen/internal/ctxlog"
	"github.com/vk/regen/internal/execx"
	"github.com/vk/regen/internal/fsutil"
)

// Outcome is the checker's verdict.
type Outcome int

const (
	// Pass means the recorded index matches the tree.
	Pass Outcome = iota
	// Warn means drift was detected or the collaborator tool terminated
	// abnormally. Warn must never cause a nonzero process exit.
	Warn
	// Skipped means the check was not applicable in this environment.
	Skipped
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case Warn:
		return "warn"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Report is the checker's verdict plus a non-fatal diagnostic.
type Report struct {
	Outcome Outcome
	Detail  string
}

// Checker compares the generated tree against the recorded reference index.
// It is read-only, idempotent, and safe to run from any working directory:
// all paths are explicit.
type Checker struct {
	Runner execx.Runner
	// Tool is the external consistency collaborator, run with no arguments
	// from ToolDir. Empty disables the external invocation.
	Tool string
	// ToolDir is the collaborator's fixed tooling directory. When it does not
	// exist the check is skipped rather than failed.
	ToolDir string
	// IndexPath is the recorded reference index (YAML).
	IndexPath string
	// WorkspaceRoot is the generated output tree to re-derive the artifact
	// set from.
	WorkspaceRoot string
}

// Check never returns an error. Tool-crash and genuine mismatch are reported
// identically as Warn; a missing tooling directory, uninstalled collaborator
// tool, index, or output tree is reported as Skipped.
func (c *Checker) Check(ctx context.Context) Report {
	logger := ctxlog.FromContext(ctx)

	if c.ToolDir != "" {
		if info, err := os.Stat(c.ToolDir); err != nil || !info.IsDir() {
			return Report{Outcome: Skipped, Detail: fmt.Sprintf("tooling directory %s is absent", c.ToolDir)}
		}
	}

	present, err := fsutil.ListFiles(c.WorkspaceRoot)
	if err != nil {
		return Report{Outcome: Skipped, Detail: fmt.Sprintf("output tree is inaccessible: %v", err)}
	}

	index, err := LoadIndex(c.IndexPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Report{Outcome: Skipped, Detail: fmt.Sprintf("no reference index at %s", c.IndexPath)}
		}
		return Report{Outcome: Warn, Detail: fmt.Sprintf("reference index unreadable: %v", err)}
	}

	if missing, unrecorded := index.Diff(present); len(missing) > 0 || len(unrecorded) > 0 {
		var parts []string
		if len(missing) > 0 {
			parts = append(parts, "recorded but not generated: "+strings.Join(missing, ", "))
		}
		if len(unrecorded) > 0 {
			parts = append(parts, "generated but not recorded: "+strings.Join(unrecorded, ", "))
		}
		return Report{Outcome: Warn, Detail: strings.Join(parts, "; ")}
	}

	if c.Tool != "" {
		// A missing collaborator means the check is not applicable here,
		// unlike a collaborator that runs and reports drift.
		if _, err := c.Runner.LookPath(c.Tool); err != nil {
			return Report{Outcome: Skipped, Detail: fmt.Sprintf("consistency tool %s is not installed", c.Tool)}
		}
		logger.Debug("Running external consistency collaborator.", "tool", c.Tool, "dir", c.ToolDir)
		if err := c.Runner.Run(ctx, execx.Command{Name: c.Tool, Dir: c.ToolDir}); err != nil {
			return Report{Outcome: Warn, Detail: fmt.Sprintf("consistency tool reported drift: %v", err)}
		}
	}

	return Report{Outcome: Pass}
}
