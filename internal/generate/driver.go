// Package generate drives the external artifact generator across the
// manifest. Entries are generated in declared order and are independent of
// one another, but the driver is fail-fast: the first abnormal generator
// termination aborts all remaining (and in-flight) work, because continuing
// would silently produce an incomplete artifact set that looks complete.
package generate

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/regen/internal/ctxlog"
	"github.com/vk/regen/internal/execx"
	"github.com/vk/regen/internal/manifest"
	"github.com/vk/regen/internal/workspace"
)

// Error reports a failed generator invocation for one manifest entry.
type Error struct {
	Entry manifest.Entry
	Err   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("generating %s (%s): %v", e.Entry.Name, e.Entry.Target, e.Err)
}

// Unwrap exposes the underlying invocation failure.
func (e *Error) Unwrap() error { return e.Err }

// Driver sequences generator invocations for a pipeline run.
type Driver struct {
	Runner  execx.Runner
	Command string
	// Workers caps concurrent invocations. Values below 2 select the
	// sequential mode, which matches the historical behavior exactly.
	Workers int
}

// Run generates every manifest entry against the resolved registry path into
// the freshly created workspace. Generation is deterministic for fixed
// inputs, so failures are never retried.
func (d *Driver) Run(ctx context.Context, registry string, ws workspace.Workspace, entries []manifest.Entry) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Generation driver started.", "entries", len(entries), "workers", d.Workers)

	if d.Workers > 1 {
		return d.runParallel(ctx, registry, ws, entries)
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.generate(ctx, registry, ws, e); err != nil {
			return err
		}
	}
	logger.Debug("Generation driver finished.")
	return nil
}

// generate performs a single synchronous generator invocation.
func (d *Driver) generate(ctx context.Context, registry string, ws workspace.Workspace, e manifest.Entry) error {
	logger := ctxlog.FromContext(ctx)
	cmd := execx.Command{
		Name: d.Command,
		Args: []string{"-registry", registry, "-o", e.Target},
		Dir:  ws.Dir(e.Category),
	}
	logger.Debug("Generating artifact.", "entry", e.Name, "target", e.Target)
	if err := d.Runner.Run(ctx, cmd); err != nil {
		return &Error{Entry: e, Err: err}
	}
	return nil
}

// runParallel fans entries out over a small worker pool. The first failure
// cancels the run context; workers drain the queue without starting further
// invocations, and only the root-cause error is surfaced.
func (d *Driver) runParallel(ctx context.Context, registry string, ws workspace.Workspace, entries []manifest.Entry) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	entryChan := make(chan manifest.Entry, len(entries))
	for _, e := range entries {
		entryChan <- e
	}
	close(entryChan)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for i := 0; i < d.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for e := range entryChan {
				if runCtx.Err() != nil {
					continue
				}
				if err := d.generate(runCtx, registry, ws, e); err != nil {
					errOnce.Do(func() { firstErr = err })
					cancel()
				}
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
