package identity

import (
	"context"
	"fmt"

	"github.com/vk/regen/internal/execx"
)

// PreconditionError reports a missing environment prerequisite, discovered
// eagerly before the operation that would need it.
type PreconditionError struct {
	Tool string
	Err  error
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("required tool %q is not available: %v", e.Tool, e.Err)
}

// Unwrap exposes the underlying lookup failure.
func (e *PreconditionError) Unwrap() error { return e.Err }

// Minter produces collision-resistant fallback identifiers.
type Minter interface {
	// Probe reports whether the minter can operate in this environment.
	// Callers must probe before minting so a missing tool fails the run
	// eagerly instead of mid-branch.
	Probe() error
	// Mint returns one new identifier as human-inspectable text.
	Mint(ctx context.Context) (string, error)
}

// ExecMinter mints identifiers by running an external tool such as uuidgen.
type ExecMinter struct {
	Runner execx.Runner
	Tool   string
}

// Probe implements Minter.
func (m ExecMinter) Probe() error {
	if _, err := m.Runner.LookPath(m.Tool); err != nil {
		return &PreconditionError{Tool: m.Tool, Err: err}
	}
	return nil
}

// Mint implements Minter.
func (m ExecMinter) Mint(ctx context.Context) (string, error) {
	return m.Runner.Output(ctx, execx.Command{Name: m.Tool})
}
