// Package execx wraps the invocation of external collaborator tools behind a
// small interface so pipeline stages can be tested without spawning real
// processes.
package execx

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Command describes a single external tool invocation. Dir, when set, is the
// working directory for the process; the caller's own working directory is
// never mutated.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// String renders the invocation for logs and error messages.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner executes external commands. All invocations are synchronous; the
// context cancels an in-flight process.
type Runner interface {
	// Run executes the command and returns an error if it terminates
	// abnormally. Captured output is folded into the error.
	Run(ctx context.Context, cmd Command) error

	// Output executes the command and returns its trimmed standard output.
	Output(ctx context.Context, cmd Command) (string, error)

	// LookPath reports where the named tool resolves in the environment, or
	// an error when it is not installed.
	LookPath(name string) (string, error)
}

// OSRunner is the production Runner backed by os/exec.
type OSRunner struct{}

// Run implements Runner.
func (OSRunner) Run(ctx context.Context, cmd Command) error {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	out, err := c.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", cmd.Name, err, msg)
		}
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return nil
}

// Output implements Runner.
func (OSRunner) Output(ctx context.Context, cmd Command) (string, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	out, err := c.Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// LookPath implements Runner.
func (OSRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
