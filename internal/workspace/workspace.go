// Package workspace manages the output tree owned by a single pipeline run.
// The tree is fully recreated at run start so generated artifacts are never
// contaminated by stale output from a prior registry version. No locking is
// provided: callers must not run two pipelines against the same workspace
// concurrently.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/regen/internal/manifest"
)

// Workspace is a freshly created output tree with one subdirectory per
// artifact category.
type Workspace struct {
	Root string
}

// Create recreates the workspace at root, discarding any previous contents,
// and materializes the two category subdirectories. The root is resolved to
// an absolute path: generator processes run with the workspace as their
// working directory, so any path handed to them must not depend on the
// caller's own directory.
func Create(root string) (Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Workspace{}, fmt.Errorf("failed to resolve workspace %s: %w", root, err)
	}
	if err := os.RemoveAll(abs); err != nil {
		return Workspace{}, fmt.Errorf("failed to clear workspace %s: %w", abs, err)
	}
	ws := Workspace{Root: abs}
	for _, c := range []manifest.Category{manifest.Interface, manifest.Common} {
		if err := os.MkdirAll(ws.Dir(c), 0o755); err != nil {
			return Workspace{}, fmt.Errorf("failed to create workspace %s: %w", root, err)
		}
	}
	return ws, nil
}

// Dir returns the subdirectory artifacts of the given category land in.
func (w Workspace) Dir(c manifest.Category) string {
	return filepath.Join(w.Root, string(c))
}
