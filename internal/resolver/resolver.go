// Package resolver locates required directories from an ordered list of
// candidate locations. Iteration order is priority order: the first candidate
// that exists and is a directory wins, and a caller-supplied override is
// probed only after every fixed candidate has been ruled out.
package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NotFoundError reports that no candidate location for a role exists.
type NotFoundError struct {
	Role       string
	Candidates []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s directory found; tried: %s", e.Role, strings.Join(e.Candidates, ", "))
}

// Dir returns the first entry of candidates that exists and is a directory,
// normalized to an absolute, symlink-resolved path. The override, when
// non-empty, is the last resort: it is probed only after all fixed
// candidates, even if it also exists. Dir is a read-only probe with no side
// effects; failure yields a *NotFoundError the caller must treat as fatal.
func Dir(role string, candidates []string, override string) (string, error) {
	probes := candidates
	if override != "" {
		probes = append(append([]string{}, candidates...), override)
	}
	for _, p := range probes {
		if abs, ok := probeDir(p); ok {
			return abs, nil
		}
	}
	return "", &NotFoundError{Role: role, Candidates: probes}
}

// probeDir reports whether path is an existing directory and, if so, its
// absolute symlink-resolved form.
func probeDir(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return "", false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", false
	}
	return resolved, true
}
