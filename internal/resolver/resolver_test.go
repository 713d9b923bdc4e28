package resolver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// resolved mirrors the normalization Dir applies, so assertions are stable on
// platforms where the temp dir itself sits behind a symlink.
func resolved(t *testing.T, path string) string {
	t.Helper()
	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	out, err := filepath.EvalSymlinks(abs)
	require.NoError(t, err)
	return out
}

func TestDir_FirstExistingCandidateWins(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	first := t.TempDir()
	second := t.TempDir()

	// --- Act ---
	got, err := Dir("registry", []string{first, second}, "")

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, resolved(t, first), got)
}

func TestDir_IterationOrderIsPriorityOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The first candidate does not exist; the second and third both do. The
	// second must win even though the third also exists.
	missing := filepath.Join(t.TempDir(), "missing")
	second := t.TempDir()
	third := t.TempDir()

	// --- Act ---
	got, err := Dir("registry", []string{missing, second, third}, "")

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, resolved(t, second), got)
}

func TestDir_OverrideIsLastResort(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	candidate := t.TempDir()
	override := t.TempDir()

	// --- Act ---
	got, err := Dir("registry", []string{candidate}, override)

	// --- Assert ---
	// The candidate wins even though the override also exists.
	require.NoError(t, err)
	require.Equal(t, resolved(t, candidate), got)
}

func TestDir_OverrideUsedWhenNoCandidateExists(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	missing := filepath.Join(t.TempDir(), "missing")
	override := t.TempDir()

	// --- Act ---
	got, err := Dir("registry", []string{missing}, override)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, resolved(t, override), got)
}

func TestDir_NothingExists(t *testing.T) {
	t.Parallel()

	// --- Act ---
	_, err := Dir("registry", []string{"/nonexistent/a", "/nonexistent/b"}, "")

	// --- Assert ---
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "registry", notFound.Role)
	require.Equal(t, []string{"/nonexistent/a", "/nonexistent/b"}, notFound.Candidates)
	require.Contains(t, err.Error(), "no registry directory found")
}

func TestDir_PlainFileIsNotADirectory(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	file := filepath.Join(t.TempDir(), "registry")
	require.NoError(t, os.WriteFile(file, []byte("not a dir"), 0o644))

	// --- Act ---
	_, err := Dir("registry", []string{file}, "")

	// --- Assert ---
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestDir_ResultIsAbsolute(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()

	// --- Act ---
	got, err := Dir("registry", []string{dir}, "")

	// --- Assert ---
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(got))
}
