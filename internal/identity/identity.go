// Package identity resolves the build-identity value embedded in the
// generated tree. The value comes from exactly one of two sources per run: a
// version-controlled dependency checkout, or a freshly minted fallback token
// recorded to a side file. The choice is made once and fully determines how
// the identity-artifact generator is invoked; both branches produce the same
// artifact name at the same location.
package identity

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/regen/internal/ctxlog"
	"github.com/vk/regen/internal/execx"
	"github.com/vk/regen/internal/workspace"
)

const (
	// Symbol is the name the identity artifact binds the revision string to.
	Symbol = "EXTERNAL_DEPENDENCY_REVISION"
	// ArtifactName is the build-identity header, identical for both sources.
	ArtifactName = "external_revision.h"
	// SideFileName records a minted fallback token so runs without a checkout
	// stay inspectable. Overwritten on every fallback run, never merged.
	SideFileName = "fallback_revision_id"
)

// Source is the origin of the build-identity value.
type Source interface {
	// GeneratorArgs returns the identity-generator invocation shape for this
	// source.
	GeneratorArgs(symbol, outFile string) []string
	// Kind names the source for logs: "git" or "fallback".
	Kind() string
}

// GitCheckout derives the identity from a version-controlled dependency
// checkout; the generator queries the checkout's native metadata itself.
type GitCheckout struct {
	Path string
}

// GeneratorArgs implements Source.
func (s GitCheckout) GeneratorArgs(symbol, outFile string) []string {
	return []string{"--git-dir", filepath.Join(s.Path, ".git"), "-s", symbol, "-o", outFile}
}

// Kind implements Source.
func (s GitCheckout) Kind() string { return "git" }

// FallbackToken carries a freshly minted identifier already persisted to the
// side file the generator reads.
type FallbackToken struct {
	File  string
	Token string
}

// GeneratorArgs implements Source.
func (s FallbackToken) GeneratorArgs(symbol, outFile string) []string {
	return []string{"--rev-file", s.File, "-s", symbol, "-o", outFile}
}

// Kind implements Source.
func (s FallbackToken) Kind() string { return "fallback" }

// Resolver decides between the git checkout and a minted fallback token.
type Resolver struct {
	// CheckoutDir is the designated dependency-checkout directory. Its
	// existence selects the git branch.
	CheckoutDir string
	// SideFile is where a minted token is persisted, overwriting any prior
	// contents.
	SideFile string
	Minter   Minter
}

// Resolve picks the identity source for this run. The decision is a strict
// two-way branch: an existing checkout directory selects the git source;
// otherwise the minter is probed (a missing minting tool is fatal, checked
// before any minting attempt), a token is minted and written verbatim to the
// side file, and the fallback source is returned.
func (r Resolver) Resolve(ctx context.Context) (Source, error) {
	logger := ctxlog.FromContext(ctx)

	if info, err := os.Stat(r.CheckoutDir); err == nil && info.IsDir() {
		// The generator runs from the workspace root, so the locator it
		// receives must be absolute.
		checkout, absErr := filepath.Abs(r.CheckoutDir)
		if absErr != nil {
			return nil, fmt.Errorf("failed to resolve checkout path %s: %w", r.CheckoutDir, absErr)
		}
		logger.Debug("Dependency checkout found.", "path", checkout)
		return GitCheckout{Path: checkout}, nil
	}
	logger.Debug("Dependency checkout absent, minting fallback token.", "path", r.CheckoutDir)

	if err := r.Minter.Probe(); err != nil {
		return nil, err
	}
	token, err := r.Minter.Mint(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to mint fallback identifier: %w", err)
	}
	sideFile, err := filepath.Abs(r.SideFile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve side file path %s: %w", r.SideFile, err)
	}
	if err := os.WriteFile(sideFile, []byte(token), 0o644); err != nil {
		return nil, fmt.Errorf("failed to record fallback identifier: %w", err)
	}
	return FallbackToken{File: sideFile, Token: token}, nil
}

// Generate invokes the identity-artifact generator for the chosen source,
// emitting ArtifactName at the workspace root.
func Generate(ctx context.Context, runner execx.Runner, tool string, src Source, ws workspace.Workspace) error {
	cmd := execx.Command{
		Name: tool,
		Args: src.GeneratorArgs(Symbol, ArtifactName),
		Dir:  ws.Root,
	}
	if err := runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("identity artifact generation (%s source): %w", src.Kind(), err)
	}
	return nil
}
