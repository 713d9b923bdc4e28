package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/vk/regen/internal/ctxlog"
	"github.com/vk/regen/internal/doccheck"
	"github.com/vk/regen/internal/generate"
	"github.com/vk/regen/internal/identity"
	"github.com/vk/regen/internal/manifest"
	"github.com/vk/regen/internal/resolver"
	"github.com/vk/regen/internal/workspace"
)

// Run executes the pipeline: resolve the registry, recreate the workspace,
// generate every manifest artifact, resolve the build identity, and finally
// run the warn-only documentation check. All fatal conditions abort with no
// partial-success state; the registry resolution stage in particular fails
// before any side effect.
func (a *App) Run(ctx context.Context) error {
	logger := a.logger.With("run_id", uuid.NewString())
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run method started.")

	if a.cfg.CheckDocs {
		return a.runDocCheck(ctx)
	}

	entries := manifest.Default()

	registry, err := resolver.Dir("registry", a.model.Registry.Candidates, a.cfg.RegistryOverride)
	if err != nil {
		return fmt.Errorf("cannot locate the interface registry: %w", err)
	}
	logger.Info("Registry resolved.", "path", registry)

	ws, err := workspace.Create(a.model.Workspace)
	if err != nil {
		return err
	}
	logger.Debug("Output workspace recreated.", "root", ws.Root)

	driver := &generate.Driver{
		Runner:  a.runner,
		Command: a.model.Tools.Generator,
		Workers: a.cfg.Workers,
	}
	if err := driver.Run(ctx, registry, ws, entries); err != nil {
		return fmt.Errorf("artifact generation failed: %w", err)
	}
	logger.Info("Artifacts generated.", "count", len(entries))

	idResolver := identity.Resolver{
		CheckoutDir: a.model.Checkout,
		SideFile:    filepath.Join(ws.Root, identity.SideFileName),
		Minter:      identity.ExecMinter{Runner: a.runner, Tool: a.model.Tools.RevisionProbe},
	}
	src, err := idResolver.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("build identity resolution failed: %w", err)
	}
	if err := identity.Generate(ctx, a.runner, a.model.Tools.IdentityGenerator, src, ws); err != nil {
		return err
	}
	logger.Info("Build identity generated.", "source", src.Kind())

	if a.model.Docs.Index != "" {
		// Documentation drift is flagged but never blocks the build.
		if err := a.runDocCheck(ctx); err != nil {
			return err
		}
	}

	logger.Debug("App.Run method finished.")
	return nil
}

// runDocCheck runs the consistency checker and reports its verdict. It only
// ever returns nil: warn and skipped outcomes are logged, not escalated.
func (a *App) runDocCheck(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	checker := &doccheck.Checker{
		Runner:        a.runner,
		Tool:          a.model.Tools.DocChecker,
		ToolDir:       a.model.Docs.ToolDir,
		IndexPath:     a.model.Docs.Index,
		WorkspaceRoot: a.model.Workspace,
	}
	report := checker.Check(ctx)
	switch report.Outcome {
	case doccheck.Pass:
		logger.Info("Documentation consistency check passed.")
	case doccheck.Skipped:
		logger.Info("Documentation consistency check skipped.", "reason", report.Detail)
	case doccheck.Warn:
		logger.Warn("Documentation drift detected.", "detail", report.Detail)
	}
	return nil
}
