package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/regen/internal/ctxlog"
)

// fileRoot is the struct all top-level blocks of a pipeline file decode into.
type fileRoot struct {
	Registry  *registryBlock  `hcl:"registry,block"`
	Workspace *workspaceBlock `hcl:"workspace,block"`
	Checkout  *checkoutBlock  `hcl:"checkout,block"`
	Tools     *toolsBlock     `hcl:"tools,block"`
	Docs      *docsBlock      `hcl:"docs,block"`
}

type registryBlock struct {
	Candidates []string `hcl:"candidates,optional"`
}

type workspaceBlock struct {
	Path string `hcl:"path,optional"`
}

type checkoutBlock struct {
	Path string `hcl:"path,optional"`
}

type toolsBlock struct {
	Generator         string `hcl:"generator,optional"`
	IdentityGenerator string `hcl:"identity_generator,optional"`
	RevisionProbe     string `hcl:"revision_probe,optional"`
	DocChecker        string `hcl:"doc_checker,optional"`
}

type docsBlock struct {
	Index   string `hcl:"index,optional"`
	ToolDir string `hcl:"tool_dir,optional"`
}

// Load reads the pipeline configuration from path and merges it over the
// compiled-in defaults. A missing file is not an error: the defaults are
// returned unchanged, so the pipeline stays runnable with no configuration
// at all.
func Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := Default()

	if path == "" {
		return model, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No configuration file found, using defaults.", "path", path)
			return model, nil
		}
		return nil, fmt.Errorf("failed to read configuration %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse configuration %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode configuration %s: %w", path, diags)
	}

	mergeRoot(model, &root)
	logger.Debug("Configuration loaded.", "path", path)
	return model, nil
}

// evalContext exposes the process environment as an `env` object so
// configuration paths can be written as "${env.HOME}/sdk/registry".
func evalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
	}
}

// mergeRoot overlays every attribute set in root onto the default model.
func mergeRoot(model *Model, root *fileRoot) {
	if root.Registry != nil && len(root.Registry.Candidates) > 0 {
		model.Registry.Candidates = root.Registry.Candidates
	}
	if root.Workspace != nil && root.Workspace.Path != "" {
		model.Workspace = root.Workspace.Path
	}
	if root.Checkout != nil && root.Checkout.Path != "" {
		model.Checkout = root.Checkout.Path
	}
	if root.Tools != nil {
		if root.Tools.Generator != "" {
			model.Tools.Generator = root.Tools.Generator
		}
		if root.Tools.IdentityGenerator != "" {
			model.Tools.IdentityGenerator = root.Tools.IdentityGenerator
		}
		if root.Tools.RevisionProbe != "" {
			model.Tools.RevisionProbe = root.Tools.RevisionProbe
		}
		if root.Tools.DocChecker != "" {
			model.Tools.DocChecker = root.Tools.DocChecker
		}
	}
	if root.Docs != nil {
		if root.Docs.Index != "" {
			model.Docs.Index = root.Docs.Index
		}
		if root.Docs.ToolDir != "" {
			model.Docs.ToolDir = root.Docs.ToolDir
		}
	}
}
