package config

// Model is the unified representation of the entire pipeline configuration.
type Model struct {
	Registry  Registry
	Workspace string
	Checkout  string
	Tools     Tools
	Docs      Docs
}

// Registry configures where the interface-description registry is searched
// for. Candidates are probed in declared order; a CLI override is always
// probed last.
type Registry struct {
	Candidates []string
}

// Tools names the external collaborator commands the pipeline drives.
type Tools struct {
	// Generator produces one manifest artifact per invocation.
	Generator string
	// IdentityGenerator emits the build-identity header from either a git
	// checkout or a recorded fallback token.
	IdentityGenerator string
	// RevisionProbe mints collision-resistant fallback identifiers. Its
	// absence is a fatal precondition when the fallback branch is taken.
	RevisionProbe string
	// DocChecker is the optional documentation-consistency collaborator, run
	// with no arguments from Docs.ToolDir. Empty disables the external check.
	DocChecker string
}

// Docs configures the warn-only documentation consistency check.
type Docs struct {
	// Index is the recorded reference index of expected artifacts. Empty
	// disables the check during pipeline runs.
	Index string
	// ToolDir is the fixed directory the checker collaborator runs from.
	ToolDir string
}

// Default returns the model matching the conventional repository layout.
func Default() *Model {
	return &Model{
		Registry: Registry{
			Candidates: []string{"external/registry", "third_party/registry"},
		},
		Workspace: "generated",
		Checkout:  "external/deps",
		Tools: Tools{
			Generator:         "scripts/generate_artifact.py",
			IdentityGenerator: "scripts/revision_header.py",
			RevisionProbe:     "uuidgen",
		},
		Docs: Docs{
			ToolDir: "scripts",
		},
	}
}
