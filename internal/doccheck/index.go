package doccheck

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Index is the recorded reference list of artifacts the documentation claims
// the generated tree contains. It is human-authored and lives in the source
// tree; the checker holds no state of its own across runs.
type Index struct {
	Artifacts []string `yaml:"artifacts"`
}

// LoadIndex reads and parses the reference index at path.
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var index Index
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to parse index %s: %w", path, err)
	}
	return &index, nil
}

// Diff compares the recorded artifact list against the set present in the
// tree. It returns the recorded names that were not generated and the
// generated names that were never recorded, both sorted.
func (ix *Index) Diff(present []string) (missing, unrecorded []string) {
	recorded := make(map[string]bool, len(ix.Artifacts))
	for _, name := range ix.Artifacts {
		recorded[name] = true
	}
	seen := make(map[string]bool, len(present))
	for _, name := range present {
		seen[name] = true
		if !recorded[name] {
			unrecorded = append(unrecorded, name)
		}
	}
	for _, name := range ix.Artifacts {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	sort.Strings(unrecorded)
	return missing, unrecorded
}
