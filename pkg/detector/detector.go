// Package detector recognizes web frameworks inside a project directory and
// describes how their development servers are run.
package detector

import (
	"os"
	"sort"
)

// Detector inspects project directories against the framework registry
type Detector struct{}

// ListFrameworks returns a descriptor for every framework the project
// appears to use, ordered by name for stable output.
func (Detector) ListFrameworks(projectDir string) ([]FrameworkInfo, error) {
	fs := NewFSReader(os.DirFS(projectDir))

	var out []FrameworkInfo
	for _, def := range registry {
		if def.detect(fs) {
			out = append(out, def.info(fs))
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// HasFramework reports whether the project satisfies the named framework.
// Unknown names are an error.
func (Detector) HasFramework(name, projectDir string) (bool, error) {
	def, err := findDefinition(name)
	if err != nil {
		return false, err
	}

	fs := NewFSReader(os.DirFS(projectDir))
	return def.detect(fs), nil
}

// GetFramework returns the named framework's descriptor for the project
func (Detector) GetFramework(name, projectDir string) (FrameworkInfo, error) {
	def, err := findDefinition(name)
	if err != nil {
		return FrameworkInfo{}, err
	}

	fs := NewFSReader(os.DirFS(projectDir))
	return def.info(fs), nil
}

// Names lists every framework in the registry
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, def := range registry {
		names = append(names, def.name)
	}
	sort.Strings(names)
	return names
}
