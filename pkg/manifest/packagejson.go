package manifest

import "encoding/json"

// ParsePackageJSON extracts the dependencies and devDependencies maps from
// an npm manifest. The map values (version ranges) are discarded; only the
// package names matter here.
func ParsePackageJSON(content string) (Dependencies, error) {
	var pkg struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal([]byte(content), &pkg); err != nil {
		return Dependencies{}, err
	}
	deps := newDependencies()
	for name := range pkg.Dependencies {
		deps.Production[name] = struct{}{}
	}
	for name := range pkg.DevDependencies {
		deps.Development[name] = struct{}{}
	}
	return deps, nil
}
