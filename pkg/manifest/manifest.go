// Package manifest extracts production and development dependency sets from
// build manifests. Three dialects are supported: npm package.json, Gradle
// build files (Kotlin and Groovy DSL), and Maven pom.xml.
//
// The Gradle parser is a deliberately narrow heuristic (brace-depth tracking
// plus per-line pattern matching), not a build-file grammar. Multi-line
// declarations and interpolated variables are known blind spots.
package manifest

import (
	"sort"
	"strings"
)

// Dependencies holds the dependency identifiers extracted from one
// manifest, split into production and development sets. Identifiers are
// normalized to at most group:artifact; versions and classifiers are
// stripped.
type Dependencies struct {
	Production  map[string]struct{}
	Development map[string]struct{}
}

func newDependencies() Dependencies {
	return Dependencies{
		Production:  map[string]struct{}{},
		Development: map[string]struct{}{},
	}
}

// Empty reports whether no dependency was found in either set.
func (d Dependencies) Empty() bool {
	return len(d.Production) == 0 && len(d.Development) == 0
}

// ProductionList returns the production identifiers sorted.
func (d Dependencies) ProductionList() []string { return sorted(d.Production) }

// DevelopmentList returns the development identifiers sorted.
func (d Dependencies) DevelopmentList() []string { return sorted(d.Development) }

func sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Dialect describes one manifest file a repository may carry. Dialects are
// probed in the order of the Dialects slice and are never merged: the first
// usable manifest wins.
type Dialect struct {
	// Path of the manifest file at the repository root.
	Path string
	// Parse extracts dependencies from the file content.
	Parse func(content string) (Dependencies, error)
	// AcceptEmpty makes a successfully parsed manifest terminal even when
	// it declares no dependencies. package.json is authoritative that way;
	// the Gradle and Maven heuristics fall through to the next dialect when
	// they find nothing.
	AcceptEmpty bool
}

// Dialects lists the supported manifests in priority order.
var Dialects = []Dialect{
	{Path: "package.json", Parse: ParsePackageJSON, AcceptEmpty: true},
	{Path: "build.gradle.kts", Parse: ParseGradle},
	{Path: "build.gradle", Parse: ParseGradle},
	{Path: "pom.xml", Parse: ParsePOM},
}

// normalizeDep strips quotes and reduces a coordinate to group:artifact.
// "com.example:lib:1.2.3" becomes "com.example:lib"; plain names pass
// through unchanged.
func normalizeDep(dep string) string {
	dep = strings.Trim(strings.TrimSpace(dep), `"'`)
	if !strings.Contains(dep, ":") {
		return dep
	}
	parts := strings.Split(dep, ":")
	return parts[0] + ":" + parts[1]
}
