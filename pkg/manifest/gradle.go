package manifest

import (
	"regexp"
	"strings"
)

var (
	lineComment  = regexp.MustCompile(`//.*`)
	depsBlock    = regexp.MustCompile(`^dependencies\s*\{`)
	quotedDecl   = regexp.MustCompile(`^([A-Za-z]\w*)\s+['"]([^'"]+)['"]`)
	callDecl     = regexp.MustCompile(`^([A-Za-z]\w*)\s*\(\s*['"]([^'"]+)['"]`)
	bareCallDecl = regexp.MustCompile(`^([A-Za-z]\w*)\s*\(\s*([^)]+)\)`)
)

// Configurations that belong to test or fixture source sets but do not
// start with "test".
var devConfigs = map[string]struct{}{
	"androidtestimplementation": {},
	"androidtestcompile":        {},
	"androidtestruntimeonly":    {},
	"testfixturesimplementation": {},
	"testfixturesapi":            {},
	"testannotationprocessor":    {},
	"testkapt":                   {},
}

func isDevConfig(config string) bool {
	cfg := strings.ToLower(config)
	if strings.HasPrefix(cfg, "test") {
		return true
	}
	_, ok := devConfigs[cfg]
	return ok
}

// ParseGradle scans a Gradle build file for the top-level dependencies
// block and extracts per-line declarations of the forms
// `configuration "group:artifact:version"` and `configuration("...")`.
// Configurations named like test source sets classify the dependency as
// development. Project, platform and file references are skipped.
func ParseGradle(content string) (Dependencies, error) {
	deps := newDependencies()
	inDeps := false
	braceDepth := 0

	for _, rawLine := range strings.Split(content, "\n") {
		line := strings.TrimSpace(lineComment.ReplaceAllString(rawLine, ""))
		if line == "" {
			continue
		}
		if !inDeps {
			if depsBlock.MatchString(line) {
				inDeps = true
				braceDepth = strings.Count(line, "{") - strings.Count(line, "}")
				if braceDepth <= 0 {
					inDeps = false
				}
			}
			continue
		}

		braceDepth += strings.Count(line, "{") - strings.Count(line, "}")
		if braceDepth <= 0 {
			inDeps = false
			continue
		}

		var config, depID string
		if m := quotedDecl.FindStringSubmatch(line); m != nil {
			config, depID = m[1], normalizeDep(m[2])
		} else if m := callDecl.FindStringSubmatch(line); m != nil {
			config, depID = m[1], normalizeDep(m[2])
		} else if m := bareCallDecl.FindStringSubmatch(line); m != nil {
			arg := strings.ReplaceAll(strings.TrimSpace(m[2]), " ", "")
			if hasAnyPrefix(arg, "project(", "platform(", "enforcedPlatform(", "files(") {
				continue
			}
			config, depID = m[1], normalizeDep(arg)
		} else {
			continue
		}

		if depID == "" {
			continue
		}
		if isDevConfig(config) {
			deps.Development[depID] = struct{}{}
		} else {
			deps.Production[depID] = struct{}{}
		}
	}

	return deps, nil
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
