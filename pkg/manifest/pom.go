package manifest

import (
	"encoding/xml"
	"strings"
)

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Scope      string `xml:"scope"`
}

type pomProject struct {
	// Only direct children of <project><dependencies> are captured here, so
	// everything under <dependencyManagement> is excluded by construction.
	Dependencies []pomDependency `xml:"dependencies>dependency"`
}

// ParsePOM extracts dependency coordinates from a Maven pom.xml. A
// dependency with scope "test" is a development dependency; dependencies
// declared inside <dependencyManagement> are ignored entirely.
func ParsePOM(content string) (Dependencies, error) {
	var project pomProject
	if err := xml.Unmarshal([]byte(content), &project); err != nil {
		return Dependencies{}, err
	}

	deps := newDependencies()
	for _, dep := range project.Dependencies {
		group := strings.TrimSpace(dep.GroupID)
		artifact := strings.TrimSpace(dep.ArtifactID)
		if group == "" || artifact == "" {
			continue
		}
		key := group + ":" + artifact
		if strings.EqualFold(strings.TrimSpace(dep.Scope), "test") {
			deps.Development[key] = struct{}{}
		} else {
			deps.Production[key] = struct{}{}
		}
	}
	return deps, nil
}
