// Package catalog reads the per-platform top100 documents that seed every
// pipeline's work list.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Platforms is the fixed set of supported plugin ecosystems.
var Platforms = []string{
	"chrome",
	"firefox",
	"homeassistant",
	"jetbrains",
	"minecraft",
	"obsidian",
	"sublime",
	"vscode",
	"wordpress",
}

// IsPlatform reports whether name is a known platform.
func IsPlatform(name string) bool {
	for _, p := range Platforms {
		if p == name {
			return true
		}
	}
	return false
}

// Plugin is one catalog entry. Only the fields the pipelines read are
// decoded; the documents carry more.
type Plugin struct {
	Repo        string      `json:"repo"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Tags        []string    `json:"tags"`
	Categories  []string    `json:"categories"`
	Downloads   float64     `json:"downloads"`
	GitHubStats GitHubStats `json:"githubStats"`
}

// GitHubStats is the nested repository block on a catalog entry.
type GitHubStats struct {
	Stars        float64       `json:"stars"`
	LastUpdated  string        `json:"lastUpdated"`
	Dependencies *Dependencies `json:"dependencies,omitempty"`
}

// Dependencies mirrors npm manifest shape: name -> version range. Entries
// refreshed from Gradle or Maven manifests use "*" as the range.
type Dependencies struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Top100 is one platform's catalog document.
type Top100 struct {
	Platform string
	Plugins  []Plugin
	path     string
}

// Load reads and validates the top100 document for one platform under
// dataDir. A missing document yields ok=false with a nil error, matching
// how the pipelines skip platforms that have not been fetched yet.
func Load(dataDir, platform string) (*Top100, bool, error) {
	path := filepath.Join(dataDir, platform, "top100.json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := validate(data); err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}

	var doc struct {
		Top100 []Plugin `json:"top100"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}
	return &Top100{Platform: platform, Plugins: doc.Top100, path: path}, true, nil
}

// Path returns the document's file path.
func (t *Top100) Path() string { return t.path }

// Save writes the document back, preserving the {"top100": [...]} envelope.
// Used by the deps pipeline, which updates dependency sets in place.
func (t *Top100) Save() error {
	doc := map[string]any{"top100": t.Plugins}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(t.path, data, 0o644)
}

// Repos collects the unique owner/repo references across the given
// platforms, sorted. Entries without a usable repo are skipped.
func Repos(dataDir string, platforms []string) ([]string, error) {
	seen := map[string]struct{}{}
	for _, platform := range platforms {
		top, ok, err := Load(dataDir, platform)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		for _, plugin := range top.Plugins {
			repo := strings.TrimSpace(strings.TrimSuffix(plugin.Repo, ".git"))
			if repo == "" || !strings.Contains(repo, "/") {
				continue
			}
			seen[repo] = struct{}{}
		}
	}
	repos := make([]string, 0, len(seen))
	for r := range seen {
		repos = append(repos, r)
	}
	sort.Strings(repos)
	return repos, nil
}
