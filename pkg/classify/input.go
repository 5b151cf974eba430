// Package classify assigns generic and platform-specific categories to
// catalog entries via an LLM completion API, with checkpointed progress so
// an interrupted run picks up where it stopped.
package classify

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/oss-plugin-hub/pluginhub/pkg/catalog"
)

// Item is one catalog entry queued for classification.
type Item struct {
	Platform string
	Plugin   catalog.Plugin
}

// ID returns the composite key platform:repo.
func (i Item) ID() string { return i.Platform + ":" + i.Plugin.Repo }

// Input is the payload handed to the model for one item. The README is the
// primary signal; when it is absent the model falls back to description and
// tags.
type Input struct {
	Platform    string   `json:"platform"`
	Repo        string   `json:"repo"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Categories  []string `json:"categories"`
	Downloads   float64  `json:"downloads"`
	Stars       float64  `json:"stars"`
	LastUpdated string   `json:"lastUpdated"`
	Readme      string   `json:"readme"`
}

// BuildInput assembles the model payload for item, pulling the cached
// README from readmeRoot when one exists.
func BuildInput(item Item, readmeRoot string) Input {
	return Input{
		Platform:    item.Platform,
		Repo:        item.Plugin.Repo,
		Name:        item.Plugin.Name,
		Description: item.Plugin.Description,
		Tags:        item.Plugin.Tags,
		Categories:  item.Plugin.Categories,
		Downloads:   item.Plugin.Downloads,
		Stars:       item.Plugin.GitHubStats.Stars,
		LastUpdated: item.Plugin.GitHubStats.LastUpdated,
		Readme:      loadReadme(readmeRoot, item.Platform, item.Plugin.Repo),
	}
}

// loadReadme finds the cached README for a repo. The fetcher names files
// <owner>_<repo>.md but some older snapshots carry prefixes, so a suffix
// glob is tried before giving up. Missing README is "" — a legitimate
// input, recorded as readme_missing in the result.
func loadReadme(readmeRoot, platform, repo string) string {
	filename := strings.ReplaceAll(repo, "/", "_") + ".md"
	dir := filepath.Join(readmeRoot, platform)

	path := filepath.Join(dir, filename)
	if data, err := os.ReadFile(path); err == nil {
		return string(data)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "*"+filename))
	if len(matches) > 0 {
		if data, err := os.ReadFile(matches[0]); err == nil {
			return string(data)
		}
	}
	return ""
}

// LoadItems gathers all catalog entries across platforms, in platform order.
func LoadItems(dataDir string, platforms []string) ([]Item, error) {
	var items []Item
	for _, platform := range platforms {
		top, ok, err := catalog.Load(dataDir, platform)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		for _, plugin := range top.Plugins {
			items = append(items, Item{Platform: platform, Plugin: plugin})
		}
	}
	return items, nil
}
