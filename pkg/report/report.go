// Package report builds summary statistics over the produced artifacts:
// per-platform catalog aggregates, enrichment coverage, and classification
// category counts.
package report

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/oss-plugin-hub/pluginhub/pkg/catalog"
	"github.com/oss-plugin-hub/pluginhub/pkg/classify"
)

// PlatformAggregate summarizes one platform's catalog.
type PlatformAggregate struct {
	Platform      string  `json:"platform"`
	Plugins       int     `json:"plugins"`
	MeanDownloads float64 `json:"meanDownloads"`
	MeanStars     float64 `json:"meanStars"`
	// RepoCoverage is the share of entries with a usable owner/repo
	// reference; DependencyCoverage the share with refreshed dependency
	// sets. Both rounded to 3 decimals.
	RepoCoverage       float64 `json:"repoCoverage"`
	DependencyCoverage float64 `json:"dependencyCoverage"`
}

// Report is the full summary document.
type Report struct {
	GeneratedAt        time.Time           `json:"generatedAt"`
	Platforms          []PlatformAggregate `json:"platforms"`
	Classified         int                 `json:"classified"`
	GenericCategories  map[string]int      `json:"genericCategories"`
	SpecificCategories map[string]int      `json:"specificCategories"`
}

// Build assembles the report from the documents under dataDir. Platforms
// without a catalog document are simply absent from the output.
func Build(dataDir string, platforms []string) (*Report, error) {
	report := &Report{
		GeneratedAt:        time.Now().UTC(),
		GenericCategories:  map[string]int{},
		SpecificCategories: map[string]int{},
	}

	for _, platform := range platforms {
		top, ok, err := catalog.Load(dataDir, platform)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		report.Platforms = append(report.Platforms, aggregate(top))
	}

	results, err := loadClassifications(dataDir)
	if err != nil {
		return nil, err
	}
	report.Classified = len(results)
	for _, result := range results {
		for _, c := range result.GenericCategories {
			report.GenericCategories[c]++
		}
		for _, c := range result.SpecificCategories {
			report.SpecificCategories[c]++
		}
	}

	return report, nil
}

// Write persists the report as data/report.json.
func (r *Report) Write(dataDir string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dataDir, "report.json"), data, 0o644)
}

func aggregate(top *catalog.Top100) PlatformAggregate {
	agg := PlatformAggregate{Platform: top.Platform, Plugins: len(top.Plugins)}

	var downloads, starCounts []float64
	withRepo, withDeps := 0, 0
	for _, plugin := range top.Plugins {
		downloads = append(downloads, plugin.Downloads)
		starCounts = append(starCounts, plugin.GitHubStats.Stars)
		if plugin.Repo != "" {
			withRepo++
		}
		if plugin.GitHubStats.Dependencies != nil {
			withDeps++
		}
	}

	if mean, err := stats.Mean(downloads); err == nil {
		agg.MeanDownloads = round(mean, 2)
	}
	if mean, err := stats.Mean(starCounts); err == nil {
		agg.MeanStars = round(mean, 2)
	}
	if len(top.Plugins) > 0 {
		agg.RepoCoverage = round(float64(withRepo)/float64(len(top.Plugins)), 3)
		agg.DependencyCoverage = round(float64(withDeps)/float64(len(top.Plugins)), 3)
	}
	return agg
}

func loadClassifications(dataDir string) ([]classify.Result, error) {
	data, err := os.ReadFile(filepath.Join(dataDir, "classifications_groq.json"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var results []classify.Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func round(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
