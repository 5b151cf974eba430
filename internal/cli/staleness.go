package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/oss-plugin-hub/pluginhub/pkg/catalog"
	"github.com/oss-plugin-hub/pluginhub/pkg/enrich"
	"github.com/oss-plugin-hub/pluginhub/pkg/integrations/npm"
	"github.com/oss-plugin-hub/pluginhub/pkg/store"
)

// platformStaleness is one platform's entry in the results document.
type platformStaleness struct {
	Stale            int     `json:"stale"`
	Total            int     `json:"total"`
	AvgStaleDepRatio float64 `json:"avgStaleDepRatio"`
}

// stalenessCommand creates the staleness command: per-platform ratio of
// declared dependency versions published more than a year ago.
func (c *CLI) stalenessCommand() *cobra.Command {
	var platformsFlag []string

	cmd := &cobra.Command{
		Use:   "staleness",
		Short: "Estimate per-platform stale-dependency ratios from npm publish dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			platforms := c.config.Platforms
			if len(platformsFlag) > 0 {
				platforms = platformsFlag
			}

			registry, err := npm.NewClient(c.config.CacheTTL)
			if err != nil {
				return err
			}

			cachePath := c.dataPath("stale-deps-cache.json")
			resultsPath := c.dataPath("stale-deps-results.json")
			st := c.newStore(cachePath, "stale-deps")

			doc, err := st.Load(ctx)
			if err != nil {
				return err
			}
			results, err := loadStalenessResults(resultsPath)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			for _, platform := range platforms {
				top, ok, err := catalog.Load(c.dataDir, platform)
				if err != nil {
					return err
				}
				if !ok {
					c.Logger.Warn("missing catalog document", "platform", platform)
					continue
				}

				counter := c.platformStaleness(ctx, registry, top, doc, now)
				results[platform] = platformStaleness{
					Stale:            counter.Stale,
					Total:            counter.Total,
					AvgStaleDepRatio: counter.Ratio(),
				}

				// checkpoint after every platform so a long run survives
				if err := st.Save(ctx, doc); err != nil {
					return err
				}
				if err := saveStalenessResults(resultsPath, results); err != nil {
					return err
				}
				printInfo("%s: stale %d / %d ratio %.3f", platform, counter.Stale, counter.Total, counter.Ratio())
			}

			printSuccess("Staleness analysis complete")
			printFile(cachePath)
			printFile(resultsPath)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&platformsFlag, "platforms", nil, "platforms to analyze (default: all, or STALE_PLATFORMS)")
	return cmd
}

// platformStaleness walks one platform's declared dependencies, resolving
// each version's publish date through the cache document, fetching from the
// registry only on a cache miss.
func (c *CLI) platformStaleness(ctx context.Context, registry *npm.Client, top *catalog.Top100, doc store.Document, now time.Time) *enrich.StaleCounter {
	counter := &enrich.StaleCounter{}

	for _, plugin := range top.Plugins {
		deps := plugin.GitHubStats.Dependencies
		if deps == nil {
			continue
		}
		for _, section := range []map[string]string{deps.Dependencies, deps.DevDependencies} {
			for pkg, ver := range section {
				if !enrich.IsNPMPackage(pkg) {
					continue
				}
				version := enrich.CleanVersion(ver)
				key := fmt.Sprintf("npm:%s@%s", pkg, version)

				rec, cached := doc[key]
				if !cached {
					rec = c.fetchPublishTime(ctx, registry, pkg, version)
					doc[key] = rec
					if c.config.StaleSleep > 0 {
						time.Sleep(c.config.StaleSleep)
					}
				}

				publishedAt, ok := rec["publishedAt"].(string)
				if !ok || publishedAt == "" {
					continue
				}
				published, err := time.Parse(time.RFC3339, publishedAt)
				if err != nil {
					continue
				}
				counter.Observe(published, now)
			}
		}
	}
	return counter
}

func (c *CLI) fetchPublishTime(ctx context.Context, registry *npm.Client, pkg, version string) store.Record {
	meta, err := registry.FetchVersion(ctx, pkg, version)
	if err != nil {
		c.Logger.Debug("npm fetch failed", "package", pkg, "version", version, "err", err)
		return store.Record{"status": store.StatusError, "error": err.Error()}
	}
	return store.Record{"status": store.StatusOK, "publishedAt": meta.PublishedAt}
}

func loadStalenessResults(path string) (map[string]platformStaleness, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]platformStaleness{}, nil
	}
	if err != nil {
		return nil, err
	}
	results := map[string]platformStaleness{}
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func saveStalenessResults(path string, results map[string]platformStaleness) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
