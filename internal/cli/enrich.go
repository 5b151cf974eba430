package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oss-plugin-hub/pluginhub/pkg/batch"
	"github.com/oss-plugin-hub/pluginhub/pkg/enrich"
	"github.com/oss-plugin-hub/pluginhub/pkg/integrations"
	"github.com/oss-plugin-hub/pluginhub/pkg/integrations/npm"
	"github.com/oss-plugin-hub/pluginhub/pkg/integrations/osv"
	"github.com/oss-plugin-hub/pluginhub/pkg/integrations/scorecard"
	"github.com/oss-plugin-hub/pluginhub/pkg/store"
)

// enrichCommand creates the enrich command group.
func (c *CLI) enrichCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Enrich cached records with registry metadata",
	}
	cmd.AddCommand(c.enrichNPMCommand())
	return cmd
}

// enrichNPMCommand creates the "enrich npm" subcommand. It walks the
// npm:name@version keys of the staleness cache and fills in registry
// metadata, optionally OSV vulnerability summaries and OpenSSF scorecards.
func (c *CLI) enrichNPMCommand() *cobra.Command {
	var (
		input     string
		limit     int
		withOSV   bool
		withScore bool
	)

	cmd := &cobra.Command{
		Use:   "npm",
		Short: "Fill npm publish timestamps, license and repository metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if input == "" {
				input = c.dataPath("stale-deps-cache.json")
			}

			registry, err := npm.NewClient(c.config.CacheTTL)
			if err != nil {
				return err
			}
			var vulnDB *osv.Client
			if withOSV {
				if vulnDB, err = osv.NewClient(c.config.CacheTTL); err != nil {
					return err
				}
			}
			var scores *scorecard.Client
			if withScore {
				if scores, err = scorecard.NewClient(c.config.CacheTTL); err != nil {
					return err
				}
			}

			st := c.newStore(input, "npm-enrich")
			progress, err := store.LoadProgress(c.dataPath("npm-enrich-progress.json"))
			if err != nil {
				return err
			}

			doc, err := st.Load(ctx)
			if err != nil {
				return err
			}
			ids := npmKeys(doc, limit)

			driver := &batch.Driver{
				Store:    st,
				Progress: progress,
				Logger:   c.Logger,
				Sleep:    c.config.ItemSleep,
			}
			summary, err := driver.Run(ctx, ids, func(ctx context.Context, id string) (map[string]any, error) {
				name, version, ok := parseNPMKey(id)
				if !ok {
					return nil, fmt.Errorf("malformed key %q", id)
				}
				return c.enrichOne(ctx, registry, vulnDB, scores, name, version)
			})
			if err != nil {
				return err
			}

			printSummary(summary)
			printFile(input)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "cache document to enrich (default <data-dir>/stale-deps-cache.json)")
	cmd.Flags().IntVar(&limit, "limit", 0, "process at most this many keys (0 = all)")
	cmd.Flags().BoolVar(&withOSV, "with-osv", false, "query OSV for a vulnerability summary")
	cmd.Flags().BoolVar(&withScore, "with-scorecard", false, "fetch the OpenSSF scorecard for the package repository")
	return cmd
}

func (c *CLI) enrichOne(ctx context.Context, registry *npm.Client, vulnDB *osv.Client, scores *scorecard.Client, name, version string) (map[string]any, error) {
	meta, err := registry.FetchVersion(ctx, name, version)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"publishedAt":       meta.PublishedAt,
		"latestVersion":     meta.LatestVersion,
		"latestPublishedAt": meta.LatestPublishedAt,
		"license":           meta.License,
		"deprecated":        meta.Deprecated,
		"repository":        meta.Repository,
		"description":       meta.Description,
	}

	if vulnDB != nil {
		vulns, err := vulnDB.Query(ctx, "npm", name, version)
		if err != nil {
			return nil, err
		}
		summary := enrich.SummarizeVulnerabilities(vulns)
		fields["security"] = map[string]any{
			"vuln_count":       summary.Count,
			"highest_severity": summary.HighestSeverity,
		}
	}

	if scores != nil {
		fields["openssf_scorecard"] = c.fetchScorecard(ctx, scores, meta.Repository)
	}
	return fields, nil
}

// fetchScorecard resolves the package repository to GitHub coordinates and
// queries the scorecard API. Repositories outside GitHub, or packages with
// no repository at all, are noted rather than treated as errors.
func (c *CLI) fetchScorecard(ctx context.Context, scores *scorecard.Client, repository string) map[string]any {
	if repository == "" {
		return map[string]any{"score": nil, "note": "missing-repo"}
	}
	owner, repo, ok := integrations.ParseRepoRef(repository)
	if !ok || !strings.Contains(strings.ToLower(repository), "github.com") {
		return map[string]any{"score": nil, "note": "non-github-repo"}
	}

	result, found, err := scores.Fetch(ctx, owner, repo)
	if err != nil || !found {
		if err != nil {
			c.Logger.Debug("scorecard fetch failed", "repo", repository, "err", err)
		}
		return map[string]any{"score": nil, "note": "unavailable"}
	}
	return map[string]any{"score": result.Score, "date": result.Date}
}

// newStore picks the cache-store backend: redis when configured, the JSON
// file otherwise.
func (c *CLI) newStore(path, redisKey string) store.Store {
	if c.config.RedisAddr != "" {
		return store.NewRedisStore(c.config.RedisAddr, appName+":"+redisKey)
	}
	return store.NewFileStore(path)
}

// npmKeys returns the npm:name@version keys of doc, sorted, bounded by
// limit when positive.
func npmKeys(doc store.Document, limit int) []string {
	var ids []string
	for key := range doc {
		if _, _, ok := parseNPMKey(key); ok {
			ids = append(ids, key)
		}
	}
	sort.Strings(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids
}

// parseNPMKey splits "npm:@scope/name@1.2.3" into name and version. The
// version separator is the last '@' so scoped names survive.
func parseNPMKey(key string) (name, version string, ok bool) {
	body, found := strings.CutPrefix(key, "npm:")
	if !found {
		return "", "", false
	}
	i := strings.LastIndex(body, "@")
	if i <= 0 {
		return "", "", false
	}
	return body[:i], body[i+1:], true
}
