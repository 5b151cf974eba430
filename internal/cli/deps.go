package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/oss-plugin-hub/pluginhub/pkg/catalog"
	"github.com/oss-plugin-hub/pluginhub/pkg/integrations"
	"github.com/oss-plugin-hub/pluginhub/pkg/integrations/github"
	"github.com/oss-plugin-hub/pluginhub/pkg/manifest"
)

// depsCommand creates the deps command: refresh each catalog entry's
// declared dependency sets from its repository's build manifest.
func (c *CLI) depsCommand() *cobra.Command {
	var (
		platforms []string
		delay     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Refresh catalog dependency sets from repository build manifests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			token, err := c.config.RequireGitHubToken()
			if err != nil {
				return err
			}
			gh, err := github.NewClient(token, c.config.CacheTTL)
			if err != nil {
				return err
			}

			total := 0
			for _, platform := range platforms {
				updated, err := c.refreshPlatformDeps(ctx, gh, platform, delay)
				if err != nil {
					return err
				}
				total += updated
			}
			printSuccess("Updated dependencies for %d repositories", total)
			return nil
		},
	}

	// Gradle/Maven platforms are the ones whose manifests the catalog
	// fetchers cannot read themselves.
	cmd.Flags().StringSliceVar(&platforms, "platforms", []string{"jetbrains", "minecraft"}, "platforms to refresh")
	cmd.Flags().DurationVar(&delay, "delay", 100*time.Millisecond, "delay between repositories")
	return cmd
}

func (c *CLI) refreshPlatformDeps(ctx context.Context, gh *github.Client, platform string, delay time.Duration) (int, error) {
	top, ok, err := catalog.Load(c.dataDir, platform)
	if err != nil {
		return 0, err
	}
	if !ok {
		printWarning("Missing %s/top100.json, skipping", platform)
		return 0, nil
	}

	updated := 0
	for i := range top.Plugins {
		plugin := &top.Plugins[i]
		owner, repo, ok := integrations.ParseRepoRef(plugin.Repo)
		if !ok {
			continue
		}

		deps, found, err := c.fetchManifest(ctx, gh, owner, repo)
		if err != nil {
			return updated, err
		}
		if !found {
			continue
		}

		plugin.GitHubStats.Dependencies = &catalog.Dependencies{
			Dependencies:    wildcardMap(deps.ProductionList()),
			DevDependencies: wildcardMap(deps.DevelopmentList()),
		}
		updated++
		c.Logger.Debug("refreshed dependencies",
			"repo", plugin.Repo,
			"production", len(deps.Production),
			"development", len(deps.Development),
		)
		if delay > 0 {
			time.Sleep(delay)
		}
	}

	if err := top.Save(); err != nil {
		return updated, err
	}
	printInfo("%s: updated dependencies for %d repos", platform, updated)
	return updated, nil
}

// fetchManifest probes the supported manifest dialects in priority order
// and parses the first usable one. Dialects are never merged.
func (c *CLI) fetchManifest(ctx context.Context, gh *github.Client, owner, repo string) (manifest.Dependencies, bool, error) {
	for _, dialect := range manifest.Dialects {
		content, ok, err := gh.FetchFile(ctx, owner, repo, dialect.Path)
		if err != nil {
			return manifest.Dependencies{}, false, err
		}
		if !ok {
			continue
		}

		deps, err := dialect.Parse(content)
		if err != nil {
			// malformed manifest: fall through to the next dialect,
			// matching how a broken package.json yields to gradle
			c.Logger.Debug("manifest parse failed", "repo", owner+"/"+repo, "file", dialect.Path, "err", err)
			continue
		}
		if deps.Empty() && !dialect.AcceptEmpty {
			continue
		}
		return deps, true, nil
	}
	return manifest.Dependencies{}, false, nil
}

func wildcardMap(names []string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		out[name] = "*"
	}
	return out
}
