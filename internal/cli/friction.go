package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/oss-plugin-hub/pluginhub/pkg/batch"
	"github.com/oss-plugin-hub/pluginhub/pkg/catalog"
	"github.com/oss-plugin-hub/pluginhub/pkg/enrich"
	"github.com/oss-plugin-hub/pluginhub/pkg/integrations"
	"github.com/oss-plugin-hub/pluginhub/pkg/integrations/github"
	"github.com/oss-plugin-hub/pluginhub/pkg/store"
)

// frictionCommand creates the friction command: median turnaround of
// externally authored closed pull requests, per repository.
func (c *CLI) frictionCommand() *cobra.Command {
	var abortOnRateLimit bool

	cmd := &cobra.Command{
		Use:   "friction",
		Short: "Compute median external-PR turnaround for catalog repositories",
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

			repos, err := catalog.Repos(c.dataDir, c.config.Platforms)
			if err != nil {
				return err
			}
			printInfo("Processing %d repositories across %d platforms", len(repos), len(c.config.Platforms))

			cachePath := c.dataPath("pr-friction-cache.json")
			progress, err := store.LoadProgress(c.dataPath("pr-friction-progress.json"))
			if err != nil {
				return err
			}

			driver := &batch.Driver{
				Store:            c.newStore(cachePath, "pr-friction"),
				Progress:         progress,
				Logger:           c.Logger,
				Sleep:            c.config.PRSleep,
				AbortOnRateLimit: abortOnRateLimit,
			}
			summary, err := driver.Run(ctx, repos, func(ctx context.Context, id string) (map[string]any, error) {
				return c.frictionOne(ctx, gh, id)
			})
			if err != nil {
				return err
			}

			printSummary(summary)
			printFile(cachePath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&abortOnRateLimit, "abort-on-rate-limit", true, "stop the run on a rate-limit response instead of marking the item failed")
	return cmd
}

// frictionOne pages through a repository's closed pull requests and reduces
// the externally authored ones to a median turnaround. Pagination stops at
// the configured page cap, an empty page, or a missing repository.
func (c *CLI) frictionOne(ctx context.Context, gh *github.Client, id string) (map[string]any, error) {
	owner, repo, ok := integrations.ParseRepoRef(id)
	if !ok {
		return nil, integrations.ErrNotFound
	}

	var durations []float64
	for page := 1; page <= c.config.MaxPRPages; page++ {
		pulls, err := gh.ListClosedPulls(ctx, owner, repo, page)
		if errors.Is(err, integrations.ErrNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(pulls) == 0 {
			break
		}
		durations = append(durations, enrich.ExternalDurations(pulls, owner)...)

		if c.config.PRSleep > 0 && page < c.config.MaxPRPages {
			time.Sleep(c.config.PRSleep)
		}
	}

	friction, ok := enrich.MedianFriction(durations)
	if !ok {
		return nil, integrations.ErrNotFound
	}
	return map[string]any{
		"medianDays": friction.MedianDays,
		"count":      friction.Count,
	}, nil
}
