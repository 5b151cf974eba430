package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/oss-plugin-hub/pluginhub/pkg/classify"
	"github.com/oss-plugin-hub/pluginhub/pkg/integrations/groq"
)

// classifyCommand creates the classify command: LLM-backed category
// assignment for every catalog entry, checkpointed per item.
func (c *CLI) classifyCommand() *cobra.Command {
	var (
		attempts int
		backoff  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify catalog entries into generic and platform categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			apiKey, err := c.config.RequireGroqKey()
			if err != nil {
				return err
			}
			model := groq.NewClient(apiKey, c.config.GroqModel)
			printInfo("Model: %s", model.Model())

			items, err := classify.LoadItems(c.dataDir, c.config.Platforms)
			if err != nil {
				return err
			}
			printInfo("Classifying %d items", len(items))

			runner := &classify.Runner{
				Model:    model,
				Logger:   c.Logger,
				DataDir:  c.dataDir,
				Sleep:    c.config.ItemSleep,
				Attempts: attempts,
				Backoff:  backoff,
			}
			summary, err := runner.Run(ctx, items)
			if err != nil {
				return err
			}

			printSuccess("Classified %d items (%d skipped, %d failed)",
				summary.Classified, summary.Skipped, summary.Failed)
			printFile(c.dataPath("classifications_groq.json"))
			return nil
		},
	}

	cmd.Flags().IntVar(&attempts, "retries", 5, "attempts per item before it is marked failed")
	cmd.Flags().DurationVar(&backoff, "backoff", 2*time.Second, "initial retry backoff (doubles per attempt)")
	return cmd
}
