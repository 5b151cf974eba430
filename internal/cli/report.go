package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/oss-plugin-hub/pluginhub/pkg/report"
)

// reportCommand creates the report command: summary statistics over the
// produced artifacts.
func (c *CLI) reportCommand() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize catalogs, enrichment coverage and classifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := report.Build(c.dataDir, c.config.Platforms)
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render("Platforms"))
			for _, agg := range rep.Platforms {
				printKeyValue(agg.Platform, fmt.Sprintf(
					"%d plugins · %.0f mean downloads · %.0f mean stars · %.0f%% with repo · %.0f%% with deps",
					agg.Plugins, agg.MeanDownloads, agg.MeanStars,
					agg.RepoCoverage*100, agg.DependencyCoverage*100,
				))
			}

			if rep.Classified > 0 {
				fmt.Println()
				fmt.Println(StyleTitle.Render("Classification"))
				printKeyValue("classified", fmt.Sprintf("%d", rep.Classified))
				for _, line := range topCategories(rep.GenericCategories, 10) {
					printDetail("%s", line)
				}
			}

			if write {
				if err := rep.Write(c.dataDir); err != nil {
					return err
				}
				printFile(c.dataPath("report.json"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "also write report.json to the data dir")
	return cmd
}

func topCategories(counts map[string]int, n int) []string {
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%-32s %d", e.name, e.count)
	}
	return lines
}
