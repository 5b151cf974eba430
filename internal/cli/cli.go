// Package cli implements the pluginhub command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/oss-plugin-hub/pluginhub/pkg/buildinfo"
)

// appName is the application name used for directories and display.
const appName = "pluginhub"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	dataDir string
	config  *Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "pluginhub",
		Short:        "Pluginhub enriches plugin catalogs with external metadata",
		Long:         `Pluginhub aggregates top plugin/extension catalogs across platforms and runs resumable enrichment pipelines against the npm registry, GitHub, OSV, OpenSSF Scorecard and an LLM classifier.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			c.config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.dataDir, "data-dir", "data", "directory holding catalog and cache documents")

	root.AddCommand(c.enrichCommand())
	root.AddCommand(c.frictionCommand())
	root.AddCommand(c.stalenessCommand())
	root.AddCommand(c.depsCommand())
	root.AddCommand(c.classifyCommand())
	root.AddCommand(c.reportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// cacheDir returns the HTTP response cache directory using the XDG standard
// (~/.cache/pluginhub/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// dataPath joins a document name onto the data dir.
func (c *CLI) dataPath(parts ...string) string {
	return filepath.Join(append([]string{c.dataDir}, parts...)...)
}
