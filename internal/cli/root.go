// Package cli implements the command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"braindex/internal/config"
	"braindex/internal/ui"
	"braindex/internal/vault"
)

var (
	// Global flags
	configPath string
	rootFlag   string

	// Resolved values
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bdx",
	Short: "Braindex - a personal knowledge-base engine",
	Long: `Braindex scans a directory of interlinked markdown notes and builds a
graph of notes, links, hashtags, headings, and tasks. The graph backs
autocomplete, backlinks, fuzzy search, href ranking, and task boards.

Plain-text markdown files are the source of truth; the graph is rebuilt
from them on every run.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that work without a configured notes root.
		switch cmd.Name() {
		case "version", "completion", "help":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Notes root directory (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}

// resolveVault resolves the active notes root: --root flag, else config.
func resolveVault() (*vault.Vault, error) {
	if rootFlag != "" {
		return vault.New(rootFlag)
	}
	return vault.Resolve(cfg.Roots)
}
