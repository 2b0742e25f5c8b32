package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"courtscraper/pkg/config"
	"courtscraper/pkg/ui"
)

// configCmd prints the effective configuration after all sources merge.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration that a scrape would run with, after merging
defaults, the config file, environment variables and flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := make(map[string]interface{})
		if logLevel != "" {
			flags["log-level"] = logLevel
		}

		cfg, err := config.Load(configFile, flags)
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}

		ui.PrintHighlight("Effective configuration:")
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
