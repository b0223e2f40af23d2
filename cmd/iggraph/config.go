package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"iggraph/pkg/config"
	"iggraph/pkg/token"
	"iggraph/pkg/ui"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration files",
		Long: `Manage iggraph configuration files.

Configuration is loaded from (highest priority first):
  - Command line flags
  - Environment variables (IGGRAPH_*)
  - .env and ~/.iggraph.env
  - Configuration file
  - Default values`,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a configuration file with default values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ".iggraph.yaml"
			if len(args) > 0 {
				path = args[0]
			} else if a.opts.configFile != "" {
				path = a.opts.configFile
			}

			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("configuration file already exists: %s", path)
			}

			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}
			ui.PrintSuccess(cmd.OutOrStdout(), "Configuration file created: "+path)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long:  `Show the configuration after merging all sources. The access token is masked.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}

			display := *a.cfg
			if display.Graph.AccessToken != "" {
				display.Graph.AccessToken = token.Mask(display.Graph.AccessToken)
			}

			// text falls back to YAML, which reads better than a card here
			if a.opts.output == "text" {
				a.opts.output = "yaml"
			}
			return a.render(cmd.OutOrStdout(), &display, nil)
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}

			if a.cfg.Graph.AccessToken == "" {
				if _, err := a.tokens.Get(a.cfg.Graph.Profile); err != nil {
					ui.PrintWarning(cmd.ErrOrStderr(), "No access token configured or stored")
				}
			}

			ui.PrintSuccess(cmd.OutOrStdout(), "Configuration is valid")
			ui.PrintInfo(cmd.OutOrStdout(), "Base URL", a.cfg.Graph.BaseURL)
			ui.PrintInfo(cmd.OutOrStdout(), "Profile", a.cfg.Graph.Profile)
			ui.PrintInfo(cmd.OutOrStdout(), "Page size", fmt.Sprint(a.cfg.Graph.PageSize))
			ui.PrintInfo(cmd.OutOrStdout(), "Rate limit", fmt.Sprintf("%d requests/minute", a.cfg.RateLimit.RequestsPerMinute))
			return nil
		},
	}

	configCmd.AddCommand(initCmd, showCmd, validateCmd)
	return configCmd
}
