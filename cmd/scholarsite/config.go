package main

import (
	"fmt"
	"strconv"

	"github.com/matsen/scholarsite/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set site configuration values",
	Long: `Get or set site configuration values.

Usage:
  scholarsite config                        # Show all config
  scholarsite config site_title             # Get specific value
  scholarsite config site_title "Jane Doe"  # Set value

Keys:
  site_title      Page heading shown on every page
  author_id       Semantic Scholar author ID
  selected_count  Publications marked selected on update
  output_dir      Build output directory
  deploy_target   Default deploy destination`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	root := mustFindSite()
	cfg := mustLoadConfig(root)

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("site_title:     %s\n", cfg.SiteTitle)
			fmt.Printf("author_id:      %s\n", cfg.AuthorID)
			fmt.Printf("selected_count: %d\n", cfg.SelectedCount)
			fmt.Printf("output_dir:     %s\n", cfg.OutputDir)
			fmt.Printf("deploy_target:  %s\n", cfg.DeployTarget)
		} else {
			outputJSON(cfg)
		}
		return nil
	}

	key := args[0]

	// One arg: get specific value
	if len(args) == 1 {
		value, err := configValue(cfg, key)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{key: value})
		}
		return nil
	}

	// Two args: set value
	if err := setConfigValue(cfg, key, args[1]); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		outputHuman("Set %s to %s\n", key, args[1])
	} else {
		outputJSON(map[string]string{"status": "updated", "key": key, "value": args[1]})
	}
	return nil
}

func configValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "site_title":
		return cfg.SiteTitle, nil
	case "author_id":
		return cfg.AuthorID, nil
	case "selected_count":
		return strconv.Itoa(cfg.SelectedCount), nil
	case "output_dir":
		return cfg.OutputDir, nil
	case "deploy_target":
		return cfg.DeployTarget, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "site_title":
		cfg.SiteTitle = value
	case "author_id":
		cfg.AuthorID = value
	case "selected_count":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("selected_count must be a positive integer")
		}
		cfg.SelectedCount = n
	case "output_dir":
		cfg.OutputDir = value
	case "deploy_target":
		cfg.DeployTarget = config.ExpandPath(value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
