package main

import (
	"os"

	"github.com/matsen/scholarsite/internal/config"
	"github.com/matsen/scholarsite/internal/publication"
	"github.com/matsen/scholarsite/internal/storage"
	"github.com/spf13/cobra"
)

var (
	initTitle    string
	initAuthorID string
)

func init() {
	initCmd.Flags().StringVar(&initTitle, "title", "", "Site title (shown as the page heading)")
	initCmd.Flags().StringVar(&initAuthorID, "author-id", "", "Semantic Scholar author ID")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new scholarsite site",
	Long: `Initialize a new scholarsite site in the current directory.

Creates:
  .scholarsite/
  ├── config.json            # Site config
  └── cache/                 # SQLite cache (gitignored)
  assets/
  └── publications.json      # Empty publication list`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	if config.IsSite(cwd) {
		exitWithError(ExitError, "directory already contains a scholarsite site")
	}

	if err := os.MkdirAll(config.CachePath(cwd), 0755); err != nil {
		exitWithError(ExitError, "creating site directories: %v", err)
	}

	if err := storage.WritePublications(config.PublicationsPath(cwd), []publication.Publication{}); err != nil {
		exitWithError(ExitError, "creating publications.json: %v", err)
	}

	cfg := &config.Config{
		SiteTitle:     initTitle,
		AuthorID:      initAuthorID,
		SelectedCount: config.DefaultSelectedCount,
		OutputDir:     config.DefaultOutputDir,
	}
	if err := cfg.Save(cwd); err != nil {
		exitWithError(ExitError, "creating config.json: %v", err)
	}

	if humanOutput {
		outputHuman("Initialized scholarsite site in %s\n", config.SitePath(cwd))
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: config.SitePath(cwd)})
	}
	return nil
}
