package main

import (
	"github.com/matsen/scholarsite/internal/config"
	"github.com/matsen/scholarsite/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the SQLite cache from publications.json",
	Long: `Rebuild the SQLite cache from assets/publications.json.

The cache is ephemeral; run this after editing publications.json by
hand or after a fresh checkout.`,
	RunE: runRebuild,
}

func runRebuild(cmd *cobra.Command, args []string) error {
	root := mustFindSite()

	pubs, err := storage.ReadPublications(config.PublicationsPath(root))
	if err != nil {
		exitWithError(ExitDataError, "reading publications: %v", err)
	}

	db := mustOpenDatabase(root)
	defer db.Close()

	count, err := db.Rebuild(pubs)
	if err != nil {
		exitWithError(ExitError, "rebuilding cache: %v", err)
	}

	if humanOutput {
		outputHuman("Rebuilt cache with %d publications\n", count)
	} else {
		outputJSON(StatusResponse{Status: "rebuilt", Count: count})
	}
	return nil
}
