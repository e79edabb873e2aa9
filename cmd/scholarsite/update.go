package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/matsen/scholarsite/internal/config"
	"github.com/matsen/scholarsite/internal/scholar"
	"github.com/matsen/scholarsite/internal/storage"
	"github.com/spf13/cobra"
)

var (
	updateAuthorID string
	updateSelected int
)

func init() {
	// Load .env file if present (for S2_API_KEY)
	_ = godotenv.Load()

	updateCmd.Flags().StringVar(&updateAuthorID, "author-id", "", "Override the configured author ID")
	updateCmd.Flags().IntVar(&updateSelected, "selected", 0, "Override how many recent publications to mark selected")
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fetch publications from Semantic Scholar",
	Long: `Fetch the configured author's publications from Semantic Scholar
and rewrite assets/publications.json.

Publications are sorted newest first. The most recent ones are marked
selected so they appear on the home page. Set S2_API_KEY (environment
or .env file) for a higher API rate limit.

Examples:
  scholarsite update
  scholarsite update --author-id 2262347 --selected 5`,
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	root := mustFindSite()
	cfg := mustLoadConfig(root)
	logger := newLogger()

	authorID := updateAuthorID
	if authorID == "" {
		authorID = cfg.AuthorID
	}
	if authorID == "" {
		exitWithError(ExitConfigError, "no author ID configured. Set one with 'scholarsite config set author_id <id>'")
	}

	selectedCount := cfg.SelectedCount
	if updateSelected > 0 {
		selectedCount = updateSelected
	}

	var opts []scholar.ClientOption
	if key := config.GetS2APIKey(); key != "" {
		opts = append(opts, scholar.WithAPIKey(key))
	}
	client := scholar.NewClient(opts...)

	logger.Info("fetching publications", "author_id", authorID)
	papers, err := client.AuthorPapers(context.Background(), authorID)
	if err != nil {
		switch {
		case scholar.IsNotFound(err):
			exitWithError(ExitAPIError, "author %s not found", authorID)
		case scholar.IsAuthError(err):
			exitWithError(ExitAPIError, "Semantic Scholar rejected the API key")
		case scholar.IsRateLimited(err):
			exitWithError(ExitAPIError, "rate limited by Semantic Scholar, try again later")
		default:
			exitWithError(ExitAPIError, "fetching publications: %v", err)
		}
	}

	if len(papers) == 0 {
		exitWithError(ExitDataError, "no publications returned for author %s, keeping the existing file", authorID)
	}

	pubs := scholar.BuildDocument(papers, selectedCount)

	pubsPath := config.PublicationsPath(root)
	if err := storage.WritePublications(pubsPath, pubs); err != nil {
		exitWithError(ExitError, "writing publications: %v", err)
	}

	db := mustOpenDatabase(root)
	defer db.Close()
	if _, err := db.Rebuild(pubs); err != nil {
		exitWithError(ExitError, "rebuilding cache: %v", err)
	}

	if humanOutput {
		outputHuman("Fetched %d publications for author %s\n", len(pubs), authorID)
		outputHuman("Wrote %s\n", pubsPath)
	} else {
		outputJSON(StatusResponse{Status: "updated", Path: pubsPath, Count: len(pubs)})
	}
	return nil
}
