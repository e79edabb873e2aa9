package main

import (
	"fmt"

	"github.com/matsen/scholarsite/internal/publication"
	"github.com/spf13/cobra"
)

var searchLimit int

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over publications",
	Long: `Search cached publications by title, authors, journal, or abstract.

Examples:
  scholarsite search phylogenetics
  scholarsite search "codon usage" --human`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	root := mustFindSite()
	db := mustOpenDatabase(root)
	defer db.Close()

	pubs, err := db.Search(args[0], searchLimit)
	if err != nil {
		exitWithError(ExitError, "searching publications: %v", err)
	}

	if humanOutput {
		if len(pubs) == 0 {
			fmt.Println("No matches")
			return nil
		}
		for i, p := range pubs {
			fmt.Printf("%d. %s\n", i+1, truncateString(p.Title, SearchTitleMaxLen))
			if meta := p.MetaLine(); meta != "" {
				fmt.Printf("   %s\n", meta)
			}
			fmt.Println()
		}
	} else {
		if pubs == nil {
			pubs = []publication.Publication{}
		}
		outputJSON(pubs)
	}

	return nil
}
