package main

import (
	"fmt"

	"github.com/matsen/scholarsite/internal/publication"
	"github.com/spf13/cobra"
)

var (
	listLimit    int
	listSelected bool
)

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum results to return (0 = all)")
	listCmd.Flags().BoolVar(&listSelected, "selected", false, "Only show selected publications")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List publications",
	Long: `List publications from the cache, newest first.

Examples:
  scholarsite list
  scholarsite list --selected --human`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	root := mustFindSite()
	db := mustOpenDatabase(root)
	defer db.Close()

	pubs, err := db.ListAll(listLimit, listSelected)
	if err != nil {
		exitWithError(ExitError, "listing publications: %v", err)
	}

	total, _ := db.Count()

	if humanOutput {
		if len(pubs) == 0 {
			fmt.Println("No publications in cache. Run 'scholarsite update' first.")
			return nil
		}
		if listLimit > 0 && listLimit < total {
			fmt.Printf("%d publications (showing first %d):\n\n", total, len(pubs))
		} else {
			fmt.Printf("%d publications:\n\n", len(pubs))
		}
		for _, p := range pubs {
			marker := " "
			if p.Selected {
				marker = "*"
			}
			fmt.Printf("  %s %4d  %s\n", marker, p.Year, truncateString(p.Title, ListTitleMaxLen))
		}
	} else {
		if pubs == nil {
			pubs = []publication.Publication{}
		}
		outputJSON(pubs)
	}

	return nil
}
