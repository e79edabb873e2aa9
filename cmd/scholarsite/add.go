package main

import (
	"strings"

	"github.com/matsen/scholarsite/internal/config"
	"github.com/matsen/scholarsite/internal/pdfmeta"
	"github.com/matsen/scholarsite/internal/publication"
	"github.com/matsen/scholarsite/internal/storage"
	"github.com/spf13/cobra"
)

var (
	addTitle    string
	addAuthors  string
	addYear     int
	addJournal  string
	addURL      string
	addAbstract string
	addSelected bool
	addPDF      string
)

func init() {
	addCmd.Flags().StringVar(&addTitle, "title", "", "Publication title")
	addCmd.Flags().StringVar(&addAuthors, "authors", "", "Comma-separated author names")
	addCmd.Flags().IntVar(&addYear, "year", 0, "Publication year")
	addCmd.Flags().StringVar(&addJournal, "journal", "", "Journal or venue name")
	addCmd.Flags().StringVar(&addURL, "url", "", "Link to the paper")
	addCmd.Flags().StringVar(&addAbstract, "abstract", "", "Abstract text")
	addCmd.Flags().BoolVar(&addSelected, "selected", false, "Show on the home page")
	addCmd.Flags().StringVar(&addPDF, "pdf", "", "Prefill title, year, and DOI link from a PDF")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a publication by hand",
	Long: `Add a publication to assets/publications.json without going through
Semantic Scholar. Useful for preprints, book chapters, and anything the
API misses.

With --pdf, the title, year, and DOI link are extracted from the PDF's
front matter; explicit flags override extracted values.

Examples:
  scholarsite add --title "A New Method" --authors "A Smith, B Jones" --year 2024
  scholarsite add --pdf paper.pdf --journal bioRxiv`,
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	root := mustFindSite()

	pub := publication.Publication{
		Title:    addTitle,
		Year:     addYear,
		Journal:  addJournal,
		URL:      addURL,
		Abstract: addAbstract,
		Selected: addSelected,
	}
	if addAuthors != "" {
		for _, name := range strings.Split(addAuthors, ",") {
			if name = strings.TrimSpace(name); name != "" {
				pub.Authors = append(pub.Authors, name)
			}
		}
	}

	if addPDF != "" {
		meta, err := pdfmeta.Extract(addPDF)
		if err != nil {
			exitWithError(ExitDataError, "reading PDF: %v", err)
		}
		if pub.Title == "" {
			pub.Title = meta.Title
		}
		if pub.Year == 0 {
			pub.Year = meta.Year
		}
		if pub.URL == "" && meta.DOI != "" {
			pub.URL = "https://doi.org/" + meta.DOI
		}
	}

	if pub.Title == "" {
		exitWithError(ExitError, "a title is required (--title or --pdf)")
	}

	pubsPath := config.PublicationsPath(root)
	pubs, err := storage.ReadPublications(pubsPath)
	if err != nil {
		exitWithError(ExitDataError, "reading publications: %v", err)
	}

	pubs = append(pubs, pub)
	pubs = publication.SelectAndOrder(pubs, false)

	if err := storage.WritePublications(pubsPath, pubs); err != nil {
		exitWithError(ExitError, "writing publications: %v", err)
	}

	db := mustOpenDatabase(root)
	defer db.Close()
	if _, err := db.Rebuild(pubs); err != nil {
		exitWithError(ExitError, "rebuilding cache: %v", err)
	}

	if humanOutput {
		outputHuman("Added %q (%d publications total)\n", pub.Title, len(pubs))
	} else {
		outputJSON(StatusResponse{Status: "added", Path: pubsPath, Count: len(pubs)})
	}
	return nil
}
