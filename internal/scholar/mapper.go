package scholar

import (
	"github.com/matsen/scholarsite/internal/publication"
)

// MapPaper converts a scholar API paper to a publication record.
// Missing fields map to zero values; no validation is performed.
func MapPaper(p Paper) publication.Publication {
	authors := make(publication.AuthorList, 0, len(p.Authors))
	for _, a := range p.Authors {
		if a.Name != "" {
			authors = append(authors, a.Name)
		}
	}
	if len(authors) == 0 {
		authors = nil
	}

	return publication.Publication{
		Title:    p.Title,
		Authors:  authors,
		Year:     p.Year,
		Journal:  p.Venue,
		URL:      p.URL,
		Abstract: p.Abstract,
	}
}

// BuildDocument converts fetched papers into the publications document:
// records sorted descending by year with the first selectedCount marked
// as selected.
func BuildDocument(papers []Paper, selectedCount int) []publication.Publication {
	pubs := make([]publication.Publication, len(papers))
	for i, p := range papers {
		pubs[i] = MapPaper(p)
	}

	ordered := publication.SelectAndOrder(pubs, false)
	publication.MarkSelected(ordered, selectedCount)
	return ordered
}
