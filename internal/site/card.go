// Package site renders the static pages of the publication site.
//
// Rendering is split into two stages: a pure builder that turns publication
// records into card descriptions, and a template layer that binds the
// descriptions into HTML. The builder carries all the testable logic
// (ordering, filtering, text composition); the template layer stays thin.
package site

import (
	"github.com/matsen/scholarsite/internal/publication"
)

// Card describes the rendered representation of one publication record.
type Card struct {
	Title    string
	Journal  string // "" omits the badge
	Meta     string // authors followed by year
	URL      string // "" omits the HTML link
	Abstract string // "" renders an empty abstract block
}

// BuildCard converts one record into its card description.
func BuildCard(p publication.Publication) Card {
	return Card{
		Title:    p.Title,
		Journal:  p.Journal,
		Meta:     p.MetaLine(),
		URL:      p.URL,
		Abstract: p.Abstract,
	}
}

// BuildCards selects and orders the records, then converts each to a card.
// The returned order is the render order.
func BuildCards(pubs []publication.Publication, onlySelected bool) []Card {
	ordered := publication.SelectAndOrder(pubs, onlySelected)

	cards := make([]Card, len(ordered))
	for i, p := range ordered {
		cards[i] = BuildCard(p)
	}
	return cards
}
