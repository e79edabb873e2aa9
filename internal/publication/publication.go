// Package publication defines the core domain types for site publications.
package publication

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// HighlightFallback is the number of records shown in the highlights view
// when no record is explicitly marked as selected.
const HighlightFallback = 3

// Publication represents one entry of assets/publications.json.
// All fields except Title are optional; missing fields decode to zero
// values and propagate through rendering rather than failing validation.
type Publication struct {
	Title    string     `json:"title"`
	Authors  AuthorList `json:"authors,omitempty"`
	Year     int        `json:"year,omitempty"` // 0 if unknown
	Journal  string     `json:"journal,omitempty"`
	URL      string     `json:"url,omitempty"`
	Abstract string     `json:"abstract,omitempty"`
	Selected bool       `json:"selected,omitempty"`
}

// AuthorList holds publication authors. The JSON field may be either a
// plain string or an array of strings; both decode to a list.
type AuthorList []string

// UnmarshalJSON accepts a JSON string or an array of strings.
func (a *AuthorList) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		*a = names
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == "" {
		*a = nil
		return nil
	}
	*a = AuthorList{single}
	return nil
}

// String joins the authors with ", ". Empty list formats as "".
func (a AuthorList) String() string {
	return strings.Join(a, ", ")
}

// MetaLine composes the metadata line shown under a publication title:
// the joined authors followed by a space and the year. A missing year
// leaves only the authors; missing authors leave only the year.
func (p Publication) MetaLine() string {
	authors := p.Authors.String()
	if p.Year == 0 {
		return authors
	}
	year := strconv.Itoa(p.Year)
	if authors == "" {
		return year
	}
	return authors + " " + year
}

// SelectAndOrder returns the records to render, in render order.
//
// Records are sorted descending by year with missing years sorting as 0.
// When onlySelected is set, only records with Selected=true are kept; if
// none are marked, the first HighlightFallback records of the sorted
// sequence are returned so the highlights view always shows something.
func SelectAndOrder(pubs []Publication, onlySelected bool) []Publication {
	ordered := make([]Publication, len(pubs))
	copy(ordered, pubs)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Year > ordered[j].Year
	})

	if !onlySelected {
		return ordered
	}

	var selected []Publication
	for _, p := range ordered {
		if p.Selected {
			selected = append(selected, p)
		}
	}
	if len(selected) > 0 {
		return selected
	}

	if len(ordered) > HighlightFallback {
		ordered = ordered[:HighlightFallback]
	}
	return ordered
}

// MarkSelected sets Selected=true on the first n records and false on the
// rest. The slice is assumed to already be in year-descending order.
func MarkSelected(pubs []Publication, n int) {
	for i := range pubs {
		pubs[i].Selected = i < n
	}
}
