// Package pdfmeta pulls publication metadata out of PDF files.
//
// Extraction is best effort. A paper's first pages usually carry the
// title, a DOI, and a publication year; anything not found is left
// blank for the user to fill in.
package pdfmeta

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

// scanPages bounds how far into the document we look. Front matter
// carries the metadata; scanning further only adds noise.
const scanPages = 3

var (
	doiPattern  = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)
	yearPattern = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
)

// Metadata holds fields recovered from a PDF.
type Metadata struct {
	Title string
	DOI   string
	Year  int
}

// Extract reads the front matter of the PDF at path and returns whatever
// metadata it can recover. Unreadable pages are skipped.
func Extract(path string) (Metadata, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()

	pages := scanPages
	if r.NumPage() < pages {
		pages = r.NumPage()
	}

	var meta Metadata
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if i == 1 && meta.Title == "" {
			meta.Title = titleFromText(text)
		}
		if meta.DOI == "" {
			meta.DOI = findDOI(text)
		}
		if meta.Year == 0 {
			meta.Year = yearFromText(text)
		}

		if meta.Title != "" && meta.DOI != "" && meta.Year != 0 {
			break
		}
	}

	return meta, nil
}

// findDOI returns the first plausible DOI in text, or "".
func findDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:)")
		if validDOI(match) {
			return match
		}
	}
	return ""
}

func validDOI(doi string) bool {
	if len(doi) < 10 || !strings.HasPrefix(doi, "10.") {
		return false
	}
	slash := strings.Index(doi, "/")
	return slash != -1 && slash < len(doi)-1
}

// titleFromText picks the first substantial line of the first page.
// Journal mastheads and copyright lines are skipped.
func titleFromText(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 20 && !boilerplateLine(line) {
			return line
		}
	}
	return ""
}

// yearFromText returns the first year-looking number that is not in the
// future, or 0.
func yearFromText(text string) int {
	current := time.Now().Year()
	for _, match := range yearPattern.FindAllString(text, -1) {
		year, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		if year <= current+1 {
			return year
		}
	}
	return 0
}

// boilerplateLine reports whether a line looks like a header or footer
// rather than a title.
func boilerplateLine(line string) bool {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "journal"):
		return true
	case strings.Contains(lower, "volume") && strings.Contains(lower, "issue"):
		return true
	case strings.Contains(lower, "copyright"):
		return true
	case strings.Contains(lower, "downloaded from"):
		return true
	case strings.Contains(lower, "article") && strings.Contains(lower, "published"):
		return true
	}
	return false
}
