package scholar

// Author is one author entry on a scholar paper.
type Author struct {
	Name string `json:"name"`
}

// Paper is one publication entry returned by the scholar API.
type Paper struct {
	PaperID  string   `json:"paperId"`
	Title    string   `json:"title"`
	Abstract string   `json:"abstract"`
	Venue    string   `json:"venue"`
	Year     int      `json:"year"`
	URL      string   `json:"url"`
	Authors  []Author `json:"authors"`
}

// papersResponse is one page of an author's papers.
type papersResponse struct {
	Offset int     `json:"offset"`
	Next   int     `json:"next"`
	Data   []Paper `json:"data"`
}
