package storage

import (
	"path/filepath"
	"testing"

	"github.com/matsen/scholarsite/internal/publication"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "pubs.db"))
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func samplePubs() []publication.Publication {
	return []publication.Publication{
		{Title: "Phylogenetic Inference at Scale", Authors: publication.AuthorList{"A Smith", "B Jones"}, Year: 2022, Journal: "Systematic Biology", Abstract: "We infer large trees.", Selected: true},
		{Title: "Adaptive Immune Repertoires", Authors: publication.AuthorList{"C Brown"}, Year: 2020, Journal: "PNAS", URL: "https://example.org/imm"},
		{Title: "Neural Sequence Models", Authors: publication.AuthorList{"D White"}, Year: 2023, Abstract: "Sequence modeling with transformers."},
	}
}

func TestRebuildAndCount(t *testing.T) {
	db := testDB(t)

	n, err := db.Rebuild(samplePubs())
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Rebuild() = %d, want 3", n)
	}

	count, err := db.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}
}

func TestRebuild_ReplacesExisting(t *testing.T) {
	db := testDB(t)

	if _, err := db.Rebuild(samplePubs()); err != nil {
		t.Fatalf("first Rebuild() error = %v", err)
	}
	if _, err := db.Rebuild(samplePubs()[:1]); err != nil {
		t.Fatalf("second Rebuild() error = %v", err)
	}

	count, err := db.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() after rebuild = %d, want 1", count)
	}
}

func TestListAll_YearDescending(t *testing.T) {
	db := testDB(t)
	if _, err := db.Rebuild(samplePubs()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	got, err := db.ListAll(0, false)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListAll() returned %d records, want 3", len(got))
	}

	wantYears := []int{2023, 2022, 2020}
	for i, want := range wantYears {
		if got[i].Year != want {
			t.Errorf("got[%d].Year = %d, want %d", i, got[i].Year, want)
		}
	}
}

func TestListAll_OnlySelected(t *testing.T) {
	db := testDB(t)
	if _, err := db.Rebuild(samplePubs()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	got, err := db.ListAll(0, true)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListAll(selected) returned %d records, want 1", len(got))
	}
	if got[0].Title != "Phylogenetic Inference at Scale" {
		t.Errorf("got[0].Title = %q", got[0].Title)
	}
}

func TestListAll_Limit(t *testing.T) {
	db := testDB(t)
	if _, err := db.Rebuild(samplePubs()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	got, err := db.ListAll(2, false)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ListAll(limit=2) returned %d records, want 2", len(got))
	}
}

func TestSearch(t *testing.T) {
	db := testDB(t)
	if _, err := db.Rebuild(samplePubs()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	tests := []struct {
		name      string
		query     string
		wantCount int
		wantFirst string
	}{
		{"title term", "Phylogenetic", 1, "Phylogenetic Inference at Scale"},
		{"abstract term", "transformers", 1, "Neural Sequence Models"},
		{"author term", "Brown", 1, "Adaptive Immune Repertoires"},
		{"journal term", "PNAS", 1, "Adaptive Immune Repertoires"},
		{"no match", "nonexistentterm", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.Search(tt.query, 10)
			if err != nil {
				t.Fatalf("Search(%q) error = %v", tt.query, err)
			}
			if len(got) != tt.wantCount {
				t.Fatalf("Search(%q) returned %d records, want %d", tt.query, len(got), tt.wantCount)
			}
			if tt.wantCount > 0 && got[0].Title != tt.wantFirst {
				t.Errorf("Search(%q)[0].Title = %q, want %q", tt.query, got[0].Title, tt.wantFirst)
			}
		})
	}
}

func TestSearch_RoundTripsFields(t *testing.T) {
	db := testDB(t)
	if _, err := db.Rebuild(samplePubs()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	got, err := db.Search("Immune", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Search() returned %d records, want 1", len(got))
	}

	p := got[0]
	if p.Authors.String() != "C Brown" {
		t.Errorf("Authors = %q, want C Brown", p.Authors.String())
	}
	if p.Journal != "PNAS" {
		t.Errorf("Journal = %q, want PNAS", p.Journal)
	}
	if p.URL != "https://example.org/imm" {
		t.Errorf("URL = %q", p.URL)
	}
	if p.Selected {
		t.Error("Selected = true, want false")
	}
}
