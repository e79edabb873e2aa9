package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/matsen/scholarsite/internal/publication"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite cache rebuilt from the publications JSON document.
type DB struct {
	db *sql.DB
}

const selectPubFields = `title, authors, pub_year, journal, url, abstract, selected`

// OpenDB opens or creates the cache database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS pubs (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			authors TEXT,
			pub_year INTEGER NOT NULL,
			journal TEXT,
			url TEXT,
			abstract TEXT,
			selected INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_pubs_year ON pubs(pub_year);

		-- Full-text search virtual table (standalone, not external content)
		CREATE VIRTUAL TABLE IF NOT EXISTS pubs_fts USING fts5(
			pub_id,
			title,
			authors,
			journal,
			abstract
		);
	`

	_, err := db.Exec(schema)
	return err
}

// Rebuild clears the cache and repopulates it from the given records.
// Returns the number of records inserted.
func (d *DB) Rebuild(pubs []publication.Publication) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM pubs"); err != nil {
		return 0, fmt.Errorf("clearing pubs table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM pubs_fts"); err != nil {
		return 0, fmt.Errorf("clearing pubs_fts table: %w", err)
	}

	pubStmt, err := tx.Prepare(`
		INSERT INTO pubs (id, title, authors, pub_year, journal, url, abstract, selected)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing pubs insert: %w", err)
	}
	defer pubStmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO pubs_fts (pub_id, title, authors, journal, abstract)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for i, p := range pubs {
		id := i + 1
		selected := 0
		if p.Selected {
			selected = 1
		}

		_, err = pubStmt.Exec(id, p.Title, p.Authors.String(), p.Year,
			nullableStringValue(p.Journal), nullableStringValue(p.URL),
			nullableStringValue(p.Abstract), selected)
		if err != nil {
			return 0, fmt.Errorf("inserting publication %d: %w", i, err)
		}

		_, err = ftsStmt.Exec(strconv.Itoa(id), p.Title, p.Authors.String(), p.Journal, p.Abstract)
		if err != nil {
			return 0, fmt.Errorf("inserting fts row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}

	return len(pubs), nil
}

// Search performs a full-text search over title, authors, journal and
// abstract, returning matches in year-descending order.
func (d *DB) Search(query string, limit int) ([]publication.Publication, error) {
	ftsQuery := prepareFTSQuery(query)

	rows, err := d.db.Query(`
		SELECT `+selectPubFields+`
		FROM pubs
		WHERE id IN (SELECT pub_id FROM pubs_fts WHERE pubs_fts MATCH ?)
		ORDER BY pub_year DESC
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanPublications(rows)
}

// ListAll returns cached records in year-descending order, optionally
// limited and optionally restricted to selected records.
func (d *DB) ListAll(limit int, onlySelected bool) ([]publication.Publication, error) {
	query := `SELECT ` + selectPubFields + ` FROM pubs`
	var args []interface{}

	if onlySelected {
		query += " WHERE selected = 1"
	}
	query += " ORDER BY pub_year DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing publications: %w", err)
	}
	defer rows.Close()

	return scanPublications(rows)
}

// Count returns the total number of cached records.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM pubs").Scan(&count)
	return count, err
}

func scanPublications(rows *sql.Rows) ([]publication.Publication, error) {
	var pubs []publication.Publication
	for rows.Next() {
		var p publication.Publication
		var authors, journal, url, abstract sql.NullString
		var selected int

		if err := rows.Scan(&p.Title, &authors, &p.Year, &journal, &url, &abstract, &selected); err != nil {
			return nil, err
		}

		if authors.Valid && authors.String != "" {
			p.Authors = publication.AuthorList(strings.Split(authors.String, ", "))
		}
		p.Journal = journal.String
		p.URL = url.String
		p.Abstract = abstract.String
		p.Selected = selected != 0

		pubs = append(pubs, p)
	}
	return pubs, rows.Err()
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// If query contains special chars, quote it
	if strings.ContainsAny(query, "\"*+-:(){}[]^~") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
