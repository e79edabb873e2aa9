// Package storage handles persistence of publication data: the JSON
// document consumed by the site and an ephemeral SQLite cache for queries.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/scholarsite/internal/publication"
)

// ErrNotArray indicates the publications document is valid JSON but not an
// array. Renderers treat this as "nothing to render" rather than a fatal
// condition.
var ErrNotArray = errors.New("publications document is not an array")

// Parse decodes a publications JSON document. The payload must be a JSON
// array of publication records; any other JSON shape returns ErrNotArray.
func Parse(data []byte) ([]publication.Publication, error) {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parsing publications: %w", err)
	}
	if _, ok := probe.([]any); !ok {
		return nil, ErrNotArray
	}

	var pubs []publication.Publication
	if err := json.Unmarshal(data, &pubs); err != nil {
		return nil, fmt.Errorf("parsing publications: %w", err)
	}
	return pubs, nil
}

// ReadPublications reads publication records from a JSON file.
// A missing file returns an empty slice, not an error.
func ReadPublications(path string) ([]publication.Publication, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading publications file: %w", err)
	}
	return Parse(data)
}

// WritePublications writes publication records as indented JSON, creating
// parent directories as needed.
func WritePublications(path string, pubs []publication.Publication) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating publications directory: %w", err)
	}

	data, err := json.MarshalIndent(pubs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding publications: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing publications file: %w", err)
	}

	return nil
}
