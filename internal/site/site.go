package site

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/matsen/scholarsite/internal/publication"
	"github.com/matsen/scholarsite/internal/storage"
	"github.com/matsen/scholarsite/internal/theme"
)

// Output file names within the build directory.
const (
	IndexFile        = "index.html"
	PublicationsFile = "publications.html"
	AssetsDir        = "assets"
	PublicationsJSON = "publications.json"
)

// Builder renders the full static site into an output directory.
type Builder struct {
	SiteTitle string
	Logger    *slog.Logger
}

// NewBuilder creates a Builder for the given site title.
func NewBuilder(siteTitle string, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{SiteTitle: siteTitle, Logger: logger}
}

// Load reads the publication records backing the site. A missing or
// malformed document is logged and yields zero records; the pages are
// still rendered with empty containers.
func (b *Builder) Load(pubsPath string) []publication.Publication {
	pubs, err := storage.ReadPublications(pubsPath)
	if err != nil {
		if errors.Is(err, storage.ErrNotArray) {
			b.Logger.Warn("publications document is not an array, rendering nothing", "path", pubsPath)
		} else {
			b.Logger.Error("loading publications failed", "path", pubsPath, "error", err)
		}
		return nil
	}
	return pubs
}

// Build renders index.html, publications.html and the publications asset
// into outDir. The static pages carry the default (dark) appearance; the
// embedded script applies the visitor's stored preference on load.
func (b *Builder) Build(pubsPath, outDir string) error {
	pubs := b.Load(pubsPath)

	if err := os.MkdirAll(filepath.Join(outDir, AssetsDir), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	pages := []struct {
		file string
		page Page
	}{
		{IndexFile, HomePage(b.SiteTitle, BuildCards(pubs, true), theme.Dark)},
		{PublicationsFile, PublicationsPage(b.SiteTitle, BuildCards(pubs, false), theme.Dark)},
	}

	for _, p := range pages {
		html, err := Render(p.page)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", p.file, err)
		}
		if err := os.WriteFile(filepath.Join(outDir, p.file), []byte(html), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", p.file, err)
		}
	}

	if len(pubs) > 0 {
		dst := filepath.Join(outDir, AssetsDir, PublicationsJSON)
		if err := storage.WritePublications(dst, pubs); err != nil {
			return fmt.Errorf("copying publications asset: %w", err)
		}
	}

	return nil
}
