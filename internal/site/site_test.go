package site

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestBuild_WritesPagesAndAsset(t *testing.T) {
	tmpDir := t.TempDir()
	pubsPath := filepath.Join(tmpDir, "publications.json")
	outDir := filepath.Join(tmpDir, "out")

	writeFile(t, pubsPath, `[
		{"title":"Old","year":2020},
		{"title":"New","year":2022,"selected":true},
		{"title":"Mid","year":2021}
	]`)

	b := NewBuilder("Test Site", slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := b.Build(pubsPath, outDir); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	index, err := os.ReadFile(filepath.Join(outDir, IndexFile))
	if err != nil {
		t.Fatalf("reading index.html: %v", err)
	}
	full, err := os.ReadFile(filepath.Join(outDir, PublicationsFile))
	if err != nil {
		t.Fatalf("reading publications.html: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, AssetsDir, PublicationsJSON)); err != nil {
		t.Fatalf("publications asset not written: %v", err)
	}

	// Highlights view shows only the selected record
	if !strings.Contains(string(index), "New") || strings.Contains(string(index), "Old") {
		t.Error("index.html does not show exactly the selected records")
	}

	// Full view shows all, year descending
	iNew := strings.Index(string(full), "New")
	iMid := strings.Index(string(full), "Mid")
	iOld := strings.Index(string(full), "Old")
	if iNew == -1 || iMid == -1 || iOld == -1 {
		t.Fatal("publications.html missing records")
	}
	if !(iNew < iMid && iMid < iOld) {
		t.Error("publications.html records not in year-descending order")
	}
}

func TestBuild_NonArrayPayloadRendersNothing(t *testing.T) {
	tmpDir := t.TempDir()
	pubsPath := filepath.Join(tmpDir, "publications.json")
	outDir := filepath.Join(tmpDir, "out")

	writeFile(t, pubsPath, `{"title":"not a list"}`)

	var logBuf bytes.Buffer
	b := NewBuilder("Test Site", slog.New(slog.NewTextHandler(&logBuf, nil)))
	if err := b.Build(pubsPath, outDir); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	index, err := os.ReadFile(filepath.Join(outDir, IndexFile))
	if err != nil {
		t.Fatalf("reading index.html: %v", err)
	}
	if strings.Contains(string(index), "pub-card") {
		t.Error("non-array payload produced cards")
	}
	if logBuf.Len() == 0 {
		t.Error("non-array payload produced no diagnostic log entry")
	}
}

func TestBuild_MalformedJSONLogsAndRendersNothing(t *testing.T) {
	tmpDir := t.TempDir()
	pubsPath := filepath.Join(tmpDir, "publications.json")
	outDir := filepath.Join(tmpDir, "out")

	writeFile(t, pubsPath, `{{{not json`)

	var logBuf bytes.Buffer
	b := NewBuilder("Test Site", slog.New(slog.NewTextHandler(&logBuf, nil)))
	if err := b.Build(pubsPath, outDir); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if !strings.Contains(logBuf.String(), "loading publications failed") {
		t.Errorf("diagnostic log missing load failure, got %q", logBuf.String())
	}

	index, err := os.ReadFile(filepath.Join(outDir, IndexFile))
	if err != nil {
		t.Fatalf("reading index.html: %v", err)
	}
	if strings.Contains(string(index), "pub-card") {
		t.Error("malformed payload produced cards")
	}
}

func TestBuild_MissingFileStillRendersPages(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "out")

	b := NewBuilder("Test Site", slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := b.Build(filepath.Join(tmpDir, "missing.json"), outDir); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, IndexFile)); err != nil {
		t.Errorf("index.html not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, AssetsDir, PublicationsJSON)); err == nil {
		t.Error("publications asset written despite missing source")
	}
}
