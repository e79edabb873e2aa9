package deploy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FilesystemTarget copies files into a local directory.
type FilesystemTarget struct {
	root string
}

// NewFilesystemTarget creates a target rooted at dir, creating it if needed.
func NewFilesystemTarget(dir string) (*FilesystemTarget, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving deploy directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("creating deploy directory: %w", err)
	}
	return &FilesystemTarget{root: abs}, nil
}

func (t *FilesystemTarget) Put(_ context.Context, rel string, data []byte) error {
	dest := filepath.Join(t.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0644)
}

func (t *FilesystemTarget) Description() string { return t.root }

func (t *FilesystemTarget) Close() error { return nil }
