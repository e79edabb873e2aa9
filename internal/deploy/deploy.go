// Package deploy publishes a built site to a deployment target.
//
// Targets are addressed by URL-style strings:
//
//	/var/www/site              local directory
//	s3://bucket/prefix         S3-compatible object storage
//	ssh://user@host/var/www    remote directory over SSH
package deploy

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Target receives site files during a deploy.
type Target interface {
	// Put writes one file under the target root. rel uses forward slashes.
	Put(ctx context.Context, rel string, data []byte) error
	// Description identifies the target for log output.
	Description() string
	// Close releases any resources held by the target.
	Close() error
}

// Open constructs a Target for the given destination string.
func Open(ctx context.Context, target string) (Target, error) {
	if target == "" {
		return nil, fmt.Errorf("deploy target not configured")
	}

	switch {
	case strings.HasPrefix(target, "s3://"):
		u, err := url.Parse(target)
		if err != nil {
			return nil, fmt.Errorf("parsing deploy target: %w", err)
		}
		return NewS3Target(ctx, u.Host, strings.TrimPrefix(u.Path, "/"))
	case strings.HasPrefix(target, "ssh://"):
		u, err := url.Parse(target)
		if err != nil {
			return nil, fmt.Errorf("parsing deploy target: %w", err)
		}
		return NewSSHTarget(u)
	default:
		return NewFilesystemTarget(target)
	}
}

// Sync walks dir and writes every regular file to the target. It returns
// the number of files written.
func Sync(ctx context.Context, t Target, dir string, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.Default()
	}

	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", rel, err)
		}

		if err := t.Put(ctx, rel, data); err != nil {
			return fmt.Errorf("uploading %s: %w", rel, err)
		}

		logger.Debug("uploaded", "file", rel, "bytes", len(data))
		count++
		return nil
	})
	if err != nil {
		return count, err
	}

	logger.Info("deploy complete", "target", t.Description(), "files", count)
	return count, nil
}

// contentType guesses a MIME type from the file extension.
func contentType(rel string) string {
	ct := mime.TypeByExtension(filepath.Ext(rel))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return ct
}
