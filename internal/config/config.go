// Package config handles site and global configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents site configuration stored in .scholarsite/config.json.
type Config struct {
	SiteTitle     string `json:"site_title"`               // Heading shown on every page
	AuthorID      string `json:"author_id"`                // Scholar author identifier
	SelectedCount int    `json:"selected_count,omitempty"` // Publications flagged as selected on update
	OutputDir     string `json:"output_dir,omitempty"`     // Build output, relative to site root
	DeployTarget  string `json:"deploy_target,omitempty"`  // Default deploy destination
}

const (
	SiteDir          = ".scholarsite"
	ConfigFile       = "config.json"
	CacheDir         = "cache"
	DBFile           = "pubs.db"
	AssetsDir        = "assets"
	PublicationsFile = "publications.json"

	DefaultOutputDir     = "public"
	DefaultSelectedCount = 3
)

// SitePath returns the path to the .scholarsite directory from a root path.
func SitePath(root string) string {
	return filepath.Join(root, SiteDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, SiteDir, ConfigFile)
}

// PublicationsPath returns the path to assets/publications.json from a root path.
func PublicationsPath(root string) string {
	return filepath.Join(root, AssetsDir, PublicationsFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, SiteDir, CacheDir)
}

// DBPath returns the path to pubs.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, SiteDir, CacheDir, DBFile)
}

// IsSite checks if the given path contains a scholarsite site.
func IsSite(root string) bool {
	info, err := os.Stat(SitePath(root))
	return err == nil && info.IsDir()
}

// FindSite walks up from the given path to find a scholarsite site.
// Returns the site root path or an error if not found.
func FindSite(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsSite(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a scholarsite site (no .scholarsite directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the site at the given root. Defaults are
// applied for unset optional fields.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes configuration to the site at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// applyDefaults fills unset optional fields.
func (c *Config) applyDefaults() {
	if c.SelectedCount <= 0 {
		c.SelectedCount = DefaultSelectedCount
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
