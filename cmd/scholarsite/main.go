// Package main provides the scholarsite CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/matsen/scholarsite/internal/config"
	"github.com/matsen/scholarsite/internal/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// verbose enables debug logging
var verbose bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scholarsite",
	Short: "Personal academic website generator",
	Long: `scholarsite builds and publishes a personal academic website.

Publications are pulled from Semantic Scholar into a plain JSON file,
kept queryable through an ephemeral SQLite cache, and rendered to a
small static site with selected-publications highlighting and a
light/dark theme toggle.

Commands output JSON by default for scripting. Use --human for
human-readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.Version = Version
}

// newLogger builds the CLI logger. Diagnostics go to stderr so JSON
// output on stdout stays parseable.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// getStartingDirectory returns the directory to start searching for a site.
func getStartingDirectory() (string, int) {
	if root := os.Getenv("SCHOLARSITE_ROOT"); root != "" {
		return root, 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	return cwd, 0
}

// mustFindSite finds and validates the site, exits on error.
// Returns the site root path.
func mustFindSite() string {
	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	root, err := config.FindSite(start)
	if err != nil {
		exitWithError(ExitConfigError, "not in a scholarsite site. Run 'scholarsite init' first")
	}
	return root
}

// mustLoadConfig loads site configuration, exits on error.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustOpenDatabase opens the SQLite cache, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(root string) *storage.DB {
	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening cache database: %v", err)
	}
	return db
}
