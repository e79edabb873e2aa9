package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/matsen/scholarsite/internal/config"
	"github.com/matsen/scholarsite/internal/site"
	"github.com/matsen/scholarsite/internal/watch"
	"github.com/spf13/cobra"
)

var (
	buildOutput string
	buildWatch  bool
)

func init() {
	buildCmd.Flags().StringVar(&buildOutput, "output", "", "Output directory (default from config)")
	buildCmd.Flags().BoolVar(&buildWatch, "watch", false, "Rebuild when publications.json changes")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the static site",
	Long: `Render the static site into the output directory.

Produces index.html (selected publications), publications.html (the
full list), and a copy of assets/publications.json. With --watch, the
build reruns whenever the publications file changes.

Examples:
  scholarsite build
  scholarsite build --watch`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	root := mustFindSite()
	cfg := mustLoadConfig(root)
	logger := newLogger()

	outDir := buildOutput
	if outDir == "" {
		outDir = cfg.OutputDir
	}
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(root, outDir)
	}

	pubsPath := config.PublicationsPath(root)
	builder := site.NewBuilder(cfg.SiteTitle, logger)

	rebuild := func() error {
		return builder.Build(pubsPath, outDir)
	}

	if err := rebuild(); err != nil {
		exitWithError(ExitError, "building site: %v", err)
	}

	if !buildWatch {
		if humanOutput {
			outputHuman("Built site in %s\n", outDir)
		} else {
			outputJSON(StatusResponse{Status: "built", Path: outDir})
		}
		return nil
	}

	watcher, err := watch.New(pubsPath, rebuild, logger)
	if err != nil {
		exitWithError(ExitError, "starting watcher: %v", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(); err != nil {
		exitWithError(ExitError, "starting watcher: %v", err)
	}

	logger.Info("watching for changes", "file", pubsPath, "output", outDir)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	return nil
}
