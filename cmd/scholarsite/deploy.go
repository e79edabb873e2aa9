package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matsen/scholarsite/internal/config"
	"github.com/matsen/scholarsite/internal/deploy"
	"github.com/spf13/cobra"
)

var deployTarget string

func init() {
	deployCmd.Flags().StringVar(&deployTarget, "target", "", "Deploy destination (default from config)")
	rootCmd.AddCommand(deployCmd)
}

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Publish the built site",
	Long: `Publish the built site to a deploy target.

Targets:
  /var/www/site              copy to a local directory
  s3://bucket/prefix         upload to S3-compatible storage
  ssh://user@host/var/www    upload over SSH (agent auth)

The target comes from --target, then the site config, then the global
config. Run 'scholarsite build' first.

Examples:
  scholarsite deploy
  scholarsite deploy --target s3://mysite-bucket`,
	RunE: runDeploy,
}

func runDeploy(cmd *cobra.Command, args []string) error {
	root := mustFindSite()
	cfg := mustLoadConfig(root)
	logger := newLogger()

	target := deployTarget
	if target == "" {
		target = cfg.DeployTarget
	}
	if target == "" {
		target = config.GetDeployTarget()
	}
	if target == "" {
		exitWithError(ExitConfigError, "no deploy target configured. Set one with 'scholarsite config set deploy_target <target>'")
	}

	outDir := cfg.OutputDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(root, outDir)
	}
	if _, err := os.Stat(filepath.Join(outDir, "index.html")); err != nil {
		exitWithError(ExitError, "no built site in %s. Run 'scholarsite build' first", outDir)
	}

	ctx := context.Background()
	t, err := deploy.Open(ctx, target)
	if err != nil {
		exitWithError(ExitError, "opening deploy target: %v", err)
	}
	defer t.Close()

	count, err := deploy.Sync(ctx, t, outDir, logger)
	if err != nil {
		exitWithError(ExitError, "deploying: %v", err)
	}

	if humanOutput {
		outputHuman("Deployed %d files to %s\n", count, t.Description())
	} else {
		outputJSON(StatusResponse{Status: "deployed", Path: t.Description(), Count: count})
	}
	return nil
}
