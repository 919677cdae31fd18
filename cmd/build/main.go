package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-pagegen/cmd/internal/bootstrap"
	sitecmd "github.com/goliatone/go-pagegen/internal/commands/site"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runBuild(os.Args[1:]); err != nil {
		log.Fatalf("pagegen build: %v", err)
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("pagegen-build", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering content files")
	layoutDir := fs.String("layout-dir", "layouts", "Path to the layout template directory")
	outputDir := fs.String("output-dir", "dist", "Directory the generated site is written to")
	siteName := fs.String("site-name", "", "Site name exposed to templates")
	baseURL := fs.String("base-url", "", "Absolute base URL used for sitemap and canonical links")
	themeDir := fs.String("theme-dir", "", "Optional theme manifest directory")
	themeVariant := fs.String("theme-variant", "", "Theme variant selected when a theme is configured")
	permalinks := fs.String("permalinks", "", "Comma separated permalink filter; builds only matching pages")
	drafts := fs.Bool("drafts", false, "Include draft documents in the build")
	incremental := fs.Bool("incremental", false, "Skip pages whose content has not changed since the last build")
	clean := fs.Bool("clean", false, "Clear the output directory before building")
	dryRun := fs.Bool("dry-run", false, "Render pages without writing artifacts")
	workers := fs.Int("workers", 0, "Render worker count (defaults to the CPU count)")
	logLevel := fs.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	logFormat := fs.String("log-format", "console", "Log format: console, json, pretty")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:    *contentDir,
		Pattern:       *pattern,
		LayoutDir:     *layoutDir,
		OutputDir:     *outputDir,
		SiteName:      *siteName,
		BaseURL:       *baseURL,
		ThemeDir:      *themeDir,
		ThemeVariant:  *themeVariant,
		IncludeDrafts: *drafts,
		Incremental:   *incremental,
		CleanBuild:    *clean,
		Workers:       *workers,
		LogLevel:      *logLevel,
		LogFormat:     *logFormat,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	cmd := sitecmd.BuildSiteCommand{
		Permalinks: bootstrap.SplitPermalinks(*permalinks),
		DryRun:     *dryRun,
		ResultCallback: func(env sitecmd.ResultEnvelope) {
			if env.Result == nil {
				return
			}
			fmt.Printf("built %d pages (%d skipped, %d failed) in %s\n",
				env.Result.PagesBuilt,
				env.Result.PagesSkipped,
				env.Result.PagesFailed,
				env.Result.Duration,
			)
		},
	}

	if err := module.Commands().Build.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute build command: %w", err)
	}
	return nil
}
