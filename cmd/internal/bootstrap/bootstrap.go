package bootstrap

import (
	"fmt"
	"strings"

	pagegen "github.com/goliatone/go-pagegen"
)

// Options captures the flag-level configuration shared by the CLI entrypoints.
type Options struct {
	ContentDir    string
	Pattern       string
	LayoutDir     string
	OutputDir     string
	SiteName      string
	BaseURL       string
	ThemeDir      string
	ThemeVariant  string
	IncludeDrafts bool
	Incremental   bool
	CleanBuild    bool
	Workers       int
	LogLevel      string
	LogFormat     string
}

// BuildModule constructs a pagegen module from CLI options, falling back to
// the package defaults for anything left unset.
func BuildModule(opts Options) (*pagegen.Module, error) {
	cfg := pagegen.DefaultConfig()

	if dir := strings.TrimSpace(opts.ContentDir); dir != "" {
		cfg.Content.Dir = dir
	}
	if pattern := strings.TrimSpace(opts.Pattern); pattern != "" {
		cfg.Content.Pattern = pattern
	}
	if dir := strings.TrimSpace(opts.LayoutDir); dir != "" {
		cfg.Templates.Dir = dir
	}
	if dir := strings.TrimSpace(opts.OutputDir); dir != "" {
		cfg.Output.Dir = dir
	}
	if name := strings.TrimSpace(opts.SiteName); name != "" {
		cfg.Site.Name = name
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.Site.BaseURL = base
	}
	if dir := strings.TrimSpace(opts.ThemeDir); dir != "" {
		cfg.Theme.Path = dir
		cfg.Theme.Variant = strings.TrimSpace(opts.ThemeVariant)
	}
	cfg.Content.IncludeDrafts = opts.IncludeDrafts
	cfg.Generator.Incremental = opts.Incremental
	cfg.Output.CleanBuild = opts.CleanBuild
	if opts.Workers > 0 {
		cfg.Generator.Workers = opts.Workers
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := strings.TrimSpace(opts.LogFormat); format != "" {
		cfg.Logging.Format = format
	}

	module, err := pagegen.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialise module: %w", err)
	}
	return module, nil
}

// SplitPermalinks parses a comma separated permalink filter.
func SplitPermalinks(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if value := strings.TrimSpace(part); value != "" {
			out = append(out, value)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
