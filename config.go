package pagegen

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-pagegen/pkg/interfaces"
)

var (
	ErrContentDirRequired      = errors.New("pagegen: content directory is required")
	ErrOutputDirRequired       = errors.New("pagegen: output directory is required")
	ErrTemplatesSourceRequired = errors.New("pagegen: template directory or inline layouts are required")
	ErrBaseURLInvalid          = errors.New("pagegen: site base URL is invalid")
	ErrLoggingFormatInvalid    = errors.New("pagegen: logging format is invalid")
	ErrLoggingLevelInvalid     = errors.New("pagegen: logging level is invalid")
)

// Config is the top level configuration consumed by New.
type Config struct {
	Content   ContentConfig
	Site      SiteConfig
	Output    OutputConfig
	Templates TemplatesConfig
	Theme     ThemeConfig
	Assets    AssetsConfig
	Generator GeneratorConfig
	Logging   LoggingConfig
	// MetadataSchemas maps a layout name to the JSON schema its pages'
	// custom front matter must satisfy.
	MetadataSchemas map[string]map[string]any
}

// ContentConfig controls content discovery and markdown parsing.
type ContentConfig struct {
	Dir           string
	Pattern       string
	Recursive     bool
	IncludeDrafts bool
	Parser        interfaces.ParseOptions
}

// SiteConfig carries the site-wide values exposed to templates and artifacts.
type SiteConfig struct {
	Name        string
	BaseURL     string
	Description string
}

// OutputConfig selects the build target directory.
type OutputConfig struct {
	Dir        string
	CleanBuild bool
}

// TemplatesConfig controls layout discovery.
type TemplatesConfig struct {
	Dir       string
	Extension string
	// Layouts registers inline layout sources keyed by name, used alongside
	// or instead of the template directory.
	Layouts map[string]string
	Globals map[string]any
}

// ThemeConfig selects an optional go-theme manifest applied during rendering.
type ThemeConfig struct {
	Path              string
	Variant           string
	CSSVariablePrefix string
}

// AssetsConfig points the build at a static asset directory copied into the
// output. Output optionally nests the copies under a path prefix.
type AssetsConfig struct {
	Dir    string
	Output string
}

// GeneratorConfig captures build behaviour toggles.
type GeneratorConfig struct {
	Incremental     bool
	GenerateSitemap bool
	GenerateRobots  bool
	Workers         int
}

// LoggingConfig captures options for the go-logger provider.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns a configuration with conventional defaults: markdown
// content under content/, layouts under layouts/, output under dist/.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Dir:       "content",
			Pattern:   "*.md",
			Recursive: true,
			Parser: interfaces.ParseOptions{
				Sanitize: true,
			},
		},
		Site: SiteConfig{
			Name:    "Site",
			BaseURL: "http://localhost",
		},
		Output: OutputConfig{
			Dir: "dist",
		},
		Templates: TemplatesConfig{
			Dir:       "layouts",
			Extension: ".html",
		},
		Generator: GeneratorConfig{
			GenerateSitemap: true,
			GenerateRobots:  true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		return ErrOutputDirRequired
	}
	if strings.TrimSpace(c.Templates.Dir) == "" && len(c.Templates.Layouts) == 0 {
		return ErrTemplatesSourceRequired
	}
	if base := strings.TrimSpace(c.Site.BaseURL); base != "" {
		parsed, err := url.Parse(base)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%w: %q", ErrBaseURLInvalid, base)
		}
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "json", "console", "pretty":
	default:
		return fmt.Errorf("%w: %q", ErrLoggingFormatInvalid, c.Logging.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("%w: %q", ErrLoggingLevelInvalid, c.Logging.Level)
	}
	return nil
}
