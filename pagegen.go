package pagegen

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/uptrace/bun"

	sitecmd "github.com/goliatone/go-pagegen/internal/commands/site"
	"github.com/goliatone/go-pagegen/internal/document"
	"github.com/goliatone/go-pagegen/internal/generator"
	"github.com/goliatone/go-pagegen/internal/logging"
	"github.com/goliatone/go-pagegen/internal/logging/gologger"
	"github.com/goliatone/go-pagegen/internal/pages"
	"github.com/goliatone/go-pagegen/internal/templates"
	"github.com/goliatone/go-pagegen/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
)

// DocumentService exports the document service contract for consumers of the
// pagegen package.
type DocumentService = interfaces.DocumentService

// PageService exports the page registry contract.
type PageService = pages.Service

// GeneratorService exports the static site generator contract.
type GeneratorService = generator.Service

// BuildOptions exports the generator build options.
type BuildOptions = generator.BuildOptions

// BuildResult exports the generator build result.
type BuildResult = generator.BuildResult

// Module is the top level runtime facade: it wires content loading, the page
// registry, layout rendering, and the static site generator behind one
// constructor.
type Module struct {
	cfg       Config
	provider  interfaces.LoggerProvider
	documents interfaces.DocumentService
	pages     pages.Service
	layouts   *templates.LayoutRenderer
	writer    generator.ArtifactWriter
	generator generator.Service
	commands  *sitecmd.HandlerSet
}

// Option overrides a dependency during construction.
type Option func(*moduleOptions)

type moduleOptions struct {
	provider interfaces.LoggerProvider
	repo     pages.PageRepository
	writer   generator.ArtifactWriter
}

// WithLoggerProvider replaces the default go-logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) {
		o.provider = provider
	}
}

// WithPageRepository replaces the default in-memory page repository.
func WithPageRepository(repo pages.PageRepository) Option {
	return func(o *moduleOptions) {
		o.repo = repo
	}
}

// WithDatabase persists the page registry through the provided bun database.
func WithDatabase(db *bun.DB) Option {
	return func(o *moduleOptions) {
		if db != nil {
			o.repo = pages.NewBunPageRepository(db)
		}
	}
}

// WithCachedDatabase persists the page registry through bun with a read cache
// in front of it.
func WithCachedDatabase(db *bun.DB) Option {
	return func(o *moduleOptions) {
		if db == nil {
			return
		}
		cacheService, err := repocache.NewCacheService(repocache.DefaultConfig())
		if err != nil {
			o.repo = pages.NewBunPageRepository(db)
			return
		}
		o.repo = pages.NewBunPageRepositoryWithCache(db, cacheService, repocache.NewDefaultKeySerializer())
	}
}

// WithArtifactWriter replaces the filesystem writer, primarily for tests.
func WithArtifactWriter(writer generator.ArtifactWriter) Option {
	return func(o *moduleOptions) {
		o.writer = writer
	}
}

// EnsureSchema creates the page registry tables used by WithDatabase and
// WithCachedDatabase when they do not exist yet.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	return pages.EnsureSchema(ctx, db)
}

// New constructs a module from the provided configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var overrides moduleOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&overrides)
		}
	}

	provider := overrides.provider
	if provider == nil {
		built, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		provider = built
	}

	documents, err := document.NewService(document.Config{
		BasePath:  cfg.Content.Dir,
		Pattern:   cfg.Content.Pattern,
		Recursive: cfg.Content.Recursive,
		Parser:    cfg.Content.Parser,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("pagegen: document service: %w", err)
	}

	repo := overrides.repo
	if repo == nil {
		repo = pages.NewMemoryPageRepository()
	}
	registry, err := pages.NewService(repo, pages.WithLogger(logging.PagesLogger(provider)))
	if err != nil {
		return nil, fmt.Errorf("pagegen: page registry: %w", err)
	}

	layouts, err := buildLayoutRenderer(cfg.Templates, provider)
	if err != nil {
		return nil, err
	}

	writer := overrides.writer
	if writer == nil {
		osWriter, err := generator.NewOSWriter(cfg.Output.Dir)
		if err != nil {
			return nil, fmt.Errorf("pagegen: output writer: %w", err)
		}
		writer = osWriter
	}

	site, err := generator.NewService(generator.Config{
		ContentDir:      ".",
		Pattern:         cfg.Content.Pattern,
		Recursive:       cfg.Content.Recursive,
		Site:            generator.SiteConfig(cfg.Site),
		CleanBuild:      cfg.Output.CleanBuild,
		Incremental:     cfg.Generator.Incremental,
		IncludeDrafts:   cfg.Content.IncludeDrafts,
		GenerateSitemap: cfg.Generator.GenerateSitemap,
		GenerateRobots:  cfg.Generator.GenerateRobots,
		Workers:         cfg.Generator.Workers,
		Parser:          cfg.Content.Parser,
		Theme: generator.ThemeConfig{
			Path:              cfg.Theme.Path,
			Variant:           cfg.Theme.Variant,
			CSSVariablePrefix: cfg.Theme.CSSVariablePrefix,
		},
		Assets: generator.AssetConfig{
			Dir:    cfg.Assets.Dir,
			Output: cfg.Assets.Output,
		},
		MetadataSchemas: cfg.MetadataSchemas,
	}, generator.Dependencies{
		Documents: documents,
		Pages:     registry,
		Layouts:   layouts,
		Writer:    writer,
		Logger:    logging.GeneratorLogger(provider),
	})
	if err != nil {
		return nil, fmt.Errorf("pagegen: generator: %w", err)
	}

	handlers, err := sitecmd.RegisterSiteCommands(nil, site, provider)
	if err != nil {
		return nil, fmt.Errorf("pagegen: commands: %w", err)
	}

	return &Module{
		cfg:       cfg,
		provider:  provider,
		documents: documents,
		pages:     registry,
		layouts:   layouts,
		writer:    writer,
		generator: site,
		commands:  handlers,
	}, nil
}

func buildLayoutRenderer(cfg TemplatesConfig, provider interfaces.LoggerProvider) (*templates.LayoutRenderer, error) {
	dir := strings.TrimSpace(cfg.Dir)
	engineOpts := []templates.EngineOption{}
	if dir != "" {
		engineOpts = append(engineOpts, templates.WithBaseDir(dir))
	} else {
		engineOpts = append(engineOpts, templates.WithBaseDir("."))
	}
	if cfg.Extension != "" {
		engineOpts = append(engineOpts, templates.WithExtension(cfg.Extension))
	}
	if len(cfg.Globals) > 0 {
		engineOpts = append(engineOpts, templates.WithGlobalData(cfg.Globals))
	}

	engine, err := templates.NewEngine(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("pagegen: template engine: %w", err)
	}

	registry := templates.NewMemoryRegistry()
	if dir != "" {
		if _, statErr := os.Stat(dir); statErr == nil {
			if err := templates.RegisterLayoutsFromFS(registry, os.DirFS(dir), ".", cfg.Extension); err != nil {
				return nil, fmt.Errorf("pagegen: register layouts: %w", err)
			}
		}
	}
	for name, source := range cfg.Layouts {
		if err := registry.Register(templates.Layout{Name: name, Source: source}); err != nil {
			return nil, fmt.Errorf("pagegen: register layout %s: %w", name, err)
		}
	}

	return templates.NewLayoutRenderer(registry, engine,
		templates.WithRendererLogger(logging.TemplatesLogger(provider)))
}

// Config returns the configuration the module was constructed with.
func (m *Module) Config() Config {
	return m.cfg
}

// Documents returns the configured document service.
func (m *Module) Documents() DocumentService {
	return m.documents
}

// Pages returns the configured page registry.
func (m *Module) Pages() PageService {
	return m.pages
}

// Layouts returns the configured layout renderer.
func (m *Module) Layouts() *templates.LayoutRenderer {
	return m.layouts
}

// Generator returns the configured static site generator.
func (m *Module) Generator() GeneratorService {
	return m.generator
}

// Commands returns the site command handlers for dispatcher integrations.
func (m *Module) Commands() *sitecmd.HandlerSet {
	return m.commands
}

// Build runs a full site build.
func (m *Module) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	return m.generator.Build(ctx, opts)
}

// Clean removes generated artifacts from the output directory.
func (m *Module) Clean(ctx context.Context) error {
	return m.generator.Clean(ctx)
}
