package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-pagegen/internal/logging"
	"github.com/goliatone/go-pagegen/internal/pages"
	"github.com/goliatone/go-pagegen/internal/templates"
	"github.com/goliatone/go-pagegen/internal/validation"
	"github.com/goliatone/go-pagegen/pkg/interfaces"
)

var (
	ErrDocumentsRequired = errors.New("generator: document service is required")
	ErrPagesRequired     = errors.New("generator: page registry is required")
	ErrLayoutsRequired   = errors.New("generator: layout renderer is required")
)

// Service describes the static site build contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// SiteConfig carries the site-wide values templates and the sitemap see.
type SiteConfig struct {
	Name        string
	BaseURL     string
	Description string
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	ContentDir      string
	Pattern         string
	Recursive       bool
	Site            SiteConfig
	CleanBuild      bool
	Incremental     bool
	IncludeDrafts   bool
	GenerateSitemap bool
	GenerateRobots  bool
	Workers         int
	Parser          interfaces.ParseOptions
	Theme           ThemeConfig
	Assets          AssetConfig
	// MetadataSchemas maps a layout name to the JSON schema its pages'
	// custom front matter must satisfy.
	MetadataSchemas map[string]map[string]any
}

// BuildOptions narrows the scope of a single build run.
type BuildOptions struct {
	DryRun     bool
	Permalinks []string
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	PagesBuilt    int
	PagesSkipped  int
	PagesFailed   int
	AssetsCopied  int
	AssetsSkipped int
	Duration      time.Duration
	Rendered      []RenderedPage
	Diagnostics   []RenderDiagnostic
	Errors        []error
	DryRun        bool
}

// Dependencies lists the services required by the generator. Assets and
// ThemeFiles override the filesystem sources derived from the configured
// directories, primarily for tests.
type Dependencies struct {
	Documents  interfaces.DocumentService
	Pages      pages.Service
	Layouts    *templates.LayoutRenderer
	Writer     ArtifactWriter
	Logger     interfaces.Logger
	Assets     fs.FS
	ThemeFiles fs.FS
}

type service struct {
	cfg    Config
	deps   Dependencies
	routes *Routes
	themes *themeSelector
	logger interfaces.Logger
	now    func() time.Time
}

// NewService wires a generator with the provided configuration and
// dependencies.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	if deps.Documents == nil {
		return nil, ErrDocumentsRequired
	}
	if deps.Pages == nil {
		return nil, ErrPagesRequired
	}
	if deps.Layouts == nil {
		return nil, ErrLayoutsRequired
	}
	if deps.Writer == nil {
		deps.Writer = noopWriter{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &service{
		cfg:    cfg,
		deps:   deps,
		routes: NewRoutes(cfg.Site.BaseURL),
		themes: newThemeSelector(cfg.Theme, nil),
		logger: logger,
		now:    time.Now,
	}, nil
}

type pageJob struct {
	doc  *interfaces.PageDocument
	page *pages.Page
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := s.now()
	result := &BuildResult{DryRun: opts.DryRun}
	var errs []error

	docs, err := s.loadDocuments(ctx, opts)
	if err != nil {
		return nil, err
	}

	manifest, manifestErr := s.loadManifest(ctx)
	if manifestErr != nil {
		errs = append(errs, manifestErr)
	}
	if manifest == nil {
		manifest = newBuildManifest()
	}

	if s.cfg.CleanBuild && !opts.DryRun {
		if err := s.deps.Writer.RemoveAll(ctx, "."); err != nil {
			errs = append(errs, fmt.Errorf("generator: clean output: %w", err))
		}
		manifest = newBuildManifest()
	}

	selection, themeErr := s.themes.Selection()
	if themeErr != nil {
		errs = append(errs, themeErr)
	}
	if selection != nil {
		if err := registerThemeLayouts(s.deps.Layouts.Registry(), s.themeFiles(), selection, s.cfg.Theme.PartialFallbacks); err != nil {
			errs = append(errs, err)
		}
	}
	themeCtx := themeContext(selection, s.cfg.Theme)

	generatedAt := s.now()
	siteCtx := siteContext(SiteMetadata{
		Name:        s.cfg.Site.Name,
		BaseURL:     s.routes.BaseURL(),
		Description: s.cfg.Site.Description,
	})
	buildCtx := buildContext(BuildMetadata{
		GeneratedAt: generatedAt,
		Incremental: s.cfg.Incremental,
		DryRun:      opts.DryRun,
	})

	var (
		mu       sync.Mutex
		rendered []RenderedPage
		seenKeys = map[string]struct{}{}
	)
	collect := func(outcome renderOutcome) {
		mu.Lock()
		defer mu.Unlock()
		result.Diagnostics = append(result.Diagnostics, outcome.diagnostic)
		if key := pageKey(outcome.diagnostic.Permalink); key != "" {
			seenKeys[key] = struct{}{}
		}
		if outcome.err != nil {
			result.PagesFailed++
			errs = append(errs, outcome.err)
			return
		}
		if outcome.skipped {
			result.PagesSkipped++
			return
		}
		result.PagesBuilt++
		rendered = append(rendered, outcome.page)
	}

	// Registration runs in document order so permalink conflicts resolve
	// deterministically; rendering afterwards is embarrassingly parallel.
	jobs := s.registerPages(ctx, docs, collect)

	renderData := renderInputs{
		site:  siteCtx,
		build: buildCtx,
		theme: themeCtx,
	}
	if err := s.renderAll(ctx, jobs, manifest, renderData, collect); err != nil {
		result.Duration = s.now().Sub(start)
		result.Rendered = rendered
		result.Errors = append(result.Errors, errs...)
		return result, err
	}

	if opts.DryRun {
		result.Rendered = rendered
		result.Duration = s.now().Sub(start)
		if len(errs) > 0 {
			result.Errors = append(result.Errors, errs...)
			return result, errors.Join(errs...)
		}
		return result, nil
	}

	if err := s.persistPages(ctx, rendered); err != nil {
		errs = append(errs, err)
	}

	assetSeen := map[string]struct{}{}
	copied, skippedAssets, assetErrs := s.copyAssets(ctx, manifest, selection, assetSeen)
	result.AssetsCopied = copied
	result.AssetsSkipped = skippedAssets
	errs = append(errs, assetErrs...)

	if s.cfg.GenerateSitemap {
		sitemapPages := s.mergeForSitemap(jobs, rendered, manifest)
		if err := s.writeSitemap(ctx, sitemapPages, generatedAt); err != nil {
			errs = append(errs, err)
		}
	}

	if s.cfg.GenerateRobots {
		if err := s.writeRobots(ctx, generatedAt); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		manifest.GeneratedAt = generatedAt
		for i := range rendered {
			manifest.setPage(manifestPage{
				Permalink:    rendered[i].Permalink,
				Source:       diagnosticSource(result.Diagnostics, rendered[i].Permalink),
				Output:       rendered[i].Output,
				Layout:       rendered[i].Layout,
				Hash:         rendered[i].Hash,
				Checksum:     rendered[i].Checksum,
				LastModified: rendered[i].Modified,
				RenderedAt:   generatedAt,
			})
		}
		manifest.prunePages(seenKeys)
		manifest.pruneAssets(assetSeen)
		if err := s.persistManifest(ctx, manifest, generatedAt); err != nil {
			errs = append(errs, err)
		}
	}

	result.Rendered = rendered
	result.Duration = s.now().Sub(start)
	if len(errs) > 0 {
		result.Errors = append(result.Errors, errs...)
		return result, errors.Join(errs...)
	}

	s.logger.Info("generator.build.complete",
		"pages_built", result.PagesBuilt,
		"pages_skipped", result.PagesSkipped,
		"duration", result.Duration.String(),
	)
	return result, nil
}

func (s *service) Clean(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.deps.Writer.RemoveAll(ctx, ".")
}

func (s *service) loadDocuments(ctx context.Context, opts BuildOptions) ([]*interfaces.PageDocument, error) {
	recursive := s.cfg.Recursive
	docs, err := s.deps.Documents.LoadDirectory(ctx, s.cfg.ContentDir, interfaces.LoadOptions{
		Recursive: &recursive,
		Pattern:   s.cfg.Pattern,
		Parser:    s.cfg.Parser,
	})
	if err != nil {
		return nil, fmt.Errorf("generator: load content: %w", err)
	}
	if len(opts.Permalinks) == 0 {
		return docs, nil
	}

	wanted := make(map[string]struct{}, len(opts.Permalinks))
	for _, permalink := range opts.Permalinks {
		wanted[pageKey(permalink)] = struct{}{}
	}
	filtered := make([]*interfaces.PageDocument, 0, len(docs))
	for _, doc := range docs {
		if _, ok := wanted[pageKey(doc.Meta.Permalink)]; ok {
			filtered = append(filtered, doc)
		}
	}
	return filtered, nil
}

func (s *service) registerPages(ctx context.Context, docs []*interfaces.PageDocument, collect func(renderOutcome)) []pageJob {
	jobs := make([]pageJob, 0, len(docs))
	for _, doc := range docs {
		diagnostic := RenderDiagnostic{
			Permalink:  doc.Meta.Permalink,
			SourcePath: doc.FilePath,
			Layout:     doc.Meta.Layout,
		}

		if doc.Meta.Draft && !s.cfg.IncludeDrafts {
			diagnostic.Skipped = true
			collect(renderOutcome{diagnostic: diagnostic, skipped: true})
			continue
		}

		if err := s.validateMetadata(doc); err != nil {
			wrapped := fmt.Errorf("generator: page %s metadata: %w", doc.FilePath, err)
			diagnostic.Err = wrapped
			collect(renderOutcome{diagnostic: diagnostic, err: wrapped})
			continue
		}

		page, err := s.deps.Pages.Register(ctx, pages.InputFromDocument(doc))
		if err != nil {
			wrapped := fmt.Errorf("generator: register page %s: %w", doc.FilePath, err)
			diagnostic.Err = wrapped
			collect(renderOutcome{diagnostic: diagnostic, err: wrapped})
			continue
		}

		jobs = append(jobs, pageJob{doc: doc, page: page})
	}
	return jobs
}

func (s *service) validateMetadata(doc *interfaces.PageDocument) error {
	schema := s.schemaFor(doc.Meta.Layout)
	if schema == nil {
		return nil
	}
	if doc.Meta.Draft {
		return validation.ValidateDraftMetadata(schema, doc.Meta.Custom)
	}
	return validation.ValidateMetadata(schema, doc.Meta.Custom)
}

func (s *service) schemaFor(layout string) map[string]any {
	if len(s.cfg.MetadataSchemas) == 0 {
		return nil
	}
	if schema, ok := s.cfg.MetadataSchemas[strings.ToLower(strings.TrimSpace(layout))]; ok {
		return schema
	}
	return s.cfg.MetadataSchemas[strings.TrimSpace(layout)]
}

type renderInputs struct {
	site  map[string]any
	build map[string]any
	theme map[string]any
}

func (s *service) renderAll(
	ctx context.Context,
	jobs []pageJob,
	manifest *buildManifest,
	data renderInputs,
	collect func(renderOutcome),
) error {
	workers := s.effectiveWorkerCount(len(jobs))
	if workers <= 1 || len(jobs) <= 1 {
		for _, job := range jobs {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				collect(s.renderPage(ctx, job, manifest, data))
			}
		}
		return nil
	}

	queue := make(chan pageJob)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				select {
				case <-ctx.Done():
					return
				default:
					collect(s.renderPage(ctx, job, manifest, data))
				}
			}
		}()
	}

	var err error
	for _, job := range jobs {
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case queue <- job:
			continue
		}
		break
	}
	close(queue)
	wg.Wait()
	return err
}

func (s *service) renderPage(ctx context.Context, job pageJob, manifest *buildManifest, data renderInputs) renderOutcome {
	page := job.page
	outcome := renderOutcome{
		diagnostic: RenderDiagnostic{
			PageID:     page.ID,
			Permalink:  page.Permalink,
			SourcePath: page.SourcePath,
			Layout:     page.Layout,
		},
	}

	select {
	case <-ctx.Done():
		outcome.err = ctx.Err()
		outcome.diagnostic.Err = ctx.Err()
		return outcome
	default:
	}

	hash := hex.EncodeToString(page.Checksum)
	output := buildOutputPath(page.Permalink)

	if s.cfg.Incremental && manifest.shouldSkipPage(page.Permalink, hash, output) {
		outcome.skipped = true
		outcome.diagnostic.Skipped = true
		return outcome
	}

	templateData := map[string]any{
		"site":  data.site,
		"page":  pageContext(page),
		"build": data.build,
		"theme": data.theme,
	}

	start := time.Now()
	html, err := s.deps.Layouts.Render(page.Layout, templateData)
	duration := time.Since(start)
	outcome.diagnostic.Duration = duration
	if err != nil {
		wrapped := fmt.Errorf("generator: render page %s: %w", page.SourcePath, err)
		outcome.err = wrapped
		outcome.diagnostic.Err = wrapped
		return outcome
	}

	outcome.page = RenderedPage{
		PageID:    page.ID,
		Permalink: page.Permalink,
		Layout:    page.Layout,
		Title:     page.Title,
		Output:    output,
		HTML:      html,
		Hash:      hash,
		Modified:  page.LastModified,
		Duration:  duration,
	}
	return outcome
}

func (s *service) persistPages(ctx context.Context, rendered []RenderedPage) error {
	for i := range rendered {
		checksum := computeHashFromString(rendered[i].HTML)
		rendered[i].Checksum = checksum

		req := WriteRequest{
			Path:        rendered[i].Output,
			Content:     strings.NewReader(rendered[i].HTML),
			Size:        int64(len(rendered[i].HTML)),
			Category:    categoryPage,
			ContentType: "text/html; charset=utf-8",
			Checksum:    checksum,
			Metadata: map[string]string{
				"permalink": rendered[i].Permalink,
				"layout":    rendered[i].Layout,
			},
		}
		if err := s.deps.Writer.WriteFile(ctx, req); err != nil {
			return fmt.Errorf("generator: write page %s: %w", rendered[i].Output, err)
		}
	}
	return nil
}

func (s *service) mergeForSitemap(jobs []pageJob, rendered []RenderedPage, manifest *buildManifest) []RenderedPage {
	renderedByKey := make(map[string]RenderedPage, len(rendered))
	for _, page := range rendered {
		renderedByKey[pageKey(page.Permalink)] = page
	}

	sitemap := make([]RenderedPage, 0, len(jobs))
	for _, job := range jobs {
		key := pageKey(job.page.Permalink)
		if page, ok := renderedByKey[key]; ok {
			sitemap = append(sitemap, page)
			continue
		}
		if entry, ok := manifest.lookupPage(job.page.Permalink); ok {
			sitemap = append(sitemap, RenderedPage{
				PageID:    job.page.ID,
				Permalink: entry.Permalink,
				Layout:    entry.Layout,
				Output:    entry.Output,
				Hash:      entry.Hash,
				Checksum:  entry.Checksum,
				Modified:  entry.LastModified,
			})
			continue
		}
		sitemap = append(sitemap, RenderedPage{
			PageID:    job.page.ID,
			Permalink: job.page.Permalink,
			Layout:    job.page.Layout,
			Modified:  job.page.LastModified,
		})
	}
	return sitemap
}

func (s *service) writeSitemap(ctx context.Context, pages []RenderedPage, generatedAt time.Time) error {
	content := buildSitemap(s.routes, pages, generatedAt)
	req := WriteRequest{
		Path:        "sitemap.xml",
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    categorySitemap,
		ContentType: "application/xml",
		Checksum:    computeHashFromString(content),
		Metadata: map[string]string{
			"generated_at": generatedAt.UTC().Format(time.RFC3339),
		},
	}
	return s.deps.Writer.WriteFile(ctx, req)
}

func (s *service) writeRobots(ctx context.Context, generatedAt time.Time) error {
	content := buildRobots(s.routes, s.cfg.GenerateSitemap)
	req := WriteRequest{
		Path:        "robots.txt",
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    categoryRobots,
		ContentType: "text/plain; charset=utf-8",
		Checksum:    computeHashFromString(content),
		Metadata: map[string]string{
			"generated_at": generatedAt.UTC().Format(time.RFC3339),
		},
	}
	return s.deps.Writer.WriteFile(ctx, req)
}

func (s *service) loadManifest(ctx context.Context) (*buildManifest, error) {
	data, err := s.deps.Writer.ReadFile(ctx, manifestFileName)
	if err != nil {
		return nil, fmt.Errorf("generator: read manifest: %w", err)
	}
	return parseManifest(data)
}

func (s *service) persistManifest(ctx context.Context, manifest *buildManifest, generatedAt time.Time) error {
	data, err := manifest.marshal()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	req := WriteRequest{
		Path:        manifestFileName,
		Content:     strings.NewReader(string(data)),
		Size:        int64(len(data)),
		Category:    categoryManifest,
		ContentType: "application/json",
		Checksum:    computeHash(data),
		Metadata: map[string]string{
			"generated_at": generatedAt.UTC().Format(time.RFC3339),
		},
	}
	return s.deps.Writer.WriteFile(ctx, req)
}

func (s *service) effectiveWorkerCount(pageCount int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if pageCount > 0 && workers > pageCount {
		return pageCount
	}
	return workers
}

func diagnosticSource(diagnostics []RenderDiagnostic, permalink string) string {
	key := pageKey(permalink)
	for _, diagnostic := range diagnostics {
		if pageKey(diagnostic.Permalink) == key {
			return diagnostic.SourcePath
		}
	}
	return ""
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func computeHashFromString(content string) string {
	return computeHash([]byte(content))
}
