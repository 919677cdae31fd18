package pages

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-pagegen/internal/identity"
	"github.com/goliatone/go-pagegen/internal/logging"
	"github.com/goliatone/go-pagegen/pkg/interfaces"
)

// Service exposes the page registry contract. Registration enforces the
// site-wide permalink uniqueness invariant; lookups never mutate state.
type Service interface {
	Register(ctx context.Context, input RegisterPageInput) (*Page, error)
	Get(ctx context.Context, id uuid.UUID) (*Page, error)
	GetByPermalink(ctx context.Context, permalink string) (*Page, error)
	List(ctx context.Context) ([]*Page, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

// IDGenerator produces page identifiers from permalinks.
type IDGenerator func(permalink string) uuid.UUID

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithIDGenerator overrides the default deterministic ID generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithNow overrides the service clock, primarily for tests.
func WithNow(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger attaches a logger to registry operations.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo   PageRepository
	id     IDGenerator
	now    func() time.Time
	logger interfaces.Logger
}

// NewService wires a page registry over the supplied repository.
func NewService(repo PageRepository, opts ...ServiceOption) (Service, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	svc := &service{
		repo:   repo,
		id:     identity.PageUUID,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

func (s *service) Register(ctx context.Context, input RegisterPageInput) (*Page, error) {
	if violations := ValidateInput(input); len(violations) > 0 {
		return nil, &InvalidPageError{
			Permalink:  input.Permalink,
			Violations: violations,
		}
	}

	permalink := strings.TrimSpace(input.Permalink)
	var existing *Page
	if found, err := s.repo.GetByPermalink(ctx, permalink); err == nil && found != nil {
		// Re-registering the same source replaces the entry wholesale; a
		// different source claiming the permalink is a conflict.
		if found.SourcePath != strings.TrimSpace(input.SourcePath) {
			return nil, &PermalinkConflictError{
				Permalink:  permalink,
				ExistingID: found.ID,
				SourcePath: input.SourcePath,
			}
		}
		existing = found
	} else if err != nil && !errors.Is(err, ErrPageNotFound) {
		return nil, err
	}

	now := s.now()
	page := &Page{
		ID:           s.id(permalink),
		Layout:       strings.TrimSpace(input.Layout),
		Title:        strings.TrimSpace(input.Title),
		Permalink:    permalink,
		Tags:         append([]string(nil), input.Tags...),
		Summary:      input.Summary,
		Author:       input.Author,
		Date:         input.Date,
		Draft:        input.Draft,
		Metadata:     input.Metadata,
		Body:         input.Body,
		BodyHTML:     input.BodyHTML,
		SourcePath:   input.SourcePath,
		Checksum:     input.Checksum,
		LastModified: input.LastModified,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var (
		stored *Page
		err    error
	)
	if existing != nil {
		page.ID = existing.ID
		page.CreatedAt = existing.CreatedAt
		stored, err = s.repo.Update(ctx, page)
	} else {
		stored, err = s.repo.Create(ctx, page)
	}
	if err != nil {
		return nil, err
	}

	logging.WithDocumentContext(s.logger, stored.SourcePath, stored.Permalink, "register").
		Debug("pages.register.success")
	return stored, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Page, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByPermalink(ctx context.Context, permalink string) (*Page, error) {
	return s.repo.GetByPermalink(ctx, strings.TrimSpace(permalink))
}

func (s *service) List(ctx context.Context) ([]*Page, error) {
	return s.repo.List(ctx)
}

func (s *service) Remove(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
