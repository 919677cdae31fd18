package pages

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunPageRepository backs the registry with a bun managed table. It satisfies
// PageRepository so services stay storage agnostic.
type BunPageRepository struct {
	repo repository.Repository[*PageRecord]
}

func NewBunPageRepository(db *bun.DB) *BunPageRepository {
	return NewBunPageRepositoryWithCache(db, nil, nil)
}

// NewBunPageRepositoryWithCache constructs a page repository with optional
// read-through caching.
func NewBunPageRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPageRepository {
	base := NewPageRecordRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunPageRepository{repo: wrapped}
}

func (r *BunPageRepository) Create(ctx context.Context, page *Page) (*Page, error) {
	if page == nil {
		return nil, ErrPageRequired
	}
	if existing, err := r.GetByPermalink(ctx, page.Permalink); err == nil && existing != nil {
		return nil, &PermalinkConflictError{
			Permalink:  existing.Permalink,
			ExistingID: existing.ID,
			SourcePath: page.SourcePath,
		}
	}
	created, err := r.repo.Create(ctx, recordFromPage(page))
	if err != nil {
		return nil, mapRepositoryError(err, "page", page.Permalink)
	}
	return pageFromRecord(created), nil
}

func (r *BunPageRepository) Update(ctx context.Context, page *Page) (*Page, error) {
	if page == nil {
		return nil, ErrPageRequired
	}
	updated, err := r.repo.Update(ctx, recordFromPage(page))
	if err != nil {
		return nil, mapRepositoryError(err, "page", page.Permalink)
	}
	return pageFromRecord(updated), nil
}

func (r *BunPageRepository) GetByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "page", id.String())
	}
	return pageFromRecord(record), nil
}

func (r *BunPageRepository) GetByPermalink(ctx context.Context, permalink string) (*Page, error) {
	record, err := r.repo.GetByIdentifier(ctx, permalinkKey(permalink))
	if err != nil {
		return nil, mapRepositoryError(err, "page", permalink)
	}
	return pageFromRecord(record), nil
}

func (r *BunPageRepository) List(ctx context.Context) ([]*Page, error) {
	records, _, err := r.repo.List(ctx)
	if err != nil {
		return nil, mapRepositoryError(err, "page", "list")
	}
	pages := make([]*Page, 0, len(records))
	for _, record := range records {
		pages = append(pages, pageFromRecord(record))
	}
	return pages, nil
}

func (r *BunPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &PageRecord{ID: id})
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
