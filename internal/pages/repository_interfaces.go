package pages

import (
	"context"

	"github.com/google/uuid"
)

// PageRepository persists registry entries. Implementations must treat the
// permalink as a unique secondary identifier.
type PageRepository interface {
	Create(ctx context.Context, page *Page) (*Page, error)
	Update(ctx context.Context, page *Page) (*Page, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Page, error)
	GetByPermalink(ctx context.Context, permalink string) (*Page, error)
	List(ctx context.Context) ([]*Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
