package pages

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryPageRepository provides an in-memory implementation of PageRepository.
type MemoryPageRepository struct {
	mu          sync.RWMutex
	byID        map[uuid.UUID]*Page
	byPermalink map[string]uuid.UUID
}

// NewMemoryPageRepository constructs an empty memory-backed page repository.
func NewMemoryPageRepository() *MemoryPageRepository {
	return &MemoryPageRepository{
		byID:        make(map[uuid.UUID]*Page),
		byPermalink: make(map[string]uuid.UUID),
	}
}

func (r *MemoryPageRepository) Create(_ context.Context, page *Page) (*Page, error) {
	if page == nil {
		return nil, ErrPageRequired
	}
	cloned := clonePage(page)

	r.mu.Lock()
	defer r.mu.Unlock()

	key := permalinkKey(cloned.Permalink)
	if existingID, ok := r.byPermalink[key]; ok && existingID != cloned.ID {
		return nil, &PermalinkConflictError{
			Permalink:  cloned.Permalink,
			ExistingID: existingID,
			SourcePath: cloned.SourcePath,
		}
	}

	r.byID[cloned.ID] = cloned
	r.byPermalink[key] = cloned.ID

	return clonePage(cloned), nil
}

func (r *MemoryPageRepository) Update(_ context.Context, page *Page) (*Page, error) {
	if page == nil {
		return nil, ErrPageRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[page.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "page", Key: page.ID.String()}
	}
	delete(r.byPermalink, permalinkKey(existing.Permalink))

	cloned := clonePage(page)
	r.byID[cloned.ID] = cloned
	r.byPermalink[permalinkKey(cloned.Permalink)] = cloned.ID

	return clonePage(cloned), nil
}

func (r *MemoryPageRepository) GetByID(_ context.Context, id uuid.UUID) (*Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page, ok := r.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "page", Key: id.String()}
	}
	return clonePage(page), nil
}

func (r *MemoryPageRepository) GetByPermalink(_ context.Context, permalink string) (*Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPermalink[permalinkKey(permalink)]
	if !ok {
		return nil, &NotFoundError{Resource: "page", Key: permalink}
	}
	return clonePage(r.byID[id]), nil
}

func (r *MemoryPageRepository) List(_ context.Context) ([]*Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Page, 0, len(r.byID))
	for _, page := range r.byID {
		out = append(out, clonePage(page))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Permalink < out[j].Permalink
	})
	return out, nil
}

func (r *MemoryPageRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	page, ok := r.byID[id]
	if !ok {
		return &NotFoundError{Resource: "page", Key: id.String()}
	}
	delete(r.byPermalink, permalinkKey(page.Permalink))
	delete(r.byID, id)
	return nil
}

func permalinkKey(permalink string) string {
	return strings.ToLower(strings.TrimSpace(permalink))
}
