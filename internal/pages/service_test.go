package pages_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-pagegen/internal/identity"
	"github.com/goliatone/go-pagegen/internal/pages"
)

func newTestService(t *testing.T, opts ...pages.ServiceOption) pages.Service {
	t.Helper()

	base := []pages.ServiceOption{
		pages.WithNow(func() time.Time {
			return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
		}),
	}
	svc, err := pages.NewService(pages.NewMemoryPageRepository(), append(base, opts...)...)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestServiceRegister(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	page, err := svc.Register(ctx, pages.RegisterPageInput{
		Layout:    "page",
		Title:     "About",
		Permalink: "/about/",
		Tags:      []string{"about"},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if page.ID != identity.PageUUID("/about/") {
		t.Fatalf("expected deterministic id, got %s", page.ID)
	}
	if page.CreatedAt.IsZero() || page.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	got, err := svc.GetByPermalink(ctx, "/about/")
	if err != nil {
		t.Fatalf("get by permalink: %v", err)
	}
	if got.Title != "About" {
		t.Fatalf("expected title About, got %q", got.Title)
	}
}

func TestServiceRegister_DeterministicID(t *testing.T) {
	ctx := context.Background()

	first := newTestService(t)
	second := newTestService(t)

	input := pages.RegisterPageInput{Layout: "page", Title: "Docs", Permalink: "/docs/"}

	a, err := first.Register(ctx, input)
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	b, err := second.Register(ctx, input)
	if err != nil {
		t.Fatalf("second register: %v", err)
	}
	if a.ID != b.ID {
		t.Fatalf("expected stable ids across registries, got %s and %s", a.ID, b.ID)
	}
}

func TestServiceRegister_PermalinkConflict(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	first, err := svc.Register(ctx, pages.RegisterPageInput{
		Layout:     "page",
		Title:      "About",
		Permalink:  "/about/",
		SourcePath: "content/about.md",
	})
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err = svc.Register(ctx, pages.RegisterPageInput{
		Layout:     "page",
		Title:      "About Duplicate",
		Permalink:  "/about/",
		SourcePath: "content/about-copy.md",
	})
	if err == nil {
		t.Fatal("expected permalink conflict")
	}
	if !errors.Is(err, pages.ErrPermalinkExists) {
		t.Fatalf("expected ErrPermalinkExists, got %v", err)
	}

	var conflict *pages.PermalinkConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected PermalinkConflictError, got %T", err)
	}
	if conflict.ExistingID != first.ID {
		t.Fatalf("expected conflict with %s, got %s", first.ID, conflict.ExistingID)
	}
	if conflict.SourcePath != "content/about-copy.md" {
		t.Fatalf("expected rejected source path, got %q", conflict.SourcePath)
	}
}

func TestServiceRegister_CaseInsensitiveConflict(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.Register(ctx, pages.RegisterPageInput{
		Layout: "page", Title: "About", Permalink: "/about/", SourcePath: "content/about.md",
	}); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(ctx, pages.RegisterPageInput{
		Layout: "page", Title: "About", Permalink: "/About/", SourcePath: "content/other.md",
	})
	if !errors.Is(err, pages.ErrPermalinkExists) {
		t.Fatalf("expected case-insensitive conflict, got %v", err)
	}
}

func TestServiceRegister_SameSourceReplaces(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	first, err := svc.Register(ctx, pages.RegisterPageInput{
		Layout: "page", Title: "About", Permalink: "/about/", SourcePath: "content/about.md",
	})
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	second, err := svc.Register(ctx, pages.RegisterPageInput{
		Layout: "page", Title: "About v2", Permalink: "/about/", SourcePath: "content/about.md",
	})
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected stable id on re-register, got %s and %s", first.ID, second.ID)
	}
	if second.Title != "About v2" {
		t.Fatalf("expected replaced entry, got %q", second.Title)
	}

	listed, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected single entry after re-register, got %d", len(listed))
	}
}

func TestServiceRegister_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Register(ctx, pages.RegisterPageInput{
		Layout:    "",
		Title:     "Broken",
		Permalink: "no-leading-slash",
	})
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !errors.Is(err, pages.ErrPageInvalid) {
		t.Fatalf("expected ErrPageInvalid, got %v", err)
	}

	var invalid *pages.InvalidPageError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidPageError, got %T", err)
	}
	if len(invalid.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %#v", invalid.Violations)
	}
}

func TestServiceList_SortedByPermalink(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, permalink := range []string{"/zebra/", "/about/", "/docs/setup/"} {
		if _, err := svc.Register(ctx, pages.RegisterPageInput{
			Layout: "page", Title: "Page", Permalink: permalink,
		}); err != nil {
			t.Fatalf("register %s: %v", permalink, err)
		}
	}

	listed, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"/about/", "/docs/setup/", "/zebra/"}
	if len(listed) != len(want) {
		t.Fatalf("expected %d pages, got %d", len(want), len(listed))
	}
	for i, permalink := range want {
		if listed[i].Permalink != permalink {
			t.Fatalf("expected %q at %d, got %q", permalink, i, listed[i].Permalink)
		}
	}
}

func TestServiceRemove(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	page, err := svc.Register(ctx, pages.RegisterPageInput{
		Layout: "page", Title: "Ephemeral", Permalink: "/tmp/",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.Remove(ctx, page.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if _, err := svc.Get(ctx, page.ID); !errors.Is(err, pages.ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}

	// Permalink becomes available again once the page is gone.
	if _, err := svc.Register(ctx, pages.RegisterPageInput{
		Layout: "page", Title: "Ephemeral Again", Permalink: "/tmp/",
	}); err != nil {
		t.Fatalf("re-register: %v", err)
	}
}
