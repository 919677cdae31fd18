package pages

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// EnsureSchema creates the pages table when it does not exist yet. Callers
// wiring a bun-backed repository run this once at startup.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	if db == nil {
		return fmt.Errorf("pages: ensure schema requires a database")
	}
	if _, err := db.NewCreateTable().
		Model((*PageRecord)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("pages: create pages table: %w", err)
	}
	return nil
}
