package pages

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewPageRecordRepository creates a repository for PageRecord entities. The
// folded permalink key doubles as the natural identifier so lookups stay
// case-insensitive.
func NewPageRecordRepository(db *bun.DB) repository.Repository[*PageRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*PageRecord]{
		NewRecord: func() *PageRecord { return &PageRecord{} },
		GetID: func(record *PageRecord) uuid.UUID {
			return record.ID
		},
		SetID: func(record *PageRecord, id uuid.UUID) {
			record.ID = id
		},
		GetIdentifier: func() string {
			return "permalink_key"
		},
		GetIdentifierValue: func(record *PageRecord) string {
			return permalinkKey(record.Permalink)
		},
	})
}
