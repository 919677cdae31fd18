package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// PageUUID derives the registry ID for a page from its permalink. Permalinks
// are unique site-wide, so the derived ID is stable across rebuilds.
func PageUUID(permalink string) uuid.UUID {
	return UUID("go-pagegen:page:" + strings.ToLower(strings.TrimSpace(permalink)))
}

// LayoutUUID derives the registry ID for a layout template from its name.
func LayoutUUID(name string) uuid.UUID {
	return UUID("go-pagegen:layout:" + strings.ToLower(strings.TrimSpace(name)))
}
