package sitecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-pagegen/internal/generator"
)

const (
	buildSiteMessageType   = "pagegen.site.build"
	previewSiteMessageType = "pagegen.site.preview"
	cleanSiteMessageType   = "pagegen.site.clean"
)

// ResultCallback receives build results produced by generator operations. The
// callback is optional and is invoked synchronously from the handler.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of a site command that produced a BuildResult.
type ResultEnvelope struct {
	Result   *generator.BuildResult
	Metadata map[string]any
}

// BuildSiteCommand executes a generator build, optionally scoped to a subset
// of permalinks.
type BuildSiteCommand struct {
	Permalinks     []string       `json:"permalinks,omitempty"`
	DryRun         bool           `json:"dry_run,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures permalink filters are well-formed.
func (m BuildSiteCommand) Validate() error {
	return validatePermalinks("pagegen.site.build", m.Permalinks)
}

// PreviewSiteCommand performs a dry-run build to surface what would change
// without writing artifacts.
type PreviewSiteCommand struct {
	Permalinks     []string       `json:"permalinks,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (PreviewSiteCommand) Type() string { return previewSiteMessageType }

// Validate ensures permalink filters are well-formed.
func (m PreviewSiteCommand) Validate() error {
	return validatePermalinks("pagegen.site.preview", m.Permalinks)
}

// CleanSiteCommand clears generated artifacts from the output target.
type CleanSiteCommand struct{}

// Type implements command.Message.
func (CleanSiteCommand) Type() string { return cleanSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (CleanSiteCommand) Validate() error { return nil }

func validatePermalinks(prefix string, permalinks []string) error {
	errs := validation.Errors{}
	for _, permalink := range permalinks {
		trimmed := strings.TrimSpace(permalink)
		if trimmed == "" {
			errs["permalinks"] = validation.NewError(prefix+".permalink_empty", "permalinks must not contain empty values")
			break
		}
		if !strings.HasPrefix(trimmed, "/") {
			errs["permalinks"] = validation.NewError(prefix+".permalink_relative", "permalinks must start with /")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func normalizePermalinks(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := map[string]struct{}{}
	for _, permalink := range values {
		trimmed := strings.TrimSpace(permalink)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
