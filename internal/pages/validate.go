package pages

import (
	"fmt"
	"regexp"
	"strings"

	slug "github.com/goliatone/go-slug"
)

// Violation describes a single metadata rule failure. Validation never
// mutates its input and reports every failure it finds.
type Violation struct {
	Field   string
	Code    string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s (%s)", v.Message, v.Code)
}

var layoutPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidatePage checks the registered page against the permalink and layout
// rules. It returns the full violation list, possibly empty.
func ValidatePage(page *Page) []Violation {
	if page == nil {
		return []Violation{{Field: "page", Code: "page_required", Message: "page is required"}}
	}
	return validateFields(page.Layout, page.Title, page.Permalink)
}

// ValidateInput applies the same rules to a registration input before the
// registry accepts it.
func ValidateInput(input RegisterPageInput) []Violation {
	return validateFields(input.Layout, input.Title, input.Permalink)
}

func validateFields(layout, title, permalink string) []Violation {
	var violations []Violation

	layout = strings.TrimSpace(layout)
	if layout == "" {
		violations = append(violations, Violation{
			Field:   "layout",
			Code:    "layout_required",
			Message: "layout must be a non-empty identifier",
		})
	} else if !layoutPattern.MatchString(layout) {
		violations = append(violations, Violation{
			Field:   "layout",
			Code:    "layout_invalid",
			Message: fmt.Sprintf("layout %q is not a valid identifier", layout),
		})
	}

	if strings.TrimSpace(title) == "" {
		violations = append(violations, Violation{
			Field:   "title",
			Code:    "title_required",
			Message: "title is required",
		})
	}

	violations = append(violations, validatePermalink(permalink)...)
	return violations
}

func validatePermalink(permalink string) []Violation {
	permalink = strings.TrimSpace(permalink)
	if permalink == "" {
		return []Violation{{
			Field:   "permalink",
			Code:    "permalink_required",
			Message: "permalink is required",
		}}
	}

	if !strings.HasPrefix(permalink, "/") {
		return []Violation{{
			Field:   "permalink",
			Code:    "permalink_relative",
			Message: fmt.Sprintf("permalink %q must start with /", permalink),
		}}
	}

	var violations []Violation
	if strings.ContainsAny(permalink, " \t") {
		violations = append(violations, Violation{
			Field:   "permalink",
			Code:    "permalink_whitespace",
			Message: fmt.Sprintf("permalink %q must not contain whitespace", permalink),
		})
	}
	if strings.Contains(permalink, "//") {
		violations = append(violations, Violation{
			Field:   "permalink",
			Code:    "permalink_empty_segment",
			Message: fmt.Sprintf("permalink %q contains an empty segment", permalink),
		})
	}

	for _, segment := range strings.Split(strings.Trim(permalink, "/"), "/") {
		if segment == "" {
			continue
		}
		// Mixed case is allowed here; uniqueness folds case separately.
		if !slug.IsValid(strings.ToLower(segment)) {
			violations = append(violations, Violation{
				Field:   "permalink",
				Code:    "permalink_segment_invalid",
				Message: fmt.Sprintf("permalink segment %q is not URL safe", segment),
			})
		}
	}

	return violations
}

// NormalizePermalink lowercases and slugifies each path segment so authors
// can paste titles into permalinks and still get stable routes.
func NormalizePermalink(permalink string) (string, error) {
	trimmed := strings.Trim(strings.TrimSpace(permalink), "/")
	if trimmed == "" {
		return "/", nil
	}

	segments := strings.Split(trimmed, "/")
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		normalized, err := slug.Normalize(segment)
		if err != nil {
			return "", fmt.Errorf("pages: normalize permalink segment %q: %w", segment, err)
		}
		out = append(out, normalized)
	}

	normalized := "/" + strings.Join(out, "/")
	if strings.HasSuffix(permalink, "/") && normalized != "/" {
		normalized += "/"
	}
	return normalized, nil
}
