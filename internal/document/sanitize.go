package document

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	bodyPolicyOnce sync.Once
	bodyPolicy     *bluemonday.Policy
)

// sanitizeHTML scrubs rendered markdown through a UGC policy extended with the
// id attribute goldmark emits for auto heading anchors.
func sanitizeHTML(input []byte) []byte {
	return bodySanitizer().SanitizeBytes(input)
}

func bodySanitizer() *bluemonday.Policy {
	bodyPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
		policy.AllowAttrs("class").OnElements("ul", "li", "input")
		bodyPolicy = policy
	})
	return bodyPolicy
}
