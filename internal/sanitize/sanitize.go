package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Strict policy: user-supplied SOP text never carries markup into the store.
var policy = bluemonday.StrictPolicy()

// Text strips all HTML from a single value and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}

// Fields sanitizes every string in place. Used on request bodies before
// validation so length checks run against the cleaned values.
func Fields(values ...*string) {
	for _, v := range values {
		if v != nil {
			*v = Text(*v)
		}
	}
}

// Slice sanitizes every element of a string slice, dropping entries that end
// up empty.
func Slice(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if cleaned := Text(v); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
