// AngelaMos | 2026
// sanitize.go

package core

import (
	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips unsafe markup from user-supplied strings before they are
// written to the store.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.UGCPolicy()}
}

func (s *Sanitizer) Clean(in string) string {
	return s.policy.Sanitize(in)
}
