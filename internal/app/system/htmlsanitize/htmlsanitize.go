// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips unsafe markup from user-supplied rich text.
// Group descriptions are sanitized on write so downstream UIs can render
// them without a second pass.
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy()

// Sanitize removes script, event handlers, and other unsafe constructs,
// keeping common user-generated-content markup (links, emphasis, lists).
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// Strict strips all markup, returning text only. Used for fields that must
// never contain HTML (names, slugs).
func Strict(s string) string {
	if s == "" {
		return ""
	}
	return bluemonday.StrictPolicy().Sanitize(s)
}
