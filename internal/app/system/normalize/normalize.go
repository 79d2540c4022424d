// internal/app/system/normalize/normalize.go

// Package normalize provides input normalization helpers used before
// validation, lookup, and persistence.
package normalize

import "strings"

// Email lowercases and trims an email address. Lookups and stored values
// always use this form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Username lowercases and trims a username; the external platform treats
// usernames case-insensitively.
func Username(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam trims a query/form parameter.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
