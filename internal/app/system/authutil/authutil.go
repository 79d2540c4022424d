// internal/app/system/authutil/authutil.go

// Package authutil extracts caller credentials from inbound requests. The
// service does not mint tokens of its own; callers present external
// platform tokens, which identity resolution verifies remotely.
package authutil

import (
	"net/http"
	"strings"
)

// BearerToken returns the bearer token carried by the Authorization header,
// or "" when none is present. The scheme match is case-insensitive.
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return ""
	}
	const prefix = "bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}
