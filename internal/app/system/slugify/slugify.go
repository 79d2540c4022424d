// internal/app/system/slugify/slugify.go

// Package slugify derives URL-safe group slugs from human-readable names.
// The mapping is deterministic: the same name always yields the same slug.
package slugify

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Make normalizes name to a slug: case-folded (diacritics stripped), runs of
// non-alphanumeric characters collapsed to a single '-', leading/trailing
// dashes trimmed. "My Team" -> "my-team".
func Make(name string) string {
	folded := text.Fold(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(folded))
	pendingDash := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		default:
			pendingDash = true
		}
	}
	return b.String()
}
