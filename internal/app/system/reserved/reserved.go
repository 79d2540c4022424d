// internal/app/system/reserved/reserved.go

// Package reserved rejects group names whose slugs would collide with paths
// the platform claims for itself.
package reserved

import (
	"github.com/modelcove/groupsync/internal/app/system/slugify"
	"github.com/modelcove/groupsync/internal/domain/apperr"
)

// Slugs the routing layer and the external platform claim for themselves.
// Checked against the slug form, so "Admin" and "admin" are equally rejected.
var reservedSlugs = map[string]struct{}{
	"api":          {},
	"admin":        {},
	"assets":       {},
	"dashboard":    {},
	"files":        {},
	"groups":       {},
	"health":       {},
	"help":         {},
	"login":        {},
	"logout":       {},
	"new":          {},
	"profile":      {},
	"projects":     {},
	"public":       {},
	"robots-txt":   {},
	"s":            {},
	"search":       {},
	"settings":     {},
	"sitemap":      {},
	"snippets":     {},
	"users":        {},
	"unsubscribes": {},
}

// Assert returns apperr.ErrNameReserved when name normalizes to a reserved
// slug, nil otherwise.
func Assert(name string) error {
	if _, ok := reservedSlugs[slugify.Make(name)]; ok {
		return apperr.ErrNameReserved
	}
	return nil
}
