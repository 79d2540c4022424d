// internal/domain/models/group.go
package models

import (
	"time"
)

// Visibility values mirror the external platform's group visibility scale.
const (
	VisibilityPrivate  = "private"
	VisibilityInternal = "internal"
	VisibilityPublic   = "public"
)

// ValidVisibility reports whether v is a visibility level the external
// platform understands.
func ValidVisibility(v string) bool {
	switch v {
	case VisibilityPrivate, VisibilityInternal, VisibilityPublic:
		return true
	}
	return false
}

// Group is the local mirror of a group hosted on the external platform.
//
// NOTE:
//   - Slug is a deterministic, collision-checked function of Name and is
//     unique across all groups.
//   - ExternalID is nil until the group has been created on the external
//     platform ("not yet linked"). Most remote operations require linkage.
type Group struct {
	ID          string `bson:"_id" json:"id"` // UUID string
	Name        string `bson:"name" json:"name"`
	NameCI      string `bson:"name_ci" json:"-"` // case-folded, for lookup by name
	Slug        string `bson:"slug" json:"slug"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	ExternalID  *int64 `bson:"external_id,omitempty" json:"external_id,omitempty"`
	Visibility  string `bson:"visibility" json:"visibility"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Linked reports whether the group is bound to an external platform group.
func (g Group) Linked() bool {
	return g.ExternalID != nil
}
