// internal/domain/models/account.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account links a platform Person to a user on the external platform.
//
// NOTE:
//   - ExternalID is nil when the person has never been provisioned on the
//     external platform; membership operations require it.
//   - Email is stored normalized (lowercase, trimmed).
type Account struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PersonID   primitive.ObjectID `bson:"person_id" json:"person_id"`
	ExternalID *int64             `bson:"external_id,omitempty" json:"external_id,omitempty"`
	Username   string             `bson:"username" json:"username"`
	Email      string             `bson:"email" json:"email"`
	FullName   string             `bson:"full_name,omitempty" json:"full_name,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Linked reports whether the account is bound to an external platform user.
func (a Account) Linked() bool {
	return a.ExternalID != nil
}
