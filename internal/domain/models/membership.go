// internal/domain/models/membership.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership is the authoritative join between persons and groups.
// Exactly one document per (person_id, group_id); the access level is the
// last level confirmed by the external platform.
type Membership struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PersonID    primitive.ObjectID `bson:"person_id" json:"person_id"`
	GroupID     string             `bson:"group_id" json:"group_id"` // Group UUID
	AccessLevel AccessLevel        `bson:"access_level" json:"access_level"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
