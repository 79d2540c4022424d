// internal/app/store/memberships/membershipstore.go
package membershipstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/modelcove/groupsync/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("memberships")}
}

// Upsert writes the membership row for (personID, groupID), creating it or
// updating the access level. The level stored is the one the external
// platform confirmed.
func (s *Store) Upsert(ctx context.Context, personID primitive.ObjectID, groupID string, level models.AccessLevel) error {
	filter := bson.M{"person_id": personID, "group_id": groupID}
	update := bson.M{
		"$set":         bson.M{"access_level": level},
		"$setOnInsert": bson.M{"created_at": time.Now().UTC()},
	}
	_, err := s.c.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// Remove deletes the membership row for (personID, groupID). Removing a row
// that does not exist is not an error.
func (s *Store) Remove(ctx context.Context, personID primitive.ObjectID, groupID string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"person_id": personID, "group_id": groupID})
	return err
}

// Exists reports whether a membership row exists for (personID, groupID).
func (s *Store) Exists(ctx context.Context, personID primitive.ObjectID, groupID string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"person_id": personID, "group_id": groupID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Get loads the membership row for (personID, groupID).
func (s *Store) Get(ctx context.Context, personID primitive.ObjectID, groupID string) (models.Membership, error) {
	var m models.Membership
	if err := s.c.FindOne(ctx, bson.M{"person_id": personID, "group_id": groupID}).Decode(&m); err != nil {
		return models.Membership{}, err
	}
	return m, nil
}

// DeleteByGroup removes all membership rows for a group. Used when the group
// itself is deleted.
func (s *Store) DeleteByGroup(ctx context.Context, groupID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
