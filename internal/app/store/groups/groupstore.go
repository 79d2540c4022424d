// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/modelcove/groupsync/internal/domain/apperr"
	"github.com/modelcove/groupsync/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Group{}, apperr.ErrGroupNotFound
		}
		return models.Group{}, err
	}
	return g, nil
}

func (s *Store) GetBySlug(ctx context.Context, slug string) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&g); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Group{}, apperr.ErrGroupNotFound
		}
		return models.Group{}, err
	}
	return g, nil
}

// GetByName looks a group up by case-folded name.
func (s *Store) GetByName(ctx context.Context, name string) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"name_ci": text.Fold(name)}).Decode(&g); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Group{}, apperr.ErrGroupNotFound
		}
		return models.Group{}, err
	}
	return g, nil
}

func (s *Store) GetByExternalID(ctx context.Context, externalID int64) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"external_id": externalID}).Decode(&g); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Group{}, apperr.ErrGroupNotFound
		}
		return models.Group{}, err
	}
	return g, nil
}

// SlugTaken reports whether any group already owns slug.
func (s *Store) SlugTaken(ctx context.Context, slug string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"slug": slug})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts a new group. ID is assigned here (UUID) if the caller left
// it empty. Duplicate name or slug surfaces as apperr.ErrConflict.
func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	now := time.Now().UTC()
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	g.NameCI = text.Fold(g.Name)
	if g.Visibility == "" {
		g.Visibility = models.VisibilityPrivate
	}
	g.CreatedAt = now
	g.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, g); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, apperr.ErrConflict
		}
		return models.Group{}, err
	}
	return g, nil
}

// Rename mirrors a remote-confirmed rename into the local record. The slug
// is supplied by the caller (recomputed from the new name, never carried
// over from the old one).
func (s *Store) Rename(ctx context.Context, id, name, slug string) (models.Group, error) {
	set := bson.M{
		"name":       name,
		"name_ci":    text.Fold(name),
		"slug":       slug,
		"updated_at": time.Now().UTC(),
	}
	res := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	var g models.Group
	if err := res.Decode(&g); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Group{}, apperr.ErrGroupNotFound
		}
		if wafflemongo.IsDup(err) {
			return models.Group{}, apperr.ErrConflict
		}
		return models.Group{}, err
	}
	return g, nil
}

// SetDescription stores a (pre-sanitized) description.
func (s *Store) SetDescription(ctx context.Context, id, description string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"description": description,
		"updated_at":  time.Now().UTC(),
	}})
	return err
}

// Delete removes a group by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
