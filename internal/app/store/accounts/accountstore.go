// internal/app/store/accounts/accountstore.go
package accountstore

// Terminology: Account Identifiers
//   - AccountID / account_id: the MongoDB ObjectID (_id) of the account record
//   - PersonID / person_id: the ObjectID of the platform person the account belongs to
//   - ExternalID / external_id: the numeric user id on the external platform

import (
	"context"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/modelcove/groupsync/internal/app/system/normalize"
	"github.com/modelcove/groupsync/internal/domain/apperr"
	"github.com/modelcove/groupsync/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("accounts")}
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (models.Account, error) {
	var a models.Account
	if err := s.c.FindOne(ctx, filter).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Account{}, apperr.ErrAccountNotFound
		}
		return models.Account{}, err
	}
	return a, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Account, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *Store) GetByPersonID(ctx context.Context, personID primitive.ObjectID) (models.Account, error) {
	return s.findOne(ctx, bson.M{"person_id": personID})
}

func (s *Store) GetByUsername(ctx context.Context, username string) (models.Account, error) {
	return s.findOne(ctx, bson.M{"username": normalize.Username(username)})
}

func (s *Store) GetByEmail(ctx context.Context, email string) (models.Account, error) {
	return s.findOne(ctx, bson.M{"email": normalize.Email(email)})
}

func (s *Store) GetByExternalID(ctx context.Context, externalID int64) (models.Account, error) {
	return s.findOne(ctx, bson.M{"external_id": externalID})
}

// Create inserts a new account after normalizing username and email.
func (s *Store) Create(ctx context.Context, a models.Account) (models.Account, error) {
	now := time.Now().UTC()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.Username = normalize.Username(a.Username)
	a.Email = normalize.Email(a.Email)
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Account{}, apperr.ErrConflict
		}
		return models.Account{}, err
	}
	return a, nil
}

// UpdateProfile mirrors refreshed user information (username, email, full
// name) from the external platform into the local record.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, username, email, fullName string) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if username != "" {
		set["username"] = normalize.Username(username)
	}
	if email != "" {
		set["email"] = normalize.Email(email)
	}
	if fullName != "" {
		set["full_name"] = normalize.Name(fullName)
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.ErrAccountNotFound
	}
	return nil
}

// SetExternalID links an account to its external platform user.
func (s *Store) SetExternalID(ctx context.Context, id primitive.ObjectID, externalID int64) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"external_id": externalID,
		"updated_at":  time.Now().UTC(),
	}})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return apperr.ErrConflict
		}
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.ErrAccountNotFound
	}
	return nil
}
