package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/modelcove/groupsync/internal/app/system/slugify"
	"github.com/modelcove/groupsync/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateGroup inserts a group. A non-nil externalID marks the group as
// linked to the platform.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, externalID *int64) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.Group{
		ID:         uuid.NewString(),
		Name:       name,
		NameCI:     text.Fold(name),
		Slug:       slugify.Make(name),
		ExternalID: externalID,
		Visibility: models.VisibilityPrivate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("groups").InsertOne(ctx, group); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// CreateAccount inserts an account. A non-nil externalID marks the account
// as linked to the platform.
func (f *Fixtures) CreateAccount(ctx context.Context, username, email string, externalID *int64) models.Account {
	f.t.Helper()

	now := time.Now().UTC()
	acct := models.Account{
		ID:         primitive.NewObjectID(),
		PersonID:   primitive.NewObjectID(),
		ExternalID: externalID,
		Username:   username,
		Email:      email,
		FullName:   "Test " + username,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("accounts").InsertOne(ctx, acct); err != nil {
		f.t.Fatalf("failed to create test account: %v", err)
	}
	return acct
}

// CreateMembership inserts a membership record linking a person to a group.
func (f *Fixtures) CreateMembership(ctx context.Context, personID primitive.ObjectID, groupID string, level models.AccessLevel) models.Membership {
	f.t.Helper()

	m := models.Membership{
		ID:          primitive.NewObjectID(),
		PersonID:    personID,
		GroupID:     groupID,
		AccessLevel: level,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := f.db.Collection("memberships").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test membership: %v", err)
	}
	return m
}
