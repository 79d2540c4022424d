// internal/app/service/groups/groupsvc.go

// Package groupsvc owns the group lifecycle: create, update, delete, and
// name availability. Every lifecycle mutation is mirrored to the external
// platform remote-first; the local transaction covers local persistence
// only, so a remote success followed by a local failure leaves drift (logged,
// not compensated).
package groupsvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/modelcove/groupsync/internal/app/platform/gitlab"
	identitysvc "github.com/modelcove/groupsync/internal/app/service/identity"
	"github.com/modelcove/groupsync/internal/app/system/htmlsanitize"
	"github.com/modelcove/groupsync/internal/app/system/normalize"
	"github.com/modelcove/groupsync/internal/app/system/reserved"
	"github.com/modelcove/groupsync/internal/app/system/slugify"
	"github.com/modelcove/groupsync/internal/app/system/txn"
	"github.com/modelcove/groupsync/internal/domain/apperr"
	"github.com/modelcove/groupsync/internal/domain/models"
)

// GroupStore is the slice of the group store the service needs.
type GroupStore interface {
	GetByID(ctx context.Context, id string) (models.Group, error)
	GetByName(ctx context.Context, name string) (models.Group, error)
	SlugTaken(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, g models.Group) (models.Group, error)
	Rename(ctx context.Context, id, name, slug string) (models.Group, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// MembershipStore is the slice of the membership store the service needs.
type MembershipStore interface {
	Upsert(ctx context.Context, personID primitive.ObjectID, groupID string, level models.AccessLevel) error
	DeleteByGroup(ctx context.Context, groupID string) (int64, error)
}

// Platform is the slice of the external client the service needs.
type Platform interface {
	CreateGroup(ctx context.Context, p gitlab.CreateGroupParams) (gitlab.Group, error)
	UpdateGroup(ctx context.Context, groupID int64, p gitlab.UpdateGroupParams) (gitlab.Group, error)
	DeleteGroup(ctx context.Context, groupID int64) error
}

// Resolver resolves identity keys to accounts.
type Resolver interface {
	Resolve(ctx context.Context, k identitysvc.Key) (models.Account, error)
}

// Notifier receives the post-mutation user-information-changed signal.
type Notifier interface {
	UserChanged(accountID primitive.ObjectID)
}

// Service is the group lifecycle manager.
type Service struct {
	groups      GroupStore
	memberships MembershipStore
	platform    Platform
	identity    Resolver
	refresh     Notifier
	tx          txn.Runner
	log         *zap.Logger

	defaultVisibility string
}

func New(groups GroupStore, memberships MembershipStore, platform Platform, identity Resolver, refresh Notifier, tx txn.Runner, log *zap.Logger) *Service {
	return &Service{
		groups:      groups,
		memberships: memberships,
		platform:    platform,
		identity:    identity,
		refresh:     refresh,
		tx:          tx,
		log:         log,
	}
}

// SetDefaultVisibility overrides the visibility assigned when a create
// request carries none. An empty or invalid value keeps private.
func (s *Service) SetDefaultVisibility(v string) {
	if models.ValidVisibility(v) {
		s.defaultVisibility = v
	}
}

// CreateParams carries the caller's input for Create.
type CreateParams struct {
	OwnerToken  string
	Name        string
	Path        string // optional; slug derived from Name when empty
	Visibility  string // optional; defaults to private
	Description string // optional; sanitized before persistence
}

// Create provisions the group on the external platform, persists the local
// mirror bound to the external id, records the owner membership, and fires
// a user-information refresh for the owner.
func (s *Service) Create(ctx context.Context, p CreateParams) (models.Group, error) {
	name := normalize.Name(p.Name)
	if name == "" {
		return models.Group{}, apperr.ErrBadParameters
	}

	owner, err := s.identity.Resolve(ctx, identitysvc.ByToken(p.OwnerToken))
	if err != nil {
		return models.Group{}, err
	}

	if err := reserved.Assert(name); err != nil {
		return models.Group{}, err
	}

	// Name collision is checked before touching the platform.
	if _, err := s.groups.GetByName(ctx, name); err == nil {
		return models.Group{}, apperr.ErrConflict
	} else if !apperr.IsNotFound(err) {
		return models.Group{}, err
	}

	slug := slugify.Make(name)
	if p.Path != "" {
		slug = slugify.Make(p.Path)
	}
	if slug == "" {
		return models.Group{}, apperr.ErrBadParameters
	}
	if taken, err := s.groups.SlugTaken(ctx, slug); err != nil {
		return models.Group{}, err
	} else if taken {
		return models.Group{}, apperr.ErrConflict
	}

	visibility := p.Visibility
	if visibility == "" {
		visibility = s.defaultVisibility
	}
	if visibility == "" {
		visibility = models.VisibilityPrivate
	}
	if !models.ValidVisibility(visibility) {
		return models.Group{}, apperr.ErrBadParameters
	}

	description := htmlsanitize.Sanitize(p.Description)

	remote, err := s.platform.CreateGroup(ctx, gitlab.CreateGroupParams{
		Name:        name,
		Path:        slug,
		Description: description,
		Visibility:  visibility,
	})
	if err != nil {
		return models.Group{}, err
	}

	group := models.Group{
		Name:        name,
		Slug:        remote.Path,
		Description: description,
		ExternalID:  &remote.ID,
		Visibility:  remote.Visibility,
	}

	err = s.tx(ctx, func(ctx context.Context) error {
		created, err := s.groups.Create(ctx, group)
		if err != nil {
			return err
		}
		group = created
		// The creator owns the group they created.
		return s.memberships.Upsert(ctx, owner.PersonID, group.ID, models.AccessOwner)
	})
	if err != nil {
		// The remote group already exists; there is no compensation step.
		s.log.Warn("local persistence failed after remote group create; remote and local state have drifted",
			zap.String("name", name),
			zap.Int64("external_id", remote.ID),
			zap.Error(err))
		return models.Group{}, err
	}

	s.refresh.UserChanged(owner.ID)

	return group, nil
}

// Update renames a linked group. The remote update runs first; the
// remote-confirmed name is mirrored locally and the slug is recomputed from
// that name, never carried over from the old one.
func (s *Service) Update(ctx context.Context, groupID, name, path string) (models.Group, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return models.Group{}, err
	}
	if !group.Linked() {
		return models.Group{}, apperr.ErrUnknownGroup
	}

	name = normalize.Name(name)
	path = normalize.QueryParam(path)
	if name == "" && path == "" {
		return models.Group{}, apperr.ErrBadParameters
	}
	if name != "" {
		if err := reserved.Assert(name); err != nil {
			return models.Group{}, err
		}
	}

	remote, err := s.platform.UpdateGroup(ctx, *group.ExternalID, gitlab.UpdateGroupParams{
		Name: name,
		Path: slugify.Make(path),
	})
	if err != nil {
		return models.Group{}, err
	}

	confirmedName := remote.Name
	newSlug := slugify.Make(confirmedName)

	var updated models.Group
	err = s.tx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.groups.Rename(ctx, group.ID, confirmedName, newSlug)
		return err
	})
	if err != nil {
		s.log.Warn("local rename failed after remote group update; remote and local state have drifted",
			zap.String("group_id", group.ID),
			zap.Int64("external_id", *group.ExternalID),
			zap.Error(err))
		return models.Group{}, err
	}
	return updated, nil
}

// Delete removes a linked group remote-first, then deletes the local mirror
// and its membership rows. A local failure after the remote delete is logged
// drift, not rolled back.
func (s *Service) Delete(ctx context.Context, groupID string) error {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.Linked() {
		return apperr.ErrUnknownGroup
	}

	if err := s.platform.DeleteGroup(ctx, *group.ExternalID); err != nil {
		return err
	}

	err = s.tx(ctx, func(ctx context.Context) error {
		if _, err := s.memberships.DeleteByGroup(ctx, group.ID); err != nil {
			return err
		}
		_, err := s.groups.Delete(ctx, group.ID)
		return err
	})
	if err != nil {
		s.log.Warn("local delete failed after remote group delete; remote and local state have drifted",
			zap.String("group_id", group.ID),
			zap.Int64("external_id", *group.ExternalID),
			zap.Error(err))
		return err
	}
	return nil
}

// CheckAvailability normalizes name to a slug and validates it without
// persisting anything: reserved names and taken slugs are rejected, the
// derived slug is returned otherwise. Deterministic for a given name.
func (s *Service) CheckAvailability(ctx context.Context, caller identitysvc.Key, name string) (string, error) {
	if _, err := s.identity.Resolve(ctx, caller); err != nil {
		return "", err
	}

	name = normalize.Name(name)
	slug := slugify.Make(name)
	if slug == "" {
		return "", apperr.ErrBadParameters
	}
	if err := reserved.Assert(name); err != nil {
		return "", err
	}
	if taken, err := s.groups.SlugTaken(ctx, slug); err != nil {
		return "", err
	} else if taken {
		return "", apperr.ErrConflict
	}
	return slug, nil
}
