// internal/app/service/members/membersvc.go

// Package membersvc reconciles a group's local membership roster against
// the external platform's roster: list, add, edit, and remove members,
// translating access levels in both directions.
//
// Single-member operations fail fast. Batch operations are best-effort:
// per-item failures are logged, collected into a report, and skipped.
package membersvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/modelcove/groupsync/internal/app/platform/gitlab"
	identitysvc "github.com/modelcove/groupsync/internal/app/service/identity"
	"github.com/modelcove/groupsync/internal/app/system/txn"
	"github.com/modelcove/groupsync/internal/domain/apperr"
	"github.com/modelcove/groupsync/internal/domain/models"
)

// GroupReader is the slice of the group store the synchronizer needs.
type GroupReader interface {
	GetByID(ctx context.Context, id string) (models.Group, error)
}

// AccountReader is the slice of the account store the synchronizer needs.
type AccountReader interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Account, error)
	GetByExternalID(ctx context.Context, externalID int64) (models.Account, error)
}

// MembershipStore is the slice of the membership store the synchronizer needs.
type MembershipStore interface {
	Upsert(ctx context.Context, personID primitive.ObjectID, groupID string, level models.AccessLevel) error
	Remove(ctx context.Context, personID primitive.ObjectID, groupID string) error
	Exists(ctx context.Context, personID primitive.ObjectID, groupID string) (bool, error)
}

// Platform is the slice of the external client the synchronizer needs.
type Platform interface {
	ListGroupMembers(ctx context.Context, groupID int64) ([]gitlab.Member, error)
	AddGroupMember(ctx context.Context, groupID, userID int64, accessLevel int) (gitlab.Member, error)
	EditGroupMember(ctx context.Context, groupID, userID int64, accessLevel int) (gitlab.Member, error)
	RemoveGroupMember(ctx context.Context, groupID, userID int64) error
}

// Resolver resolves identity keys to accounts.
type Resolver interface {
	Resolve(ctx context.Context, k identitysvc.Key) (models.Account, error)
}

// Notifier receives the post-mutation user-information-changed signal.
type Notifier interface {
	UserChanged(accountID primitive.ObjectID)
}

// MemberInput identifies one user in a batch operation, by whichever key is
// present, plus the desired access level (Guest when zero).
type MemberInput struct {
	AccountID  *primitive.ObjectID `json:"account_id,omitempty"`
	Username   string              `json:"username,omitempty"`
	Email      string              `json:"email,omitempty"`
	ExternalID *int64              `json:"external_id,omitempty"`

	AccessLevel models.AccessLevel `json:"access_level,omitempty"`
}

// BatchFailure pairs a failed input with its error.
type BatchFailure struct {
	Input MemberInput
	Err   error
}

// BatchReport tells the caller which batch items succeeded and which
// failed, instead of burying partial failure in logs.
type BatchReport struct {
	Succeeded []models.UserInGroup
	Failed    []BatchFailure
}

// Service is the membership synchronizer.
type Service struct {
	groups      GroupReader
	accounts    AccountReader
	memberships MembershipStore
	platform    Platform
	identity    Resolver
	refresh     Notifier
	tx          txn.Runner
	log         *zap.Logger
}

func New(groups GroupReader, accounts AccountReader, memberships MembershipStore, platform Platform, identity Resolver, refresh Notifier, tx txn.Runner, log *zap.Logger) *Service {
	return &Service{
		groups:      groups,
		accounts:    accounts,
		memberships: memberships,
		platform:    platform,
		identity:    identity,
		refresh:     refresh,
		tx:          tx,
		log:         log,
	}
}

// linkedGroup loads the group and enforces external linkage.
func (s *Service) linkedGroup(ctx context.Context, groupID string) (models.Group, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return models.Group{}, err
	}
	if !group.Linked() {
		return models.Group{}, apperr.ErrUnknownGroup
	}
	return group, nil
}

// List fetches the remote roster and joins it against local accounts.
// Remote members with no local counterpart are dropped silently; order
// follows the remote roster.
func (s *Service) List(ctx context.Context, groupID string) ([]models.UserInGroup, error) {
	group, err := s.linkedGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	remote, err := s.platform.ListGroupMembers(ctx, *group.ExternalID)
	if err != nil {
		return nil, err
	}

	roster := make([]models.UserInGroup, 0, len(remote))
	for _, m := range remote {
		acct, err := s.accounts.GetByExternalID(ctx, m.ID)
		if err != nil {
			if apperr.IsNotFound(err) {
				s.log.Debug("remote member has no local account; dropped from roster",
					zap.String("group_id", group.ID),
					zap.Int64("external_user_id", m.ID))
				continue
			}
			return nil, err
		}
		level, err := models.AccessLevelFromExternal(m.AccessLevel)
		if err != nil {
			s.log.Warn("remote member carries an access level outside the shared scale; dropped from roster",
				zap.String("group_id", group.ID),
				zap.Int64("external_user_id", m.ID),
				zap.Int("external_access_level", m.AccessLevel))
			continue
		}
		roster = append(roster, models.UserInGroup{Account: acct, AccessLevel: level})
	}
	return roster, nil
}

// Add puts the account into the group at level (Guest when zero), mirrors
// the membership locally, fires the refresh hook, and returns the re-fetched
// roster.
func (s *Service) Add(ctx context.Context, groupID string, accountID primitive.ObjectID, level models.AccessLevel) ([]models.UserInGroup, error) {
	if level == 0 {
		level = models.AccessGuest
	}
	acct, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	group, err := s.linkedGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.addResolved(ctx, group, acct, level); err != nil {
		return nil, err
	}
	return s.List(ctx, groupID)
}

// addResolved performs the remote add and the local mirror for an already
// resolved account. Shared by Add and AddBatch.
func (s *Service) addResolved(ctx context.Context, group models.Group, acct models.Account, level models.AccessLevel) error {
	if !acct.Linked() {
		return apperr.ErrUnknownUser
	}
	external, err := models.ExternalAccessLevel(level)
	if err != nil {
		return apperr.ErrBadParameters
	}

	confirmed, err := s.platform.AddGroupMember(ctx, *group.ExternalID, *acct.ExternalID, external)
	if err != nil {
		return err
	}

	// Store the level the platform echoed back, not the requested one.
	stored := level
	if l, err := models.AccessLevelFromExternal(confirmed.AccessLevel); err == nil {
		stored = l
	}

	err = s.tx(ctx, func(ctx context.Context) error {
		return s.memberships.Upsert(ctx, acct.PersonID, group.ID, stored)
	})
	if err != nil {
		s.log.Warn("local membership write failed after remote add; remote and local state have drifted",
			zap.String("group_id", group.ID),
			zap.String("account_id", acct.ID.Hex()),
			zap.Error(err))
		return err
	}

	s.refresh.UserChanged(acct.ID)
	return nil
}

// Edit changes an existing member's access level and returns the re-fetched
// roster.
func (s *Service) Edit(ctx context.Context, groupID string, accountID primitive.ObjectID, level models.AccessLevel) ([]models.UserInGroup, error) {
	if !level.Valid() {
		return nil, apperr.ErrBadParameters
	}
	acct, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	group, err := s.linkedGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !acct.Linked() {
		return nil, apperr.ErrUnknownUser
	}
	external, err := models.ExternalAccessLevel(level)
	if err != nil {
		return nil, apperr.ErrBadParameters
	}

	confirmed, err := s.platform.EditGroupMember(ctx, *group.ExternalID, *acct.ExternalID, external)
	if err != nil {
		return nil, err
	}
	stored := level
	if l, err := models.AccessLevelFromExternal(confirmed.AccessLevel); err == nil {
		stored = l
	}

	err = s.tx(ctx, func(ctx context.Context) error {
		return s.memberships.Upsert(ctx, acct.PersonID, group.ID, stored)
	})
	if err != nil {
		return nil, err
	}

	s.refresh.UserChanged(acct.ID)
	return s.List(ctx, groupID)
}

// Remove takes the account out of the group, clears the local membership
// row, fires the refresh hook, and returns the re-fetched roster.
func (s *Service) Remove(ctx context.Context, groupID string, accountID primitive.ObjectID) ([]models.UserInGroup, error) {
	acct, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	group, err := s.linkedGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.removeResolved(ctx, group, acct); err != nil {
		return nil, err
	}
	return s.List(ctx, groupID)
}

func (s *Service) removeResolved(ctx context.Context, group models.Group, acct models.Account) error {
	if !acct.Linked() {
		return apperr.ErrUnknownUser
	}

	if err := s.platform.RemoveGroupMember(ctx, *group.ExternalID, *acct.ExternalID); err != nil {
		return err
	}

	err := s.tx(ctx, func(ctx context.Context) error {
		return s.memberships.Remove(ctx, acct.PersonID, group.ID)
	})
	if err != nil {
		s.log.Warn("local membership delete failed after remote remove; remote and local state have drifted",
			zap.String("group_id", group.ID),
			zap.String("account_id", acct.ID.Hex()),
			zap.Error(err))
		return err
	}

	s.refresh.UserChanged(acct.ID)
	return nil
}

// AddBatch is the best-effort batch variant of Add. Each entry resolves
// independently (account id, then username, then email); failed entries are
// logged, collected in the report, and skipped. Returns the refreshed
// roster alongside the report.
func (s *Service) AddBatch(ctx context.Context, groupID string, inputs []MemberInput) ([]models.UserInGroup, BatchReport, error) {
	group, err := s.linkedGroup(ctx, groupID)
	if err != nil {
		return nil, BatchReport{}, err
	}

	var report BatchReport
	for _, in := range inputs {
		// Batch adds resolve by account id, then username, then email.
		var key identitysvc.Key
		switch {
		case in.AccountID != nil:
			key = identitysvc.ByAccountID(*in.AccountID)
		case in.Username != "":
			key = identitysvc.ByUsername(in.Username)
		case in.Email != "":
			key = identitysvc.ByEmail(in.Email)
		}
		acct, err := s.identity.Resolve(ctx, key)
		if err != nil {
			s.recordFailure(&report, in, err, "batch add: entry did not resolve")
			continue
		}
		level := in.AccessLevel
		if level == 0 {
			level = models.AccessGuest
		}
		if err := s.addResolved(ctx, group, acct, level); err != nil {
			s.recordFailure(&report, in, err, "batch add: remote add failed")
			continue
		}
		report.Succeeded = append(report.Succeeded, models.UserInGroup{Account: acct, AccessLevel: level})
	}

	roster, err := s.List(ctx, groupID)
	if err != nil {
		return nil, report, err
	}
	return roster, report, nil
}

// RemoveBatch is the best-effort batch variant of Remove. Entries resolve
// by external id, then email, then username (first present wins); failures
// are logged, collected, and skipped.
func (s *Service) RemoveBatch(ctx context.Context, groupID string, inputs []MemberInput) ([]models.UserInGroup, BatchReport, error) {
	group, err := s.linkedGroup(ctx, groupID)
	if err != nil {
		return nil, BatchReport{}, err
	}

	var report BatchReport
	for _, in := range inputs {
		var key identitysvc.Key
		switch {
		case in.ExternalID != nil:
			key = identitysvc.ByExternalID(*in.ExternalID)
		case in.Email != "":
			key = identitysvc.ByEmail(in.Email)
		case in.Username != "":
			key = identitysvc.ByUsername(in.Username)
		}
		acct, err := s.identity.Resolve(ctx, key)
		if err != nil {
			s.recordFailure(&report, in, err, "batch remove: entry did not resolve")
			continue
		}
		if err := s.removeResolved(ctx, group, acct); err != nil {
			s.recordFailure(&report, in, err, "batch remove: remote remove failed")
			continue
		}
		report.Succeeded = append(report.Succeeded, models.UserInGroup{Account: acct})
	}

	roster, err := s.List(ctx, groupID)
	if err != nil {
		return nil, report, err
	}
	return roster, report, nil
}

func (s *Service) recordFailure(report *BatchReport, in MemberInput, err error, msg string) {
	s.log.Warn(msg,
		zap.String("username", in.Username),
		zap.String("email", in.Email),
		zap.Error(err))
	report.Failed = append(report.Failed, BatchFailure{Input: in, Err: err})
}

// IsMember reports whether the identity belongs to the group. It never
// returns an error: any resolution or lookup failure reads as "not a
// member", so callers cannot distinguish "denied" from "error" here.
func (s *Service) IsMember(ctx context.Context, groupID string, key identitysvc.Key) bool {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return false
	}
	acct, err := s.identity.Resolve(ctx, key)
	if err != nil {
		return false
	}
	ok, err := s.memberships.Exists(ctx, acct.PersonID, group.ID)
	if err != nil {
		return false
	}
	return ok
}
