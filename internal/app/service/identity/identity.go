// internal/app/service/identity/identity.go

// Package identitysvc resolves one of several identity keys (token, person
// id, account id, username, email, external id) to exactly one local
// account.
package identitysvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/modelcove/groupsync/internal/app/platform/gitlab"
	"github.com/modelcove/groupsync/internal/domain/apperr"
	"github.com/modelcove/groupsync/internal/domain/models"
)

// AccountReader is the slice of the account store the resolver needs.
type AccountReader interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Account, error)
	GetByPersonID(ctx context.Context, personID primitive.ObjectID) (models.Account, error)
	GetByUsername(ctx context.Context, username string) (models.Account, error)
	GetByEmail(ctx context.Context, email string) (models.Account, error)
	GetByExternalID(ctx context.Context, externalID int64) (models.Account, error)
}

// TokenVerifier resolves a caller token to the external platform user it
// belongs to ("who am I").
type TokenVerifier interface {
	CurrentUser(ctx context.Context, token string) (gitlab.User, error)
}

type keyKind int

const (
	kindNone keyKind = iota
	kindToken
	kindPersonID
	kindAccountID
	kindEmail
	kindUsername
	kindExternalID
)

// Key is a tagged identity variant. Exactly one key is carried per value;
// the zero Key resolves to ErrBadParameters. Build Keys with the By*
// constructors or FromFields.
type Key struct {
	kind       keyKind
	token      string
	personID   primitive.ObjectID
	accountID  primitive.ObjectID
	username   string
	email      string
	externalID int64
}

func ByToken(token string) Key                 { return Key{kind: kindToken, token: token} }
func ByPersonID(id primitive.ObjectID) Key     { return Key{kind: kindPersonID, personID: id} }
func ByAccountID(id primitive.ObjectID) Key    { return Key{kind: kindAccountID, accountID: id} }
func ByEmail(email string) Key                 { return Key{kind: kindEmail, email: email} }
func ByUsername(username string) Key           { return Key{kind: kindUsername, username: username} }
func ByExternalID(id int64) Key                { return Key{kind: kindExternalID, externalID: id} }

// IsZero reports whether no key was supplied.
func (k Key) IsZero() bool { return k.kind == kindNone }

// String names the key variant without leaking the token value.
func (k Key) String() string {
	switch k.kind {
	case kindToken:
		return "token"
	case kindPersonID:
		return "person_id=" + k.personID.Hex()
	case kindAccountID:
		return "account_id=" + k.accountID.Hex()
	case kindEmail:
		return "email=" + k.email
	case kindUsername:
		return "username=" + k.username
	case kindExternalID:
		return fmt.Sprintf("external_id=%d", k.externalID)
	}
	return "none"
}

// FromFields builds a Key from several optional fields, applying the fixed
// precedence token > personID > accountID > email > username > externalID.
// Call sites are expected to supply only one, but precedence decides when
// more than one arrives.
func FromFields(token string, personID, accountID *primitive.ObjectID, email, username string, externalID *int64) Key {
	switch {
	case token != "":
		return ByToken(token)
	case personID != nil:
		return ByPersonID(*personID)
	case accountID != nil:
		return ByAccountID(*accountID)
	case email != "":
		return ByEmail(email)
	case username != "":
		return ByUsername(username)
	case externalID != nil:
		return ByExternalID(*externalID)
	}
	return Key{}
}

// Resolver maps an identity Key to the unique matching local account.
type Resolver struct {
	accounts AccountReader
	platform TokenVerifier
	log      *zap.Logger
}

func NewResolver(accounts AccountReader, platform TokenVerifier, log *zap.Logger) *Resolver {
	return &Resolver{accounts: accounts, platform: platform, log: log}
}

// Resolve returns the account the key identifies. Token keys are verified
// against the platform first; a token the platform rejects, or one that maps
// to no local account, fails with IncorrectCredentials. All other keys fail
// with AccountNotFound when nothing matches.
func (r *Resolver) Resolve(ctx context.Context, k Key) (models.Account, error) {
	switch k.kind {
	case kindToken:
		remote, err := r.platform.CurrentUser(ctx, k.token)
		if err != nil {
			r.log.Debug("token verification failed", zap.Error(err))
			return models.Account{}, apperr.ErrIncorrectCredentials
		}
		acct, err := r.accounts.GetByExternalID(ctx, remote.ID)
		if err != nil {
			if apperr.IsNotFound(err) {
				return models.Account{}, apperr.ErrIncorrectCredentials
			}
			return models.Account{}, err
		}
		return acct, nil
	case kindPersonID:
		return r.accounts.GetByPersonID(ctx, k.personID)
	case kindAccountID:
		return r.accounts.GetByID(ctx, k.accountID)
	case kindEmail:
		return r.accounts.GetByEmail(ctx, k.email)
	case kindUsername:
		return r.accounts.GetByUsername(ctx, k.username)
	case kindExternalID:
		return r.accounts.GetByExternalID(ctx, k.externalID)
	}
	return models.Account{}, apperr.ErrBadParameters
}
