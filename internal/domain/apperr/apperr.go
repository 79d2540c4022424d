// internal/domain/apperr/apperr.go

// Package apperr defines the error taxonomy shared by services, stores, the
// platform client, and the HTTP layer.
//
// Propagation policy:
//   - Single-entity operations fail fast with the first error.
//   - Batch operations collect per-item errors into a report and keep going.
//   - Membership probes (IsMember) collapse every error into "not a member".
package apperr

import "errors"

var (
	// ErrBadParameters means the input was malformed or insufficient, e.g.
	// an identity lookup with no key supplied.
	ErrBadParameters = errors.New("bad parameters")

	// ErrGroupNotFound means no local group matched the lookup.
	ErrGroupNotFound = errors.New("group not found")

	// ErrUserNotFound means no local person matched the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrAccountNotFound means no local account matched the lookup.
	ErrAccountNotFound = errors.New("account not found")

	// ErrUnknownGroup means the group exists locally but is not linked to
	// an external platform group, so remote operations cannot proceed.
	ErrUnknownGroup = errors.New("group is not linked to the external platform")

	// ErrUnknownUser means the account exists locally but is not linked to
	// an external platform user.
	ErrUnknownUser = errors.New("user is not linked to the external platform")

	// ErrConflict means a name/slug collision (code: GroupAlreadyExists).
	ErrConflict = errors.New("group already exists")

	// ErrNameReserved means the proposed name collides with a reserved
	// platform path word.
	ErrNameReserved = errors.New("name is reserved")

	// ErrAccessDenied means the external platform refused the operation for
	// the presented credentials.
	ErrAccessDenied = errors.New("access denied")

	// ErrIncorrectCredentials means a token did not resolve to a known
	// account, either remotely or locally.
	ErrIncorrectCredentials = errors.New("incorrect credentials")
)

// IsNotFound reports whether err is one of the not-found variants.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrGroupNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrAccountNotFound)
}
