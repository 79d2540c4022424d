// internal/domain/models/useringroup.go
package models

// UserInGroup is the transient (Account, AccessLevel) projection returned by
// membership operations. It is never persisted; the authoritative join lives
// in the memberships collection.
type UserInGroup struct {
	Account     Account     `json:"account"`
	AccessLevel AccessLevel `json:"access_level"`
}
