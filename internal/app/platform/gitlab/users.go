// internal/app/platform/gitlab/users.go
package gitlab

import (
	"context"
	"fmt"

	"github.com/modelcove/groupsync/internal/domain/apperr"
)

// User is the platform's user resource.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	State    string `json:"state"`
}

// UserGroup is an entry of a user's group listing.
type UserGroup struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	FullPath string `json:"full_path"`
}

// CurrentUser resolves the user a token belongs to ("who am I"). The call
// authenticates with the caller's token, not the admin token; a rejected
// token surfaces as IncorrectCredentials.
func (c *Client) CurrentUser(ctx context.Context, token string) (User, error) {
	var u User
	if err := c.do(ctx, "GET", "/user", nil, &u, token, nil); err != nil {
		return User{}, err
	}
	return u, nil
}

// GetUser loads a user by its platform id (admin scope).
func (c *Client) GetUser(ctx context.Context, userID int64) (User, error) {
	var u User
	path := fmt.Sprintf("/users/%d", userID)
	if err := c.do(ctx, "GET", path, nil, &u, "", apperr.ErrUserNotFound); err != nil {
		return User{}, err
	}
	return u, nil
}

// ListUserGroups lists the groups a user belongs to on the platform
// (admin scope).
func (c *Client) ListUserGroups(ctx context.Context, userID int64) ([]UserGroup, error) {
	var groups []UserGroup
	path := fmt.Sprintf("/users/%d/groups", userID)
	if err := c.do(ctx, "GET", path, nil, &groups, "", apperr.ErrUserNotFound); err != nil {
		return nil, err
	}
	return groups, nil
}
