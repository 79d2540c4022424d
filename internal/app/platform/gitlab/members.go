// internal/app/platform/gitlab/members.go
package gitlab

import (
	"context"
	"fmt"

	"github.com/modelcove/groupsync/internal/domain/apperr"
)

// Member is one entry of a group's membership roster. AccessLevel is on the
// platform's numeric scale (10..50).
type Member struct {
	ID          int64  `json:"id"` // platform user id
	Username    string `json:"username"`
	Name        string `json:"name"`
	AccessLevel int    `json:"access_level"`
}

type memberParams struct {
	UserID      int64 `json:"user_id"`
	AccessLevel int   `json:"access_level"`
}

type memberLevelParams struct {
	AccessLevel int `json:"access_level"`
}

// ListGroupMembers returns the group's full roster (admin scope). Order is
// whatever the platform returns; callers preserve it.
func (c *Client) ListGroupMembers(ctx context.Context, groupID int64) ([]Member, error) {
	var members []Member
	path := fmt.Sprintf("/groups/%d/members/all", groupID)
	if err := c.do(ctx, "GET", path, nil, &members, "", apperr.ErrGroupNotFound); err != nil {
		return nil, err
	}
	return members, nil
}

// AddGroupMember adds a user to a group at the given platform access level.
func (c *Client) AddGroupMember(ctx context.Context, groupID, userID int64, accessLevel int) (Member, error) {
	var m Member
	path := fmt.Sprintf("/groups/%d/members", groupID)
	body := memberParams{UserID: userID, AccessLevel: accessLevel}
	if err := c.do(ctx, "POST", path, body, &m, "", apperr.ErrGroupNotFound); err != nil {
		return Member{}, err
	}
	return m, nil
}

// EditGroupMember changes an existing member's access level.
func (c *Client) EditGroupMember(ctx context.Context, groupID, userID int64, accessLevel int) (Member, error) {
	var m Member
	path := fmt.Sprintf("/groups/%d/members/%d", groupID, userID)
	body := memberLevelParams{AccessLevel: accessLevel}
	if err := c.do(ctx, "PUT", path, body, &m, "", apperr.ErrUserNotFound); err != nil {
		return Member{}, err
	}
	return m, nil
}

// RemoveGroupMember removes a user from a group.
func (c *Client) RemoveGroupMember(ctx context.Context, groupID, userID int64) error {
	path := fmt.Sprintf("/groups/%d/members/%d", groupID, userID)
	return c.do(ctx, "DELETE", path, nil, nil, "", apperr.ErrUserNotFound)
}
