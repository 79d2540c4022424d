// internal/app/platform/gitlab/groups.go
package gitlab

import (
	"context"
	"fmt"

	"github.com/modelcove/groupsync/internal/domain/apperr"
)

// Group is the platform's group resource.
type Group struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	FullPath    string `json:"full_path"`
	Description string `json:"description"`
	Visibility  string `json:"visibility"`
}

// CreateGroupParams are the fields sent when creating a group.
type CreateGroupParams struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
	Visibility  string `json:"visibility,omitempty"`
}

// UpdateGroupParams are the fields sent when updating a group. Empty fields
// are omitted, leaving the remote value untouched.
type UpdateGroupParams struct {
	Name string `json:"name,omitempty"`
	Path string `json:"path,omitempty"`
}

// CreateGroup creates a group on the platform (admin scope).
func (c *Client) CreateGroup(ctx context.Context, p CreateGroupParams) (Group, error) {
	var g Group
	if err := c.do(ctx, "POST", "/groups", p, &g, "", nil); err != nil {
		return Group{}, err
	}
	return g, nil
}

// UpdateGroup updates a group and returns the remote-confirmed state.
func (c *Client) UpdateGroup(ctx context.Context, groupID int64, p UpdateGroupParams) (Group, error) {
	var g Group
	path := fmt.Sprintf("/groups/%d", groupID)
	if err := c.do(ctx, "PUT", path, p, &g, "", apperr.ErrGroupNotFound); err != nil {
		return Group{}, err
	}
	return g, nil
}

// DeleteGroup removes a group from the platform.
func (c *Client) DeleteGroup(ctx context.Context, groupID int64) error {
	path := fmt.Sprintf("/groups/%d", groupID)
	return c.do(ctx, "DELETE", path, nil, nil, "", apperr.ErrGroupNotFound)
}
