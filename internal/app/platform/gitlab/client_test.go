package gitlab_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/modelcove/groupsync/internal/app/platform/gitlab"
	"github.com/modelcove/groupsync/internal/domain/apperr"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *gitlab.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := gitlab.New(srv.URL, "admin-token", zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestCreateGroup(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/v4/groups" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer admin-token" {
			t.Errorf("Authorization: got %q, want admin token", got)
		}
		var p gitlab.CreateGroupParams
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(gitlab.Group{ID: 77, Name: p.Name, Path: p.Path, Visibility: p.Visibility})
	})

	g, err := c.CreateGroup(context.Background(), gitlab.CreateGroupParams{Name: "My Team", Path: "my-team", Visibility: "private"})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if g.ID != 77 || g.Path != "my-team" {
		t.Errorf("unexpected group: %+v", g)
	}
}

func TestCurrentUserSendsCallerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v4/user" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer caller-token" {
			t.Errorf("Authorization: got %q, want caller token", got)
		}
		json.NewEncoder(w).Encode(gitlab.User{ID: 5, Username: "casey"})
	})

	u, err := c.CurrentUser(context.Background(), "caller-token")
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if u.ID != 5 {
		t.Errorf("user id: got %d, want 5", u.ID)
	}
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, apperr.ErrBadParameters},
		{http.StatusUnauthorized, apperr.ErrIncorrectCredentials},
		{http.StatusForbidden, apperr.ErrAccessDenied},
		{http.StatusNotFound, apperr.ErrGroupNotFound},
		{http.StatusConflict, apperr.ErrConflict},
	}
	for _, tc := range cases {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", tc.status)
		})
		_, err := c.CreateGroup(context.Background(), gitlab.CreateGroupParams{Name: "x", Path: "x"})
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: got %v, want %v", tc.status, err, tc.want)
		}
	}
}

func TestGetUserNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	_, err := c.GetUser(context.Background(), 12345)
	if !errors.Is(err, apperr.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMemberCalls(t *testing.T) {
	var gotPath, gotMethod string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		switch {
		case r.Method == "GET":
			json.NewEncoder(w).Encode([]gitlab.Member{{ID: 5, AccessLevel: 30}})
		case r.Method == "DELETE":
			w.WriteHeader(http.StatusNoContent)
		default:
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			level, _ := body["access_level"].(float64)
			json.NewEncoder(w).Encode(gitlab.Member{ID: 5, AccessLevel: int(level)})
		}
	})

	members, err := c.ListGroupMembers(context.Background(), 9)
	if err != nil || len(members) != 1 {
		t.Fatalf("ListGroupMembers: %v (%d members)", err, len(members))
	}
	if gotPath != "/api/v4/groups/9/members/all" {
		t.Errorf("list path: %s", gotPath)
	}

	m, err := c.AddGroupMember(context.Background(), 9, 5, 30)
	if err != nil || m.AccessLevel != 30 {
		t.Fatalf("AddGroupMember: %v (%+v)", err, m)
	}
	if gotPath != "/api/v4/groups/9/members" || gotMethod != "POST" {
		t.Errorf("add: %s %s", gotMethod, gotPath)
	}

	m, err = c.EditGroupMember(context.Background(), 9, 5, 40)
	if err != nil || m.AccessLevel != 40 {
		t.Fatalf("EditGroupMember: %v (%+v)", err, m)
	}
	if gotPath != "/api/v4/groups/9/members/5" || gotMethod != "PUT" {
		t.Errorf("edit: %s %s", gotMethod, gotPath)
	}

	if err := c.RemoveGroupMember(context.Background(), 9, 5); err != nil {
		t.Fatalf("RemoveGroupMember: %v", err)
	}
	if gotPath != "/api/v4/groups/9/members/5" || gotMethod != "DELETE" {
		t.Errorf("remove: %s %s", gotMethod, gotPath)
	}
}
