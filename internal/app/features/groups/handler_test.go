package groups_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	groupsfeature "github.com/modelcove/groupsync/internal/app/features/groups"
	groupsvc "github.com/modelcove/groupsync/internal/app/service/groups"
	identitysvc "github.com/modelcove/groupsync/internal/app/service/identity"
	"github.com/modelcove/groupsync/internal/domain/apperr"
	"github.com/modelcove/groupsync/internal/domain/models"
	"github.com/modelcove/groupsync/internal/testutil"
)

type fakeLifecycle struct {
	createParams groupsvc.CreateParams
	createErr    error
	updateErr    error
	deleteErr    error
	deletedID    string
	availSlug    string
	availErr     error
}

func (f *fakeLifecycle) Create(_ context.Context, p groupsvc.CreateParams) (models.Group, error) {
	f.createParams = p
	if f.createErr != nil {
		return models.Group{}, f.createErr
	}
	eid := int64(7)
	return models.Group{ID: "new-id", Name: p.Name, Slug: "my-team", ExternalID: &eid, Visibility: models.VisibilityPrivate}, nil
}

func (f *fakeLifecycle) Update(_ context.Context, groupID, name, path string) (models.Group, error) {
	if f.updateErr != nil {
		return models.Group{}, f.updateErr
	}
	return models.Group{ID: groupID, Name: name, Slug: path}, nil
}

func (f *fakeLifecycle) Delete(_ context.Context, groupID string) error {
	f.deletedID = groupID
	return f.deleteErr
}

func (f *fakeLifecycle) CheckAvailability(_ context.Context, _ identitysvc.Key, _ string) (string, error) {
	return f.availSlug, f.availErr
}

func newHandler(svc *fakeLifecycle) *groupsfeature.Handler {
	return groupsfeature.NewHandler(svc, zap.NewNop())
}

func TestHandleCreate(t *testing.T) {
	svc := &fakeLifecycle{}
	h := newHandler(svc)

	req := httptest.NewRequest("POST", "/groups", strings.NewReader(`{"name":"My Team","visibility":"private"}`))
	req.Header.Set("Authorization", "Bearer glpat-owner")
	rec := testutil.NewRecorder()

	h.HandleCreate(rec, req)

	rec.AssertStatus(t, http.StatusCreated)
	if svc.createParams.OwnerToken != "glpat-owner" {
		t.Errorf("owner token: got %q", svc.createParams.OwnerToken)
	}
	if svc.createParams.Name != "My Team" {
		t.Errorf("name: got %q", svc.createParams.Name)
	}

	var body models.Group
	rec.DecodeJSON(t, &body)
	if body.Slug != "my-team" {
		t.Errorf("slug: got %q", body.Slug)
	}
}

func TestHandleCreateMissingToken(t *testing.T) {
	h := newHandler(&fakeLifecycle{})

	req := httptest.NewRequest("POST", "/groups", strings.NewReader(`{"name":"My Team"}`))
	rec := testutil.NewRecorder()

	h.HandleCreate(rec, req)
	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestHandleCreateBadBody(t *testing.T) {
	h := newHandler(&fakeLifecycle{})

	req := httptest.NewRequest("POST", "/groups", strings.NewReader(`{not json`))
	req.Header.Set("Authorization", "Bearer t")
	rec := testutil.NewRecorder()

	h.HandleCreate(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleCreateConflict(t *testing.T) {
	h := newHandler(&fakeLifecycle{createErr: apperr.ErrConflict})

	req := httptest.NewRequest("POST", "/groups", strings.NewReader(`{"name":"My Team"}`))
	req.Header.Set("Authorization", "Bearer t")
	rec := testutil.NewRecorder()

	h.HandleCreate(rec, req)
	rec.AssertStatus(t, http.StatusConflict)
}

func TestHandleUpdate(t *testing.T) {
	h := newHandler(&fakeLifecycle{})

	req := httptest.NewRequest("PATCH", "/groups/g1", strings.NewReader(`{"name":"Renamed"}`))
	req = testutil.WithChiURLParam(req, "id", "g1")
	rec := testutil.NewRecorder()

	h.HandleUpdate(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var body models.Group
	rec.DecodeJSON(t, &body)
	if body.ID != "g1" || body.Name != "Renamed" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestHandleUpdateUnlinked(t *testing.T) {
	h := newHandler(&fakeLifecycle{updateErr: apperr.ErrUnknownGroup})

	req := httptest.NewRequest("PATCH", "/groups/g1", strings.NewReader(`{"name":"Renamed"}`))
	req = testutil.WithChiURLParam(req, "id", "g1")
	rec := testutil.NewRecorder()

	h.HandleUpdate(rec, req)
	rec.AssertStatus(t, http.StatusUnprocessableEntity)
}

func TestHandleDelete(t *testing.T) {
	svc := &fakeLifecycle{}
	h := newHandler(svc)

	req := httptest.NewRequest("DELETE", "/groups/g1", nil)
	req = testutil.WithChiURLParam(req, "id", "g1")
	rec := testutil.NewRecorder()

	h.HandleDelete(rec, req)

	rec.AssertStatus(t, http.StatusNoContent)
	if svc.deletedID != "g1" {
		t.Errorf("deleted id: got %q", svc.deletedID)
	}
}

func TestHandleDeleteNotFound(t *testing.T) {
	h := newHandler(&fakeLifecycle{deleteErr: apperr.ErrGroupNotFound})

	req := httptest.NewRequest("DELETE", "/groups/missing", nil)
	req = testutil.WithChiURLParam(req, "id", "missing")
	rec := testutil.NewRecorder()

	h.HandleDelete(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestServeAvailability(t *testing.T) {
	h := newHandler(&fakeLifecycle{availSlug: "my-team"})

	req := httptest.NewRequest("GET", "/groups/availability?name=My+Team", nil)
	req.Header.Set("Authorization", "Bearer t")
	rec := testutil.NewRecorder()

	h.ServeAvailability(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var body struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	rec.DecodeJSON(t, &body)
	if body.Slug != "my-team" || body.Name != "My Team" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestServeAvailabilityTaken(t *testing.T) {
	h := newHandler(&fakeLifecycle{availErr: apperr.ErrConflict})

	req := httptest.NewRequest("GET", "/groups/availability?name=Taken", nil)
	req.Header.Set("Authorization", "Bearer t")
	rec := testutil.NewRecorder()

	h.ServeAvailability(rec, req)
	rec.AssertStatus(t, http.StatusConflict)
}

func TestServeAvailabilityMissingName(t *testing.T) {
	h := newHandler(&fakeLifecycle{})

	req := httptest.NewRequest("GET", "/groups/availability", nil)
	req.Header.Set("Authorization", "Bearer t")
	rec := testutil.NewRecorder()

	h.ServeAvailability(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestServeAvailabilityNoIdentity(t *testing.T) {
	h := newHandler(&fakeLifecycle{availSlug: "x"})

	req := httptest.NewRequest("GET", "/groups/availability?name=X", nil)
	rec := testutil.NewRecorder()

	h.ServeAvailability(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}
