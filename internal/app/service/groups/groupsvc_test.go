package groupsvc_test

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/modelcove/groupsync/internal/app/platform/gitlab"
	groupsvc "github.com/modelcove/groupsync/internal/app/service/groups"
	identitysvc "github.com/modelcove/groupsync/internal/app/service/identity"
	"github.com/modelcove/groupsync/internal/app/system/txn"
	"github.com/modelcove/groupsync/internal/domain/apperr"
	"github.com/modelcove/groupsync/internal/domain/models"
)

type fakeGroupStore struct {
	byID     map[string]models.Group
	byName   map[string]models.Group
	slugs    map[string]bool
	created  []models.Group
	deleted  []string
	renamed  map[string][2]string // id -> {name, slug}
	createID string
}

func newFakeGroupStore() *fakeGroupStore {
	return &fakeGroupStore{
		byID:     map[string]models.Group{},
		byName:   map[string]models.Group{},
		slugs:    map[string]bool{},
		renamed:  map[string][2]string{},
		createID: "11111111-2222-3333-4444-555555555555",
	}
}

func (f *fakeGroupStore) GetByID(_ context.Context, id string) (models.Group, error) {
	if g, ok := f.byID[id]; ok {
		return g, nil
	}
	return models.Group{}, apperr.ErrGroupNotFound
}

func (f *fakeGroupStore) GetByName(_ context.Context, name string) (models.Group, error) {
	if g, ok := f.byName[name]; ok {
		return g, nil
	}
	return models.Group{}, apperr.ErrGroupNotFound
}

func (f *fakeGroupStore) SlugTaken(_ context.Context, slug string) (bool, error) {
	return f.slugs[slug], nil
}

func (f *fakeGroupStore) Create(_ context.Context, g models.Group) (models.Group, error) {
	g.ID = f.createID
	f.created = append(f.created, g)
	f.byID[g.ID] = g
	f.byName[g.Name] = g
	f.slugs[g.Slug] = true
	return g, nil
}

func (f *fakeGroupStore) Rename(_ context.Context, id, name, slug string) (models.Group, error) {
	g, ok := f.byID[id]
	if !ok {
		return models.Group{}, apperr.ErrGroupNotFound
	}
	f.renamed[id] = [2]string{name, slug}
	g.Name = name
	g.Slug = slug
	f.byID[id] = g
	return g, nil
}

func (f *fakeGroupStore) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := f.byID[id]; !ok {
		return 0, nil
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return 1, nil
}

type fakeMemberships struct {
	upserts []string // personID.Hex() + "/" + groupID
	cleared []string
}

func (f *fakeMemberships) Upsert(_ context.Context, personID primitive.ObjectID, groupID string, level models.AccessLevel) error {
	f.upserts = append(f.upserts, personID.Hex()+"/"+groupID)
	return nil
}

func (f *fakeMemberships) DeleteByGroup(_ context.Context, groupID string) (int64, error) {
	f.cleared = append(f.cleared, groupID)
	return 1, nil
}

type fakePlatform struct {
	nextID   int64
	created  []gitlab.CreateGroupParams
	updated  []gitlab.UpdateGroupParams
	deleted  []int64
	failWith error

	// confirmedName overrides the echoed name on UpdateGroup when set.
	confirmedName string
}

func (f *fakePlatform) CreateGroup(_ context.Context, p gitlab.CreateGroupParams) (gitlab.Group, error) {
	if f.failWith != nil {
		return gitlab.Group{}, f.failWith
	}
	f.created = append(f.created, p)
	f.nextID++
	return gitlab.Group{ID: f.nextID, Name: p.Name, Path: p.Path, Visibility: p.Visibility}, nil
}

func (f *fakePlatform) UpdateGroup(_ context.Context, groupID int64, p gitlab.UpdateGroupParams) (gitlab.Group, error) {
	if f.failWith != nil {
		return gitlab.Group{}, f.failWith
	}
	f.updated = append(f.updated, p)
	name := p.Name
	if f.confirmedName != "" {
		name = f.confirmedName
	}
	return gitlab.Group{ID: groupID, Name: name, Path: p.Path}, nil
}

func (f *fakePlatform) DeleteGroup(_ context.Context, groupID int64) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.deleted = append(f.deleted, groupID)
	return nil
}

type fakeResolver struct {
	acct models.Account
	err  error
}

func (f *fakeResolver) Resolve(_ context.Context, _ identitysvc.Key) (models.Account, error) {
	return f.acct, f.err
}

type fakeNotifier struct {
	changed []primitive.ObjectID
}

func (f *fakeNotifier) UserChanged(id primitive.ObjectID) {
	f.changed = append(f.changed, id)
}

func owner() models.Account {
	eid := int64(42)
	return models.Account{
		ID:         primitive.NewObjectID(),
		PersonID:   primitive.NewObjectID(),
		ExternalID: &eid,
	}
}

func newService(gs *fakeGroupStore, ms *fakeMemberships, p *fakePlatform, r *fakeResolver, n *fakeNotifier) *groupsvc.Service {
	return groupsvc.New(gs, ms, p, r, n, txn.Direct, zap.NewNop())
}

func TestCreateGroup(t *testing.T) {
	gs := newFakeGroupStore()
	ms := &fakeMemberships{}
	p := &fakePlatform{}
	acct := owner()
	n := &fakeNotifier{}
	svc := newService(gs, ms, p, &fakeResolver{acct: acct}, n)

	group, err := svc.Create(context.Background(), groupsvc.CreateParams{
		OwnerToken: "glpat-ok",
		Name:       "My Team",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if group.Slug != "my-team" {
		t.Errorf("slug: got %q, want %q", group.Slug, "my-team")
	}
	if !group.Linked() {
		t.Error("created group should be linked to the platform")
	}
	if group.Visibility != models.VisibilityPrivate {
		t.Errorf("visibility should default to private, got %q", group.Visibility)
	}
	if len(p.created) != 1 {
		t.Fatalf("platform CreateGroup calls: got %d, want 1", len(p.created))
	}
	if len(ms.upserts) != 1 {
		t.Fatalf("owner membership upserts: got %d, want 1", len(ms.upserts))
	}
	if len(n.changed) != 1 || n.changed[0] != acct.ID {
		t.Error("owner refresh signal not fired")
	}
}

func TestCreateGroupNameConflict(t *testing.T) {
	gs := newFakeGroupStore()
	gs.byName["My Team"] = models.Group{ID: "existing", Name: "My Team"}
	p := &fakePlatform{}
	svc := newService(gs, &fakeMemberships{}, p, &fakeResolver{acct: owner()}, &fakeNotifier{})

	_, err := svc.Create(context.Background(), groupsvc.CreateParams{OwnerToken: "t", Name: "My Team"})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(p.created) != 0 {
		t.Error("platform must not be called on local conflict")
	}
}

func TestCreateGroupSlugConflict(t *testing.T) {
	gs := newFakeGroupStore()
	gs.slugs["my-team"] = true
	svc := newService(gs, &fakeMemberships{}, &fakePlatform{}, &fakeResolver{acct: owner()}, &fakeNotifier{})

	_, err := svc.Create(context.Background(), groupsvc.CreateParams{OwnerToken: "t", Name: "My Team"})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCreateGroupReservedName(t *testing.T) {
	svc := newService(newFakeGroupStore(), &fakeMemberships{}, &fakePlatform{}, &fakeResolver{acct: owner()}, &fakeNotifier{})

	_, err := svc.Create(context.Background(), groupsvc.CreateParams{OwnerToken: "t", Name: "Admin"})
	if !errors.Is(err, apperr.ErrNameReserved) {
		t.Fatalf("expected ErrNameReserved, got %v", err)
	}
}

func TestCreateGroupBadToken(t *testing.T) {
	svc := newService(newFakeGroupStore(), &fakeMemberships{}, &fakePlatform{}, &fakeResolver{err: apperr.ErrIncorrectCredentials}, &fakeNotifier{})

	_, err := svc.Create(context.Background(), groupsvc.CreateParams{OwnerToken: "nope", Name: "My Team"})
	if !errors.Is(err, apperr.ErrIncorrectCredentials) {
		t.Fatalf("expected ErrIncorrectCredentials, got %v", err)
	}
}

func TestCreateGroupInvalidVisibility(t *testing.T) {
	svc := newService(newFakeGroupStore(), &fakeMemberships{}, &fakePlatform{}, &fakeResolver{acct: owner()}, &fakeNotifier{})

	_, err := svc.Create(context.Background(), groupsvc.CreateParams{OwnerToken: "t", Name: "My Team", Visibility: "secret"})
	if !errors.Is(err, apperr.ErrBadParameters) {
		t.Fatalf("expected ErrBadParameters, got %v", err)
	}
}

func TestUpdateGroupRecomputesSlug(t *testing.T) {
	gs := newFakeGroupStore()
	eid := int64(9)
	gs.byID["g1"] = models.Group{ID: "g1", Name: "Old Name", Slug: "old-name", ExternalID: &eid}
	p := &fakePlatform{confirmedName: "Renamed Team"}
	svc := newService(gs, &fakeMemberships{}, p, &fakeResolver{acct: owner()}, &fakeNotifier{})

	updated, err := svc.Update(context.Background(), "g1", "Renamed Team", "")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	// Slug follows the platform-confirmed name, never the old one.
	if updated.Slug != "renamed-team" {
		t.Errorf("slug: got %q, want %q", updated.Slug, "renamed-team")
	}
	if updated.Name != "Renamed Team" {
		t.Errorf("name: got %q, want %q", updated.Name, "Renamed Team")
	}
}

func TestUpdateUnlinkedGroup(t *testing.T) {
	gs := newFakeGroupStore()
	gs.byID["g1"] = models.Group{ID: "g1", Name: "Local Only"}
	svc := newService(gs, &fakeMemberships{}, &fakePlatform{}, &fakeResolver{acct: owner()}, &fakeNotifier{})

	_, err := svc.Update(context.Background(), "g1", "New Name", "")
	if !errors.Is(err, apperr.ErrUnknownGroup) {
		t.Fatalf("expected ErrUnknownGroup, got %v", err)
	}
}

func TestDeleteGroup(t *testing.T) {
	gs := newFakeGroupStore()
	eid := int64(9)
	gs.byID["g1"] = models.Group{ID: "g1", Name: "Doomed", ExternalID: &eid}
	ms := &fakeMemberships{}
	p := &fakePlatform{}
	svc := newService(gs, ms, p, &fakeResolver{acct: owner()}, &fakeNotifier{})

	if err := svc.Delete(context.Background(), "g1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(p.deleted) != 1 || p.deleted[0] != 9 {
		t.Error("remote delete not performed")
	}
	if len(ms.cleared) != 1 || ms.cleared[0] != "g1" {
		t.Error("membership rows not cleared")
	}
	if len(gs.deleted) != 1 {
		t.Error("local group not deleted")
	}
}

func TestDeleteGroupRemoteFailureKeepsLocal(t *testing.T) {
	gs := newFakeGroupStore()
	eid := int64(9)
	gs.byID["g1"] = models.Group{ID: "g1", ExternalID: &eid}
	p := &fakePlatform{failWith: apperr.ErrAccessDenied}
	svc := newService(gs, &fakeMemberships{}, p, &fakeResolver{acct: owner()}, &fakeNotifier{})

	err := svc.Delete(context.Background(), "g1")
	if !errors.Is(err, apperr.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if len(gs.deleted) != 0 {
		t.Error("local group must survive a failed remote delete")
	}
}

func TestCheckAvailability(t *testing.T) {
	gs := newFakeGroupStore()
	gs.slugs["taken-name"] = true
	svc := newService(gs, &fakeMemberships{}, &fakePlatform{}, &fakeResolver{acct: owner()}, &fakeNotifier{})
	caller := identitysvc.ByToken("t")

	slug, err := svc.CheckAvailability(context.Background(), caller, "Fresh Name")
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if slug != "fresh-name" {
		t.Errorf("slug: got %q, want %q", slug, "fresh-name")
	}

	// Same name, same answer.
	again, err := svc.CheckAvailability(context.Background(), caller, "Fresh Name")
	if err != nil || again != slug {
		t.Errorf("probe is not deterministic: %q vs %q (err %v)", slug, again, err)
	}

	if _, err := svc.CheckAvailability(context.Background(), caller, "Taken Name"); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("taken slug: expected ErrConflict, got %v", err)
	}
	if _, err := svc.CheckAvailability(context.Background(), caller, "API"); !errors.Is(err, apperr.ErrNameReserved) {
		t.Errorf("reserved name: expected ErrNameReserved, got %v", err)
	}
}
