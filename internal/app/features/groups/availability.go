// internal/app/features/groups/availability.go
package groups

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	identitysvc "github.com/modelcove/groupsync/internal/app/service/identity"
	"github.com/modelcove/groupsync/internal/app/system/authutil"
	"github.com/modelcove/groupsync/internal/app/system/httpjson"
	"github.com/modelcove/groupsync/internal/app/system/normalize"
	"github.com/modelcove/groupsync/internal/app/system/timeouts"
	"github.com/modelcove/groupsync/internal/domain/apperr"
)

// availabilityResponse is the JSON structure for the availability probe.
type availabilityResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ServeAvailability handles GET /groups/availability?name=…
//
// The caller identifies itself with a bearer token or a person_id query
// parameter; the probe validates the proposed name and returns the slug it
// would get, persisting nothing.
func (h *Handler) ServeAvailability(w http.ResponseWriter, r *http.Request) {
	name := normalize.QueryParam(r.URL.Query().Get("name"))
	if name == "" {
		httpjson.WriteError(w, h.Log, apperr.ErrBadParameters)
		return
	}

	var personID *primitive.ObjectID
	if hex := normalize.QueryParam(r.URL.Query().Get("person_id")); hex != "" {
		oid, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			httpjson.WriteError(w, h.Log, apperr.ErrBadParameters)
			return
		}
		personID = &oid
	}

	caller := identitysvc.FromFields(authutil.BearerToken(r), personID, nil, "", "", nil)
	if caller.IsZero() {
		httpjson.WriteError(w, h.Log, apperr.ErrBadParameters)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	slug, err := h.Lifecycle.CheckAvailability(ctx, caller, name)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, availabilityResponse{Name: name, Slug: slug})
}
