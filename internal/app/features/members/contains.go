// internal/app/features/members/contains.go
package members

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	identitysvc "github.com/modelcove/groupsync/internal/app/service/identity"
	"github.com/modelcove/groupsync/internal/app/system/authutil"
	"github.com/modelcove/groupsync/internal/app/system/httpjson"
	"github.com/modelcove/groupsync/internal/app/system/normalize"
	"github.com/modelcove/groupsync/internal/app/system/timeouts"
	"github.com/modelcove/groupsync/internal/domain/apperr"
)

// containsResponse answers the membership probe.
type containsResponse struct {
	Member bool `json:"member"`
}

// HandleContains handles GET /groups/{id}/members/contains.
//
// The subject comes from the bearer token or from one of the query
// parameters person_id, account_id, email, username, external_id. The
// answer is boolean only: lookup failures read as "not a member".
func (h *Handler) HandleContains(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if groupID == "" {
		httpjson.WriteError(w, h.Log, apperr.ErrBadParameters)
		return
	}

	key, err := keyFromQuery(r)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if key.IsZero() {
		httpjson.WriteError(w, h.Log, apperr.ErrBadParameters)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	httpjson.Write(w, http.StatusOK, containsResponse{Member: h.Members.IsMember(ctx, groupID, key)})
}

func keyFromQuery(r *http.Request) (identitysvc.Key, error) {
	q := r.URL.Query()

	var personID, accountID *primitive.ObjectID
	if hex := normalize.QueryParam(q.Get("person_id")); hex != "" {
		oid, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return identitysvc.Key{}, apperr.ErrBadParameters
		}
		personID = &oid
	}
	if hex := normalize.QueryParam(q.Get("account_id")); hex != "" {
		oid, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return identitysvc.Key{}, apperr.ErrBadParameters
		}
		accountID = &oid
	}
	var externalID *int64
	if raw := normalize.QueryParam(q.Get("external_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return identitysvc.Key{}, apperr.ErrBadParameters
		}
		externalID = &id
	}

	return identitysvc.FromFields(
		authutil.BearerToken(r),
		personID,
		accountID,
		normalize.Email(q.Get("email")),
		normalize.Username(q.Get("username")),
		externalID,
	), nil
}
