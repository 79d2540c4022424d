// internal/app/features/members/add.go
package members

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/modelcove/groupsync/internal/app/system/httpjson"
	"github.com/modelcove/groupsync/internal/app/system/timeouts"
	"github.com/modelcove/groupsync/internal/domain/apperr"
	"github.com/modelcove/groupsync/internal/domain/models"
)

// addRequest is the JSON body for POST /groups/{id}/members.
type addRequest struct {
	AccountID   string `json:"account_id"`
	AccessLevel string `json:"access_level,omitempty"`
}

// HandleAdd handles POST /groups/{id}/members. A missing access level
// defaults to guest in the service layer.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if groupID == "" {
		httpjson.WriteError(w, h.Log, apperr.ErrBadParameters)
		return
	}

	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, h.Log, apperr.ErrBadParameters)
		return
	}
	accountID, err := primitive.ObjectIDFromHex(req.AccountID)
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.ErrBadParameters)
		return
	}
	var level models.AccessLevel
	if req.AccessLevel != "" {
		level, err = models.ParseAccessLevel(req.AccessLevel)
		if err != nil {
			httpjson.WriteError(w, h.Log, apperr.ErrBadParameters)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	roster, err := h.Members.Add(ctx, groupID, accountID, level)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, viewRoster(roster))
}
