// internal/app/features/members/edit.go
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

// editRequest is the JSON body for PATCH /groups/{id}/members/{accountID}.
type editRequest struct {
	AccessLevel string `json:"access_level"`
}

// HandleEdit handles PATCH /groups/{id}/members/{accountID}.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	accountID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "accountID"))
	if groupID == "" || err != nil {
		httpjson.WriteError(w, h.Log, apperr.ErrBadParameters)
		return
	}

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, h.Log, apperr.ErrBadParameters)
		return
	}
	level, err := models.ParseAccessLevel(req.AccessLevel)
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.ErrBadParameters)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	roster, err := h.Members.Edit(ctx, groupID, accountID, level)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, viewRoster(roster))
}
