// internal/app/features/members/remove.go
package members

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/modelcove/groupsync/internal/app/system/httpjson"
	"github.com/modelcove/groupsync/internal/app/system/timeouts"
	"github.com/modelcove/groupsync/internal/domain/apperr"
)

// HandleRemove handles DELETE /groups/{id}/members/{accountID}.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	accountID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "accountID"))
	if groupID == "" || err != nil {
		httpjson.WriteError(w, h.Log, apperr.ErrBadParameters)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	roster, err := h.Members.Remove(ctx, groupID, accountID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, viewRoster(roster))
}
