// internal/app/features/groups/update.go
package groups

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/modelcove/groupsync/internal/app/system/httpjson"
	"github.com/modelcove/groupsync/internal/app/system/normalize"
	"github.com/modelcove/groupsync/internal/app/system/timeouts"
	"github.com/modelcove/groupsync/internal/domain/apperr"
)

// updateRequest is the JSON body for PATCH /groups/{id}.
type updateRequest struct {
	Name string `json:"name,omitempty"`
	Path string `json:"path,omitempty"`
}

// HandleUpdate handles PATCH /groups/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if groupID == "" {
		httpjson.WriteError(w, h.Log, apperr.ErrBadParameters)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, h.Log, apperr.ErrBadParameters)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	group, err := h.Lifecycle.Update(ctx, groupID, normalize.Name(req.Name), normalize.QueryParam(req.Path))
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, group)
}
