// internal/app/features/groups/delete.go
package groups

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/modelcove/groupsync/internal/app/system/httpjson"
	"github.com/modelcove/groupsync/internal/app/system/timeouts"
	"github.com/modelcove/groupsync/internal/domain/apperr"
)

// HandleDelete handles DELETE /groups/{id}. The remote group is deleted
// first; local state follows.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if groupID == "" {
		httpjson.WriteError(w, h.Log, apperr.ErrBadParameters)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Lifecycle.Delete(ctx, groupID); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
