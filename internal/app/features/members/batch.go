// internal/app/features/members/batch.go
package members

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	membersvc "github.com/modelcove/groupsync/internal/app/service/members"
	"github.com/modelcove/groupsync/internal/app/system/httpjson"
	"github.com/modelcove/groupsync/internal/app/system/timeouts"
	"github.com/modelcove/groupsync/internal/domain/apperr"
	"github.com/modelcove/groupsync/internal/domain/models"
)

// batchRequest is the JSON body for the batch add and batch remove calls.
type batchRequest struct {
	Members []membersvc.MemberInput `json:"members"`
}

// HandleAddBatch handles POST /groups/{id}/members/batch. Entries that fail
// are reported, not fatal.
func (h *Handler) HandleAddBatch(w http.ResponseWriter, r *http.Request) {
	h.serveBatch(w, r, h.Members.AddBatch)
}

// HandleRemoveBatch handles POST /groups/{id}/members/batch/remove.
func (h *Handler) HandleRemoveBatch(w http.ResponseWriter, r *http.Request) {
	h.serveBatch(w, r, h.Members.RemoveBatch)
}

type batchOp func(ctx context.Context, groupID string, inputs []membersvc.MemberInput) ([]models.UserInGroup, membersvc.BatchReport, error)

func (h *Handler) serveBatch(w http.ResponseWriter, r *http.Request, op batchOp) {
	groupID := chi.URLParam(r, "id")
	if groupID == "" {
		httpjson.WriteError(w, h.Log, apperr.ErrBadParameters)
		return
	}

	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, h.Log, apperr.ErrBadParameters)
		return
	}
	if len(req.Members) == 0 {
		httpjson.WriteError(w, h.Log, apperr.ErrBadParameters)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	roster, report, err := op(ctx, groupID, req.Members)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, viewBatch(roster, report))
}
