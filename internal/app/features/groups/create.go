// internal/app/features/groups/create.go
package groups

import (
	"context"
	"encoding/json"
	"net/http"

	groupsvc "github.com/modelcove/groupsync/internal/app/service/groups"
	"github.com/modelcove/groupsync/internal/app/system/authutil"
	"github.com/modelcove/groupsync/internal/app/system/httpjson"
	"github.com/modelcove/groupsync/internal/app/system/normalize"
	"github.com/modelcove/groupsync/internal/app/system/timeouts"
	"github.com/modelcove/groupsync/internal/domain/apperr"
)

// createRequest is the JSON body for POST /groups.
type createRequest struct {
	Name        string `json:"name"`
	Path        string `json:"path,omitempty"`
	Visibility  string `json:"visibility,omitempty"`
	Description string `json:"description,omitempty"`
}

// HandleCreate handles POST /groups. The bearer token identifies the owner.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	token := authutil.BearerToken(r)
	if token == "" {
		httpjson.WriteError(w, h.Log, apperr.ErrIncorrectCredentials)
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, h.Log, apperr.ErrBadParameters)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	group, err := h.Lifecycle.Create(ctx, groupsvc.CreateParams{
		OwnerToken:  token,
		Name:        normalize.Name(req.Name),
		Path:        normalize.QueryParam(req.Path),
		Visibility:  normalize.QueryParam(req.Visibility),
		Description: req.Description,
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, group)
}
