// internal/app/features/members/routes.go
package members

import (
	"github.com/go-chi/chi/v5"
)

// Routes is mounted inside the groups router at /{id}/members, so the
// group id URL param is inherited from the parent pattern.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// LIST
	r.Get("/", h.HandleList)

	// MEMBERSHIP PROBE
	r.Get("/contains", h.HandleContains)

	// ADD
	r.Post("/", h.HandleAdd)

	// BATCH
	r.Post("/batch", h.HandleAddBatch)
	r.Post("/batch/remove", h.HandleRemoveBatch)

	// EDIT / REMOVE
	r.Patch("/{accountID}", h.HandleEdit)
	r.Delete("/{accountID}", h.HandleRemove)

	return r
}
