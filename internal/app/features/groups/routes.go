// internal/app/features/groups/routes.go
package groups

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// AVAILABILITY (must precede /{id} so "availability" is not read as an id)
	r.Get("/availability", h.ServeAvailability)

	// CREATE
	r.Post("/", h.HandleCreate)

	// UPDATE
	r.Patch("/{id}", h.HandleUpdate)

	// DELETE
	r.Delete("/{id}", h.HandleDelete)

	return r
}
