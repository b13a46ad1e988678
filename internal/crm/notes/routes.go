package notes

import (
	"github.com/go-chi/chi/v5"

	"github.com/vantage-crm/vantage-crm/internal/authz"
)

// MountRoutes attaches note routes. Reads over the collection are scoped
// in the query; single-note operations go through the ownership guard.
func (h *Handler) MountRoutes(r chi.Router, owner authz.Middleware) {
	r.Get("/notes", h.List)
	r.Post("/notes", h.Create)

	r.Group(func(r chi.Router) {
		r.Use(owner.RequireOwner(authz.Rule{Entity: authz.EntityNote}))
		r.Get("/notes/{id}", h.Get)
		r.Put("/notes/{id}", h.Update)
		r.Delete("/notes/{id}", h.Delete)
	})
}
