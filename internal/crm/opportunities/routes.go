package opportunities

import (
	"github.com/go-chi/chi/v5"

	"github.com/vantage-crm/vantage-crm/internal/authz"
)

// MountRoutes attaches opportunity routes. Reads over the collection are
// scoped in the query; single-record operations go through the ownership
// guard.
func (h *Handler) MountRoutes(r chi.Router, owner authz.Middleware) {
	r.Get("/opportunities", h.List)
	r.Post("/opportunities", h.Create)

	r.Group(func(r chi.Router) {
		r.Use(owner.RequireOwner(authz.Rule{Entity: authz.EntityOpportunity}))
		r.Get("/opportunities/{id}", h.Get)
		r.Put("/opportunities/{id}", h.Update)
		r.Delete("/opportunities/{id}", h.Delete)
	})
}
