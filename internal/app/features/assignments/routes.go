package assignments

import (
	"github.com/go-chi/chi/v5"
	"github.com/peerstudy/peerstudy/internal/app/system/auth"
)

// Routes returns the assignment subrouter, mounted under /assignments.
// Everything here requires a signed-in user.
func Routes(h *Handler, gate *auth.Gate) chi.Router {
	r := chi.NewRouter()
	r.Use(gate.RequireUser)

	r.Post("/assign", h.HandleAssign)
	r.Post("/update", h.HandleReplace)
	r.Post("/remove", h.HandleRemove)
	r.Get("/saved", h.ServeSaved)
	r.Get("/details", h.ServeDetails)

	return r
}
