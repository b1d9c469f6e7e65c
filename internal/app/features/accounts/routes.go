package accounts

import (
	"github.com/go-chi/chi/v5"
	"github.com/peerstudy/peerstudy/internal/app/system/auth"
	"github.com/peerstudy/peerstudy/internal/app/system/ratelimit"
)

// Routes mounts registration/login at the root and the user routes under
// /users. The credential endpoints sit behind a per-IP rate limiter to slow
// down guessing.
func Routes(h *Handler, gate *auth.Gate, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()

	r.Group(func(cr chi.Router) {
		cr.Use(limiter.Middleware)
		cr.Post("/register", h.HandleRegister)
		cr.Post("/login", h.HandleLogin)
	})

	r.Route("/users", func(ur chi.Router) {
		ur.Group(func(pr chi.Router) {
			pr.Use(gate.RequireUser)
			pr.Get("/{id}", h.ServeUser)
			pr.Delete("/{id}", h.HandleDelete) // self or admin, checked in handler
		})
		ur.Group(func(pr chi.Router) {
			pr.Use(gate.RequireAdmin)
			pr.Put("/{id}/role", h.HandleUpdateRole)
		})
	})

	return r
}
