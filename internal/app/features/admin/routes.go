package admin

import (
	"github.com/go-chi/chi/v5"
	"github.com/peerstudy/peerstudy/internal/app/system/auth"
)

// Routes returns the admin subrouter, mounted under /admin. Everything here
// requires an admin identity.
func Routes(h *Handler, gate *auth.Gate) chi.Router {
	r := chi.NewRouter()
	r.Use(gate.RequireAdmin)

	r.Get("/audit", h.ServeAuditLog)

	r.Route("/courses", func(cr chi.Router) {
		cr.Post("/", h.HandleCreateCourse)
		cr.Delete("/", h.HandleDeleteAllCourses)

		cr.Route("/{courseID}", func(one chi.Router) {
			one.Put("/", h.HandleUpdateCourse)
			one.Delete("/", h.HandleDeleteCourse)

			one.Post("/disciplines", h.HandleCreateDiscipline)
			one.Put("/disciplines/{disciplineID}", h.HandleUpdateDiscipline)
			one.Delete("/disciplines/{disciplineID}", h.HandleDeleteDiscipline)
		})
	})

	return r
}
