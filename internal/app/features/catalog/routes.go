package catalog

import (
	"github.com/go-chi/chi/v5"
	"github.com/peerstudy/peerstudy/internal/app/system/auth"
)

// Routes returns the catalog subrouter, mounted under /courses. Reads are
// open to any signed-in user.
func Routes(h *Handler, gate *auth.Gate) chi.Router {
	r := chi.NewRouter()
	r.Use(gate.RequireUser)

	r.Get("/", h.ServeCourses)
	r.Route("/{courseID}", func(cr chi.Router) {
		cr.Get("/", h.ServeCourse)
		cr.Get("/disciplines", h.ServeDisciplines)
		cr.Get("/disciplines/{disciplineID}", h.ServeDiscipline)
	})

	return r
}
