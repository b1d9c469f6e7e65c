package catalog

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	coursestore "github.com/peerstudy/peerstudy/internal/app/store/courses"
	disciplinestore "github.com/peerstudy/peerstudy/internal/app/store/disciplines"
	"github.com/peerstudy/peerstudy/internal/app/system/httpjson"
	"github.com/peerstudy/peerstudy/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves the read side of the catalog: courses and the
// disciplines nested under them.
type Handler struct {
	Courses     *coursestore.Store
	Disciplines *disciplinestore.Store
	Log         *zap.Logger
}

func NewHandler(courses *coursestore.Store, disciplines *disciplinestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Courses: courses, Disciplines: disciplines, Log: logger}
}

// ServeCourses handles GET /courses.
func (h *Handler) ServeCourses(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	courses, err := h.Courses.All(ctx)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, courses)
}

// ServeCourse handles GET /courses/{courseID}.
func (h *Handler) ServeCourse(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	c, err := h.Courses.Get(ctx, chi.URLParam(r, "courseID"))
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, c)
}

// ServeDisciplines handles GET /courses/{courseID}/disciplines.
func (h *Handler) ServeDisciplines(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	courseID := chi.URLParam(r, "courseID")
	if _, err := h.Courses.Get(ctx, courseID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	ds, err := h.Disciplines.All(ctx, courseID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, ds)
}

// ServeDiscipline handles GET /courses/{courseID}/disciplines/{disciplineID}.
func (h *Handler) ServeDiscipline(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	d, err := h.Disciplines.Get(ctx, chi.URLParam(r, "courseID"), chi.URLParam(r, "disciplineID"))
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, d)
}
