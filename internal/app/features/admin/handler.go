package admin

import (
	"context"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	auditstore "github.com/peerstudy/peerstudy/internal/app/store/audit"
	coursestore "github.com/peerstudy/peerstudy/internal/app/store/courses"
	disciplinestore "github.com/peerstudy/peerstudy/internal/app/store/disciplines"
	"github.com/peerstudy/peerstudy/internal/app/system/apperr"
	"github.com/peerstudy/peerstudy/internal/app/system/auditlog"
	"github.com/peerstudy/peerstudy/internal/app/system/auth"
	"github.com/peerstudy/peerstudy/internal/app/system/httpjson"
	"github.com/peerstudy/peerstudy/internal/app/system/timeouts"
	"github.com/peerstudy/peerstudy/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the admin-only write side of the catalog.
type Handler struct {
	Courses     *coursestore.Store
	Disciplines *disciplinestore.Store
	Events      *auditstore.Store
	Audit       *auditlog.Logger
	Log         *zap.Logger
}

func NewHandler(courses *coursestore.Store, disciplines *disciplinestore.Store, events *auditstore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Courses: courses, Disciplines: disciplines, Events: events, Audit: audit, Log: logger}
}

func actorID(r *http.Request) string {
	caller, _ := auth.CurrentUser(r)
	return caller.ID
}

// HandleCreateCourse handles POST /admin/courses.
func (h *Handler) HandleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var req createCourseRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		httpjson.Error(w, h.Log, apperr.Validationf("invalid course: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	c, err := h.Courses.Create(ctx, models.Course{Name: req.Name, Code: req.Code})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	h.Log.Info("course created", zap.String("course_id", c.ID), zap.String("name", c.Name))
	h.Audit.AdminAction(ctx, r, "course_created", actorID(r), c.ID)
	httpjson.Write(w, http.StatusCreated, c)
}

// HandleUpdateCourse handles PUT /admin/courses/{courseID}. Absent fields
// keep their stored values.
func (h *Handler) HandleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	var req updateCourseRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if req.Name == "" && req.Code == "" {
		httpjson.Error(w, h.Log, apperr.E(apperr.KindValidation, "nothing to update"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	id := chi.URLParam(r, "courseID")
	if err := h.Courses.Update(ctx, id, coursestore.Update{Name: req.Name, Code: req.Code}); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	h.Audit.AdminAction(ctx, r, "course_updated", actorID(r), id)
	httpjson.Message(w, http.StatusOK, "course updated")
}

// HandleDeleteCourse handles DELETE /admin/courses/{courseID}. The course's
// disciplines go with it; the discipline sweep is best-effort and a partial
// failure still removes the course itself.
func (h *Handler) HandleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long)
	defer cancel()

	id := chi.URLParam(r, "courseID")
	if _, err := h.Courses.Get(ctx, id); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if n, err := h.Disciplines.DeleteAll(ctx, id); err != nil {
		h.Log.Warn("course delete: discipline sweep incomplete",
			zap.String("course_id", id), zap.Int("deleted", n), zap.Error(err))
	}
	if err := h.Courses.Delete(ctx, id); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	h.Log.Info("course deleted", zap.String("course_id", id))
	h.Audit.AdminAction(ctx, r, "course_deleted", actorID(r), id)
	httpjson.Message(w, http.StatusOK, "course deleted")
}

// HandleDeleteAllCourses handles DELETE /admin/courses, the bulk catalog
// reset. Every course and its disciplines are removed best-effort; the
// response reports how many courses went away.
func (h *Handler) HandleDeleteAllCourses(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long)
	defer cancel()

	courses, err := h.Courses.All(ctx)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	for _, c := range courses {
		if n, err := h.Disciplines.DeleteAll(ctx, c.ID); err != nil {
			h.Log.Warn("catalog reset: discipline sweep incomplete",
				zap.String("course_id", c.ID), zap.Int("deleted", n), zap.Error(err))
		}
	}

	n, err := h.Courses.DeleteAll(ctx)
	if err != nil {
		h.Log.Error("catalog reset incomplete", zap.Int("deleted", n), zap.Error(err))
		httpjson.Error(w, h.Log, apperr.Wrap(apperr.KindStore, "catalog reset incomplete", err))
		return
	}
	h.Log.Info("catalog reset", zap.Int("courses_deleted", n))
	h.Audit.AdminAction(ctx, r, "catalog_reset", actorID(r), "")
	httpjson.Write(w, http.StatusOK, map[string]int{"courses_deleted": n})
}

// HandleCreateDiscipline handles POST /admin/courses/{courseID}/disciplines.
func (h *Handler) HandleCreateDiscipline(w http.ResponseWriter, r *http.Request) {
	var req createDisciplineRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		httpjson.Error(w, h.Log, apperr.Validationf("invalid discipline: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	courseID := chi.URLParam(r, "courseID")
	if _, err := h.Courses.Get(ctx, courseID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	d, err := h.Disciplines.Create(ctx, courseID, models.Discipline{
		Name:     req.Name,
		Code:     req.Code,
		Semester: req.Semester,
	}, req.ID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	h.Log.Info("discipline created",
		zap.String("course_id", courseID), zap.String("discipline_id", d.ID))
	h.Audit.AdminAction(ctx, r, "discipline_created", actorID(r), d.ID)
	httpjson.Write(w, http.StatusCreated, d)
}

// HandleUpdateDiscipline handles
// PUT /admin/courses/{courseID}/disciplines/{disciplineID}.
func (h *Handler) HandleUpdateDiscipline(w http.ResponseWriter, r *http.Request) {
	var req updateDisciplineRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		httpjson.Error(w, h.Log, apperr.Validationf("invalid discipline: %v", err))
		return
	}
	if req.Name == "" && req.Code == "" && req.Semester == 0 {
		httpjson.Error(w, h.Log, apperr.E(apperr.KindValidation, "nothing to update"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	courseID := chi.URLParam(r, "courseID")
	id := chi.URLParam(r, "disciplineID")
	upd := disciplinestore.Update{Name: req.Name, Code: req.Code, Semester: req.Semester}
	if err := h.Disciplines.Update(ctx, courseID, id, upd); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	h.Audit.AdminAction(ctx, r, "discipline_updated", actorID(r), id)
	httpjson.Message(w, http.StatusOK, "discipline updated")
}

// HandleDeleteDiscipline handles
// DELETE /admin/courses/{courseID}/disciplines/{disciplineID}.
func (h *Handler) HandleDeleteDiscipline(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	courseID := chi.URLParam(r, "courseID")
	id := chi.URLParam(r, "disciplineID")
	if err := h.Disciplines.Delete(ctx, courseID, id); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	h.Log.Info("discipline deleted",
		zap.String("course_id", courseID), zap.String("discipline_id", id))
	h.Audit.AdminAction(ctx, r, "discipline_deleted", actorID(r), id)
	httpjson.Message(w, http.StatusOK, "discipline deleted")
}

// ServeAuditLog handles GET /admin/audit: recent audit events, newest first.
func (h *Handler) ServeAuditLog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	events, err := h.Events.All(ctx)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	if len(events) > maxAuditEvents {
		events = events[:maxAuditEvents]
	}
	httpjson.Write(w, http.StatusOK, events)
}

// maxAuditEvents caps the audit listing response.
const maxAuditEvents = 500
