package assignments

import (
	"context"
	"net/http"

	"github.com/peerstudy/peerstudy/internal/app/membership"
	"github.com/peerstudy/peerstudy/internal/app/system/apperr"
	"github.com/peerstudy/peerstudy/internal/app/system/auth"
	"github.com/peerstudy/peerstudy/internal/app/system/httpjson"
	"github.com/peerstudy/peerstudy/internal/app/system/timeouts"
	"github.com/peerstudy/peerstudy/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the help-discipline assignment endpoints. All mutations go
// through the membership synchronizer so the two denormalized views stay
// consistent.
type Handler struct {
	Sync *membership.Synchronizer
	Log  *zap.Logger
}

func NewHandler(sync *membership.Synchronizer, logger *zap.Logger) *Handler {
	return &Handler{Sync: sync, Log: logger}
}

// decodeRequest parses and validates the shared assignment payload and
// enforces that a student only touches their own membership.
func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (assignmentRequest, models.HelpType, bool) {
	var req assignmentRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return req, "", false
	}
	if err := validate.Struct(req); err != nil {
		httpjson.Error(w, h.Log, apperr.Validationf("invalid assignment: %v", err))
		return req, "", false
	}
	t, err := models.ParseHelpType(req.TypeHelp)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validationf("%v", err))
		return req, "", false
	}
	caller, _ := auth.CurrentUser(r)
	if !caller.IsAdmin() && caller.ID != req.UserID {
		httpjson.Error(w, h.Log, apperr.E(apperr.KindForbidden, "cannot modify another user's disciplines"))
		return req, "", false
	}
	return req, t, true
}

// HandleAssign handles POST /assignments/assign: add the listed disciplines
// to the user's membership for the help type.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	req, t, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	if err := h.Sync.Assign(ctx, req.UserID, req.CourseID, req.Disciplines, t); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	h.Log.Info("disciplines assigned",
		zap.String("user_id", req.UserID),
		zap.String("type_help", req.TypeHelp),
		zap.Int("count", len(req.Disciplines)))
	httpjson.Message(w, http.StatusOK, "disciplines assigned")
}

// HandleReplace handles POST /assignments/update: the listed disciplines
// become the user's entire membership for the help type. An empty list
// clears it.
func (h *Handler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	req, t, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	if err := h.Sync.Replace(ctx, req.UserID, req.CourseID, req.Disciplines, t); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	h.Log.Info("disciplines replaced",
		zap.String("user_id", req.UserID),
		zap.String("type_help", req.TypeHelp),
		zap.Int("count", len(req.Disciplines)))
	httpjson.Message(w, http.StatusOK, "disciplines updated")
}

// HandleRemove handles POST /assignments/remove: take the listed disciplines
// out of the user's membership for the help type.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	req, t, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	if err := h.Sync.Remove(ctx, req.UserID, req.CourseID, req.Disciplines, t); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	h.Log.Info("disciplines removed",
		zap.String("user_id", req.UserID),
		zap.String("type_help", req.TypeHelp),
		zap.Int("count", len(req.Disciplines)))
	httpjson.Message(w, http.StatusOK, "disciplines removed")
}

// ServeSaved handles GET /assignments/saved?user_id=&type_help=.
// user_id defaults to the caller; only admins may read someone else's.
func (h *Handler) ServeSaved(w http.ResponseWriter, r *http.Request) {
	userID, t, ok := h.queryTarget(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	ids, err := h.Sync.Saved(ctx, userID, t)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string][]string{"disciplines": ids})
}

// ServeDetails handles GET /assignments/details?user_id=&type_help=&course_id=.
// It resolves the user's saved ids to full discipline documents; ids whose
// document has since been deleted are skipped.
func (h *Handler) ServeDetails(w http.ResponseWriter, r *http.Request) {
	userID, t, ok := h.queryTarget(w, r)
	if !ok {
		return
	}
	courseID := r.URL.Query().Get("course_id")
	if courseID == "" {
		httpjson.Error(w, h.Log, apperr.E(apperr.KindValidation, "course_id is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	ids, err := h.Sync.Saved(ctx, userID, t)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	ds, err := h.Sync.Details(ctx, courseID, ids)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, ds)
}

func (h *Handler) queryTarget(w http.ResponseWriter, r *http.Request) (string, models.HelpType, bool) {
	t, err := models.ParseHelpType(r.URL.Query().Get("type_help"))
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validationf("%v", err))
		return "", "", false
	}

	caller, _ := auth.CurrentUser(r)
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = caller.ID
	}
	if !caller.IsAdmin() && caller.ID != userID {
		httpjson.Error(w, h.Log, apperr.E(apperr.KindForbidden, "cannot read another user's disciplines"))
		return "", "", false
	}
	return userID, t, true
}
