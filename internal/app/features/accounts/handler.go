package accounts

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	userstore "github.com/peerstudy/peerstudy/internal/app/store/users"
	"github.com/peerstudy/peerstudy/internal/app/system/apperr"
	"github.com/peerstudy/peerstudy/internal/app/system/auditlog"
	"github.com/peerstudy/peerstudy/internal/app/system/auth"
	"github.com/peerstudy/peerstudy/internal/app/system/httpjson"
	"github.com/peerstudy/peerstudy/internal/app/system/timeouts"
	"github.com/peerstudy/peerstudy/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves registration, login, and user administration.
type Handler struct {
	Users  *userstore.Store
	Tokens *auth.TokenManager
	Audit  *auditlog.Logger
	Log    *zap.Logger
}

func NewHandler(users *userstore.Store, tokens *auth.TokenManager, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Tokens: tokens, Audit: audit, Log: logger}
}

// HandleRegister creates a student account and returns its id.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		httpjson.Error(w, h.Log, apperr.Validationf("invalid registration: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Role:  models.RoleStudent,
	}, req.Password)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("user registered", zap.String("user_id", u.ID))
	h.Audit.UserRegistered(ctx, r, u.ID)
	httpjson.Write(w, http.StatusCreated, map[string]string{"user_id": u.ID})
}

// HandleLogin verifies credentials and issues a bearer token.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		httpjson.Error(w, h.Log, apperr.Validationf("invalid login: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	u, err := h.Users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		h.Audit.LoginFailed(ctx, r, req.Email)
		httpjson.Error(w, h.Log, err)
		return
	}
	h.Audit.LoginSucceeded(ctx, r, u.ID)

	token, err := h.Tokens.Issue(u)
	if err != nil {
		h.Log.Error("token issue failed", zap.String("user_id", u.ID), zap.Error(err))
		httpjson.Error(w, h.Log, apperr.Wrap(apperr.KindUnknown, "login failed", err))
		return
	}
	httpjson.Write(w, http.StatusOK, loginResponse{Token: token, User: u})
}

// ServeUser handles GET /users/{id} for any signed-in caller.
func (h *Handler) ServeUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	u, err := h.Users.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, u)
}

// HandleUpdateRole handles PUT /users/{id}/role (admin only, enforced by
// the route gate).
func (h *Handler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	var req updateRoleRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		httpjson.Error(w, h.Log, apperr.Validationf("invalid role update: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Users.UpdateRole(ctx, id, req.Role); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	h.Log.Info("user role updated", zap.String("user_id", id), zap.String("role", req.Role))
	caller, _ := auth.CurrentUser(r)
	h.Audit.AdminAction(ctx, r, "role_changed", caller.ID, id)
	httpjson.Message(w, http.StatusOK, "role updated")
}

// HandleDelete handles DELETE /users/{id}. Admins may delete anyone; a
// student may delete only their own account.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	caller, _ := auth.CurrentUser(r)
	if !caller.IsAdmin() && caller.ID != id {
		httpjson.Error(w, h.Log, apperr.E(apperr.KindForbidden, "insufficient permissions"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	h.Log.Info("user deleted", zap.String("user_id", id))
	if caller.IsAdmin() && caller.ID != id {
		h.Audit.AdminAction(ctx, r, "user_deleted", caller.ID, id)
	}
	httpjson.Message(w, http.StatusOK, "user deleted")
}
