// internal/app/system/auditlog/auditlog.go

// Package auditlog records who did what: authentication events and admin
// mutations of the catalog. Events go to MongoDB, structured logs, both, or
// neither, per category, controlled by configuration.
package auditlog

import (
	"context"
	"net/http"
	"strings"

	auditstore "github.com/peerstudy/peerstudy/internal/app/store/audit"
	"go.uber.org/zap"
)

// Event categories.
const (
	CategoryAuth  = "auth"
	CategoryAdmin = "admin"
)

// Config holds per-category output modes: "all" (MongoDB + zap), "db"
// (MongoDB only), "log" (zap only), or "off".
type Config struct {
	Auth  string
	Admin string
}

type Logger struct {
	store  *auditstore.Store
	zapLog *zap.Logger
	config Config
}

func New(store *auditstore.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{store: store, zapLog: zapLog, config: config}
}

// LoginSucceeded records a successful login.
func (l *Logger) LoginSucceeded(ctx context.Context, r *http.Request, userID string) {
	l.record(ctx, l.config.Auth, auditstore.Event{
		Category:  CategoryAuth,
		EventType: "login",
		ActorID:   userID,
		Success:   true,
		IP:        clientIP(r),
	})
}

// LoginFailed records a rejected login attempt. Only the attempted email is
// kept, never the password.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, email string) {
	l.record(ctx, l.config.Auth, auditstore.Event{
		Category:  CategoryAuth,
		EventType: "login",
		Success:   false,
		Detail:    email,
		IP:        clientIP(r),
	})
}

// UserRegistered records a new account.
func (l *Logger) UserRegistered(ctx context.Context, r *http.Request, userID string) {
	l.record(ctx, l.config.Auth, auditstore.Event{
		Category:  CategoryAuth,
		EventType: "register",
		ActorID:   userID,
		TargetID:  userID,
		Success:   true,
		IP:        clientIP(r),
	})
}

// AdminAction records an admin mutation: eventType names the operation
// (course_created, discipline_deleted, role_changed, catalog_reset, ...),
// actorID is the admin, targetID the affected document or user.
func (l *Logger) AdminAction(ctx context.Context, r *http.Request, eventType, actorID, targetID string) {
	l.record(ctx, l.config.Admin, auditstore.Event{
		Category:  CategoryAdmin,
		EventType: eventType,
		ActorID:   actorID,
		TargetID:  targetID,
		Success:   true,
		IP:        clientIP(r),
	})
}

func (l *Logger) record(ctx context.Context, mode string, e auditstore.Event) {
	toDB, toLog := outputs(mode)
	if toLog {
		l.zapLog.Info("audit",
			zap.String("category", e.Category),
			zap.String("event_type", e.EventType),
			zap.String("actor_id", e.ActorID),
			zap.String("target_id", e.TargetID),
			zap.Bool("success", e.Success),
			zap.String("ip", e.IP))
	}
	if toDB {
		if err := l.store.Record(ctx, e); err != nil {
			// An audit write failure never fails the request itself.
			l.zapLog.Error("audit event write failed",
				zap.String("event_type", e.EventType), zap.Error(err))
		}
	}
}

func outputs(mode string) (toDB, toLog bool) {
	switch strings.ToLower(mode) {
	case "db":
		return true, false
	case "log":
		return false, true
	case "off":
		return false, false
	default: // "all"
		return true, true
	}
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
