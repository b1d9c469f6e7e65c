// Package auth resolves bearer tokens to a request identity and gates
// routes by role. Handlers read the identity via CurrentUser(r); they never
// touch the token themselves.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/peerstudy/peerstudy/internal/app/system/apperr"
	"github.com/peerstudy/peerstudy/internal/app/system/httpjson"
	"github.com/peerstudy/peerstudy/internal/domain/models"
	"go.uber.org/zap"
)

// Identity is the authenticated caller injected into the request context.
type Identity struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// IsAdmin reports whether the caller may use admin-only routes.
func (id *Identity) IsAdmin() bool { return id.Role == models.RoleAdmin }

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the identity set by Authenticate and a found flag.
func CurrentUser(r *http.Request) (*Identity, bool) {
	id, ok := r.Context().Value(currentUserKey).(*Identity)
	return id, ok
}

// WithIdentity returns a request carrying the identity in its context.
// Exposed for handler tests.
func WithIdentity(r *http.Request, id *Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, id))
}

// Gate owns the middleware that turns tokens into identities.
type Gate struct {
	tokens *TokenManager
	log    *zap.Logger
}

func NewGate(tokens *TokenManager, logger *zap.Logger) *Gate {
	return &Gate{tokens: tokens, log: logger}
}

// Authenticate injects the caller's identity into the context when a valid
// bearer token is present. Requests without a token pass through anonymous;
// RequireUser / RequireAdmin decide whether that is acceptable.
func (g *Gate) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		claims, err := g.tokens.Parse(token)
		if err != nil {
			g.log.Debug("token rejected", zap.Error(err))
			httpjson.Error(w, g.log, apperr.E(apperr.KindUnauthorized, "invalid or expired token"))
			return
		}
		next.ServeHTTP(w, WithIdentity(r, &Identity{
			ID:    claims.UserID,
			Name:  claims.Name,
			Email: claims.Email,
			Role:  claims.Role,
		}))
	})
}

// RequireUser rejects anonymous requests with 401.
func (g *Gate) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			httpjson.Error(w, g.log, apperr.E(apperr.KindUnauthorized, "authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403.
func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := CurrentUser(r)
		if !ok {
			httpjson.Error(w, g.log, apperr.E(apperr.KindUnauthorized, "authentication required"))
			return
		}
		if !id.IsAdmin() {
			httpjson.Error(w, g.log, apperr.E(apperr.KindForbidden, "insufficient permissions"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
