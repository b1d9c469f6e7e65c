// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	accountsfeature "github.com/peerstudy/peerstudy/internal/app/features/accounts"
	adminfeature "github.com/peerstudy/peerstudy/internal/app/features/admin"
	assignmentsfeature "github.com/peerstudy/peerstudy/internal/app/features/assignments"
	catalogfeature "github.com/peerstudy/peerstudy/internal/app/features/catalog"
	healthfeature "github.com/peerstudy/peerstudy/internal/app/features/health"
	"github.com/peerstudy/peerstudy/internal/app/membership"
	auditstore "github.com/peerstudy/peerstudy/internal/app/store/audit"
	coursestore "github.com/peerstudy/peerstudy/internal/app/store/courses"
	disciplinestore "github.com/peerstudy/peerstudy/internal/app/store/disciplines"
	"github.com/peerstudy/peerstudy/internal/app/store/docstore"
	userstore "github.com/peerstudy/peerstudy/internal/app/store/users"
	"github.com/peerstudy/peerstudy/internal/app/system/auditlog"
	"github.com/peerstudy/peerstudy/internal/app/system/auth"
	"github.com/peerstudy/peerstudy/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It builds the document-store adapter,
// the entity stores on top of it, the membership synchronizer, and the token
// gate, then mounts one subrouter per feature.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	docs := docstore.NewMongo(deps.MongoDatabase, logger)

	courses := coursestore.New(docs)
	disciplines := disciplinestore.New(docs)
	users := userstore.New(docs)
	events := auditstore.New(docs)

	sync := membership.NewSynchronizer(disciplines, users, logger)

	audit := auditlog.New(events, logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	tokens := auth.NewTokenManager(appCfg.TokenSecret, appCfg.TokenIssuer, appCfg.TokenTTL)
	gate := auth.NewGate(tokens, logger)
	loginLimiter := ratelimit.New(appCfg.LoginRateLimit, appCfg.LoginRateWindow)

	r := chi.NewRouter()

	// Global auth middleware: resolves a bearer token into the request
	// identity when one is present. Anonymous requests pass through and are
	// stopped at the per-route gates.
	r.Use(gate.Authenticate)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Registration, login, and user administration
	accountsHandler := accountsfeature.NewHandler(users, tokens, audit, logger)
	r.Mount("/", accountsfeature.Routes(accountsHandler, gate, loginLimiter))

	// Catalog reads for signed-in users
	catalogHandler := catalogfeature.NewHandler(courses, disciplines, logger)
	r.Mount("/courses", catalogfeature.Routes(catalogHandler, gate))

	// Admin catalog writes and the audit trail
	adminHandler := adminfeature.NewHandler(courses, disciplines, events, audit, logger)
	r.Mount("/admin", adminfeature.Routes(adminHandler, gate))

	// Help-discipline assignments
	assignmentsHandler := assignmentsfeature.NewHandler(sync, logger)
	r.Mount("/assignments", assignmentsfeature.Routes(assignmentsHandler, gate))

	return r, nil
}
