// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	coursestore "github.com/peerstudy/peerstudy/internal/app/store/courses"
	disciplinestore "github.com/peerstudy/peerstudy/internal/app/store/disciplines"
	"github.com/peerstudy/peerstudy/internal/app/store/docstore"
	userstore "github.com/peerstudy/peerstudy/internal/app/store/users"
	"github.com/peerstudy/peerstudy/internal/app/system/apperr"
	"github.com/peerstudy/peerstudy/internal/app/system/workers"
	"github.com/peerstudy/peerstudy/internal/domain/models"
	"go.uber.org/zap"
)

// reconciler is started in Startup and stopped in Shutdown.
var reconciler *workers.Reconciler

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// If superadmin_email is configured and that account exists, it is promoted
// to admin. A missing account is only logged: the admin may register later
// and be promoted on the next restart. Startup also launches the background
// membership reconciliation sweep unless it is disabled.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	docs := docstore.NewMongo(deps.MongoDatabase, logger)
	users := userstore.New(docs)

	if appCfg.SuperAdminEmail != "" {
		if err := promoteSuperAdmin(ctx, users, appCfg.SuperAdminEmail, logger); err != nil {
			return err
		}
	}

	if appCfg.ReconcileInterval > 0 {
		reconciler = workers.NewReconciler(
			coursestore.New(docs),
			disciplinestore.New(docs),
			users,
			logger,
			appCfg.ReconcileInterval,
		)
		reconciler.Start()
	}

	return nil
}

func promoteSuperAdmin(ctx context.Context, users *userstore.Store, email string, logger *zap.Logger) error {
	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		if apperr.IsNotFound(err) {
			logger.Warn("superadmin account not found, skipping promotion",
				zap.String("email", email))
			return nil
		}
		return err
	}
	if u.IsAdmin() {
		return nil
	}
	if err := users.UpdateRole(ctx, u.ID, models.RoleAdmin); err != nil {
		return err
	}
	logger.Info("superadmin promoted", zap.String("user_id", u.ID))
	return nil
}
