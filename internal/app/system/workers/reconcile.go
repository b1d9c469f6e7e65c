// internal/app/system/workers/reconcile.go
package workers

import (
	"context"
	"slices"
	"sync"
	"time"

	coursestore "github.com/peerstudy/peerstudy/internal/app/store/courses"
	disciplinestore "github.com/peerstudy/peerstudy/internal/app/store/disciplines"
	userstore "github.com/peerstudy/peerstudy/internal/app/store/users"
	"github.com/peerstudy/peerstudy/internal/app/system/apperr"
	"github.com/peerstudy/peerstudy/internal/domain/models"
	"go.uber.org/zap"
)

// Reconciler is a background worker that sweeps discipline membership sets
// and repairs drift against the user-side lists. Membership writes go
// through the synchronizer, but a crash between its steps can leave the two
// views apart; the sweep walks every discipline and restores the invariant.
//
// Repairs are direction-aware: a member whose user document is gone is
// removed from the discipline, and a member missing the discipline in their
// list gets it added back.
type Reconciler struct {
	courses     *coursestore.Store
	disciplines *disciplinestore.Store
	users       *userstore.Store
	log         *zap.Logger
	interval    time.Duration
	stopCh      chan struct{}
	wg          sync.WaitGroup
}

func NewReconciler(courses *coursestore.Store, disciplines *disciplinestore.Store, users *userstore.Store, logger *zap.Logger, interval time.Duration) *Reconciler {
	return &Reconciler{
		courses:     courses,
		disciplines: disciplines,
		users:       users,
		log:         logger,
		interval:    interval,
		stopCh:      make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *Reconciler) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("membership reconciler started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *Reconciler) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("membership reconciler stopped")
}

func (w *Reconciler) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			repaired, err := w.Sweep(ctx)
			cancel()
			if err != nil {
				w.log.Error("membership sweep failed", zap.Error(err))
				continue
			}
			if repaired > 0 {
				w.log.Info("membership sweep repaired drift", zap.Int("repairs", repaired))
			}
		}
	}
}

// Sweep walks every discipline in every course and repairs asymmetric
// memberships. It returns the number of repairs made.
func (w *Reconciler) Sweep(ctx context.Context) (int, error) {
	courses, err := w.courses.All(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, c := range courses {
		ds, err := w.disciplines.All(ctx, c.ID)
		if err != nil {
			return repaired, err
		}
		for _, d := range ds {
			for _, t := range []models.HelpType{models.OfferHelp, models.SeekHelp} {
				n, err := w.reconcileSet(ctx, c.ID, d, t)
				repaired += n
				if err != nil {
					return repaired, err
				}
			}
		}
	}
	return repaired, nil
}

func (w *Reconciler) reconcileSet(ctx context.Context, courseID string, d models.Discipline, t models.HelpType) (int, error) {
	repaired := 0
	for _, userID := range t.Members(d) {
		u, err := w.users.Get(ctx, userID)
		if err != nil {
			if apperr.IsNotFound(err) {
				// The user is gone; drop the dangling membership.
				if err := w.disciplines.RemoveMember(ctx, courseID, d.ID, t, userID); err != nil {
					return repaired, err
				}
				w.log.Warn("removed membership of deleted user",
					zap.String("user_id", userID), zap.String("discipline_id", d.ID))
				repaired++
				continue
			}
			return repaired, err
		}
		if !slices.Contains(t.DisciplineList(u), d.ID) {
			// The discipline-side set is the source of intent; restore the
			// user-side list.
			if err := w.users.AddDisciplines(ctx, userID, t, []string{d.ID}); err != nil {
				return repaired, err
			}
			w.log.Warn("restored user-side membership",
				zap.String("user_id", userID), zap.String("discipline_id", d.ID))
			repaired++
		}
	}
	return repaired, nil
}
