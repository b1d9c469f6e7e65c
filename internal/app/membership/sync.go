// Package membership keeps the two denormalized views of the help relation
// consistent: the helpers/seekers sets on each discipline document and the
// helpers_disciplines/seekers_disciplines lists on each user document.
//
// Invariant: user u is in discipline d's set for a help type exactly when
// d is in u's list for that type. Every mutation of the relation goes
// through the Synchronizer; nothing else writes those fields.
//
// Each step is one independent store round trip with no cross-document
// atomicity. Loops fail fast and never roll back: steps are idempotent set
// operations, so a retry of the same call converges to the intended state.
package membership

import (
	"context"

	disciplinestore "github.com/peerstudy/peerstudy/internal/app/store/disciplines"
	userstore "github.com/peerstudy/peerstudy/internal/app/store/users"
	"github.com/peerstudy/peerstudy/internal/app/system/apperr"
	"github.com/peerstudy/peerstudy/internal/domain/models"
	"go.uber.org/zap"
)

type Synchronizer struct {
	disciplines *disciplinestore.Store
	users       *userstore.Store
	log         *zap.Logger
}

func NewSynchronizer(disciplines *disciplinestore.Store, users *userstore.Store, logger *zap.Logger) *Synchronizer {
	return &Synchronizer{disciplines: disciplines, users: users, log: logger}
}

// Assign adds the user to each discipline's set for the help type and unions
// the discipline ids into the user's list. Re-assigning an existing
// membership is a no-op on both sides.
func (s *Synchronizer) Assign(ctx context.Context, userID, courseID string, disciplineIDs []string, t models.HelpType) error {
	if err := validateTarget(userID, courseID, disciplineIDs); err != nil {
		return err
	}

	for _, id := range disciplineIDs {
		if err := s.disciplines.AddMember(ctx, courseID, id, t, userID); err != nil {
			s.log.Error("assign: discipline-side add failed",
				zap.String("user_id", userID), zap.String("discipline_id", id), zap.Error(err))
			return err
		}
	}

	return s.users.AddDisciplines(ctx, userID, t, disciplineIDs)
}

// Replace makes newDisciplineIDs the user's entire membership for the help
// type. The user is removed from every currently saved discipline, the
// user-side list is overwritten verbatim (duplicates collapsed), and the
// user is added to every new discipline. Old and new lists are not diffed;
// a discipline in both is removed and re-added.
func (s *Synchronizer) Replace(ctx context.Context, userID, courseID string, newDisciplineIDs []string, t models.HelpType) error {
	if userID == "" {
		return apperr.Validationf("user id must not be empty")
	}
	if courseID == "" {
		return apperr.Validationf("course id must not be empty")
	}

	current, err := s.users.SavedDisciplines(ctx, userID, t)
	if err != nil {
		return err
	}

	for _, id := range current {
		if err := s.disciplines.RemoveMember(ctx, courseID, id, t, userID); err != nil {
			// A saved id whose discipline was deleted is stale, not fatal.
			if apperr.IsNotFound(err) {
				s.log.Warn("replace: skipping stale discipline id",
					zap.String("user_id", userID), zap.String("discipline_id", id))
				continue
			}
			s.log.Error("replace: discipline-side remove failed",
				zap.String("user_id", userID), zap.String("discipline_id", id), zap.Error(err))
			return err
		}
	}

	if err := s.users.ReplaceDisciplines(ctx, userID, t, newDisciplineIDs); err != nil {
		return err
	}

	for _, id := range newDisciplineIDs {
		if err := s.disciplines.AddMember(ctx, courseID, id, t, userID); err != nil {
			s.log.Error("replace: discipline-side add failed",
				zap.String("user_id", userID), zap.String("discipline_id", id), zap.Error(err))
			return err
		}
	}
	return nil
}

// Remove takes the user out of each discipline's set and atomically removes
// the ids from the user's list. Removing a membership that does not exist is
// a no-op on both sides.
func (s *Synchronizer) Remove(ctx context.Context, userID, courseID string, disciplineIDs []string, t models.HelpType) error {
	if err := validateTarget(userID, courseID, disciplineIDs); err != nil {
		return err
	}

	for _, id := range disciplineIDs {
		if err := s.disciplines.RemoveMember(ctx, courseID, id, t, userID); err != nil {
			if apperr.IsNotFound(err) {
				s.log.Warn("remove: skipping stale discipline id",
					zap.String("user_id", userID), zap.String("discipline_id", id))
				continue
			}
			s.log.Error("remove: discipline-side remove failed",
				zap.String("user_id", userID), zap.String("discipline_id", id), zap.Error(err))
			return err
		}
	}

	return s.users.RemoveDisciplines(ctx, userID, t, disciplineIDs)
}

// Saved returns the user's saved discipline ids for the help type; empty
// when none are saved.
func (s *Synchronizer) Saved(ctx context.Context, userID string, t models.HelpType) ([]string, error) {
	if userID == "" {
		return nil, apperr.Validationf("user id must not be empty")
	}
	return s.users.SavedDisciplines(ctx, userID, t)
}

// Details resolves discipline ids to full documents under the course scope.
// Ids with no matching document are skipped, so the result may be shorter
// than the input.
func (s *Synchronizer) Details(ctx context.Context, courseID string, disciplineIDs []string) ([]models.Discipline, error) {
	if courseID == "" {
		return nil, apperr.Validationf("course id must not be empty")
	}

	out := make([]models.Discipline, 0, len(disciplineIDs))
	for _, id := range disciplineIDs {
		d, err := s.disciplines.Get(ctx, courseID, id)
		if err != nil {
			if apperr.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// validateTarget rejects empty identifiers before any store call is made,
// so a validation failure never leaves partial work behind.
func validateTarget(userID, courseID string, disciplineIDs []string) error {
	if userID == "" {
		return apperr.Validationf("user id must not be empty")
	}
	if courseID == "" {
		return apperr.Validationf("course id must not be empty")
	}
	if len(disciplineIDs) == 0 {
		return apperr.Validationf("discipline id list must not be empty")
	}
	for _, id := range disciplineIDs {
		if id == "" {
			return apperr.Validationf("discipline id must not be empty")
		}
	}
	return nil
}
