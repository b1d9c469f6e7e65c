package membership_test

import (
	"context"
	"slices"
	"testing"

	"github.com/peerstudy/peerstudy/internal/app/membership"
	"github.com/peerstudy/peerstudy/internal/app/system/apperr"
	"github.com/peerstudy/peerstudy/internal/domain/models"
	"github.com/peerstudy/peerstudy/internal/testutil"
)

type world struct {
	f     *testutil.Fixtures
	sync  *membership.Synchronizer
	ctx   context.Context
	course models.Course
	user  models.User
}

func newWorld(t *testing.T) *world {
	t.Helper()
	f := testutil.NewFixtures(t)
	return &world{
		f:     f,
		sync:  membership.NewSynchronizer(f.Disciplines, f.Users, testutil.Logger()),
		ctx:   context.Background(),
		course: f.Course("Computação"),
		user:  f.User("Ana", "ana@example.com"),
	}
}

// checkSymmetry fails the test when the discipline-side sets and the
// user-side lists disagree for the given user.
func (w *world) checkSymmetry(t *testing.T) {
	t.Helper()
	for _, ht := range []models.HelpType{models.OfferHelp, models.SeekHelp} {
		saved, err := w.f.Users.SavedDisciplines(w.ctx, w.user.ID, ht)
		if err != nil {
			t.Fatalf("saved: %v", err)
		}
		ds, err := w.f.Disciplines.All(w.ctx, w.course.ID)
		if err != nil {
			t.Fatalf("disciplines: %v", err)
		}
		for _, d := range ds {
			inSet := slices.Contains(ht.Members(d), w.user.ID)
			inList := slices.Contains(saved, d.ID)
			if inSet != inList {
				t.Errorf("%s asymmetry on %s: discipline-side=%v user-side=%v",
					ht, d.ID, inSet, inList)
			}
		}
	}
}

func TestAssign(t *testing.T) {
	w := newWorld(t)
	d1 := w.f.Discipline(w.course.ID, "Cálculo")
	d2 := w.f.Discipline(w.course.ID, "Física")

	err := w.sync.Assign(w.ctx, w.user.ID, w.course.ID, []string{d1.ID, d2.ID}, models.OfferHelp)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	saved, _ := w.sync.Saved(w.ctx, w.user.ID, models.OfferHelp)
	if want := []string{d1.ID, d2.ID}; !slices.Equal(saved, want) {
		t.Errorf("saved: got %v, want %v", saved, want)
	}
	w.checkSymmetry(t)
}

func TestAssign_Idempotent(t *testing.T) {
	w := newWorld(t)
	d := w.f.Discipline(w.course.ID, "Cálculo")

	for i := 0; i < 3; i++ {
		if err := w.sync.Assign(w.ctx, w.user.ID, w.course.ID, []string{d.ID}, models.SeekHelp); err != nil {
			t.Fatalf("assign #%d: %v", i, err)
		}
	}

	saved, _ := w.sync.Saved(w.ctx, w.user.ID, models.SeekHelp)
	if want := []string{d.ID}; !slices.Equal(saved, want) {
		t.Errorf("saved: got %v, want %v", saved, want)
	}
	got, _ := w.f.Disciplines.Get(w.ctx, w.course.ID, d.ID)
	if want := []string{w.user.ID}; !slices.Equal(got.Seekers, want) {
		t.Errorf("seekers: got %v, want %v", got.Seekers, want)
	}
	w.checkSymmetry(t)
}

func TestAssign_TypesIndependent(t *testing.T) {
	w := newWorld(t)
	d := w.f.Discipline(w.course.ID, "Cálculo")

	if err := w.sync.Assign(w.ctx, w.user.ID, w.course.ID, []string{d.ID}, models.OfferHelp); err != nil {
		t.Fatalf("assign offer: %v", err)
	}
	if err := w.sync.Assign(w.ctx, w.user.ID, w.course.ID, []string{d.ID}, models.SeekHelp); err != nil {
		t.Fatalf("assign seek: %v", err)
	}

	// The same user may be helper and seeker of the same discipline.
	got, _ := w.f.Disciplines.Get(w.ctx, w.course.ID, d.ID)
	if !slices.Contains(got.Helpers, w.user.ID) || !slices.Contains(got.Seekers, w.user.ID) {
		t.Errorf("expected user on both sides, got helpers=%v seekers=%v", got.Helpers, got.Seekers)
	}
	w.checkSymmetry(t)
}

func TestAssign_UnknownDiscipline(t *testing.T) {
	w := newWorld(t)
	err := w.sync.Assign(w.ctx, w.user.ID, w.course.ID, []string{"missing"}, models.OfferHelp)
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
	// Fail-fast: the user-side list stays untouched.
	saved, _ := w.sync.Saved(w.ctx, w.user.ID, models.OfferHelp)
	if len(saved) != 0 {
		t.Errorf("saved after failed assign: got %v, want empty", saved)
	}
}

func TestAssign_Validation(t *testing.T) {
	w := newWorld(t)
	cases := []struct {
		name        string
		userID      string
		courseID    string
		disciplines []string
	}{
		{"empty user", "", w.course.ID, []string{"d"}},
		{"empty course", w.user.ID, "", []string{"d"}},
		{"empty list", w.user.ID, w.course.ID, nil},
		{"blank id in list", w.user.ID, w.course.ID, []string{"d", ""}},
	}
	for _, tc := range cases {
		err := w.sync.Assign(w.ctx, tc.userID, tc.courseID, tc.disciplines, models.OfferHelp)
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestReplace(t *testing.T) {
	w := newWorld(t)
	d1 := w.f.Discipline(w.course.ID, "Cálculo")
	d2 := w.f.Discipline(w.course.ID, "Física")
	d3 := w.f.Discipline(w.course.ID, "Química")

	if err := w.sync.Assign(w.ctx, w.user.ID, w.course.ID, []string{d1.ID, d2.ID}, models.OfferHelp); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := w.sync.Replace(w.ctx, w.user.ID, w.course.ID, []string{d2.ID, d3.ID}, models.OfferHelp); err != nil {
		t.Fatalf("replace: %v", err)
	}

	saved, _ := w.sync.Saved(w.ctx, w.user.ID, models.OfferHelp)
	if want := []string{d2.ID, d3.ID}; !slices.Equal(saved, want) {
		t.Errorf("saved: got %v, want %v", saved, want)
	}

	got1, _ := w.f.Disciplines.Get(w.ctx, w.course.ID, d1.ID)
	if slices.Contains(got1.Helpers, w.user.ID) {
		t.Errorf("user still helper of dropped discipline %s", d1.ID)
	}
	w.checkSymmetry(t)
}

func TestReplace_EmptyClearsAll(t *testing.T) {
	w := newWorld(t)
	d := w.f.Discipline(w.course.ID, "Cálculo")

	if err := w.sync.Assign(w.ctx, w.user.ID, w.course.ID, []string{d.ID}, models.SeekHelp); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := w.sync.Replace(w.ctx, w.user.ID, w.course.ID, nil, models.SeekHelp); err != nil {
		t.Fatalf("replace with empty: %v", err)
	}

	saved, _ := w.sync.Saved(w.ctx, w.user.ID, models.SeekHelp)
	if len(saved) != 0 {
		t.Errorf("saved: got %v, want empty", saved)
	}
	w.checkSymmetry(t)
}

func TestReplace_CollapsesDuplicates(t *testing.T) {
	w := newWorld(t)
	d := w.f.Discipline(w.course.ID, "Cálculo")

	if err := w.sync.Replace(w.ctx, w.user.ID, w.course.ID, []string{d.ID, d.ID}, models.OfferHelp); err != nil {
		t.Fatalf("replace: %v", err)
	}
	saved, _ := w.sync.Saved(w.ctx, w.user.ID, models.OfferHelp)
	if want := []string{d.ID}; !slices.Equal(saved, want) {
		t.Errorf("saved: got %v, want %v", saved, want)
	}
	w.checkSymmetry(t)
}

func TestReplace_SkipsStaleSavedIDs(t *testing.T) {
	w := newWorld(t)
	d1 := w.f.Discipline(w.course.ID, "Cálculo")
	d2 := w.f.Discipline(w.course.ID, "Física")

	if err := w.sync.Assign(w.ctx, w.user.ID, w.course.ID, []string{d1.ID}, models.OfferHelp); err != nil {
		t.Fatalf("assign: %v", err)
	}
	// Admin deletes the discipline out from under the user.
	if err := w.f.Disciplines.Delete(w.ctx, w.course.ID, d1.ID); err != nil {
		t.Fatalf("delete discipline: %v", err)
	}

	if err := w.sync.Replace(w.ctx, w.user.ID, w.course.ID, []string{d2.ID}, models.OfferHelp); err != nil {
		t.Fatalf("replace over stale id: %v", err)
	}
	saved, _ := w.sync.Saved(w.ctx, w.user.ID, models.OfferHelp)
	if want := []string{d2.ID}; !slices.Equal(saved, want) {
		t.Errorf("saved: got %v, want %v", saved, want)
	}
}

func TestRemove(t *testing.T) {
	w := newWorld(t)
	d1 := w.f.Discipline(w.course.ID, "Cálculo")
	d2 := w.f.Discipline(w.course.ID, "Física")

	if err := w.sync.Assign(w.ctx, w.user.ID, w.course.ID, []string{d1.ID, d2.ID}, models.OfferHelp); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := w.sync.Remove(w.ctx, w.user.ID, w.course.ID, []string{d1.ID}, models.OfferHelp); err != nil {
		t.Fatalf("remove: %v", err)
	}

	saved, _ := w.sync.Saved(w.ctx, w.user.ID, models.OfferHelp)
	if want := []string{d2.ID}; !slices.Equal(saved, want) {
		t.Errorf("saved: got %v, want %v", saved, want)
	}
	w.checkSymmetry(t)

	// Removing the same membership again is a no-op.
	if err := w.sync.Remove(w.ctx, w.user.ID, w.course.ID, []string{d1.ID}, models.OfferHelp); err != nil {
		t.Fatalf("second remove: %v", err)
	}
	w.checkSymmetry(t)
}

func TestDetails(t *testing.T) {
	w := newWorld(t)
	d1 := w.f.Discipline(w.course.ID, "Cálculo")
	d2 := w.f.Discipline(w.course.ID, "Física")

	got, err := w.sync.Details(w.ctx, w.course.ID, []string{d1.ID, "gone", d2.ID})
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	// Ids without a document are skipped, not errors.
	if len(got) != 2 {
		t.Fatalf("got %d disciplines, want 2", len(got))
	}
	if got[0].ID != d1.ID || got[1].ID != d2.ID {
		t.Errorf("order: got %s,%s want %s,%s", got[0].ID, got[1].ID, d1.ID, d2.ID)
	}
}

func TestSaved_EmptyUser(t *testing.T) {
	w := newWorld(t)
	if _, err := w.sync.Saved(w.ctx, "", models.OfferHelp); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
