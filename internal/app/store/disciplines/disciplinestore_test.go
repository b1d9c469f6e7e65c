package disciplinestore_test

import (
	"context"
	"slices"
	"testing"

	disciplinestore "github.com/peerstudy/peerstudy/internal/app/store/disciplines"
	"github.com/peerstudy/peerstudy/internal/app/store/docstore"
	"github.com/peerstudy/peerstudy/internal/app/system/apperr"
	"github.com/peerstudy/peerstudy/internal/domain/models"
)

func newStore() *disciplinestore.Store {
	return disciplinestore.New(docstore.NewMemory())
}

func TestCollectionPath(t *testing.T) {
	if got := disciplinestore.CollectionPath(""); got != "disciplines" {
		t.Errorf("flat path: got %q", got)
	}
	if got := disciplinestore.CollectionPath("c1"); got != "courses/c1/disciplines" {
		t.Errorf("nested path: got %q", got)
	}
}

func TestCreate_CourseScoping(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	d, err := s.Create(ctx, "course-a", models.Discipline{Name: "Cálculo I", Semester: 1}, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := s.Get(ctx, "course-a", d.ID); err != nil {
		t.Fatalf("get in scope: %v", err)
	}
	if _, err := s.Get(ctx, "course-b", d.ID); !apperr.IsNotFound(err) {
		t.Errorf("get out of scope: expected not-found, got %v", err)
	}
}

func TestCreate_ExplicitID(t *testing.T) {
	s := newStore()
	d, err := s.Create(context.Background(), "c1", models.Discipline{Name: "Física"}, "fis-101")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if d.ID != "fis-101" {
		t.Errorf("id: got %q, want %q", d.ID, "fis-101")
	}
}

func TestUpdate_PartialMerge(t *testing.T) {
	s := newStore()
	ctx := context.Background()
	d, _ := s.Create(ctx, "c1", models.Discipline{Name: "Old", Code: "X", Semester: 2}, "")

	if err := s.Update(ctx, "c1", d.ID, disciplinestore.Update{Semester: 4}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := s.Get(ctx, "c1", d.ID)
	if got.Semester != 4 {
		t.Errorf("semester: got %d, want 4", got.Semester)
	}
	if got.Name != "Old" || got.Code != "X" {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestMembers(t *testing.T) {
	s := newStore()
	ctx := context.Background()
	d, _ := s.Create(ctx, "c1", models.Discipline{Name: "Algoritmos"}, "")

	if err := s.AddMember(ctx, "c1", d.ID, models.OfferHelp, "u1"); err != nil {
		t.Fatalf("add helper: %v", err)
	}
	// Re-adding is a no-op, not a duplicate.
	if err := s.AddMember(ctx, "c1", d.ID, models.OfferHelp, "u1"); err != nil {
		t.Fatalf("re-add helper: %v", err)
	}
	if err := s.AddMember(ctx, "c1", d.ID, models.SeekHelp, "u2"); err != nil {
		t.Fatalf("add seeker: %v", err)
	}

	got, _ := s.Get(ctx, "c1", d.ID)
	if !slices.Equal(got.Helpers, []string{"u1"}) {
		t.Errorf("helpers: got %v, want [u1]", got.Helpers)
	}
	if !slices.Equal(got.Seekers, []string{"u2"}) {
		t.Errorf("seekers: got %v, want [u2]", got.Seekers)
	}

	if err := s.RemoveMember(ctx, "c1", d.ID, models.OfferHelp, "u1"); err != nil {
		t.Fatalf("remove helper: %v", err)
	}
	// Removing an absent member is a no-op.
	if err := s.RemoveMember(ctx, "c1", d.ID, models.OfferHelp, "u9"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}

	got, _ = s.Get(ctx, "c1", d.ID)
	if len(got.Helpers) != 0 {
		t.Errorf("helpers after remove: got %v, want empty", got.Helpers)
	}
	if !slices.Equal(got.Seekers, []string{"u2"}) {
		t.Errorf("seekers touched: got %v", got.Seekers)
	}
}

func TestDeleteAll_ScopedToCourse(t *testing.T) {
	s := newStore()
	ctx := context.Background()
	s.Create(ctx, "c1", models.Discipline{Name: "A"}, "")
	s.Create(ctx, "c1", models.Discipline{Name: "B"}, "")
	s.Create(ctx, "c2", models.Discipline{Name: "C"}, "")

	n, err := s.DeleteAll(ctx, "c1")
	if err != nil {
		t.Fatalf("deleteall: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted: got %d, want 2", n)
	}

	left, _ := s.All(ctx, "c2")
	if len(left) != 1 {
		t.Errorf("other course touched: %d disciplines left, want 1", len(left))
	}
}
