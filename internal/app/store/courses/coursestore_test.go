package coursestore_test

import (
	"context"
	"testing"

	coursestore "github.com/peerstudy/peerstudy/internal/app/store/courses"
	"github.com/peerstudy/peerstudy/internal/app/store/docstore"
	"github.com/peerstudy/peerstudy/internal/app/system/apperr"
	"github.com/peerstudy/peerstudy/internal/domain/models"
)

func newStore() *coursestore.Store {
	return coursestore.New(docstore.NewMemory())
}

func TestCreateAndGet(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	c, err := s.Create(ctx, models.Course{Name: "Ciência da Computação", Code: "CC"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID == "" {
		t.Fatal("expected a generated id")
	}
	if c.NameCI == "" || c.NameCI == c.Name {
		t.Errorf("expected folded name_ci, got %q", c.NameCI)
	}

	got, err := s.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != c.Name || got.Code != "CC" {
		t.Errorf("got %+v, want name/code of %+v", got, c)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestUpdate_PartialMerge(t *testing.T) {
	s := newStore()
	ctx := context.Background()
	c, _ := s.Create(ctx, models.Course{Name: "Old", Code: "OC"})

	if err := s.Update(ctx, c.ID, coursestore.Update{Name: "New"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := s.Get(ctx, c.ID)
	if got.Name != "New" {
		t.Errorf("name: got %q, want %q", got.Name, "New")
	}
	if got.Code != "OC" {
		t.Errorf("code overwritten: got %q, want %q", got.Code, "OC")
	}
	if got.UpdatedAt.Before(got.CreatedAt) {
		t.Error("expected updated_at to advance")
	}
}

func TestUpdate_Missing(t *testing.T) {
	s := newStore()
	err := s.Update(context.Background(), "missing", coursestore.Update{Name: "X"})
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestAllAndDeleteAll(t *testing.T) {
	s := newStore()
	ctx := context.Background()
	s.Create(ctx, models.Course{Name: "A"})
	s.Create(ctx, models.Course{Name: "B"})

	all, err := s.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d courses, want 2", len(all))
	}

	n, err := s.DeleteAll(ctx)
	if err != nil {
		t.Fatalf("deleteall: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted: got %d, want 2", n)
	}
	all, _ = s.All(ctx)
	if len(all) != 0 {
		t.Errorf("expected empty catalog, got %d", len(all))
	}
}
