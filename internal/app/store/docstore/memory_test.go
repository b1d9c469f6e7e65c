package docstore_test

import (
	"context"
	"slices"
	"testing"

	"github.com/peerstudy/peerstudy/internal/app/store/docstore"
	"github.com/peerstudy/peerstudy/internal/app/system/apperr"
)

func TestMemory_CreateAndGet(t *testing.T) {
	s := docstore.NewMemory()
	ctx := context.Background()

	id, err := s.Create(ctx, "courses", docstore.Doc{"name": "Math"}, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated id")
	}

	d, err := s.Get(ctx, "courses", id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if d.String("name") != "Math" {
		t.Errorf("name: got %q, want %q", d.String("name"), "Math")
	}
	if d.String("id") != id {
		t.Errorf("id field: got %q, want %q", d.String("id"), id)
	}
}

func TestMemory_ExplicitID(t *testing.T) {
	s := docstore.NewMemory()
	ctx := context.Background()

	id, err := s.Create(ctx, "courses/c1/disciplines", docstore.Doc{"name": "Algebra"}, "alg-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != "alg-1" {
		t.Errorf("id: got %q, want %q", id, "alg-1")
	}
}

func TestMemory_GetMissing(t *testing.T) {
	s := docstore.NewMemory()
	_, err := s.Get(context.Background(), "courses", "nope")
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestMemory_ParentScope(t *testing.T) {
	s := docstore.NewMemory()
	ctx := context.Background()

	idA, _ := s.Create(ctx, "courses/a/disciplines", docstore.Doc{"name": "A1"}, "")
	s.Create(ctx, "courses/b/disciplines", docstore.Doc{"name": "B1"}, "")

	// A document is invisible outside its parent scope.
	if _, err := s.Get(ctx, "courses/b/disciplines", idA); !apperr.IsNotFound(err) {
		t.Errorf("cross-scope get: expected not-found, got %v", err)
	}

	docs, err := s.GetAll(ctx, "courses/a/disciplines")
	if err != nil {
		t.Fatalf("getall: %v", err)
	}
	if len(docs) != 1 || docs[0].String("name") != "A1" {
		t.Errorf("scope a: got %d docs, want just A1", len(docs))
	}
}

func TestMemory_Update(t *testing.T) {
	s := docstore.NewMemory()
	ctx := context.Background()

	id, _ := s.Create(ctx, "courses", docstore.Doc{"name": "Old", "code": "X"}, "")
	if err := s.Update(ctx, "courses", id, docstore.Doc{"name": "New"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	d, _ := s.Get(ctx, "courses", id)
	if d.String("name") != "New" {
		t.Errorf("name: got %q, want %q", d.String("name"), "New")
	}
	if d.String("code") != "X" {
		t.Errorf("untouched field changed: got %q, want %q", d.String("code"), "X")
	}

	if err := s.Update(ctx, "courses", "missing", docstore.Doc{"name": "x"}); !apperr.IsNotFound(err) {
		t.Errorf("update missing: expected not-found, got %v", err)
	}
}

func TestMemory_AddToSet(t *testing.T) {
	s := docstore.NewMemory()
	ctx := context.Background()

	id, _ := s.Create(ctx, "courses/c/disciplines", docstore.Doc{"name": "D"}, "")
	path := "courses/c/disciplines"

	if err := s.AddToSet(ctx, path, id, "helpers", []string{"u1", "u2"}); err != nil {
		t.Fatalf("addtoset: %v", err)
	}
	// Adding an existing member must not duplicate it.
	if err := s.AddToSet(ctx, path, id, "helpers", []string{"u2", "u3"}); err != nil {
		t.Fatalf("addtoset: %v", err)
	}

	d, _ := s.Get(ctx, path, id)
	got := d.StringSlice("helpers")
	want := []string{"u1", "u2", "u3"}
	if !slices.Equal(got, want) {
		t.Errorf("helpers: got %v, want %v", got, want)
	}
}

func TestMemory_PullAll(t *testing.T) {
	s := docstore.NewMemory()
	ctx := context.Background()

	id, _ := s.Create(ctx, "users", docstore.Doc{"helpers_disciplines": []string{"d1", "d2", "d3"}}, "")

	if err := s.PullAll(ctx, "users", id, "helpers_disciplines", []string{"d2", "d9"}); err != nil {
		t.Fatalf("pullall: %v", err)
	}

	d, _ := s.Get(ctx, "users", id)
	got := d.StringSlice("helpers_disciplines")
	want := []string{"d1", "d3"}
	if !slices.Equal(got, want) {
		t.Errorf("list: got %v, want %v", got, want)
	}
}

func TestMemory_DeleteAll(t *testing.T) {
	s := docstore.NewMemory()
	ctx := context.Background()

	s.Create(ctx, "courses", docstore.Doc{"name": "A"}, "")
	s.Create(ctx, "courses", docstore.Doc{"name": "B"}, "")
	s.Create(ctx, "users", docstore.Doc{"name": "keep"}, "")

	n, err := s.DeleteAll(ctx, "courses")
	if err != nil {
		t.Fatalf("deleteall: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted: got %d, want 2", n)
	}

	left, _ := s.GetAll(ctx, "users")
	if len(left) != 1 {
		t.Errorf("users collection touched: %d docs left, want 1", len(left))
	}
}

func TestMemory_NoAliasing(t *testing.T) {
	s := docstore.NewMemory()
	ctx := context.Background()

	src := []string{"d1"}
	id, _ := s.Create(ctx, "users", docstore.Doc{"helpers_disciplines": src}, "")
	src[0] = "mutated"

	d, _ := s.Get(ctx, "users", id)
	if got := d.StringSlice("helpers_disciplines"); got[0] != "d1" {
		t.Errorf("store aliased caller slice: got %v", got)
	}

	// Mutating a read result must not leak back either.
	d["helpers_disciplines"].([]string)[0] = "mutated"
	d2, _ := s.Get(ctx, "users", id)
	if got := d2.StringSlice("helpers_disciplines"); got[0] != "d1" {
		t.Errorf("read result aliased store: got %v", got)
	}
}
