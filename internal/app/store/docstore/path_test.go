package docstore_test

import (
	"testing"

	"github.com/peerstudy/peerstudy/internal/app/store/docstore"
)

func TestParsePath_Flat(t *testing.T) {
	cp, err := docstore.ParsePath("courses")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cp.Name != "courses" {
		t.Errorf("Name: got %q, want %q", cp.Name, "courses")
	}
	if cp.ParentID != "" {
		t.Errorf("ParentID: got %q, want empty", cp.ParentID)
	}
}

func TestParsePath_Nested(t *testing.T) {
	cp, err := docstore.ParsePath("courses/c1/disciplines")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cp.Name != "courses_disciplines" {
		t.Errorf("Name: got %q, want %q", cp.Name, "courses_disciplines")
	}
	if cp.ParentID != "c1" {
		t.Errorf("ParentID: got %q, want %q", cp.ParentID, "c1")
	}
}

func TestParsePath_Malformed(t *testing.T) {
	for _, path := range []string{"", "a/b", "a//c", "/b/c", "a/b/", "a/b/c/d"} {
		if _, err := docstore.ParsePath(path); err == nil {
			t.Errorf("ParsePath(%q): expected error", path)
		}
	}
}
