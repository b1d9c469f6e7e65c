package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/peerstudy/peerstudy/internal/app/features/catalog"
	"github.com/peerstudy/peerstudy/internal/domain/models"
	"github.com/peerstudy/peerstudy/internal/testutil"
)

func newHandler(f *testutil.Fixtures) *catalog.Handler {
	return catalog.NewHandler(f.Courses, f.Disciplines, testutil.Logger())
}

func TestServeCourses(t *testing.T) {
	f := testutil.NewFixtures(t)
	f.Course("Computação")
	f.Course("Engenharia")
	h := newHandler(f)

	rec := httptest.NewRecorder()
	h.ServeCourses(rec, httptest.NewRequest("GET", "/courses", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var got []models.Course
	json.Unmarshal(rec.Body.Bytes(), &got)
	if len(got) != 2 {
		t.Errorf("courses: got %d, want 2", len(got))
	}
}

func TestServeCourse_NotFound(t *testing.T) {
	f := testutil.NewFixtures(t)
	h := newHandler(f)

	req := testutil.WithChiURLParam(httptest.NewRequest("GET", "/courses/nope", nil), "courseID", "nope")
	rec := httptest.NewRecorder()
	h.ServeCourse(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
}

func TestServeDisciplines(t *testing.T) {
	f := testutil.NewFixtures(t)
	c := f.Course("Computação")
	f.Discipline(c.ID, "Cálculo")
	f.Discipline(c.ID, "Física")
	other := f.Course("Direito")
	f.Discipline(other.ID, "Constitucional")
	h := newHandler(f)

	req := testutil.WithChiURLParam(httptest.NewRequest("GET", "/courses/"+c.ID+"/disciplines", nil), "courseID", c.ID)
	rec := httptest.NewRecorder()
	h.ServeDisciplines(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var got []models.Discipline
	json.Unmarshal(rec.Body.Bytes(), &got)
	if len(got) != 2 {
		t.Errorf("disciplines: got %d, want 2 (other course must not leak)", len(got))
	}
}

func TestServeDisciplines_UnknownCourse(t *testing.T) {
	f := testutil.NewFixtures(t)
	h := newHandler(f)

	req := testutil.WithChiURLParam(httptest.NewRequest("GET", "/courses/nope/disciplines", nil), "courseID", "nope")
	rec := httptest.NewRecorder()
	h.ServeDisciplines(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
}

func TestServeDiscipline(t *testing.T) {
	f := testutil.NewFixtures(t)
	c := f.Course("Computação")
	d := f.Discipline(c.ID, "Cálculo")
	h := newHandler(f)

	req := httptest.NewRequest("GET", "/courses/"+c.ID+"/disciplines/"+d.ID, nil)
	req = testutil.WithChiURLParam(req, "courseID", c.ID)
	req = testutil.WithChiURLParam(req, "disciplineID", d.ID)
	rec := httptest.NewRecorder()
	h.ServeDiscipline(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var got models.Discipline
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got.ID != d.ID {
		t.Errorf("id: got %q, want %q", got.ID, d.ID)
	}
}
