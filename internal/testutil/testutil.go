// Package testutil provides shared helpers for handler and store tests.
// All fixtures run against the in-memory document store, so tests need no
// live database.
package testutil

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	coursestore "github.com/peerstudy/peerstudy/internal/app/store/courses"
	disciplinestore "github.com/peerstudy/peerstudy/internal/app/store/disciplines"
	"github.com/peerstudy/peerstudy/internal/app/store/docstore"
	userstore "github.com/peerstudy/peerstudy/internal/app/store/users"
	"github.com/peerstudy/peerstudy/internal/app/system/auth"
	"github.com/peerstudy/peerstudy/internal/domain/models"
	"go.uber.org/zap"
)

// Logger returns a silent logger for tests.
func Logger() *zap.Logger {
	return zap.NewNop()
}

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that call handlers directly, outside a router.
// Calls stack, so a request can carry several parameters.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// AsUser attaches a signed-in student identity to the request.
func AsUser(r *http.Request, id string) *http.Request {
	return auth.WithIdentity(r, &auth.Identity{
		ID:    id,
		Name:  "Test Student",
		Email: id + "@example.com",
		Role:  models.RoleStudent,
	})
}

// AsAdmin attaches a signed-in admin identity to the request.
func AsAdmin(r *http.Request, id string) *http.Request {
	return auth.WithIdentity(r, &auth.Identity{
		ID:    id,
		Name:  "Test Admin",
		Email: id + "@example.com",
		Role:  models.RoleAdmin,
	})
}

// Fixtures bundles the stores over one in-memory document store and offers
// helpers for seeding test data.
type Fixtures struct {
	Docs        *docstore.Memory
	Courses     *coursestore.Store
	Disciplines *disciplinestore.Store
	Users       *userstore.Store
	t           *testing.T
}

func NewFixtures(t *testing.T) *Fixtures {
	t.Helper()
	docs := docstore.NewMemory()
	return &Fixtures{
		Docs:        docs,
		Courses:     coursestore.New(docs),
		Disciplines: disciplinestore.New(docs),
		Users:       userstore.New(docs),
		t:           t,
	}
}

// Course seeds a course and returns it.
func (f *Fixtures) Course(name string) models.Course {
	f.t.Helper()
	c, err := f.Courses.Create(context.Background(), models.Course{Name: name, Code: "C-" + name})
	if err != nil {
		f.t.Fatalf("seed course %q: %v", name, err)
	}
	return c
}

// Discipline seeds a discipline under the given course and returns it.
func (f *Fixtures) Discipline(courseID, name string) models.Discipline {
	f.t.Helper()
	d, err := f.Disciplines.Create(context.Background(), courseID, models.Discipline{Name: name, Semester: 1}, "")
	if err != nil {
		f.t.Fatalf("seed discipline %q: %v", name, err)
	}
	return d
}

// User seeds a student account and returns it.
func (f *Fixtures) User(name, email string) models.User {
	f.t.Helper()
	u, err := f.Users.Create(context.Background(), models.User{Name: name, Email: email}, "password-123")
	if err != nil {
		f.t.Fatalf("seed user %q: %v", email, err)
	}
	return u
}

// Admin seeds an admin account and returns it.
func (f *Fixtures) Admin(name, email string) models.User {
	f.t.Helper()
	u := f.User(name, email)
	if err := f.Users.UpdateRole(context.Background(), u.ID, models.RoleAdmin); err != nil {
		f.t.Fatalf("promote user %q: %v", email, err)
	}
	u.Role = models.RoleAdmin
	return u
}
