package userstore

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/peerstudy/peerstudy/internal/app/store/docstore"
	"github.com/peerstudy/peerstudy/internal/app/system/apperr"
	"github.com/peerstudy/peerstudy/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
)

// Path is the user collection path in the document store.
const Path = "users"

// ErrEmailTaken is returned when registering an email that already exists.
var ErrEmailTaken = apperr.E(apperr.KindValidation, "a user with this email already exists")

type Store struct {
	docs docstore.Store
}

func New(docs docstore.Store) *Store {
	return &Store{docs: docs}
}

// Create inserts a new user with a bcrypt-hashed password. Role defaults to
// student when empty; invalid roles are rejected.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	if u.Role == "" {
		u.Role = models.RoleStudent
	}
	if !models.IsValidRole(u.Role) {
		return models.User{}, apperr.Validationf("role must be %q or %q", models.RoleStudent, models.RoleAdmin)
	}

	if _, err := s.docs.GetByField(ctx, Path, "email", u.Email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !apperr.IsNotFound(err) {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, apperr.Wrap(apperr.KindStore, "hash password", err)
	}

	now := time.Now().UTC()
	u.NameCI = text.Fold(u.Name)
	u.PasswordHash = string(hash)
	u.CreatedAt = now
	u.UpdatedAt = now

	id, err := s.docs.Create(ctx, Path, encode(u), "")
	if err != nil {
		return models.User{}, err
	}
	u.ID = id
	return u, nil
}

// Get loads a user by id.
func (s *Store) Get(ctx context.Context, id string) (models.User, error) {
	d, err := s.docs.Get(ctx, Path, id)
	if err != nil {
		return models.User{}, err
	}
	return decode(d), nil
}

// GetByEmail looks a user up by exact email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	d, err := s.docs.GetByField(ctx, Path, "email", email)
	if err != nil {
		return models.User{}, err
	}
	return decode(d), nil
}

// Authenticate verifies email+password and returns the user. Any failure
// (unknown email, bad password) is reported as the same unauthorized error.
func (s *Store) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return models.User{}, apperr.E(apperr.KindUnauthorized, "invalid credentials")
		}
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return models.User{}, apperr.E(apperr.KindUnauthorized, "invalid credentials")
	}
	return u, nil
}

// UpdateRole changes a user's role.
func (s *Store) UpdateRole(ctx context.Context, id, role string) error {
	if !models.IsValidRole(role) {
		return apperr.Validationf("role must be %q or %q", models.RoleStudent, models.RoleAdmin)
	}
	return s.docs.Update(ctx, Path, id, docstore.Doc{
		"role":       role,
		"updated_at": time.Now().UTC(),
	})
}

// Delete removes a user by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.docs.Delete(ctx, Path, id)
}

// SavedDisciplines reads the user-side discipline list for the help type.
// An absent field yields an empty list.
func (s *Store) SavedDisciplines(ctx context.Context, id string, t models.HelpType) ([]string, error) {
	d, err := s.docs.Get(ctx, Path, id)
	if err != nil {
		return nil, err
	}
	ids := d.StringSlice(t.UserField())
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// AddDisciplines unions disciplineIDs into the user's list for the help
// type. The union happens at the store, so concurrent assignments cannot
// drop each other's ids.
func (s *Store) AddDisciplines(ctx context.Context, id string, t models.HelpType, disciplineIDs []string) error {
	return s.docs.AddToSet(ctx, Path, id, t.UserField(), disciplineIDs)
}

// RemoveDisciplines atomically removes disciplineIDs from the user's list.
func (s *Store) RemoveDisciplines(ctx context.Context, id string, t models.HelpType, disciplineIDs []string) error {
	return s.docs.PullAll(ctx, Path, id, t.UserField(), disciplineIDs)
}

// ReplaceDisciplines overwrites the user's list with disciplineIDs verbatim,
// duplicates collapsed. This is last-writer-wins by contract.
func (s *Store) ReplaceDisciplines(ctx context.Context, id string, t models.HelpType, disciplineIDs []string) error {
	return s.docs.Update(ctx, Path, id, docstore.Doc{
		t.UserField(): dedupe(disciplineIDs),
		"updated_at":  time.Now().UTC(),
	})
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func encode(u models.User) docstore.Doc {
	doc := docstore.Doc{
		"name":          u.Name,
		"name_ci":       u.NameCI,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"role":          u.Role,
		"created_at":    u.CreatedAt,
		"updated_at":    u.UpdatedAt,
	}
	if u.Phone != "" {
		doc["phone"] = u.Phone
	}
	if len(u.HelperDisciplines) > 0 {
		doc["helpers_disciplines"] = u.HelperDisciplines
	}
	if len(u.SeekerDisciplines) > 0 {
		doc["seekers_disciplines"] = u.SeekerDisciplines
	}
	return doc
}

func decode(d docstore.Doc) models.User {
	return models.User{
		ID:                d.String("id"),
		Name:              d.String("name"),
		NameCI:            d.String("name_ci"),
		Email:             d.String("email"),
		PasswordHash:      d.String("password_hash"),
		Role:              d.String("role"),
		Phone:             d.String("phone"),
		HelperDisciplines: d.StringSlice("helpers_disciplines"),
		SeekerDisciplines: d.StringSlice("seekers_disciplines"),
		CreatedAt:         d.Time("created_at"),
		UpdatedAt:         d.Time("updated_at"),
	}
}
