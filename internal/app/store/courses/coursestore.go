package coursestore

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/peerstudy/peerstudy/internal/app/store/docstore"
	"github.com/peerstudy/peerstudy/internal/domain/models"
)

// Path is the course collection path in the document store.
const Path = "courses"

type Store struct {
	docs docstore.Store
}

func New(docs docstore.Store) *Store {
	return &Store{docs: docs}
}

// Create inserts a new course. The id is always store-generated; clients
// never supply ids for new courses.
func (s *Store) Create(ctx context.Context, c models.Course) (models.Course, error) {
	now := time.Now().UTC()
	c.NameCI = text.Fold(c.Name)
	c.CreatedAt = now
	c.UpdatedAt = now

	id, err := s.docs.Create(ctx, Path, encode(c), "")
	if err != nil {
		return models.Course{}, err
	}
	c.ID = id
	return c, nil
}

// Get loads a course by id. Returns apperr.ErrNotFound if absent.
func (s *Store) Get(ctx context.Context, id string) (models.Course, error) {
	d, err := s.docs.Get(ctx, Path, id)
	if err != nil {
		return models.Course{}, err
	}
	return decode(d), nil
}

// Update holds the course fields an admin may change. Empty fields are left
// untouched.
type Update struct {
	Name string
	Code string
}

// Update merges the non-empty fields of upd into the course document.
func (s *Store) Update(ctx context.Context, id string, upd Update) error {
	fields := docstore.Doc{"updated_at": time.Now().UTC()}
	if upd.Name != "" {
		fields["name"] = upd.Name
		fields["name_ci"] = text.Fold(upd.Name)
	}
	if upd.Code != "" {
		fields["code"] = upd.Code
	}
	return s.docs.Update(ctx, Path, id, fields)
}

// Delete removes a course by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.docs.Delete(ctx, Path, id)
}

// All returns every course.
func (s *Store) All(ctx context.Context) ([]models.Course, error) {
	docs, err := s.docs.GetAll(ctx, Path)
	if err != nil {
		return nil, err
	}
	out := make([]models.Course, 0, len(docs))
	for _, d := range docs {
		out = append(out, decode(d))
	}
	return out, nil
}

// DeleteAll is the administrative bulk reset. It deletes best-effort and
// reports how many courses went away alongside any aggregated error.
func (s *Store) DeleteAll(ctx context.Context) (int, error) {
	return s.docs.DeleteAll(ctx, Path)
}

func encode(c models.Course) docstore.Doc {
	return docstore.Doc{
		"name":       c.Name,
		"name_ci":    c.NameCI,
		"code":       c.Code,
		"created_at": c.CreatedAt,
		"updated_at": c.UpdatedAt,
	}
}

func decode(d docstore.Doc) models.Course {
	return models.Course{
		ID:        d.String("id"),
		Name:      d.String("name"),
		NameCI:    d.String("name_ci"),
		Code:      d.String("code"),
		CreatedAt: d.Time("created_at"),
		UpdatedAt: d.Time("updated_at"),
	}
}
