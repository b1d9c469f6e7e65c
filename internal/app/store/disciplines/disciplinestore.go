package disciplinestore

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/peerstudy/peerstudy/internal/app/store/docstore"
	"github.com/peerstudy/peerstudy/internal/domain/models"
)

// Store is the discipline registry. Every operation takes a courseID scope:
// non-empty means the discipline lives in the course's subcollection
// (courses/{id}/disciplines), empty means the flat top-level collection.
type Store struct {
	docs docstore.Store
}

func New(docs docstore.Store) *Store {
	return &Store{docs: docs}
}

// CollectionPath returns the document-store path for the given course scope.
func CollectionPath(courseID string) string {
	if courseID == "" {
		return "disciplines"
	}
	return "courses/" + courseID + "/disciplines"
}

// Create inserts a discipline under the given course scope. A non-empty
// explicitID keys the document at that id; otherwise the store generates one.
func (s *Store) Create(ctx context.Context, courseID string, d models.Discipline, explicitID string) (models.Discipline, error) {
	now := time.Now().UTC()
	d.NameCI = text.Fold(d.Name)
	d.CreatedAt = now
	d.UpdatedAt = now

	id, err := s.docs.Create(ctx, CollectionPath(courseID), encode(d), explicitID)
	if err != nil {
		return models.Discipline{}, err
	}
	d.ID = id
	return d, nil
}

// Get loads a discipline by id within the course scope.
func (s *Store) Get(ctx context.Context, courseID, id string) (models.Discipline, error) {
	doc, err := s.docs.Get(ctx, CollectionPath(courseID), id)
	if err != nil {
		return models.Discipline{}, err
	}
	return decode(doc), nil
}

// Update holds the discipline fields an admin may change. Zero values are
// left untouched.
type Update struct {
	Name     string
	Code     string
	Semester int
}

func (s *Store) Update(ctx context.Context, courseID, id string, upd Update) error {
	fields := docstore.Doc{"updated_at": time.Now().UTC()}
	if upd.Name != "" {
		fields["name"] = upd.Name
		fields["name_ci"] = text.Fold(upd.Name)
	}
	if upd.Code != "" {
		fields["code"] = upd.Code
	}
	if upd.Semester > 0 {
		fields["semester"] = upd.Semester
	}
	return s.docs.Update(ctx, CollectionPath(courseID), id, fields)
}

func (s *Store) Delete(ctx context.Context, courseID, id string) error {
	return s.docs.Delete(ctx, CollectionPath(courseID), id)
}

// All returns every discipline within the course scope.
func (s *Store) All(ctx context.Context, courseID string) ([]models.Discipline, error) {
	docs, err := s.docs.GetAll(ctx, CollectionPath(courseID))
	if err != nil {
		return nil, err
	}
	out := make([]models.Discipline, 0, len(docs))
	for _, d := range docs {
		out = append(out, decode(d))
	}
	return out, nil
}

// DeleteAll removes every discipline within the course scope, best-effort.
// It reports how many were deleted alongside any aggregated error.
func (s *Store) DeleteAll(ctx context.Context, courseID string) (int, error) {
	return s.docs.DeleteAll(ctx, CollectionPath(courseID))
}

// AddMember puts userID into the discipline's helper or seeker set. The
// union is atomic at the store, so adding a present member is a no-op and
// concurrent adds cannot lose each other.
func (s *Store) AddMember(ctx context.Context, courseID, id string, t models.HelpType, userID string) error {
	return s.docs.AddToSet(ctx, CollectionPath(courseID), id, t.DisciplineField(), []string{userID})
}

// RemoveMember takes userID out of the discipline's helper or seeker set.
// Removing an absent member is a no-op.
func (s *Store) RemoveMember(ctx context.Context, courseID, id string, t models.HelpType, userID string) error {
	return s.docs.PullAll(ctx, CollectionPath(courseID), id, t.DisciplineField(), []string{userID})
}

func encode(d models.Discipline) docstore.Doc {
	doc := docstore.Doc{
		"name":       d.Name,
		"name_ci":    d.NameCI,
		"code":       d.Code,
		"semester":   d.Semester,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}
	if len(d.Helpers) > 0 {
		doc["helpers"] = d.Helpers
	}
	if len(d.Seekers) > 0 {
		doc["seekers"] = d.Seekers
	}
	return doc
}

func decode(d docstore.Doc) models.Discipline {
	return models.Discipline{
		ID:        d.String("id"),
		Name:      d.String("name"),
		NameCI:    d.String("name_ci"),
		Code:      d.String("code"),
		Semester:  d.Int("semester"),
		Helpers:   d.StringSlice("helpers"),
		Seekers:   d.StringSlice("seekers"),
		CreatedAt: d.Time("created_at"),
		UpdatedAt: d.Time("updated_at"),
	}
}
