package auditstore

import (
	"context"
	"time"

	"github.com/peerstudy/peerstudy/internal/app/store/docstore"
)

// Path is the audit event collection path in the document store.
const Path = "audit_events"

// Event is one recorded audit entry. ActorID is who performed the action;
// TargetID is who or what it was performed on.
type Event struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	EventType string    `json:"event_type"`
	ActorID   string    `json:"actor_id,omitempty"`
	TargetID  string    `json:"target_id,omitempty"`
	Success   bool      `json:"success"`
	Detail    string    `json:"detail,omitempty"`
	IP        string    `json:"ip,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Store struct {
	docs docstore.Store
}

func New(docs docstore.Store) *Store {
	return &Store{docs: docs}
}

// Record persists an audit event. CreatedAt is stamped here if unset.
func (s *Store) Record(ctx context.Context, e Event) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.docs.Create(ctx, Path, encode(e), "")
	return err
}

// All returns every recorded event, unordered. Callers sort as needed.
func (s *Store) All(ctx context.Context) ([]Event, error) {
	docs, err := s.docs.GetAll(ctx, Path)
	if err != nil {
		return nil, err
	}
	out := make([]Event, 0, len(docs))
	for _, d := range docs {
		out = append(out, decode(d))
	}
	return out, nil
}

func encode(e Event) docstore.Doc {
	return docstore.Doc{
		"category":   e.Category,
		"event_type": e.EventType,
		"actor_id":   e.ActorID,
		"target_id":  e.TargetID,
		"success":    e.Success,
		"detail":     e.Detail,
		"ip":         e.IP,
		"created_at": e.CreatedAt,
	}
}

func decode(d docstore.Doc) Event {
	return Event{
		ID:        d.String("id"),
		Category:  d.String("category"),
		EventType: d.String("event_type"),
		ActorID:   d.String("actor_id"),
		TargetID:  d.String("target_id"),
		Success:   d.Bool("success"),
		Detail:    d.String("detail"),
		IP:        d.String("ip"),
		CreatedAt: d.Time("created_at"),
	}
}
