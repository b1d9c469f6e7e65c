// internal/app/store/docstore/memory.go
package docstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/peerstudy/peerstudy/internal/app/system/apperr"
)

// Memory is an in-process Store used by tests and local development. It
// mirrors the Mongo implementation's semantics: per-document atomicity,
// set-union/difference array updates, not-found on missing documents.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]Doc // physical collection name -> id -> doc
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: map[string]map[string]Doc{}}
}

func (s *Memory) Create(ctx context.Context, path string, doc Doc, explicitID string) (string, error) {
	cp, err := ParsePath(path)
	if err != nil {
		return "", apperr.Wrap(apperr.KindStore, "create document", err)
	}

	id := explicitID
	if id == "" {
		id = uuid.NewString()
	}

	body := Doc{"id": id}
	for k, v := range doc {
		body[k] = copyValue(v)
	}
	if cp.ParentID != "" {
		body[parentField] = cp.ParentID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	coll := s.data[cp.Name]
	if coll == nil {
		coll = map[string]Doc{}
		s.data[cp.Name] = coll
	}
	coll[id] = body
	return id, nil
}

func (s *Memory) Get(ctx context.Context, path, id string) (Doc, error) {
	cp, err := ParsePath(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "get document", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.data[cp.Name][id]
	if !ok || !inScope(cp, d) {
		return nil, apperr.ErrNotFound
	}
	return copyDoc(d), nil
}

func (s *Memory) GetByField(ctx context.Context, path, field string, value any) (Doc, error) {
	cp, err := ParsePath(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "get document", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.data[cp.Name] {
		if inScope(cp, d) && d[field] == value {
			return copyDoc(d), nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (s *Memory) Update(ctx context.Context, path, id string, fields Doc) error {
	cp, err := ParsePath(path)
	if err != nil {
		return apperr.Wrap(apperr.KindStore, "update document", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.data[cp.Name][id]
	if !ok || !inScope(cp, d) {
		return apperr.ErrNotFound
	}
	for k, v := range fields {
		d[k] = copyValue(v)
	}
	return nil
}

func (s *Memory) Delete(ctx context.Context, path, id string) error {
	cp, err := ParsePath(path)
	if err != nil {
		return apperr.Wrap(apperr.KindStore, "delete document", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.data[cp.Name][id]; ok && inScope(cp, d) {
		delete(s.data[cp.Name], id)
	}
	return nil
}

func (s *Memory) GetAll(ctx context.Context, path string) ([]Doc, error) {
	cp, err := ParsePath(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "list documents", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var docs []Doc
	for _, d := range s.data[cp.Name] {
		if inScope(cp, d) {
			docs = append(docs, copyDoc(d))
		}
	}
	return docs, nil
}

func (s *Memory) AddToSet(ctx context.Context, path, id, field string, values []string) error {
	cp, err := ParsePath(path)
	if err != nil {
		return apperr.Wrap(apperr.KindStore, "array union", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.data[cp.Name][id]
	if !ok || !inScope(cp, d) {
		return apperr.ErrNotFound
	}
	cur := d.StringSlice(field)
	seen := make(map[string]struct{}, len(cur))
	for _, v := range cur {
		seen[v] = struct{}{}
	}
	for _, v := range values {
		if _, dup := seen[v]; !dup {
			cur = append(cur, v)
			seen[v] = struct{}{}
		}
	}
	d[field] = cur
	return nil
}

func (s *Memory) PullAll(ctx context.Context, path, id, field string, values []string) error {
	cp, err := ParsePath(path)
	if err != nil {
		return apperr.Wrap(apperr.KindStore, "array difference", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.data[cp.Name][id]
	if !ok || !inScope(cp, d) {
		return apperr.ErrNotFound
	}
	drop := make(map[string]struct{}, len(values))
	for _, v := range values {
		drop[v] = struct{}{}
	}
	var kept []string
	for _, v := range d.StringSlice(field) {
		if _, gone := drop[v]; !gone {
			kept = append(kept, v)
		}
	}
	d[field] = kept
	return nil
}

func (s *Memory) DeleteAll(ctx context.Context, path string) (int, error) {
	cp, err := ParsePath(path)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindStore, "delete all documents", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for id, d := range s.data[cp.Name] {
		if inScope(cp, d) {
			delete(s.data[cp.Name], id)
			deleted++
		}
	}
	return deleted, nil
}

func inScope(cp CollectionPath, d Doc) bool {
	return cp.ParentID == "" || d.String(parentField) == cp.ParentID
}

func copyDoc(d Doc) Doc {
	out := make(Doc, len(d))
	for k, v := range d {
		out[k] = copyValue(v)
	}
	return out
}

// copyValue guards the store's documents against aliasing through the slices
// callers pass in or read out.
func copyValue(v any) any {
	if ss, ok := v.([]string); ok {
		return append([]string(nil), ss...)
	}
	return v
}
