// Package docstore is the generic document-store adapter every registry sits
// on. It exposes CRUD per named collection path plus the atomic array
// primitives (set union / set difference) that multi-writer list fields
// require. There is no cross-document atomicity: each call is one independent
// round trip, and per-document writes are the only safety net.
//
// Paths are flat ("courses", "users") or nested one level under a parent
// document ("courses/{course_id}/disciplines").
package docstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Doc is the flat key/value representation of a stored document. Every doc
// returned by a Store carries its key in the "id" field.
type Doc map[string]any

// Store is the document-store contract. Mongo backs it in production; the
// in-memory implementation backs tests.
type Store interface {
	// Create writes doc under path. When explicitID is empty a new id is
	// generated; otherwise the document is written (or overwritten) at that
	// id. The persisted document always contains the resolved id as an "id"
	// field, and the resolved id is returned.
	Create(ctx context.Context, path string, doc Doc, explicitID string) (string, error)

	// Get returns the document at id, or apperr.ErrNotFound.
	Get(ctx context.Context, path, id string) (Doc, error)

	// GetByField returns the first document whose field equals value, or
	// apperr.ErrNotFound.
	GetByField(ctx context.Context, path, field string, value any) (Doc, error)

	// Update merges only the given fields into the document at id.
	// Returns apperr.ErrNotFound when the document does not exist.
	Update(ctx context.Context, path, id string, fields Doc) error

	// Delete removes the document at id. Deleting an absent document is a
	// no-op.
	Delete(ctx context.Context, path, id string) error

	// GetAll returns every document under path.
	GetAll(ctx context.Context, path string) ([]Doc, error)

	// AddToSet atomically unions values into the array field of the document
	// at id. Values already present are not duplicated, even under
	// concurrent calls.
	AddToSet(ctx context.Context, path, id, field string, values []string) error

	// PullAll atomically removes every occurrence of values from the array
	// field of the document at id. Absent values are ignored.
	PullAll(ctx context.Context, path, id, field string, values []string) error

	// DeleteAll removes every document under path one by one, logging and
	// continuing past per-document failures. It returns the number deleted
	// and an aggregated error if any delete failed.
	DeleteAll(ctx context.Context, path string) (int, error)
}

// String returns the string value at key, or "".
func (d Doc) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// Int returns the integer value at key, tolerating the numeric types the
// Mongo driver decodes into.
func (d Doc) Int(key string) int {
	switch v := d[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// StringSlice returns the string-array value at key, tolerating both native
// []string and the driver's []any form. Absent fields yield nil.
func (d Doc) StringSlice(key string) []string {
	switch v := d[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case primitive.A:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Bool returns the boolean value at key, or false.
func (d Doc) Bool(key string) bool {
	b, _ := d[key].(bool)
	return b
}

// Time returns the time value at key, or the zero time.
func (d Doc) Time(key string) time.Time {
	switch v := d[key].(type) {
	case time.Time:
		return v
	case primitive.DateTime:
		return v.Time()
	}
	return time.Time{}
}
