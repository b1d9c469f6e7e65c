// internal/app/store/docstore/path.go
package docstore

import (
	"fmt"
	"strings"
)

// CollectionPath is a parsed collection path. Flat paths have no parent;
// nested paths ("courses/{course_id}/disciplines") scope documents under a
// parent document id.
type CollectionPath struct {
	// Name is the physical collection name: the collection segments joined
	// with "_", e.g. "courses_disciplines".
	Name string
	// ParentID is the parent document id for nested paths, "" for flat ones.
	ParentID string
}

// ParsePath validates and splits a collection path. Supported shapes are
// "coll" and "coll/{parent_id}/subcoll".
func ParsePath(path string) (CollectionPath, error) {
	segs := strings.Split(path, "/")
	switch len(segs) {
	case 1:
		if segs[0] == "" {
			return CollectionPath{}, fmt.Errorf("empty collection path")
		}
		return CollectionPath{Name: segs[0]}, nil
	case 3:
		if segs[0] == "" || segs[1] == "" || segs[2] == "" {
			return CollectionPath{}, fmt.Errorf("malformed collection path %q", path)
		}
		return CollectionPath{Name: segs[0] + "_" + segs[2], ParentID: segs[1]}, nil
	}
	return CollectionPath{}, fmt.Errorf("malformed collection path %q", path)
}
