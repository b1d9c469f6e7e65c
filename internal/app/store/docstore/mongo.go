// internal/app/store/docstore/mongo.go
package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/peerstudy/peerstudy/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// parentField scopes documents of a nested path to their parent document.
const parentField = "parent_id"

// Mongo implements Store on a MongoDB database. One logical collection path
// maps to one physical collection; nested documents carry a parent_id field.
type Mongo struct {
	db  *mongo.Database
	log *zap.Logger
}

var _ Store = (*Mongo)(nil)

// NewMongo wraps db as a document store.
func NewMongo(db *mongo.Database, logger *zap.Logger) *Mongo {
	return &Mongo{db: db, log: logger}
}

func (s *Mongo) Create(ctx context.Context, path string, doc Doc, explicitID string) (string, error) {
	cp, err := ParsePath(path)
	if err != nil {
		return "", apperr.Wrap(apperr.KindStore, "create document", err)
	}

	id := explicitID
	if id == "" {
		id = primitive.NewObjectID().Hex()
	}

	body := bson.M{"_id": id, "id": id}
	for k, v := range doc {
		body[k] = v
	}
	if cp.ParentID != "" {
		body[parentField] = cp.ParentID
	}

	// Explicit-id creates overwrite, matching document-store set semantics.
	opts := options.Replace().SetUpsert(true)
	if _, err := s.db.Collection(cp.Name).ReplaceOne(ctx, bson.M{"_id": id}, body, opts); err != nil {
		return "", apperr.Wrap(apperr.KindStore, "create document", err)
	}
	return id, nil
}

func (s *Mongo) Get(ctx context.Context, path, id string) (Doc, error) {
	cp, err := ParsePath(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "get document", err)
	}
	return s.findOne(ctx, cp, bson.M{"_id": id})
}

func (s *Mongo) GetByField(ctx context.Context, path, field string, value any) (Doc, error) {
	cp, err := ParsePath(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "get document", err)
	}
	return s.findOne(ctx, cp, bson.M{field: value})
}

func (s *Mongo) findOne(ctx context.Context, cp CollectionPath, filter bson.M) (Doc, error) {
	scope(cp, filter)
	var out bson.M
	if err := s.db.Collection(cp.Name).FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrNotFound
		}
		return nil, apperr.Wrap(apperr.KindStore, "get document", err)
	}
	delete(out, "_id")
	return Doc(out), nil
}

func (s *Mongo) Update(ctx context.Context, path, id string, fields Doc) error {
	cp, err := ParsePath(path)
	if err != nil {
		return apperr.Wrap(apperr.KindStore, "update document", err)
	}
	filter := bson.M{"_id": id}
	scope(cp, filter)
	res, err := s.db.Collection(cp.Name).UpdateOne(ctx, filter, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return apperr.Wrap(apperr.KindStore, "update document", err)
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *Mongo) Delete(ctx context.Context, path, id string) error {
	cp, err := ParsePath(path)
	if err != nil {
		return apperr.Wrap(apperr.KindStore, "delete document", err)
	}
	filter := bson.M{"_id": id}
	scope(cp, filter)
	if _, err := s.db.Collection(cp.Name).DeleteOne(ctx, filter); err != nil {
		return apperr.Wrap(apperr.KindStore, "delete document", err)
	}
	return nil
}

func (s *Mongo) GetAll(ctx context.Context, path string) ([]Doc, error) {
	cp, err := ParsePath(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "list documents", err)
	}
	filter := bson.M{}
	scope(cp, filter)

	cur, err := s.db.Collection(cp.Name).Find(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "list documents", err)
	}
	defer cur.Close(ctx)

	var docs []Doc
	for cur.Next(ctx) {
		var d bson.M
		if err := cur.Decode(&d); err != nil {
			return nil, apperr.Wrap(apperr.KindStore, "list documents", err)
		}
		delete(d, "_id")
		docs = append(docs, Doc(d))
	}
	if err := cur.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "list documents", err)
	}
	return docs, nil
}

func (s *Mongo) AddToSet(ctx context.Context, path, id, field string, values []string) error {
	return s.arrayUpdate(ctx, path, id,
		bson.M{"$addToSet": bson.M{field: bson.M{"$each": values}}}, "array union")
}

func (s *Mongo) PullAll(ctx context.Context, path, id, field string, values []string) error {
	return s.arrayUpdate(ctx, path, id,
		bson.M{"$pullAll": bson.M{field: values}}, "array difference")
}

func (s *Mongo) arrayUpdate(ctx context.Context, path, id string, update bson.M, what string) error {
	cp, err := ParsePath(path)
	if err != nil {
		return apperr.Wrap(apperr.KindStore, what, err)
	}
	filter := bson.M{"_id": id}
	scope(cp, filter)
	res, err := s.db.Collection(cp.Name).UpdateOne(ctx, filter, update)
	if err != nil {
		return apperr.Wrap(apperr.KindStore, what, err)
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteAll streams ids and deletes one document per round trip so a single
// bad document cannot abort the reset. Failures are logged and aggregated.
func (s *Mongo) DeleteAll(ctx context.Context, path string) (int, error) {
	cp, err := ParsePath(path)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindStore, "delete all documents", err)
	}
	filter := bson.M{}
	scope(cp, filter)

	cur, err := s.db.Collection(cp.Name).Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return 0, apperr.Wrap(apperr.KindStore, "delete all documents", err)
	}
	defer cur.Close(ctx)

	deleted := 0
	var errs []error
	for cur.Next(ctx) {
		var d struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&d); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, err := s.db.Collection(cp.Name).DeleteOne(ctx, bson.M{"_id": d.ID}); err != nil {
			s.log.Warn("delete-all: document delete failed",
				zap.String("collection", cp.Name), zap.String("id", d.ID), zap.Error(err))
			errs = append(errs, fmt.Errorf("delete %s: %w", d.ID, err))
			continue
		}
		deleted++
	}
	if err := cur.Err(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return deleted, apperr.Wrap(apperr.KindStore, "delete all documents", errors.Join(errs...))
	}
	return deleted, nil
}

// scope narrows filter to the parent document for nested paths.
func scope(cp CollectionPath, filter bson.M) {
	if cp.ParentID != "" {
		filter[parentField] = cp.ParentID
	}
}
