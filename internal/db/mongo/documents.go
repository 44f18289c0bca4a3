package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kailas-cloud/recdex/internal/db"
	"github.com/kailas-cloud/recdex/internal/domain/record"
)

// Find runs the compiled predicate, ordered by _id, capped at q.Limit.
func (s *Store) Find(ctx context.Context, q *db.FindQuery) ([]record.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: record.IDField, Value: 1}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cur, err := s.coll(q.Collection).Find(ctx, buildFilter(q.Filter), opts)
	if err != nil {
		return nil, &db.Error{Op: db.OpFind, Err: err}
	}

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, &db.Error{Op: db.OpFind, Err: err}
	}

	out := make([]record.Record, len(docs))
	for i, d := range docs {
		out[i] = record.Record(d)
	}
	return out, nil
}

// FindOne returns an arbitrary record of the collection.
func (s *Store) FindOne(ctx context.Context, collection string) (record.Record, error) {
	return s.findOne(ctx, collection, bson.D{})
}

// FindByID returns the record with the given object id.
func (s *Store) FindByID(ctx context.Context, collection, id string) (record.Record, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, db.ErrInvalidID
	}
	return s.findOne(ctx, collection, bson.D{{Key: record.IDField, Value: oid}})
}

func (s *Store) findOne(ctx context.Context, collection string, f bson.D) (record.Record, error) {
	var doc bson.M
	if err := s.coll(collection).FindOne(ctx, f).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpFindOne, Err: err}
	}
	return record.Record(doc), nil
}

// DeleteByID removes the record with the given object id and returns it.
func (s *Store) DeleteByID(ctx context.Context, collection, id string) (record.Record, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, db.ErrInvalidID
	}

	var doc bson.M
	res := s.coll(collection).FindOneAndDelete(ctx, bson.D{{Key: record.IDField, Value: oid}})
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpFindOneAndDelete, Err: err}
	}
	return record.Record(doc), nil
}

// InsertMany stores records; hex string ids become object ids.
func (s *Store) InsertMany(ctx context.Context, collection string, recs []record.Record) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}

	docs := make([]any, len(recs))
	for i, rec := range recs {
		docs[i] = toDocument(rec)
	}

	res, err := s.coll(collection).InsertMany(ctx, docs)
	if err != nil {
		return 0, &db.Error{Op: db.OpInsertMany, Err: err}
	}
	return len(res.InsertedIDs), nil
}

func toDocument(rec record.Record) bson.M {
	doc := make(bson.M, len(rec))
	for k, v := range rec {
		doc[k] = v
	}
	if id, ok := rec[record.IDField].(string); ok {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			doc[record.IDField] = oid
		}
	}
	return doc
}
