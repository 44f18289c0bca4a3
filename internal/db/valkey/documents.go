package valkey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/recdex/internal/db"
	"github.com/kailas-cloud/recdex/internal/domain/record"
	"github.com/kailas-cloud/recdex/internal/domain/search/filter"
)

// fetchBatch is the number of JSON.GET commands pipelined per round trip.
const fetchBatch = 100

// Find scans the collection in key order and evaluates the predicate in
// process: JSON documents have no native case-insensitive pattern search.
func (s *Store) Find(ctx context.Context, q *db.FindQuery) ([]record.Record, error) {
	m, err := filter.NewMatcher(q.Filter)
	if err != nil {
		return nil, fmt.Errorf("prepare filter: %w", err)
	}

	keys, err := s.scan(ctx, s.collectionPrefix(q.Collection)+"*", false)
	if err != nil {
		return nil, fmt.Errorf("scan for find: %w", err)
	}
	sort.Strings(keys) // deterministic ordering

	out := make([]record.Record, 0)
	for start := 0; start < len(keys); start += fetchBatch {
		end := min(start+fetchBatch, len(keys))
		recs, err := s.jsonGetMulti(ctx, keys[start:end])
		if err != nil {
			return nil, err
		}
		for _, rec := range recs {
			if rec == nil || !m.Match(rec) {
				continue
			}
			out = append(out, rec)
			if q.Limit > 0 && len(out) >= q.Limit {
				return out, nil
			}
		}
	}
	return out, nil
}

// FindOne returns an arbitrary record of the collection.
func (s *Store) FindOne(ctx context.Context, collection string) (record.Record, error) {
	keys, err := s.scan(ctx, s.collectionPrefix(collection)+"*", true)
	if err != nil {
		return nil, fmt.Errorf("scan for sample: %w", err)
	}
	sort.Strings(keys)
	for _, key := range keys {
		rec, err := s.jsonGet(ctx, key)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, db.ErrKeyNotFound) {
			return nil, err
		}
	}
	return nil, db.ErrKeyNotFound
}

// FindByID returns the record stored under id.
func (s *Store) FindByID(ctx context.Context, collection, id string) (record.Record, error) {
	if _, err := record.ParseID(id); err != nil {
		return nil, db.ErrInvalidID
	}
	return s.jsonGet(ctx, s.docKey(collection, id))
}

// DeleteByID removes the record stored under id and returns it.
func (s *Store) DeleteByID(ctx context.Context, collection, id string) (record.Record, error) {
	if _, err := record.ParseID(id); err != nil {
		return nil, db.ErrInvalidID
	}
	key := s.docKey(collection, id)
	rec, err := s.jsonGet(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := s.del(ctx, key); err != nil {
		return nil, err
	}
	return rec, nil
}

// InsertMany stores records keyed by their _id, assigning one when missing.
func (s *Store) InsertMany(ctx context.Context, collection string, recs []record.Record) (int, error) {
	keys := make([]string, len(recs))
	docs := make([][]byte, len(recs))
	for i, rec := range recs {
		id, ok := rec[record.IDField].(string)
		if !ok || id == "" {
			id = record.NewID()
			rec[record.IDField] = id
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return 0, fmt.Errorf("marshal record %s: %w", id, err)
		}
		keys[i] = s.docKey(collection, id)
		docs[i] = data
	}

	if err := s.jsonSetMulti(ctx, keys, docs); err != nil {
		return 0, err
	}
	return len(recs), nil
}

func (s *Store) collectionPrefix(collection string) string {
	return s.prefix + collection + ":"
}

func (s *Store) docKey(collection, id string) string {
	return s.collectionPrefix(collection) + strings.ToLower(id)
}
