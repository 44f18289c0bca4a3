package valkey

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/recdex/internal/db"
	"github.com/kailas-cloud/recdex/internal/domain/record"
)

// jsonGet fetches one document. Missing keys return db.ErrKeyNotFound.
func (s *Store) jsonGet(ctx context.Context, key string) (record.Record, error) {
	cmd := s.b().Arbitrary("JSON.GET").Keys(key).Args("$").Build()
	raw, err := s.do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpJSONGet, Err: err}
	}
	rec, err := parseJSONGetResult(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if rec == nil {
		return nil, db.ErrKeyNotFound
	}
	return rec, nil
}

// jsonGetMulti pipelines JSON.GET for keys. Missing keys yield nil entries.
func (s *Store) jsonGetMulti(ctx context.Context, keys []string) ([]record.Record, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	cmds := make([]rueidis.Completed, len(keys))
	for i, key := range keys {
		cmds[i] = s.b().Arbitrary("JSON.GET").Keys(key).Args("$").Build()
	}

	results := s.client.DoMulti(ctx, cmds...)
	out := make([]record.Record, len(results))
	for i, res := range results {
		raw, err := res.ToString()
		if err != nil {
			if rueidis.IsRedisNil(err) {
				continue // deleted between SCAN and GET
			}
			return nil, &db.Error{Op: db.OpJSONGet, Err: err}
		}
		rec, err := parseJSONGetResult(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		out[i] = rec
	}
	return out, nil
}

// jsonSetMulti pipelines JSON.SET for the given key/document pairs.
func (s *Store) jsonSetMulti(ctx context.Context, keys []string, docs [][]byte) error {
	if len(keys) == 0 {
		return nil
	}

	cmds := make([]rueidis.Completed, len(keys))
	for i, key := range keys {
		cmds[i] = s.b().Arbitrary("JSON.SET").Keys(key).Args("$", string(docs[i])).Build()
	}

	for i, res := range s.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return &db.Error{Op: db.OpJSONSet, Err: fmt.Errorf("%s: %w", keys[i], err)}
		}
	}
	return nil
}

// del deletes a key.
// del removes key. A key that is already gone reports ErrKeyNotFound.
func (s *Store) del(ctx context.Context, key string) error {
	cmd := s.b().Del().Key(key).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	if n == 0 {
		return db.ErrKeyNotFound
	}
	return nil
}

// scan iterates keys matching a pattern. With first set it stops after the
// first page that yields any key.
func (s *Store) scan(ctx context.Context, pattern string, first bool) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		cmd := s.b().Scan().Cursor(cursor).Match(pattern).Count(100).Build()
		res, err := s.do(ctx, cmd).AsScanEntry()
		if err != nil {
			return nil, &db.Error{Op: db.OpScan, Err: err}
		}
		keys = append(keys, res.Elements...)
		cursor = res.Cursor
		if cursor == 0 || (first && len(keys) > 0) {
			break
		}
	}

	return keys, nil
}

// parseJSONGetResult unwraps the "$" path reply: a JSON array holding the document.
func parseJSONGetResult(raw string) (record.Record, error) {
	if raw == "" {
		return nil, nil
	}
	var docs []record.Record
	if err := json.Unmarshal([]byte(raw), &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0], nil
}
