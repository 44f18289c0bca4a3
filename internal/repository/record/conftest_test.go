package record

import (
	"context"
	"testing"

	"github.com/kailas-cloud/recdex/internal/db"
	domrec "github.com/kailas-cloud/recdex/internal/domain/record"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	findFn       func(ctx context.Context, q *db.FindQuery) ([]domrec.Record, error)
	findOneFn    func(ctx context.Context, collection string) (domrec.Record, error)
	findByIDFn   func(ctx context.Context, collection, id string) (domrec.Record, error)
	deleteByIDFn func(ctx context.Context, collection, id string) (domrec.Record, error)
	insertManyFn func(ctx context.Context, collection string, recs []domrec.Record) (int, error)
}

func (m *mockStore) Find(ctx context.Context, q *db.FindQuery) ([]domrec.Record, error) {
	if m.findFn != nil {
		return m.findFn(ctx, q)
	}
	return []domrec.Record{}, nil
}

func (m *mockStore) FindOne(ctx context.Context, collection string) (domrec.Record, error) {
	if m.findOneFn != nil {
		return m.findOneFn(ctx, collection)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) FindByID(ctx context.Context, collection, id string) (domrec.Record, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, collection, id)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) DeleteByID(ctx context.Context, collection, id string) (domrec.Record, error) {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, collection, id)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) InsertMany(ctx context.Context, collection string, recs []domrec.Record) (int, error) {
	if m.insertManyFn != nil {
		return m.insertManyFn(ctx, collection, recs)
	}
	return len(recs), nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}
