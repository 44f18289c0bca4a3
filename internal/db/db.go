package db

import (
	"context"
	"time"

	"github.com/kailas-cloud/recdex/internal/domain/record"
	"github.com/kailas-cloud/recdex/internal/domain/search/filter"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	DocumentStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// FindQuery is the input for a filtered collection read.
type FindQuery struct {
	Collection string
	Filter     filter.Predicate
	Limit      int // <= 0 means no limit
}

// DocumentStore executes predicates and id lookups against schema-less collections.
// FindOne, FindByID and DeleteByID return ErrKeyNotFound when nothing matches;
// FindByID and DeleteByID return ErrInvalidID for malformed identifiers.
type DocumentStore interface {
	Find(ctx context.Context, q *FindQuery) ([]record.Record, error)
	FindOne(ctx context.Context, collection string) (record.Record, error)
	FindByID(ctx context.Context, collection, id string) (record.Record, error)
	DeleteByID(ctx context.Context, collection, id string) (record.Record, error)
	InsertMany(ctx context.Context, collection string, recs []record.Record) (int, error)
}
