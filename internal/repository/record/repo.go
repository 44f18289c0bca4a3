package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/recdex/internal/db"
	"github.com/kailas-cloud/recdex/internal/domain"
	domrec "github.com/kailas-cloud/recdex/internal/domain/record"
	"github.com/kailas-cloud/recdex/internal/domain/search/filter"
)

// store is the consumer interface for records (ISP).
type store interface {
	Find(ctx context.Context, q *db.FindQuery) ([]domrec.Record, error)
	FindOne(ctx context.Context, collection string) (domrec.Record, error)
	FindByID(ctx context.Context, collection, id string) (domrec.Record, error)
	DeleteByID(ctx context.Context, collection, id string) (domrec.Record, error)
	InsertMany(ctx context.Context, collection string, recs []domrec.Record) (int, error)
}

// Repo implements usecase/record.Repository and usecase/batch.Inserter.
type Repo struct {
	store store
}

// New creates a record repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// List returns up to limit records of the collection satisfying pred.
func (r *Repo) List(ctx context.Context, collection string, pred filter.Predicate, limit int) (
	[]domrec.Record, error,
) {
	recs, err := r.store.Find(ctx, &db.FindQuery{
		Collection: collection,
		Filter:     pred,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, mapErr(err))
	}
	return recs, nil
}

// Sample returns one arbitrary record, or nil when the collection is empty.
func (r *Repo) Sample(ctx context.Context, collection string) (domrec.Record, error) {
	rec, err := r.store.FindOne(ctx, collection)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find one %s: %w", collection, mapErr(err))
	}
	return rec, nil
}

// Get returns a record by identifier.
func (r *Repo) Get(ctx context.Context, collection, id string) (domrec.Record, error) {
	rec, err := r.store.FindByID(ctx, collection, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return rec, nil
}

// Delete removes a record by identifier and returns the removed record.
func (r *Repo) Delete(ctx context.Context, collection, id string) (domrec.Record, error) {
	rec, err := r.store.DeleteByID(ctx, collection, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return rec, nil
}

// Insert stores a batch of records and returns how many were written.
func (r *Repo) Insert(ctx context.Context, collection string, recs []domrec.Record) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	n, err := r.store.InsertMany(ctx, collection, recs)
	if err != nil {
		return n, fmt.Errorf("insert into %s: %w", collection, mapErr(err))
	}
	return n, nil
}

// mapErr translates store sentinels into domain errors. Anything else is a
// store failure.
func mapErr(err error) error {
	switch {
	case errors.Is(err, db.ErrKeyNotFound):
		return domain.ErrRecordNotFound
	case errors.Is(err, db.ErrInvalidID):
		return domain.ErrInvalidIdentifier
	default:
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
}
