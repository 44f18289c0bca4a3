package record

import (
	"context"

	domrec "github.com/kailas-cloud/recdex/internal/domain/record"
	"github.com/kailas-cloud/recdex/internal/domain/search/filter"
)

// Repository defines the storage contract for schema-less records.
type Repository interface {
	List(ctx context.Context, collection string, pred filter.Predicate, limit int) ([]domrec.Record, error)
	Sample(ctx context.Context, collection string) (domrec.Record, error)
	Get(ctx context.Context, collection, id string) (domrec.Record, error)
	Delete(ctx context.Context, collection, id string) (domrec.Record, error)
}
