package batch

import (
	"context"

	domrec "github.com/kailas-cloud/recdex/internal/domain/record"
)

// Inserter stores a batch of records.
type Inserter interface {
	Insert(ctx context.Context, collection string, recs []domrec.Record) (int, error)
}
