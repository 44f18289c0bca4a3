package batch

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	dombatch "github.com/kailas-cloud/recdex/internal/domain/batch"
	domrec "github.com/kailas-cloud/recdex/internal/domain/record"
	"github.com/kailas-cloud/recdex/internal/logger"
	"github.com/kailas-cloud/recdex/internal/metrics"
)

// DefaultBatchSize is the number of records written per store call.
const DefaultBatchSize = 500

// Service bulk-loads records into one collection with per-row outcomes.
type Service struct {
	repo       Inserter
	collection string
	batchSize  int
}

// New creates a batch import service.
func New(repo Inserter, collection string) *Service {
	return &Service{
		repo:       repo,
		collection: collection,
		batchSize:  DefaultBatchSize,
	}
}

// WithBatchSize configures how many records go into one store call.
func (s *Service) WithBatchSize(size int) *Service {
	if size > 0 {
		s.batchSize = size
	}
	return s
}

// Insert writes recs in chunks. Every record gets an identifier before it is
// written. A failed chunk marks all of its rows as failed and the import
// continues with the next chunk; a cancelled context fails the rest.
func (s *Service) Insert(ctx context.Context, recs []domrec.Record) []dombatch.Result {
	results := make([]dombatch.Result, len(recs))
	log := logger.FromContext(logger.WithCollection(ctx, s.collection))

	for _, rec := range recs {
		if recordID(rec) == "" {
			rec[domrec.IDField] = domrec.NewID()
		}
	}

	for start := 0; start < len(recs); start += s.batchSize {
		end := min(start+s.batchSize, len(recs))
		chunk := recs[start:end]

		if err := ctx.Err(); err != nil {
			s.fail(results, recs, start, len(recs), err)
			break
		}

		if _, err := s.repo.Insert(ctx, s.collection, chunk); err != nil {
			log.Warn("batch insert failed",
				zap.Int("from_row", start+1),
				zap.Int("to_row", end),
				zap.Error(err),
			)
			s.fail(results, recs, start, end, fmt.Errorf("insert: %w", err))
			continue
		}

		for i := start; i < end; i++ {
			results[i] = dombatch.NewOK(i+1, recordID(recs[i]))
		}
		metrics.ImportedRecordsTotal.WithLabelValues(string(dombatch.StatusOK)).Add(float64(len(chunk)))
		log.Debug("batch inserted", zap.Int("rows", len(chunk)))
	}

	return results
}

func (s *Service) fail(results []dombatch.Result, recs []domrec.Record, from, to int, err error) {
	for i := from; i < to; i++ {
		results[i] = dombatch.NewError(i+1, recordID(recs[i]), err)
	}
	metrics.ImportedRecordsTotal.WithLabelValues(string(dombatch.StatusError)).Add(float64(to - from))
}

func recordID(rec domrec.Record) string {
	id, _ := rec[domrec.IDField].(string)
	return id
}
