package record

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	domrec "github.com/kailas-cloud/recdex/internal/domain/record"
	"github.com/kailas-cloud/recdex/internal/domain/search/filter"
	"github.com/kailas-cloud/recdex/internal/logger"
	"github.com/kailas-cloud/recdex/internal/metrics"
)

// MaxResults is the hard ceiling on records returned by one List call.
const MaxResults = 100

// Service filters, reads and deletes records of one collection.
type Service struct {
	repo       Repository
	collection string
	maxResults int
	columns    *cache.Cache
}

// New creates a record service bound to a collection.
func New(repo Repository, collection string) *Service {
	return &Service{
		repo:       repo,
		collection: collection,
		maxResults: MaxResults,
	}
}

// WithMaxResults lowers the result cap. Values outside (0, MaxResults] are ignored.
func (s *Service) WithMaxResults(n int) *Service {
	if n > 0 && n <= MaxResults {
		s.maxResults = n
	}
	return s
}

// WithColumnsCache keeps discovered columns for ttl. A non-positive ttl
// leaves caching off.
func (s *Service) WithColumnsCache(ttl time.Duration) *Service {
	if ttl > 0 {
		s.columns = cache.New(ttl, 2*ttl)
	}
	return s
}

// Collection returns the name of the served collection.
func (s *Service) Collection() string {
	return s.collection
}

// List compiles the filter request and returns the matching records, capped.
// Malformed requests are not errors: they degrade to an unfiltered list.
func (s *Service) List(ctx context.Context, req filter.Request) ([]domrec.Record, error) {
	pred := filter.Compile(req)
	metrics.ObserveFilter(string(req.Condition), filter.Shape(pred))
	logger.FromContext(logger.WithCollection(ctx, s.collection)).Debug("list records",
		zap.Stringer("predicate", pred),
	)

	recs, err := s.repo.List(ctx, s.collection, pred, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	if len(recs) > s.maxResults {
		recs = recs[:s.maxResults]
	}
	if recs == nil {
		recs = []domrec.Record{}
	}
	metrics.ListResults.Observe(float64(len(recs)))
	return recs, nil
}

// Columns reports the field names of one sampled record. An empty collection
// yields an empty list.
func (s *Service) Columns(ctx context.Context) ([]string, error) {
	if s.columns != nil {
		if v, ok := s.columns.Get(s.collection); ok {
			cols, _ := v.([]string)
			return append([]string(nil), cols...), nil
		}
	}

	sample, err := s.repo.Sample(ctx, s.collection)
	if err != nil {
		return nil, fmt.Errorf("sample record: %w", err)
	}
	cols := domrec.Columns(sample)
	// an empty collection is not cached so the first insert shows up at once
	if s.columns != nil && len(cols) > 0 {
		s.columns.SetDefault(s.collection, append([]string(nil), cols...))
	}
	return cols, nil
}

// Get returns the record with the given identifier.
func (s *Service) Get(ctx context.Context, rawID string) (domrec.Record, error) {
	id, err := domrec.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	rec, err := s.repo.Get(ctx, s.collection, id)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// Delete removes the record with the given identifier and returns it.
func (s *Service) Delete(ctx context.Context, rawID string) (domrec.Record, error) {
	id, err := domrec.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	rec, err := s.repo.Delete(ctx, s.collection, id)
	if err != nil {
		return nil, fmt.Errorf("delete record: %w", err)
	}
	if s.columns != nil {
		s.columns.Delete(s.collection)
	}
	logger.FromContext(logger.WithCollection(ctx, s.collection)).Info("record deleted",
		zap.String("id", id),
	)
	return rec, nil
}
