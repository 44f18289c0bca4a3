package recdex

import (
	"context"
	"fmt"
	"time"

	dombatch "github.com/kailas-cloud/recdex/internal/domain/batch"
	domrec "github.com/kailas-cloud/recdex/internal/domain/record"
	"github.com/kailas-cloud/recdex/internal/domain/search/filter"
	"github.com/kailas-cloud/recdex/internal/importer"
)

// Record is a schema-less document. Identifiers are under "_id".
type Record map[string]any

// Condition selects how a filter compares a column with the search text.
type Condition string

// Filter conditions.
const (
	Contains Condition = Condition(filter.Contains)
	Equals   Condition = Condition(filter.Equals)
	Starts   Condition = Condition(filter.Starts)
	Ends     Condition = Condition(filter.Ends)
	Empty    Condition = Condition(filter.Empty)
)

// Filter narrows List. The zero value lists everything.
type Filter struct {
	Column    string
	Condition Condition
	Search    string
}

// ImportResult summarizes an Import. Rows are 1-based.
type ImportResult struct {
	Inserted   int
	Failed     int
	FailedRows []int
	FirstErr   error
}

// RecordService reads and writes the records of one collection.
type RecordService struct {
	collection string
	svc        recordUseCase
	batchSvc   batchUseCase
	obs        *observer
}

type recordUseCase interface {
	List(ctx context.Context, req filter.Request) ([]domrec.Record, error)
	Columns(ctx context.Context) ([]string, error)
	Get(ctx context.Context, rawID string) (domrec.Record, error)
	Delete(ctx context.Context, rawID string) (domrec.Record, error)
}

type batchUseCase interface {
	Insert(ctx context.Context, recs []domrec.Record) []dombatch.Result
}

// List returns at most 100 records matching f.
func (s *RecordService) List(ctx context.Context, f Filter) (out []Record, err error) {
	start := time.Now()
	defer func() { s.obs.observe(s.event("list", len(out), start, err)) }()

	recs, err := s.svc.List(ctx, filter.Request{
		Column:    f.Column,
		Condition: filter.Condition(f.Condition),
		Search:    f.Search,
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.collection, err)
	}
	out = make([]Record, len(recs))
	for i, r := range recs {
		out[i] = Record(r)
	}
	return out, nil
}

// Columns returns the field names of one sampled record, without "_id" and "__v".
func (s *RecordService) Columns(ctx context.Context) (_ []string, err error) {
	start := time.Now()
	defer func() { s.obs.observe(s.event("columns", -1, start, err)) }()

	cols, err := s.svc.Columns(ctx)
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", s.collection, err)
	}
	return cols, nil
}

// Get returns the record with the given identifier.
func (s *RecordService) Get(ctx context.Context, id string) (_ Record, err error) {
	start := time.Now()
	defer func() { s.obs.observe(s.event("get", -1, start, err)) }()

	rec, err := s.svc.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	return Record(rec), nil
}

// Delete removes the record with the given identifier and returns it.
func (s *RecordService) Delete(ctx context.Context, id string) (_ Record, err error) {
	start := time.Now()
	defer func() { s.obs.observe(s.event("delete", -1, start, err)) }()

	rec, err := s.svc.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete %s: %w", id, err)
	}
	return Record(rec), nil
}

// Import inserts recs, assigning identifiers where "_id" is missing.
// A failed chunk does not stop the rest of the import.
func (s *RecordService) Import(ctx context.Context, recs []Record) (res ImportResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe(s.event("import", res.Inserted, start, err)) }()

	in := make([]domrec.Record, len(recs))
	for i, r := range recs {
		in[i] = domrec.Record(r)
	}
	results := s.batchSvc.Insert(ctx, in)

	sum := dombatch.Summarize(results)
	res = ImportResult{Inserted: sum.OK, Failed: sum.Failed, FirstErr: sum.FirstErr}
	for _, r := range results {
		if r.Status() == dombatch.StatusError {
			res.FailedRows = append(res.FailedRows, r.Row())
		}
	}
	if sum.Failed > 0 {
		err = fmt.Errorf("import %s: %d of %d records failed: %w", s.collection, sum.Failed, len(recs), sum.FirstErr)
	}
	return res, err
}

// ImportFile reads a CSV or XLSX file and imports its rows. Numeric-looking
// cells are stored as numbers unless keepStrings is set.
func (s *RecordService) ImportFile(ctx context.Context, path, sheet string, keepStrings bool) (ImportResult, error) {
	tbl, err := importer.Open(path, sheet)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read %s: %w", path, err)
	}
	recs := tbl.Records(importer.Options{KeepStrings: keepStrings})
	out := make([]Record, len(recs))
	for i, r := range recs {
		out[i] = Record(r)
	}
	return s.Import(ctx, out)
}

func (s *RecordService) event(op string, records int, start time.Time, err error) opEvent {
	return opEvent{op: op, collection: s.collection, records: records, start: start, err: err}
}
