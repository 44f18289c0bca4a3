package batch

// ItemStatus is the processing outcome of a single imported row.
type ItemStatus string

// Batch item status values.
const (
	StatusOK    ItemStatus = "ok"
	StatusError ItemStatus = "error"
)

// Result is the outcome of importing one source row.
type Result struct {
	row    int
	id     string
	status ItemStatus
	err    error
}

// NewOK creates a successful row result for the record stored under id.
func NewOK(row int, id string) Result { return Result{row: row, id: id, status: StatusOK} }

// NewError creates a failed row result.
func NewError(row int, id string, err error) Result {
	return Result{row: row, id: id, status: StatusError, err: err}
}

// Row returns the 1-based source row number, header excluded.
func (r Result) Row() int { return r.row }

// ID returns the record identifier.
func (r Result) ID() string { return r.id }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }

// Summary counts outcomes across an import.
type Summary struct {
	OK     int
	Failed int
	// FirstErr is the error of the earliest failed row.
	FirstErr error
}

// Summarize folds row results into counts.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		if r.status == StatusOK {
			s.OK++
			continue
		}
		s.Failed++
		if s.FirstErr == nil {
			s.FirstErr = r.err
		}
	}
	return s
}
