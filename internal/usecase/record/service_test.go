package record

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kailas-cloud/recdex/internal/domain"
	domrec "github.com/kailas-cloud/recdex/internal/domain/record"
	"github.com/kailas-cloud/recdex/internal/domain/search/filter"
)

const testID = "65a1f0c2b3d4e5f601234561"

// --- Mocks ---

type mockRepo struct {
	listRecs  []domrec.Record
	listErr   error
	listPred  filter.Predicate
	listLimit int
	sample      domrec.Record
	sampleErr   error
	sampleCalls int
	getRec    domrec.Record
	getErr    error
	getCalls  int
	deleteRec domrec.Record
	deleteErr error
}

func (m *mockRepo) List(_ context.Context, _ string, pred filter.Predicate, limit int) ([]domrec.Record, error) {
	m.listPred = pred
	m.listLimit = limit
	return m.listRecs, m.listErr
}
func (m *mockRepo) Sample(_ context.Context, _ string) (domrec.Record, error) {
	m.sampleCalls++
	return m.sample, m.sampleErr
}
func (m *mockRepo) Get(_ context.Context, _, _ string) (domrec.Record, error) {
	m.getCalls++
	return m.getRec, m.getErr
}
func (m *mockRepo) Delete(_ context.Context, _, _ string) (domrec.Record, error) {
	return m.deleteRec, m.deleteErr
}

func manyRecords(n int) []domrec.Record {
	out := make([]domrec.Record, n)
	for i := range out {
		out[i] = domrec.Record{"n": float64(i), "make": fmt.Sprintf("car-%d", i)}
	}
	return out
}

// --- List ---

func TestList_CompilesRequest(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, "cardetails")

	_, err := svc.List(context.Background(), filter.Request{
		Column: "make", Condition: filter.Contains, Search: "bm",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.listPred.Op() != filter.OpPattern || repo.listPred.Pattern() != "bm" {
		t.Errorf("unexpected predicate: %s", repo.listPred)
	}
	if repo.listLimit != MaxResults {
		t.Errorf("limit = %d, want %d", repo.listLimit, MaxResults)
	}
}

func TestList_MalformedRequestListsAll(t *testing.T) {
	repo := &mockRepo{listRecs: manyRecords(3)}
	svc := New(repo, "cardetails")

	recs, err := svc.List(context.Background(), filter.Request{Column: "make", Condition: "bogus", Search: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.listPred.MatchesAll() {
		t.Errorf("expected match-all, got %s", repo.listPred)
	}
	if len(recs) != 3 {
		t.Errorf("expected 3 records, got %d", len(recs))
	}
}

func TestList_NeverExceedsCap(t *testing.T) {
	repo := &mockRepo{listRecs: manyRecords(150)}
	svc := New(repo, "cardetails")

	recs, err := svc.List(context.Background(), filter.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != MaxResults {
		t.Errorf("expected %d records, got %d", MaxResults, len(recs))
	}
}

func TestList_EmptyIsNonNil(t *testing.T) {
	svc := New(&mockRepo{}, "cardetails")

	recs, err := svc.List(context.Background(), filter.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recs == nil {
		t.Error("expected empty non-nil slice")
	}
}

func TestList_StoreUnavailable(t *testing.T) {
	repo := &mockRepo{listErr: fmt.Errorf("find: %w", domain.ErrStoreUnavailable)}
	svc := New(repo, "cardetails")

	if _, err := svc.List(context.Background(), filter.Request{}); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestWithMaxResults(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{10, 10},
		{100, 100},
		{0, MaxResults},
		{-5, MaxResults},
		{500, MaxResults},
	}
	for _, tc := range tests {
		repo := &mockRepo{listRecs: manyRecords(150)}
		svc := New(repo, "cardetails").WithMaxResults(tc.in)
		recs, err := svc.List(context.Background(), filter.Request{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.listLimit != tc.want || len(recs) != tc.want {
			t.Errorf("WithMaxResults(%d): limit=%d len=%d, want %d", tc.in, repo.listLimit, len(recs), tc.want)
		}
	}
}

// --- Columns ---

func TestColumns_ExcludesInternalFields(t *testing.T) {
	repo := &mockRepo{sample: domrec.Record{"_id": testID, "__v": 0, "year": 2020, "make": "BMW"}}
	svc := New(repo, "cardetails")

	cols, err := svc.Columns(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cols) != 2 || cols[0] != "make" || cols[1] != "year" {
		t.Errorf("columns = %v, want [make year]", cols)
	}
}

func TestColumns_EmptyCollection(t *testing.T) {
	svc := New(&mockRepo{}, "cardetails")

	cols, err := svc.Columns(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cols == nil || len(cols) != 0 {
		t.Errorf("expected empty non-nil columns, got %#v", cols)
	}
}

func TestColumns_CachedUntilDelete(t *testing.T) {
	repo := &mockRepo{
		sample:    domrec.Record{"_id": testID, "make": "BMW"},
		deleteRec: domrec.Record{"_id": testID},
	}
	svc := New(repo, "cardetails").WithColumnsCache(time.Minute)

	for range 3 {
		cols, err := svc.Columns(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cols) != 1 || cols[0] != "make" {
			t.Fatalf("columns = %v", cols)
		}
		cols[0] = "mutated"
	}
	if repo.sampleCalls != 1 {
		t.Errorf("sample calls = %d, want 1", repo.sampleCalls)
	}

	if _, err := svc.Delete(context.Background(), testID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Columns(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.sampleCalls != 2 {
		t.Errorf("sample calls after delete = %d, want 2", repo.sampleCalls)
	}
}

func TestColumns_EmptyCollectionNotCached(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, "cardetails").WithColumnsCache(time.Minute)

	_, _ = svc.Columns(context.Background())
	_, _ = svc.Columns(context.Background())
	if repo.sampleCalls != 2 {
		t.Errorf("sample calls = %d, want 2", repo.sampleCalls)
	}
}

func TestColumns_Error(t *testing.T) {
	svc := New(&mockRepo{sampleErr: domain.ErrStoreUnavailable}, "cardetails")

	if _, err := svc.Columns(context.Background()); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

// --- Get / Delete ---

func TestGet_InvalidIdentifierSkipsRepo(t *testing.T) {
	repo := &mockRepo{getErr: domain.ErrRecordNotFound}
	svc := New(repo, "cardetails")

	for _, raw := range []string{"", "abc", "65a1f0c2b3d4e5f60123456z", testID + "00"} {
		_, err := svc.Get(context.Background(), raw)
		if !errors.Is(err, domain.ErrInvalidIdentifier) {
			t.Errorf("Get(%q): expected ErrInvalidIdentifier, got %v", raw, err)
		}
		if errors.Is(err, domain.ErrRecordNotFound) {
			t.Errorf("Get(%q): must not be ErrRecordNotFound", raw)
		}
	}
	if repo.getCalls != 0 {
		t.Errorf("repo called %d times for invalid ids", repo.getCalls)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := New(&mockRepo{getErr: domain.ErrRecordNotFound}, "cardetails")

	if _, err := svc.Get(context.Background(), testID); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestGet_Found(t *testing.T) {
	svc := New(&mockRepo{getRec: domrec.Record{"_id": testID}}, "cardetails")

	rec, err := svc.Get(context.Background(), testID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec["_id"] != testID {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		repo    *mockRepo
		wantErr error
	}{
		{"invalid", "not-an-id", &mockRepo{}, domain.ErrInvalidIdentifier},
		{"not found", testID, &mockRepo{deleteErr: domain.ErrRecordNotFound}, domain.ErrRecordNotFound},
		{"ok", testID, &mockRepo{deleteRec: domrec.Record{"_id": testID}}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := New(tc.repo, "cardetails")
			rec, err := svc.Delete(context.Background(), tc.id)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec["_id"] != testID {
				t.Errorf("unexpected record: %v", rec)
			}
		})
	}
}
