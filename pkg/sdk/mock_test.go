package recdex

import (
	"context"

	"github.com/kailas-cloud/recdex/internal/domain"
	domrec "github.com/kailas-cloud/recdex/internal/domain/record"
	"github.com/kailas-cloud/recdex/internal/domain/search/filter"
	healthuc "github.com/kailas-cloud/recdex/internal/usecase/health"
)

// --- recordRepository mock ---

type mockRepo struct {
	listFn   func(ctx context.Context, col string, pred filter.Predicate, limit int) ([]domrec.Record, error)
	sampleFn func(ctx context.Context, col string) (domrec.Record, error)
	getFn    func(ctx context.Context, col, id string) (domrec.Record, error)
	deleteFn func(ctx context.Context, col, id string) (domrec.Record, error)
	insertFn func(ctx context.Context, col string, recs []domrec.Record) (int, error)
}

func (m *mockRepo) List(ctx context.Context, col string, pred filter.Predicate, limit int) ([]domrec.Record, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, col, pred, limit)
}

func (m *mockRepo) Sample(ctx context.Context, col string) (domrec.Record, error) {
	if m.sampleFn == nil {
		return nil, nil
	}
	return m.sampleFn(ctx, col)
}

func (m *mockRepo) Get(ctx context.Context, col, id string) (domrec.Record, error) {
	if m.getFn == nil {
		return nil, domain.ErrRecordNotFound
	}
	return m.getFn(ctx, col, id)
}

func (m *mockRepo) Delete(ctx context.Context, col, id string) (domrec.Record, error) {
	if m.deleteFn == nil {
		return nil, domain.ErrRecordNotFound
	}
	return m.deleteFn(ctx, col, id)
}

func (m *mockRepo) Insert(ctx context.Context, col string, recs []domrec.Record) (int, error) {
	if m.insertFn == nil {
		return len(recs), nil
	}
	return m.insertFn(ctx, col, recs)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}

func newTestClient(repo *mockRepo, opts ...Option) *Client {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	return &Client{repo: repo, cfg: cfg}
}
