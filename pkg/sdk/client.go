package recdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/recdex/internal/db"
	dbMongo "github.com/kailas-cloud/recdex/internal/db/mongo"
	dbValkey "github.com/kailas-cloud/recdex/internal/db/valkey"
	recordrepo "github.com/kailas-cloud/recdex/internal/repository/record"
	batchuc "github.com/kailas-cloud/recdex/internal/usecase/batch"
	healthuc "github.com/kailas-cloud/recdex/internal/usecase/health"
	recorduc "github.com/kailas-cloud/recdex/internal/usecase/record"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "recdex:"
)

// recordRepository is the storage the record and import services share.
type recordRepository interface {
	recorduc.Repository
	batchuc.Inserter
}

// Client is the recdex SDK entry point.
type Client struct {
	store     db.Store
	repo      recordRepository
	healthSvc healthUseCase
	cfg       *clientConfig
	obs       *observer
}

// New creates a recdex Client and connects to the database.
// The provided context is used for connecting and the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.driver == "" {
		return nil, errors.New("recdex: database required (use WithMongo, WithValkey or WithRedis)")
	}

	store, err := createStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("recdex: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs), nil
}

func createStore(ctx context.Context, cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "mongo":
		if cfg.uri == "" || cfg.database == "" {
			return nil, errors.New("recdex: mongo uri and database are required")
		}
		s, err := dbMongo.NewStore(ctx, dbMongo.Config{
			URI:      cfg.uri,
			Database: cfg.database,
		})
		if err != nil {
			return nil, fmt.Errorf("recdex: create mongo store: %w", err)
		}
		return s, nil
	case "valkey", "redis":
		prefix := cfg.prefix
		if prefix == "" {
			prefix = defaultKeyPrefix
		}
		s, err := dbValkey.NewStore(dbValkey.Config{
			Addrs:     cfg.addrs,
			Password:  cfg.password,
			KeyPrefix: prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("recdex: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("recdex: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	return &Client{
		store:     store,
		repo:      recordrepo.New(store),
		healthSvc: healthuc.New(store),
		cfg:       cfg,
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(opEvent{op: "ping", records: -1, start: start, err: err}) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Records returns the record service for a given collection.
func (c *Client) Records(collection string) *RecordService {
	svc := recorduc.New(c.repo, collection)
	if c.cfg.maxResults > 0 {
		svc = svc.WithMaxResults(c.cfg.maxResults)
	}
	imp := batchuc.New(c.repo, collection)
	if c.cfg.batchSize > 0 {
		imp = imp.WithBatchSize(c.cfg.batchSize)
	}
	return &RecordService{
		collection: collection,
		svc:        svc,
		batchSvc:   imp,
		obs:        c.obs,
	}
}
