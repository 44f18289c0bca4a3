package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recdex/internal/config"
	"github.com/kailas-cloud/recdex/internal/db"
	dbMongo "github.com/kailas-cloud/recdex/internal/db/mongo"
	dbValkey "github.com/kailas-cloud/recdex/internal/db/valkey"
)

// openStore creates the configured store and waits until it answers.
func openStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (db.Store, error) {
	var (
		store db.Store
		err   error
	)
	switch cfg.Driver {
	case config.DriverMongo:
		store, err = dbMongo.NewStore(ctx, dbMongo.Config{
			URI:      cfg.URI,
			Database: cfg.Name,
		})
	case config.DriverValkey, config.DriverRedis:
		// both speak RESP; the server needs the JSON module
		store, err = dbValkey.NewStore(dbValkey.Config{
			Addrs:     cfg.Addrs,
			Password:  cfg.Password,
			KeyPrefix: cfg.KeyPrefix,
		})
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database", zap.String("driver", cfg.Driver))
	return store, nil
}
