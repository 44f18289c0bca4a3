package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CheckFunc checks one extra component. A nil error means healthy.
type CheckFunc func(ctx context.Context) error
