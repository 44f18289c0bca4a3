package health

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recdex/internal/logger"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates at least one failing check.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// DefaultCheckTimeout bounds each individual check.
const DefaultCheckTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

type namedCheck struct {
	name string
	fn   CheckFunc
}

// Service coordinates health checks. The database check always runs.
type Service struct {
	checks  []namedCheck
	timeout time.Duration
}

// New creates a Service probing db as "database".
func New(db DBPinger) *Service {
	return &Service{
		checks:  []namedCheck{{name: "database", fn: db.Ping}},
		timeout: DefaultCheckTimeout,
	}
}

// WithCheck adds a named check.
func (s *Service) WithCheck(name string, fn CheckFunc) *Service {
	s.checks = append(s.checks, namedCheck{name: name, fn: fn})
	return s
}

// WithTimeout sets the per-check timeout.
func (s *Service) WithTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Check runs every check and reports Degraded if any of them fails.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.checks))
	status := Healthy

	for _, c := range s.checks {
		if err := s.run(ctx, c.fn); err != nil {
			checks[c.name] = CheckError
			status = Degraded
			logger.FromContext(ctx).Warn("health check failed",
				zap.String("check", c.name),
				zap.Error(err),
			)
			continue
		}
		checks[c.name] = CheckOK
	}

	return Report{Status: status, Checks: checks}
}

func (s *Service) run(ctx context.Context, fn CheckFunc) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return fn(ctx)
}
