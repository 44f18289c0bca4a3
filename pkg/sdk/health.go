package recdex

import (
	"context"
	"time"

	healthuc "github.com/kailas-cloud/recdex/internal/usecase/health"
)

// HealthStatus is the embedded counterpart of GET /health.
type HealthStatus struct {
	Status    string            // "ok" or "degraded"
	Checks    map[string]string // "database" and any extra check -> "ok" or "error"
	CheckedAt time.Time
}

// Healthy reports whether every check passed.
func (h HealthStatus) Healthy() bool {
	return h.Status == string(healthuc.Healthy)
}

// Failing lists the checks that reported an error.
func (h HealthStatus) Failing() []string {
	var out []string
	for name, res := range h.Checks {
		if res == string(healthuc.CheckError) {
			out = append(out, name)
		}
	}
	return out
}

// Health checks the record store the same way the HTTP API does.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = string(res)
	}
	return HealthStatus{
		Status:    string(report.Status),
		Checks:    checks,
		CheckedAt: time.Now(),
	}
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
