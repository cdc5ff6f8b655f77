package pg

import (
	"context"
	"log/slog"

	"github.com/DjordjeVuckovic/story-hunter/internal/storage"
)

type HealthChecker struct {
	pool *ConnectionPool
}

func NewHealthChecker(pool *ConnectionPool) *HealthChecker {
	return &HealthChecker{
		pool: pool,
	}
}

// Healthy pings through a pooled connection, so an exhausted pool reads as unhealthy.
func (hc *HealthChecker) Healthy(ctx context.Context) bool {
	if hc.pool == nil {
		return false
	}

	if err := hc.pool.Ping(ctx); err != nil {
		slog.Warn("PostgreSQL health check failed", "error", err)
		return false
	}

	return true
}

var _ storage.HealthChecker = (*HealthChecker)(nil)
