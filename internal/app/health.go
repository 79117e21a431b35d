package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/triage/internal/client"
)

const healthTimeout = 5 * time.Second

// HealthChecker reports the API's health.
type HealthChecker interface {
	Health(ctx context.Context) (client.HealthReport, error)
}

// StartHealthProbe checks the API once in the background. It returns
// immediately; the result only reaches the log.
func StartHealthProbe(ctx context.Context, checker HealthChecker, logger *slog.Logger) {
	go func() {
		if !ProbeHealth(ctx, checker, logger) {
			logger.Warn("AI model may not be ready")
		}
	}()
}

// ProbeHealth asks the API for its status and logs the outcome. It never
// fails the caller.
func ProbeHealth(ctx context.Context, checker HealthChecker, logger *slog.Logger) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	report, err := checker.Health(ctx)
	if err != nil {
		logger.Warn("health check failed", "error", err)
		return false
	}
	if !report.OK {
		logger.Warn("health check failed", "status", report.Status)
		return false
	}
	logger.Info("model status", "payload", report.Payload)
	return true
}
