package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/five82/triage/internal/client"
)

type stubChecker struct {
	report client.HealthReport
	err    error
	block  bool
}

func (s stubChecker) Health(ctx context.Context) (client.HealthReport, error) {
	if s.block {
		<-ctx.Done()
		return client.HealthReport{}, ctx.Err()
	}
	return s.report, s.err
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestProbeHealth_LogsPayload(t *testing.T) {
	logger, buf := bufferLogger()
	checker := stubChecker{report: client.HealthReport{
		OK:      true,
		Status:  http.StatusOK,
		Payload: map[string]any{"status": "healthy", "model": "tinyllama"},
	}}

	if !ProbeHealth(context.Background(), checker, logger) {
		t.Fatalf("ProbeHealth = false, want true")
	}
	if !strings.Contains(buf.String(), "model status") || !strings.Contains(buf.String(), "tinyllama") {
		t.Fatalf("log = %q, want model status with payload", buf.String())
	}
}

func TestProbeHealth_ErrorIsOnlyLogged(t *testing.T) {
	logger, buf := bufferLogger()

	if ProbeHealth(context.Background(), stubChecker{err: errors.New("connection refused")}, logger) {
		t.Fatalf("ProbeHealth = true, want false")
	}
	if !strings.Contains(buf.String(), "level=WARN") || !strings.Contains(buf.String(), "connection refused") {
		t.Fatalf("log = %q, want warning with cause", buf.String())
	}
}

func TestProbeHealth_NonOKStatus(t *testing.T) {
	logger, _ := bufferLogger()
	checker := stubChecker{report: client.HealthReport{OK: false, Status: http.StatusServiceUnavailable}}

	if ProbeHealth(context.Background(), checker, logger) {
		t.Fatalf("ProbeHealth = true, want false")
	}
}

func TestProbeHealth_RespectsCallerCancellation(t *testing.T) {
	logger, _ := bufferLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if ProbeHealth(ctx, stubChecker{block: true}, logger) {
		t.Fatalf("ProbeHealth = true, want false")
	}
	if time.Since(start) > time.Second {
		t.Fatalf("ProbeHealth blocked past cancellation")
	}
}

func TestProbeHealth_AgainstServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy","model":"tinyllama"}`))
	}))
	defer server.Close()

	c, err := client.NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	logger, _ := bufferLogger()
	if !ProbeHealth(context.Background(), c, logger) {
		t.Fatalf("ProbeHealth = false, want true")
	}
}
