package health_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tearoma/tearoma-api/internal/health"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

var (
	up   = pingFunc(func(context.Context) error { return nil })
	down = pingFunc(func(context.Context) error { return errors.New("unreachable") })
)

func newChecker(db, cache health.Pinger) *health.Checker {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return health.NewChecker(db, cache, logger, prometheus.NewRegistry())
}

func TestReadiness_AllUp(t *testing.T) {
	result := newChecker(up, up).Readiness(context.Background())

	if result.Status != "up" {
		t.Errorf("status = %q, want up", result.Status)
	}
	for _, dep := range []string{"postgres", "redis"} {
		if result.Checks[dep].Status != "up" {
			t.Errorf("%s = %+v, want up", dep, result.Checks[dep])
		}
	}
}

func TestReadiness_PostgresDownGatesStatus(t *testing.T) {
	result := newChecker(down, up).Readiness(context.Background())

	if result.Status != "down" {
		t.Errorf("status = %q, want down", result.Status)
	}
	if result.Checks["postgres"].Status != "down" || result.Checks["postgres"].Error == "" {
		t.Errorf("postgres = %+v", result.Checks["postgres"])
	}
}

func TestReadiness_RedisDownDoesNotGateStatus(t *testing.T) {
	// Reads degrade to the database on a cache outage, so the service stays
	// ready with Redis down.
	result := newChecker(up, down).Readiness(context.Background())

	if result.Status != "up" {
		t.Errorf("status = %q, want up", result.Status)
	}
	if result.Checks["redis"].Status != "down" {
		t.Errorf("redis = %+v, want down", result.Checks["redis"])
	}
}

func TestReadinessHTTP_StatusCodes(t *testing.T) {
	cases := []struct {
		name     string
		db       health.Pinger
		wantCode int
	}{
		{"ready", up, http.StatusOK},
		{"db down", down, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newChecker(tc.db, up).ReadinessHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
			if w.Code != tc.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tc.wantCode)
			}
		})
	}
}
