package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLiveness(t *testing.T) {
	checker := New(time.Second)

	status := checker.Liveness(context.Background())

	if status.Status != "ok" {
		t.Errorf("Liveness status = %q, want %q", status.Status, "ok")
	}
	if status.Timestamp.IsZero() {
		t.Error("Liveness timestamp is zero")
	}
}

func TestReadinessNoChecks(t *testing.T) {
	checker := New(time.Second)

	status := checker.Readiness(context.Background())

	if status.Status != "ready" {
		t.Errorf("Readiness status = %q, want %q", status.Status, "ready")
	}
}

func TestReadinessAllHealthy(t *testing.T) {
	checker := New(time.Second)
	checker.Register("cache", func(ctx context.Context) error { return nil })
	checker.Register("watcher", func(ctx context.Context) error { return nil })

	status := checker.Readiness(context.Background())

	if status.Status != "ready" {
		t.Errorf("Readiness status = %q, want %q", status.Status, "ready")
	}
	if len(status.Checks) != 2 {
		t.Fatalf("len(Checks) = %d, want 2", len(status.Checks))
	}
	if got := status.Checks["cache"].Status; got != "ok" {
		t.Errorf("cache check status = %q, want %q", got, "ok")
	}
}

func TestReadinessDegraded(t *testing.T) {
	checker := New(time.Second)
	checker.Register("cache", func(ctx context.Context) error {
		return errors.New("database is locked")
	})
	checker.Register("watcher", func(ctx context.Context) error { return nil })

	status := checker.Readiness(context.Background())

	if status.Status != "degraded" {
		t.Errorf("Readiness status = %q, want %q", status.Status, "degraded")
	}
	if got := status.Checks["cache"].Message; got != "database is locked" {
		t.Errorf("cache check message = %q, want %q", got, "database is locked")
	}
}

func TestReadinessTimeout(t *testing.T) {
	checker := New(50 * time.Millisecond)
	checker.Register("slow", func(ctx context.Context) error {
		select {
		case <-time.After(time.Second):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	status := checker.Readiness(context.Background())

	if status.Status != "degraded" {
		t.Errorf("Readiness status = %q, want %q", status.Status, "degraded")
	}
	if got := status.Checks["slow"].Status; got != "unhealthy" {
		t.Errorf("slow check status = %q, want %q", got, "unhealthy")
	}
}

func TestUnregister(t *testing.T) {
	checker := New(time.Second)
	checker.Register("cache", func(ctx context.Context) error {
		return errors.New("broken")
	})
	checker.Unregister("cache")

	status := checker.Readiness(context.Background())

	if status.Status != "ready" {
		t.Errorf("Readiness status = %q, want %q", status.Status, "ready")
	}
}

func TestLivenessHandler(t *testing.T) {
	checker := New(time.Second)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	checker.LivenessHandler()(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var status Status
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if status.Status != "ok" {
		t.Errorf("body status = %q, want %q", status.Status, "ok")
	}
}

func TestReadinessHandlerDegraded(t *testing.T) {
	checker := New(time.Second)
	checker.Register("cache", func(ctx context.Context) error {
		return errors.New("down")
	})

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	checker.ReadinessHandler()(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	checker := New(time.Second)

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	checker.LivenessHandler()(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestMount(t *testing.T) {
	checker := New(time.Second)
	mux := http.NewServeMux()
	Mount(mux, checker, "0.1.0", "abc1234", "2026-08-29")

	for _, path := range []string{"/health", "/ready", "/version"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want %d", path, rec.Code, http.StatusOK)
		}
	}
}

func TestVersionHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	VersionHandler("0.1.0", "abc1234", "2026-08-29")(rec, req)

	var info VersionInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if info.Version != "0.1.0" {
		t.Errorf("version = %q, want %q", info.Version, "0.1.0")
	}
	if info.GoVersion == "" {
		t.Error("go_version is empty")
	}
}
