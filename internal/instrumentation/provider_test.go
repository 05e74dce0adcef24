package instrumentation

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewProviderEnabled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider := newTestProvider(t, ctx)

	if !provider.Enabled() {
		t.Error("expected provider to be enabled")
	}
	if provider.Metrics() == nil {
		t.Error("expected metrics recorder")
	}
	if provider.MetricsHandler() == nil {
		t.Error("expected metrics handler")
	}
}

func TestProviderMetricsHandlerServesScrape(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider := newTestProvider(t, ctx)
	provider.Metrics().RecordToolInvocation(ctx, "calendar_list_events", StatusSuccess, "", 10*time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	provider.MetricsHandler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200 from scrape endpoint, got %d", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("failed to read scrape body: %v", err)
	}
	if !strings.Contains(string(body), "mcp_tool_invocations_total") {
		t.Error("expected tool invocation counter in scrape output")
	}
}

func TestProviderIndependentRegistries(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Two providers must not collide on a shared registry.
	first := newTestProvider(t, ctx)
	second := newTestProvider(t, ctx)

	first.Metrics().RecordOAuthAuth(ctx, StatusSuccess)
	second.Metrics().RecordOAuthAuth(ctx, StatusSuccess)
}

func TestProviderShutdownDisabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	if err := provider.Shutdown(context.Background()); err != nil {
		t.Errorf("expected nil shutdown error, got %v", err)
	}
}
