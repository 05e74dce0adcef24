package server

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"golang.org/x/oauth2"

	"github.com/preciouskayili/calendar-agent/internal/google"
	"github.com/preciouskayili/calendar-agent/internal/instrumentation"
	"github.com/preciouskayili/calendar-agent/internal/memory"
)

func newTestServerContext(t *testing.T) *ServerContext {
	t.Helper()

	dir := t.TempDir()
	store := google.NewStore(&oauth2.Config{ClientID: "id", ClientSecret: "secret"}, filepath.Join(dir, "tokens"), slog.Default())

	mem, err := memory.Open(filepath.Join(dir, "sessions.db"))
	if err != nil {
		t.Fatalf("failed to open memory store: %v", err)
	}

	return NewServerContext(context.Background(), ServerContextConfig{
		Store:  store,
		Memory: mem,
	})
}

func TestServerContextAccessors(t *testing.T) {
	sc := newTestServerContext(t)
	defer func() { _ = sc.Shutdown() }()

	if sc.CredentialStore() == nil {
		t.Error("expected credential store")
	}
	if sc.MemoryStore() == nil {
		t.Error("expected memory store")
	}
	if sc.Metrics() == nil {
		t.Error("expected a metrics recorder even without a provider")
	}
	if sc.AuditLogger() == nil {
		t.Error("expected an audit logger by default")
	}
	if sc.Logger() == nil {
		t.Error("expected a logger by default")
	}
}

func TestServerContextShutdown(t *testing.T) {
	sc := newTestServerContext(t)

	if sc.IsShutdown() {
		t.Fatal("fresh context should not be shut down")
	}

	if err := sc.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if !sc.IsShutdown() {
		t.Error("expected shutdown state")
	}

	select {
	case <-sc.Context().Done():
	default:
		t.Error("expected context to be cancelled after shutdown")
	}

	// Second shutdown is a no-op
	if err := sc.Shutdown(); err != nil {
		t.Errorf("repeated Shutdown() error = %v", err)
	}
}

func TestServerContextWithProvider(t *testing.T) {
	provider, err := instrumentation.NewProvider(context.Background(), instrumentation.Config{
		ServiceName: "test",
		Enabled:     true,
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	sc := NewServerContext(context.Background(), ServerContextConfig{Provider: provider})
	defer func() { _ = sc.Shutdown() }()

	if sc.Metrics() != provider.Metrics() {
		t.Error("expected provider-backed metrics recorder")
	}
}
