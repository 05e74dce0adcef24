package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/preciouskayili/calendar-agent/internal/google"
	"github.com/preciouskayili/calendar-agent/internal/instrumentation"
	"github.com/preciouskayili/calendar-agent/internal/memory"
)

// ServerContext holds the shared state for the MCP server: the credential
// store, the session memory store, and the instrumentation plumbing. Calendar
// clients are constructed per call by the tool handlers so that credential
// refreshes are always picked up; only credentials themselves are cached, by
// the store.
type ServerContext struct {
	ctx      context.Context
	cancel   context.CancelFunc
	store    *google.Store
	memory   *memory.Store
	provider *instrumentation.Provider
	audit    *instrumentation.AuditLogger
	logger   *slog.Logger
	mu       sync.RWMutex
	shutdown bool
}

// ServerContextConfig bundles the dependencies for a ServerContext.
type ServerContextConfig struct {
	Store    *google.Store
	Memory   *memory.Store
	Provider *instrumentation.Provider
	Audit    *instrumentation.AuditLogger
	Logger   *slog.Logger
}

// NewServerContext creates a new server context.
func NewServerContext(ctx context.Context, config ServerContextConfig) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	audit := config.Audit
	if audit == nil {
		audit = instrumentation.NewAuditLogger(logger)
	}

	return &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		store:    config.Store,
		memory:   config.Memory,
		provider: config.Provider,
		audit:    audit,
		logger:   logger,
	}
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// CredentialStore returns the credential store.
func (sc *ServerContext) CredentialStore() *google.Store {
	return sc.store
}

// MemoryStore returns the session memory store. May be nil when session
// memory is disabled.
func (sc *ServerContext) MemoryStore() *memory.Store {
	return sc.memory
}

// Metrics returns the metrics recorder. Never nil; the recorder is a no-op
// when instrumentation is disabled.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	if sc.provider == nil {
		return &instrumentation.Metrics{}
	}
	return sc.provider.Metrics()
}

// AuditLogger returns the audit logger for tool invocations.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	return sc.audit
}

// Logger returns the structured logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// IsShutdown returns whether the server has been shut down.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context and closes the memory store.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()

	if sc.memory != nil {
		return sc.memory.Close()
	}
	return nil
}
