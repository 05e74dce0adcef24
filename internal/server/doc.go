// Package server provides the shared MCP server context and the standalone
// Prometheus metrics server.
//
// ServerContext bundles the credential store, the session memory store, and
// the instrumentation plumbing that tool handlers need. Calendar clients are
// deliberately not cached here; handlers build one per call from the
// credential store so refreshed tokens are always used.
//
// MetricsServer serves the /metrics scrape endpoint on its own port, keeping
// operational traffic away from the stdio transport the MCP server runs on.
package server
