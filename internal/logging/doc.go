// Package logging provides structured logging helpers built on log/slog.
//
// It defines the canonical attribute keys used across the codebase so that
// log lines from the credential store, the calendar client and the tool
// surface can be correlated by account, operation and session.
package logging
