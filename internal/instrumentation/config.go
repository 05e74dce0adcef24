package instrumentation

import (
	"os"
	"strconv"
)

// Status values for metric and audit labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Common operation types for calendar API metrics.
const (
	OperationList   = "list"
	OperationCreate = "create"
	OperationInsert = "insert"
)

// Config holds the configuration for instrumentation.
type Config struct {
	// ServiceName is the name of the service (default: calendar-agent).
	ServiceName string

	// ServiceVersion is the version of the service.
	ServiceVersion string

	// Enabled determines if metrics are active (default: true).
	// Set INSTRUMENTATION_ENABLED=false to disable.
	Enabled bool

	// DetailedLabels controls whether high-cardinality labels (account
	// names) are attached to metrics. Keep disabled in production to avoid
	// cardinality explosion.
	DetailedLabels bool

	// AuditLogging configures audit logging of tool invocations.
	AuditLogging AuditLoggingConfig
}

// AuditLoggingConfig holds configuration for audit logging.
type AuditLoggingConfig struct {
	// Enabled determines if audit logging is active (default: true).
	Enabled bool
}

// DefaultConfig returns a Config with defaults based on environment
// variables.
func DefaultConfig() Config {
	return Config{
		ServiceName:    getEnvOrDefault("OTEL_SERVICE_NAME", "calendar-agent"),
		ServiceVersion: "unknown",
		Enabled:        getEnvBool("INSTRUMENTATION_ENABLED", true),
		DetailedLabels: getEnvBool("INSTRUMENTATION_DETAILED_LABELS", false),
		AuditLogging: AuditLoggingConfig{
			Enabled: getEnvBool("AUDIT_LOGGING_ENABLED", true),
		},
	}
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
