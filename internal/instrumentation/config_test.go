package instrumentation

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ServiceName != "calendar-agent" {
		t.Errorf("expected default service name calendar-agent, got %q", cfg.ServiceName)
	}
	if !cfg.Enabled {
		t.Error("expected instrumentation enabled by default")
	}
	if cfg.DetailedLabels {
		t.Error("expected detailed labels disabled by default")
	}
	if !cfg.AuditLogging.Enabled {
		t.Error("expected audit logging enabled by default")
	}
}

func TestDefaultConfigEnvOverrides(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "custom-agent")
	t.Setenv("INSTRUMENTATION_ENABLED", "false")
	t.Setenv("INSTRUMENTATION_DETAILED_LABELS", "true")
	t.Setenv("AUDIT_LOGGING_ENABLED", "false")

	cfg := DefaultConfig()

	if cfg.ServiceName != "custom-agent" {
		t.Errorf("expected custom-agent, got %q", cfg.ServiceName)
	}
	if cfg.Enabled {
		t.Error("expected instrumentation disabled")
	}
	if !cfg.DetailedLabels {
		t.Error("expected detailed labels enabled")
	}
	if cfg.AuditLogging.Enabled {
		t.Error("expected audit logging disabled")
	}
}

func TestGetEnvBoolInvalidFallsBack(t *testing.T) {
	t.Setenv("INSTRUMENTATION_ENABLED", "not-a-bool")

	cfg := DefaultConfig()
	if !cfg.Enabled {
		t.Error("expected fallback to default on unparseable value")
	}
}
