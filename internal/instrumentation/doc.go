// Package instrumentation provides observability for the calendar agent:
// OpenTelemetry metrics exported through Prometheus, and audit logging of
// tool invocations.
//
// The Provider owns the meter provider and its Prometheus registry; the
// Metrics recorder exposes typed record methods so call sites never touch
// attribute construction. All recorders are safe to call on a disabled
// provider, which makes instrumentation optional everywhere it is threaded
// through.
package instrumentation
