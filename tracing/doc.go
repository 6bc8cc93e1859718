// Package tracing wraps OpenTelemetry so that a transform run can record
// spans for its load, assign and persist phases. When no provider has been
// installed the global no-op tracer is used and spans cost nothing.
package tracing
