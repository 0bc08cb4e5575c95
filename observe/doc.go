// Package observe provides the telemetry collaborators consumed by the
// resilient execution core: structured logging, execution metrics, and
// tracing.
//
// The package is organized around a few small interfaces so the core never
// depends on a concrete backend:
//
//   - Logger: leveled, structured logging (JSON lines by default).
//
//   - Metrics: per-attempt and per-outcome counters and durations, backed by
//     OpenTelemetry.
//
//   - Tracer: one span per protected call, backed by OpenTelemetry.
//
// An Observer bundles all three with validated configuration and exporter
// selection (stdout, OTLP, Prometheus):
//
//	obs, err := observe.NewObserver(ctx, observe.Config{
//	    ServiceName: "edge-agent",
//	    Metrics:     observe.MetricsConfig{Enabled: true, Exporter: "prometheus"},
//	    Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
//	})
//
// Each component has a no-op implementation so callers can opt out of any
// subsystem without nil checks.
package observe
