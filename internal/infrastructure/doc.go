// Package infrastructure wires process-wide concerns: the slog logger with
// size-rotated file output, request trace ids, and OpenTelemetry tracing and
// metrics exported in Prometheus format.
package infrastructure
