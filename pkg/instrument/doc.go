// Package instrument provides Prometheus metrics and OpenTelemetry tracing
// for event dispatch. Metrics implements event.Observer and Tracing
// implements event.Tracer; a Runtime wires both when configured.
package instrument
