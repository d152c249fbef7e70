// Package observe provides observability primitives for the resilience and
// caching layer: a structured JSON logger, OpenTelemetry metric instruments
// for retry and cache behavior, and load-operation tracing.
//
// It is a pure instrumentation library: no execution, no transport, no I/O
// beyond exporter setup. Consumers wire the observer into their loaders and
// retry hooks.
package observe
