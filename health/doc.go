// Package health provides health check primitives for the resilience and
// caching layer.
//
// It defines the Checker contract and a cache checker that grades a cache
// by its lifetime hit rate. The package owns no transport: hosts mount
// checkers into whatever readiness mechanism they already run.
package health
