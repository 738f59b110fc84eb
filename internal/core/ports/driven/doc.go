// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): embedding services, the vector index,
// catalog metadata storage, and artifact persistence.
package driven
