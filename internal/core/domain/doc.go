// Package domain contains the core business types for the SHL assessment
// recommender: catalog entries, recommendations, evaluation types, and
// domain errors. It has no dependencies on adapters or infrastructure.
package domain
