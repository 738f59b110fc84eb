// Package services implements the core pipeline: index building,
// retrieval, and evaluation. Services depend only on ports; adapters are
// injected by the CLI wiring.
package services
