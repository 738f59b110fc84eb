package mcp

import (
	"github.com/rudryyy/SHL/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
type Ports struct {
	// Recommender serves recommendation queries.
	Recommender driving.Recommender
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Recommender == nil {
		return ErrMissingRecommender
	}
	return nil
}
