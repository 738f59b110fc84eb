// Package mcp provides an MCP (Model Context Protocol) server adapter for
// the recommender. It lets AI assistants query the assessment catalog.
package mcp

import "errors"

// ErrMissingRecommender is returned when the recommender is not provided.
var ErrMissingRecommender = errors.New("mcp: recommender is required")
