// Package driving provides interfaces for primary/inbound ports: the
// operations the CLI, HTTP API, TUI, and MCP adapters invoke on the core.
package driving
