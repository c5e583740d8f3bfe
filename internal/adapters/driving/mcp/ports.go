package mcp

import (
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session manages the loaded model session.
	Session driving.SessionService

	// Query answers questions against the model index.
	Query driving.QueryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
