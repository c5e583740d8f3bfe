// Package mcp provides an MCP (Model Context Protocol) server adapter for talk2bim.
// It lets AI assistants query the loaded building model over stdio or HTTP.
package mcp

import "errors"

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("mcp: session service is required")

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
