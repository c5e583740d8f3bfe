// Package driving defines the interfaces through which external actors
// drive the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI, TUI and MCP adapters call these interfaces; the services
// package implements them.
//
// # Import Rules
//
//   - Can Import: domain and driven port packages
//   - Cannot Import: Any adapter package
package driving
