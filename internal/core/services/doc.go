// Package services implements the driving port interfaces.
// Services contain the core business logic: the spatial index build,
// the query rule engine, the bounded geometry sampling and the session
// lifecycle. They orchestrate calls to driven ports (adapters).
package services
