// Package domain defines the core business entities for Talk2BIM.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Element: The minimal summary of one model element
//   - Category: A building-services grouping derived from a type name
//   - Zone: A spatial container (room) with its classified items
//   - Index: The per-model spatial/classification aggregate
//   - Mesh, Box, RenderResult: Geometry sampling output
//   - Session: One loaded model with its built index
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
