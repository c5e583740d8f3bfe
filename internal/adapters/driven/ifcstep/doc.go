// Package ifcstep implements the model source port over IFC STEP
// physical files (ISO 10303-21).
//
// The parser is deliberately thin and schema-tolerant: it understands
// the entity subset the core consumes (spaces, distribution elements,
// spatial relationships, property sets, local placements) and skips
// malformed rows instead of failing the file. It is not a general IFC
// toolkit.
package ifcstep
