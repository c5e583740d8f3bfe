package domain

import "math"

// Mesh is a triangle mesh suitable for rendering. Arrays are flat:
// vertices has 3 floats per vertex (x,y,z), indices has 3 uint32s per
// triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"`
	Indices  []uint32  `json:"indices"`

	// Name is the display name of the element this mesh came from.
	Name string `json:"name"`

	// TypeName is the element's schema type.
	TypeName string `json:"typeName"`

	// Category is the element's category, if classified.
	Category Category `json:"category,omitempty"`

	// Note carries a diagnostic annotation on placeholder meshes.
	Note string `json:"note,omitempty"`
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// EmptyBox returns a box primed for min/max accumulation.
func EmptyBox() Box {
	return Box{
		Min: [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
}

// Extend grows the box to include another box.
func (b *Box) Extend(other Box) {
	for axis := 0; axis < 3; axis++ {
		b.Min[axis] = math.Min(b.Min[axis], other.Min[axis])
		b.Max[axis] = math.Max(b.Max[axis], other.Max[axis])
	}
}

// IsFinite reports whether every extent is a finite number, i.e. the
// box has accumulated at least one real extent.
func (b Box) IsFinite() bool {
	for axis := 0; axis < 3; axis++ {
		if math.IsInf(b.Min[axis], 0) || math.IsInf(b.Max[axis], 0) ||
			math.IsNaN(b.Min[axis]) || math.IsNaN(b.Max[axis]) {
			return false
		}
	}
	return true
}

// RenderStats reports what the geometry sampler did.
type RenderStats struct {
	// Candidates is the number of geometry-bearing elements found.
	Candidates int `json:"candidates"`

	// Attempted is the number of extraction calls made.
	Attempted int `json:"attempted"`

	// Rendered is the number of successful extractions.
	Rendered int `json:"rendered"`
}

// RenderResult is the geometry sampler's output: independent triangle
// meshes, sampling stats and an optional camera-framing box.
type RenderResult struct {
	Meshes []*Mesh     `json:"meshes"`
	Stats  RenderStats `json:"stats"`

	// Camera is the padded framing box. Nil when no extents were
	// accumulated (placeholder-only scenes frame themselves).
	Camera *Box `json:"camera,omitempty"`
}
