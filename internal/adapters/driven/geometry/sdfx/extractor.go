// Package sdfx implements the mesh extractor port using the
// github.com/deadsy/sdfx SDF-based CAD library. Elements are rendered
// as proxy box solids at their resolved placement and tessellated with
// marching cubes.
package sdfx

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driven"
)

// Compile-time interface check.
var _ driven.MeshExtractor = (*Extractor)(nil)

// proxyMeshCells controls marching cubes resolution. Proxy boxes are
// coarse on purpose: the preview budget is hundreds of meshes.
const proxyMeshCells = 16

// PlacementResolver resolves an element's world position. The STEP
// model source satisfies this.
type PlacementResolver interface {
	Placement(elementID string) ([3]float64, error)
}

// proxySize is the nominal box extent per category, in model units.
var proxySizes = map[domain.Category][3]float64{
	domain.CategoryVentilation: {1.2, 0.4, 0.4},
	domain.CategoryHeating:     {0.8, 0.3, 0.6},
	domain.CategoryCooling:     {0.9, 0.9, 0.9},
	domain.CategoryLighting:    {0.6, 0.6, 0.15},
	domain.CategoryControls:    {0.2, 0.2, 0.2},
	domain.CategorySanitary:    {0.6, 0.4, 0.4},
}

// defaultProxySize is used for unclassified element types.
var defaultProxySize = [3]float64{0.5, 0.5, 0.5}

// Extractor converts elements into proxy triangle meshes.
type Extractor struct {
	placements PlacementResolver
}

// New creates an extractor over the given placement resolver.
func New(placements PlacementResolver) *Extractor {
	return &Extractor{placements: placements}
}

// Extract builds a proxy box at the element's placement and tessellates
// it. A failure is local to the element.
func (e *Extractor) Extract(elem domain.Element) (*domain.Mesh, domain.Box, error) {
	pos, err := e.placements.Placement(elem.ID)
	if err != nil {
		return nil, domain.Box{}, fmt.Errorf("%w: placement for %s: %v",
			domain.ErrExtractionFailed, elem.ID, err)
	}

	size := defaultProxySize
	if category, ok := domain.Classify(elem.TypeName); ok {
		if s, ok := proxySizes[category]; ok {
			size = s
		}
	}

	solid, err := boxAt(pos, size)
	if err != nil {
		return nil, domain.Box{}, fmt.Errorf("%w: %s: %v",
			domain.ErrExtractionFailed, elem.ID, err)
	}

	mesh := toMesh(solid)
	if mesh.IsEmpty() {
		return nil, domain.Box{}, fmt.Errorf("%w: %s: empty tessellation",
			domain.ErrExtractionFailed, elem.ID)
	}
	mesh.Name = elem.DisplayName()
	mesh.TypeName = elem.TypeName

	bb := solid.BoundingBox()
	box := domain.Box{
		Min: [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z},
		Max: [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z},
	}
	return mesh, box, nil
}

// Placeholder returns a unit box at the origin carrying a diagnostic
// note, so an empty scene still renders something.
func (e *Extractor) Placeholder(note string) *domain.Mesh {
	solid, err := boxAt([3]float64{}, [3]float64{1, 1, 1})
	if err != nil {
		// Box3D only fails on non-positive extents; a constant unit
		// box cannot.
		return &domain.Mesh{Name: "placeholder", Note: note}
	}
	mesh := toMesh(solid)
	mesh.Name = "placeholder"
	mesh.Note = note
	return mesh
}

// boxAt creates a box solid centred at pos.
func boxAt(pos, size [3]float64) (sdf.SDF3, error) {
	s, err := sdf.Box3D(v3.Vec{X: size[0], Y: size[1], Z: size[2]}, 0)
	if err != nil {
		return nil, err
	}
	m := sdf.Translate3d(v3.Vec{X: pos[0], Y: pos[1], Z: pos[2]})
	return sdf.Transform3D(s, m), nil
}

// toMesh tessellates a solid into a flat triangle mesh.
func toMesh(solid sdf.SDF3) *domain.Mesh {
	renderer := render.NewMarchingCubesUniform(proxyMeshCells)
	triangles := render.ToTriangles(solid, renderer)

	numVerts := len(triangles) * 3
	vertices := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &domain.Mesh{Vertices: vertices, Indices: indices}
}
