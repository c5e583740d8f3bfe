package driven

import (
	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
)

// MeshExtractor converts one element into a renderable triangle mesh.
// Extraction is a blocking, possibly slow call with no internal
// timeout; the geometry sampler bounds how many extractions are
// attempted, not how long each one takes.
type MeshExtractor interface {
	// Extract attempts mesh extraction for the element. A failure is
	// local to the element; the sampler skips it and continues.
	Extract(elem domain.Element) (*domain.Mesh, domain.Box, error)

	// Placeholder returns a small diagnostic shape used when nothing
	// could be rendered, so callers always receive a non-empty scene.
	Placeholder(note string) *domain.Mesh
}
