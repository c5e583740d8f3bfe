package services

import (
	"math"

	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driven"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driving"
	"github.com/bauwerk-labs/talk2bim/internal/logger"
)

// Ensure Renderer implements the interface.
var _ driving.RenderService = (*Renderer)(nil)

// Default sampling caps. Tunable through the config store; sized for a
// shared-hosting memory budget.
const (
	defaultTotalCap   = 400
	defaultPerTypeCap = 60

	// cameraPadding is the framing margin per axis, as a fraction of
	// the accumulated extent.
	cameraPadding = 0.055
)

// Renderer deterministically samples a bounded, representative subset
// of a model's geometry-bearing elements into triangle meshes.
type Renderer struct {
	extractor  driven.MeshExtractor
	totalCap   int
	perTypeCap int
}

// NewRenderer creates a renderer. cfg may be nil, in which case the
// default caps apply.
func NewRenderer(extractor driven.MeshExtractor, cfg driven.ConfigStore) *Renderer {
	r := &Renderer{
		extractor:  extractor,
		totalCap:   defaultTotalCap,
		perTypeCap: defaultPerTypeCap,
	}
	if cfg != nil {
		if v := cfg.GetInt(driven.ConfigKeyRenderTotalCap); v > 0 {
			r.totalCap = v
		}
		if v := cfg.GetInt(driven.ConfigKeyRenderPerTypeCap); v > 0 {
			r.perTypeCap = v
		}
	}
	return r
}

// Render samples elements of the requested types, extracts meshes and
// frames a camera box. Identical inputs select identical elements: the
// even spacing is a pure function of candidate count and cap. The
// result always carries at least one mesh.
func (r *Renderer) Render(src driven.ModelSource, opts driving.RenderOptions) (*domain.RenderResult, error) {
	logger.Section("Render Sampling")

	types := opts.Types
	if len(types) == 0 {
		types = domain.ClassifiedTypeNames()
	}
	totalCap := opts.TotalCap
	if totalCap <= 0 {
		totalCap = r.totalCap
	}
	perTypeCap := opts.PerTypeCap
	if perTypeCap <= 0 {
		perTypeCap = r.perTypeCap
	}
	logger.Debug("Caps: total=%d, per-type=%d, types=%d", totalCap, perTypeCap, len(types))

	var meshes []*domain.Mesh
	var stats domain.RenderStats
	bounds := domain.EmptyBox()

	for _, typeName := range types {
		// Budget exhausted: short-circuit the whole type loop.
		if stats.Rendered >= totalCap {
			break
		}

		elems, err := src.ElementsOfType(typeName)
		if err != nil {
			logger.Warn("Skipping type %s: %v", typeName, err)
			continue
		}

		// Only elements with a representation handle are candidates;
		// the rest are excluded before sampling, not after a wasted
		// extraction attempt.
		candidates := elems[:0:0]
		for _, elem := range elems {
			if elem.HasGeometry {
				candidates = append(candidates, elem)
			}
		}
		stats.Candidates += len(candidates)
		if len(candidates) == 0 {
			continue
		}

		take := perTypeCap
		if len(candidates) < take {
			take = len(candidates)
		}
		if remaining := totalCap - stats.Rendered; remaining < take {
			take = remaining
		}

		rendered := 0
		for _, i := range sampleIndices(len(candidates), take) {
			stats.Attempted++
			mesh, box, err := r.extractor.Extract(candidates[i])
			if err != nil {
				// Per-element failure is non-fatal and silent; there
				// is no retry.
				logger.Debug("Extraction failed for %s: %v", candidates[i].ID, err)
				continue
			}
			if category, ok := domain.Classify(candidates[i].TypeName); ok {
				mesh.Category = category
			}
			bounds.Extend(box)
			meshes = append(meshes, mesh)
			stats.Rendered++
			rendered++
		}
		logger.Debug("Type %s: %d candidates, %d rendered", typeName, len(candidates), rendered)
	}

	result := &domain.RenderResult{Meshes: meshes, Stats: stats}

	if stats.Rendered == 0 {
		// The caller must always receive a non-empty, valid scene.
		note := "Keine renderbare Geometrie im Modell gefunden."
		if stats.Candidates > 0 {
			note = "Geometrie-Extraktion für alle ausgewählten Elemente fehlgeschlagen."
		}
		logger.Warn("Nothing rendered: %s", note)
		result.Meshes = []*domain.Mesh{r.extractor.Placeholder(note)}
		return result, nil
	}

	if bounds.IsFinite() {
		camera := frameCamera(bounds)
		result.Camera = &camera
	}
	logger.Info("Rendered %d/%d meshes from %d candidates",
		stats.Rendered, stats.Attempted, stats.Candidates)

	return result, nil
}

// sampleIndices selects take indices evenly spaced across n candidates
// by linear interpolation from the first to the last index. This covers
// heterogeneous collections (a pipe run across a whole floor) instead
// of clustering near the start.
func sampleIndices(n, take int) []int {
	if take <= 0 || n <= 0 {
		return nil
	}
	if take >= n {
		indices := make([]int, n)
		for i := range indices {
			indices[i] = i
		}
		return indices
	}
	if take == 1 {
		return []int{0}
	}
	indices := make([]int, take)
	step := float64(n-1) / float64(take-1)
	for i := range indices {
		indices[i] = int(math.Round(float64(i) * step))
	}
	return indices
}

// frameCamera pads the accumulated bounds for camera framing.
// Degenerate axes are clamped to a unit extent before padding so a
// flat model never produces a zero-volume frame.
func frameCamera(bounds domain.Box) domain.Box {
	framed := bounds
	for axis := 0; axis < 3; axis++ {
		extent := framed.Max[axis] - framed.Min[axis]
		if extent <= 0 {
			centre := (framed.Max[axis] + framed.Min[axis]) / 2
			framed.Min[axis] = centre - 0.5
			framed.Max[axis] = centre + 0.5
			extent = 1
		}
		pad := extent * cameraPadding
		framed.Min[axis] -= pad
		framed.Max[axis] += pad
	}
	return framed
}
