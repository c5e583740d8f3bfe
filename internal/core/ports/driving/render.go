package driving

import (
	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driven"
)

// RenderOptions bounds a render pass.
type RenderOptions struct {
	// Types restricts sampling to these type names. Empty means the
	// full classification table's types.
	Types []string

	// TotalCap bounds the rendered element count across all types.
	TotalCap int

	// PerTypeCap bounds the rendered element count within one type.
	PerTypeCap int
}

// RenderService produces a bounded, representative mesh preview of a
// model's geometry.
type RenderService interface {
	// Render deterministically samples geometry-bearing elements,
	// extracts meshes, and frames a camera box. The result is never
	// empty: with zero successful extractions it carries a placeholder
	// shape with a diagnostic note.
	Render(src driven.ModelSource, opts RenderOptions) (*domain.RenderResult, error)
}
