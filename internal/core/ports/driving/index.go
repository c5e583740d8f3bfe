package driving

import (
	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driven"
)

// IndexService builds the spatial/classification index for a model.
type IndexService interface {
	// Build walks the model's containment and reference relationships
	// and produces the room-keyed index. Per-unit source failures are
	// skipped and counted; the build never aborts because of one bad
	// record.
	Build(src driven.ModelSource) (*domain.Index, error)
}
