package driven

import (
	"context"

	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
)

// CatalogStore persists the model-load history.
// Backed by SQLite for metadata storage.
type CatalogStore interface {
	// RecordLoad stores or updates the record for a loaded model,
	// keyed by content hash.
	RecordLoad(ctx context.Context, rec domain.ModelRecord) error

	// ListLoads returns all recorded loads, most recent first.
	ListLoads(ctx context.Context) ([]domain.ModelRecord, error)

	// Close releases the underlying store.
	Close() error
}
