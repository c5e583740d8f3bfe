// Package memory provides in-memory implementations of driven port
// interfaces, used in tests and when no data directory is available.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driven"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is an in-memory implementation of driven.CatalogStore.
type CatalogStore struct {
	mu      sync.RWMutex
	records map[string]domain.ModelRecord
}

// NewCatalogStore creates a new in-memory catalog store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		records: make(map[string]domain.ModelRecord),
	}
}

// RecordLoad stores or updates a load record, keyed by content hash.
func (s *CatalogStore) RecordLoad(_ context.Context, rec domain.ModelRecord) error {
	if rec.ContentHash == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ContentHash] = rec
	return nil
}

// ListLoads returns all recorded loads, most recent first.
func (s *CatalogStore) ListLoads(_ context.Context) ([]domain.ModelRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.ModelRecord, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].LoadedAt.After(records[j].LoadedAt)
	})
	return records, nil
}

// Close is a no-op for the in-memory store.
func (s *CatalogStore) Close() error {
	return nil
}
