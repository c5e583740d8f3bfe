package services

import (
	"context"
	"sync"

	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockModelSource implements driven.ModelSource for testing.
type mockModelSource struct {
	elementsByType map[string][]domain.Element
	containments   []driven.SpatialRelation
	references     []driven.SpatialRelation
	propertySets   map[string][]driven.PropertySetRecord

	elementsErr     error
	containmentsErr error
	referencesErr   error
	propertySetsErr error
}

func (m *mockModelSource) ElementsOfType(typeName string) ([]domain.Element, error) {
	if m.elementsErr != nil {
		return nil, m.elementsErr
	}
	return m.elementsByType[typeName], nil
}

func (m *mockModelSource) ElementByID(id string) (domain.Element, error) {
	for _, elems := range m.elementsByType {
		for _, e := range elems {
			if e.ID == id {
				return e, nil
			}
		}
	}
	return domain.Element{}, domain.ErrNotFound
}

func (m *mockModelSource) Containments() ([]driven.SpatialRelation, error) {
	if m.containmentsErr != nil {
		return nil, m.containmentsErr
	}
	return m.containments, nil
}

func (m *mockModelSource) References() ([]driven.SpatialRelation, error) {
	if m.referencesErr != nil {
		return nil, m.referencesErr
	}
	return m.references, nil
}

func (m *mockModelSource) PropertySets(elementID string) ([]driven.PropertySetRecord, error) {
	if m.propertySetsErr != nil {
		return nil, m.propertySetsErr
	}
	return m.propertySets[elementID], nil
}

// mockExtractor implements driven.MeshExtractor for testing. It records
// which elements were extracted and can fail selected identifiers.
type mockExtractor struct {
	mu        sync.Mutex
	extracted []string
	failIDs   map[string]bool
}

func (m *mockExtractor) Extract(elem domain.Element) (*domain.Mesh, domain.Box, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failIDs[elem.ID] {
		return nil, domain.Box{}, domain.ErrExtractionFailed
	}
	m.extracted = append(m.extracted, elem.ID)
	mesh := &domain.Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Indices:  []uint32{0, 1, 2},
		Name:     elem.DisplayName(),
		TypeName: elem.TypeName,
	}
	box := domain.Box{Min: [3]float64{0, 0, 0}, Max: [3]float64{1, 1, 1}}
	return mesh, box, nil
}

func (m *mockExtractor) Placeholder(note string) *domain.Mesh {
	return &domain.Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Indices:  []uint32{0, 1, 2},
		Name:     "placeholder",
		Note:     note,
	}
}

// mockOpener implements driven.SourceOpener for testing.
type mockOpener struct {
	source  driven.ModelSource
	openErr error
	opens   int
}

func (m *mockOpener) Open(_ string) (driven.ModelSource, error) {
	m.opens++
	if m.openErr != nil {
		return nil, m.openErr
	}
	return m.source, nil
}

// mockCatalog implements driven.CatalogStore for testing.
type mockCatalog struct {
	mu        sync.Mutex
	records   []domain.ModelRecord
	recordErr error
}

func (m *mockCatalog) RecordLoad(_ context.Context, rec domain.ModelRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordErr != nil {
		return m.recordErr
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *mockCatalog) ListLoads(_ context.Context) ([]domain.ModelRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records, nil
}

func (m *mockCatalog) Close() error {
	return nil
}

// mockConfig implements driven.ConfigStore with a fixed key/value map.
type mockConfig struct {
	values map[string]any
}

func (m *mockConfig) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfig) GetString(key string) string {
	if s, ok := m.values[key].(string); ok {
		return s
	}
	return ""
}

func (m *mockConfig) GetInt(key string) int {
	if i, ok := m.values[key].(int); ok {
		return i
	}
	return 0
}

func (m *mockConfig) GetBool(key string) bool {
	if b, ok := m.values[key].(bool); ok {
		return b
	}
	return false
}

func (m *mockConfig) Set(key string, value any) error {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	m.values[key] = value
	return nil
}

func (m *mockConfig) Save() error { return nil }
func (m *mockConfig) Load() error { return nil }
func (m *mockConfig) Path() string {
	return "mock"
}
