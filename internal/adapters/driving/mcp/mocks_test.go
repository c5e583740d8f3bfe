package mcp

import (
	"context"

	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driven"
)

// mockSessionService implements driving.SessionService for testing.
type mockSessionService struct {
	session *domain.Session
	loadErr error
}

func (m *mockSessionService) Load(_ context.Context, path string) (*domain.Session, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.session == nil {
		m.session = &domain.Session{ID: "test-session", Index: domain.NewIndex()}
	}
	m.session.Path = path
	return m.session, nil
}

func (m *mockSessionService) Current() (*domain.Session, bool) {
	return m.session, m.session != nil
}

func (m *mockSessionService) Source() (driven.ModelSource, bool) {
	return nil, false
}

func (m *mockSessionService) Watch(_ context.Context) error {
	return nil
}

func (m *mockSessionService) Close() error {
	m.session = nil
	return nil
}

// mockQueryService implements driving.QueryService for testing.
type mockQueryService struct {
	answer string
}

func (m *mockQueryService) Answer(_ string, _ *domain.Index) string {
	return m.answer
}

// testIndex builds a small one-zone index.
func testIndex() *domain.Index {
	idx := domain.NewIndex()
	idx.Zones["spaceA"] = &domain.Zone{
		ID:   "spaceA",
		Name: "Büro 1.01",
		Items: []domain.ClassifiedItem{
			{
				Element:  domain.Element{ID: "duct1", TypeName: "IfcDuctFitting", Name: "Bogen"},
				Category: domain.CategoryVentilation,
			},
		},
	}
	idx.ZoneOrder = []string{"spaceA"}
	idx.Stats = domain.BuildStats{Zones: 1, Items: 1}
	return idx
}
