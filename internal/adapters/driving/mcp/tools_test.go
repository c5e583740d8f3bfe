package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
)

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("answers against the current index", func(t *testing.T) {
		session := &domain.Session{ID: "s1", Index: testIndex()}
		server, err := NewServer(&Ports{
			Session: &mockSessionService{session: session},
			Query:   &mockQueryService{answer: "zwei Räume"},
		})
		require.NoError(t, err)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Question: "liste räume"})

		require.NoError(t, err)
		assert.Equal(t, "zwei Räume", output.Answer)
	})

	t.Run("errors without a loaded model", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Session: &mockSessionService{},
			Query:   &mockQueryService{},
		})
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Question: "liste räume"})
		assert.ErrorIs(t, err, domain.ErrNoModel)
	})
}

func TestServer_handleListZones(t *testing.T) {
	ctx := context.Background()
	session := &domain.Session{ID: "s1", Index: testIndex()}
	server, err := NewServer(&Ports{
		Session: &mockSessionService{session: session},
		Query:   &mockQueryService{},
	})
	require.NoError(t, err)

	_, output, err := server.handleListZones(ctx, nil, ListZonesInput{})

	require.NoError(t, err)
	assert.Equal(t, 1, output.Count)
	require.Len(t, output.Zones, 1)
	assert.Equal(t, "spaceA", output.Zones[0].ID)
	assert.Equal(t, "Büro 1.01", output.Zones[0].Name)
	assert.Equal(t, 1, output.Zones[0].Items)
}

func TestServer_handleLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("loads and reports stats", func(t *testing.T) {
		session := &domain.Session{ID: "s1", Index: testIndex()}
		server, err := NewServer(&Ports{
			Session: &mockSessionService{session: session},
			Query:   &mockQueryService{},
		})
		require.NoError(t, err)

		_, output, err := server.handleLoad(ctx, nil, LoadInput{Path: "/models/a.ifc"})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Zones)
		assert.Equal(t, 1, output.Items)
	})

	t.Run("propagates load errors", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Session: &mockSessionService{loadErr: errors.New("bad file")},
			Query:   &mockQueryService{},
		})
		require.NoError(t, err)

		_, _, err = server.handleLoad(ctx, nil, LoadInput{Path: "/models/bad.ifc"})
		assert.Error(t, err)
	})
}
