package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
)

func TestNewServer(t *testing.T) {
	server, err := NewServer(&Ports{
		Session: &mockSessionService{},
		Query:   &mockQueryService{},
	})

	require.NoError(t, err)
	assert.NotNil(t, server)
}

func TestNewServer_InvalidPorts(t *testing.T) {
	_, err := NewServer(&Ports{Query: &mockQueryService{}})
	assert.ErrorIs(t, err, ErrMissingSessionService)
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingSessionService)
	assert.ErrorIs(t, (&Ports{Session: &mockSessionService{}}).Validate(), ErrMissingQueryService)
	assert.NoError(t, (&Ports{
		Session: &mockSessionService{},
		Query:   &mockQueryService{},
	}).Validate())
}

func TestServer_currentIndex_NoSession(t *testing.T) {
	server, err := NewServer(&Ports{
		Session: &mockSessionService{},
		Query:   &mockQueryService{},
	})
	require.NoError(t, err)

	_, err = server.currentIndex()
	assert.ErrorIs(t, err, domain.ErrNoModel)
}
