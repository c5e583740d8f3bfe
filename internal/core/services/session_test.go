package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driven"
)

// mockIndexer implements driving.IndexService for testing.
type mockIndexer struct {
	builds   int
	buildErr error
}

func (m *mockIndexer) Build(_ driven.ModelSource) (*domain.Index, error) {
	m.builds++
	if m.buildErr != nil {
		return nil, m.buildErr
	}
	idx := domain.NewIndex()
	idx.Stats = domain.BuildStats{Zones: 1, Items: 2}
	return idx, nil
}

func writeModelFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.ifc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestManager(catalog driven.CatalogStore) (*SessionManager, *mockOpener, *mockIndexer) {
	opener := &mockOpener{source: &mockModelSource{}}
	indexer := &mockIndexer{}
	return NewSessionManager(opener, indexer, catalog), opener, indexer
}

func TestSessionManager_Load(t *testing.T) {
	catalog := &mockCatalog{}
	manager, _, indexer := newTestManager(catalog)
	path := writeModelFile(t, "#1=IFCSPACE($);")

	session, err := manager.Load(context.Background(), path)

	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, path, session.Path)
	assert.NotEmpty(t, session.ContentHash)
	assert.Equal(t, 1, indexer.builds)

	// The load was recorded in the catalog.
	require.Len(t, catalog.records, 1)
	assert.Equal(t, 1, catalog.records[0].Zones)
	assert.Equal(t, 2, catalog.records[0].Items)
}

func TestSessionManager_Load_MissingFile(t *testing.T) {
	manager, _, _ := newTestManager(nil)

	_, err := manager.Load(context.Background(), filepath.Join(t.TempDir(), "missing.ifc"))
	assert.Error(t, err)
}

func TestSessionManager_Load_EmptyFile(t *testing.T) {
	manager, _, _ := newTestManager(nil)
	path := writeModelFile(t, "")

	_, err := manager.Load(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSessionManager_Load_UnchangedHash_KeepsSession(t *testing.T) {
	manager, opener, indexer := newTestManager(nil)
	path := writeModelFile(t, "#1=IFCSPACE($);")

	first, err := manager.Load(context.Background(), path)
	require.NoError(t, err)

	second, err := manager.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, opener.opens)
	assert.Equal(t, 1, indexer.builds)
}

func TestSessionManager_Load_ChangedContent_ReplacesSession(t *testing.T) {
	manager, _, indexer := newTestManager(nil)
	path := writeModelFile(t, "#1=IFCSPACE($);")

	first, err := manager.Load(context.Background(), path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("#2=IFCSPACE($);"), 0644))

	second, err := manager.Load(context.Background(), path)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, indexer.builds)
}

func TestSessionManager_Load_IndexError(t *testing.T) {
	opener := &mockOpener{source: &mockModelSource{}}
	indexer := &mockIndexer{buildErr: errors.New("boom")}
	manager := NewSessionManager(opener, indexer, nil)
	path := writeModelFile(t, "#1=IFCSPACE($);")

	_, err := manager.Load(context.Background(), path)
	assert.Error(t, err)

	_, ok := manager.Current()
	assert.False(t, ok)
}

func TestSessionManager_Load_CatalogFailureIsNotFatal(t *testing.T) {
	catalog := &mockCatalog{recordErr: errors.New("disk full")}
	manager, _, _ := newTestManager(catalog)
	path := writeModelFile(t, "#1=IFCSPACE($);")

	_, err := manager.Load(context.Background(), path)
	assert.NoError(t, err)
}

func TestSessionManager_CurrentAndSource(t *testing.T) {
	manager, _, _ := newTestManager(nil)

	_, ok := manager.Current()
	assert.False(t, ok)
	_, ok = manager.Source()
	assert.False(t, ok)

	path := writeModelFile(t, "#1=IFCSPACE($);")
	_, err := manager.Load(context.Background(), path)
	require.NoError(t, err)

	_, ok = manager.Current()
	assert.True(t, ok)
	_, ok = manager.Source()
	assert.True(t, ok)
}

func TestSessionManager_Close(t *testing.T) {
	manager, _, _ := newTestManager(nil)
	path := writeModelFile(t, "#1=IFCSPACE($);")

	_, err := manager.Load(context.Background(), path)
	require.NoError(t, err)

	require.NoError(t, manager.Close())

	_, ok := manager.Current()
	assert.False(t, ok)

	_, err = manager.Load(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}

func TestSessionManager_Watch_NoSession(t *testing.T) {
	manager, _, _ := newTestManager(nil)

	err := manager.Watch(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoModel)
}

func TestSessionManager_Watch_StopsOnCancel(t *testing.T) {
	manager, _, _ := newTestManager(nil)
	path := writeModelFile(t, "#1=IFCSPACE($);")

	_, err := manager.Load(context.Background(), path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- manager.Watch(ctx)
	}()
	cancel()

	assert.NoError(t, <-done)
}
