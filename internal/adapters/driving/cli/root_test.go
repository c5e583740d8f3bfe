package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bauwerk-labs/talk2bim/internal/adapters/driven/storage/memory"
	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driven"
)

// mockSessionService implements driving.SessionService for CLI tests.
// loadResult is what Load hands back; session is what Current reports.
type mockSessionService struct {
	session    *domain.Session
	loadResult *domain.Session
	loadErr    error
	loads      int
	lastPath   string
}

func (m *mockSessionService) Load(_ context.Context, path string) (*domain.Session, error) {
	m.loads++
	m.lastPath = path
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	result := m.loadResult
	if result == nil {
		result = m.session
	}
	if result == nil {
		return nil, domain.ErrNoModel
	}
	result.Path = path
	m.session = result
	return result, nil
}

func (m *mockSessionService) Current() (*domain.Session, bool) {
	if m.session == nil {
		return nil, false
	}
	return m.session, true
}

func (m *mockSessionService) Source() (driven.ModelSource, bool) { return nil, false }

func (m *mockSessionService) Watch(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockSessionService) Close() error {
	m.session = nil
	return nil
}

// mockQueryService returns the question wrapped so tests can verify
// the CLI passed it through unchanged.
type mockQueryService struct {
	lastQuestion string
}

func (m *mockQueryService) Answer(question string, _ *domain.Index) string {
	m.lastQuestion = question
	return "Antwort auf: " + question
}

// mockConfigStore is an in-memory driven.ConfigStore.
type mockConfigStore struct {
	values map[string]any
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{values: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if v, ok := m.values[key].(string); ok {
		return v
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	if v, ok := m.values[key].(int); ok {
		return v
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	if v, ok := m.values[key].(bool); ok {
		return v
	}
	return false
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }
func (m *mockConfigStore) Load() error { return nil }
func (m *mockConfigStore) Path() string {
	return "/tmp/talk2bim-test/config.toml"
}

func testSession() *domain.Session {
	idx := domain.NewIndex()
	idx.Zones["spaceA"] = &domain.Zone{
		ID:   "spaceA",
		Name: "Büro 1.01",
		Items: []domain.ClassifiedItem{
			{
				Element:  domain.Element{ID: "duct1", Name: "Lüftungskanal", TypeName: "IfcDuctSegment"},
				Category: domain.CategoryVentilation,
			},
		},
	}
	idx.ZoneOrder = []string{"spaceA"}
	idx.Lookup["duct1"] = idx.Zones["spaceA"].Items[0].Element
	idx.Stats = domain.BuildStats{Zones: 1, Items: 1}

	return &domain.Session{
		ID:       "session-1",
		Path:     "/models/office.ifc",
		LoadedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Index:    idx,
	}
}

// setupTestServices swaps the package-level services for mocks and
// returns them with a cleanup restoring the originals.
func setupTestServices(t *testing.T) (*mockSessionService, *mockQueryService, func()) {
	t.Helper()

	origSession := sessionService
	origQuery := queryService
	origCfg := cfgStore
	origCatalog := catalogStore

	session := &mockSessionService{session: testSession()}
	query := &mockQueryService{}
	sessionService = session
	queryService = query
	cfgStore = newMockConfigStore()
	catalogStore = memory.NewCatalogStore()

	return session, query, func() {
		sessionService = origSession
		queryService = origQuery
		cfgStore = origCfg
		catalogStore = origCatalog
	}
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Metadata(t *testing.T) {
	assert.Equal(t, "talk2bim", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestVersionCmd(t *testing.T) {
	_, _, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := executeCommand(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "talk2bim "+version)
}

func TestLoadCmd_RequiresExactlyOneArg(t *testing.T) {
	_, _, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := executeCommand(t, "load")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestLoadCmd_PrintsStats(t *testing.T) {
	session, _, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := executeCommand(t, "load", "/models/office.ifc")

	require.NoError(t, err)
	assert.Equal(t, 1, session.loads)
	assert.Contains(t, out, "Loaded /models/office.ifc")
	assert.Contains(t, out, "Zones:   1")
	assert.Contains(t, out, "Items:   1")
	assert.NotContains(t, out, "Skipped")
}

func TestLoadCmd_RemembersModelPath(t *testing.T) {
	_, _, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := executeCommand(t, "load", "/models/office.ifc")

	require.NoError(t, err)
	assert.Equal(t, "/models/office.ifc", cfgStore.GetString(configKeyLastModel))
}

func TestLoadCmd_LoadError(t *testing.T) {
	session, _, cleanup := setupTestServices(t)
	defer cleanup()
	session.loadErr = errors.New("parse exploded")

	_, err := executeCommand(t, "load", "/models/broken.ifc")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load failed")
	assert.Contains(t, err.Error(), "parse exploded")
}

func TestAskCmd_PassesQuestionThrough(t *testing.T) {
	_, query, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := executeCommand(t, "ask", "liste räume")

	require.NoError(t, err)
	assert.Equal(t, "liste räume", query.lastQuestion)
	assert.Contains(t, out, "Antwort auf: liste räume")
}

func TestAskCmd_NoSessionNoLastModel(t *testing.T) {
	session, _, cleanup := setupTestServices(t)
	defer cleanup()
	session.session = nil

	_, err := executeCommand(t, "ask", "hilfe")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no model loaded")
}

func TestAskCmd_FallsBackToRememberedModel(t *testing.T) {
	session, _, cleanup := setupTestServices(t)
	defer cleanup()
	session.session = nil
	session.loadResult = testSession()
	require.NoError(t, cfgStore.Set(configKeyLastModel, "/models/last.ifc"))

	out, err := executeCommand(t, "ask", "hilfe")

	require.NoError(t, err)
	assert.Equal(t, "/models/last.ifc", session.lastPath)
	assert.Contains(t, out, "Antwort auf: hilfe")
}

func TestZonesCmd(t *testing.T) {
	_, query, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := executeCommand(t, "zones")

	require.NoError(t, err)
	assert.Equal(t, "liste räume", query.lastQuestion)
	assert.Contains(t, out, "Antwort auf: liste räume")
}

func TestOverviewCmd(t *testing.T) {
	_, query, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := executeCommand(t, "overview")

	require.NoError(t, err)
	assert.Equal(t, "übersicht", query.lastQuestion)
}

func TestModelsCmd_Empty(t *testing.T) {
	_, _, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := executeCommand(t, "models")

	require.NoError(t, err)
	assert.Contains(t, out, "No models loaded yet.")
}

func TestModelsCmd_ListsRecords(t *testing.T) {
	_, _, cleanup := setupTestServices(t)
	defer cleanup()

	rec := domain.ModelRecord{
		Path:        "/models/office.ifc",
		ContentHash: "abc123",
		Zones:       2,
		Items:       5,
		LoadedAt:    time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
	}
	require.NoError(t, catalogStore.RecordLoad(context.Background(), rec))

	out, err := executeCommand(t, "models")

	require.NoError(t, err)
	assert.Contains(t, out, "2026-03-01 10:30")
	assert.Contains(t, out, "zones=2 items=5")
	assert.Contains(t, out, "/models/office.ifc")
}

func TestCommandRegistration(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"load", "ask", "zones", "overview", "render", "chat", "models", "mcp", "version"} {
		assert.True(t, names[want], "command %q not registered", want)
	}
}
