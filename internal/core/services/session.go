package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driven"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driving"
	"github.com/bauwerk-labs/talk2bim/internal/logger"
)

// Ensure SessionManager implements the interface.
var _ driving.SessionService = (*SessionManager)(nil)

// SessionManager owns the one active session: the loaded model and its
// built index. There is no process-wide current model; callers hold the
// manager and ask it for the session. Index rebuilds replace the whole
// session, they never mutate it in place.
type SessionManager struct {
	mu      sync.Mutex
	opener  driven.SourceOpener
	indexer driving.IndexService
	catalog driven.CatalogStore

	current *domain.Session
	source  driven.ModelSource
	closed  bool
}

// NewSessionManager creates a session manager. catalog is optional and
// may be nil; loads are then simply not recorded.
func NewSessionManager(
	opener driven.SourceOpener,
	indexer driving.IndexService,
	catalog driven.CatalogStore,
) *SessionManager {
	return &SessionManager{
		opener:  opener,
		indexer: indexer,
		catalog: catalog,
	}
}

// Load parses the model file and builds its index. A load whose
// content hash matches the active session returns that session
// untouched; a changed hash replaces it wholesale.
func (m *SessionManager) Load(ctx context.Context, path string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, domain.ErrSessionClosed
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, "model file is empty")
	}

	sum := sha256.Sum256(content)
	hash := hex.EncodeToString(sum[:])

	if m.current != nil && m.current.ContentHash == hash {
		logger.Debug("Content hash unchanged, keeping session %s", m.current.ID)
		return m.current, nil
	}

	src, err := m.opener.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}

	idx, err := m.indexer.Build(src)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	session := &domain.Session{
		ID:          uuid.NewString(),
		Path:        path,
		ContentHash: hash,
		LoadedAt:    time.Now(),
		Index:       idx,
	}
	m.current = session
	m.source = src
	logger.Info("Session %s: %s (%d zones, %d items)",
		session.ID, path, idx.Stats.Zones, idx.Stats.Items)

	if m.catalog != nil {
		rec := domain.ModelRecord{
			Path:        path,
			ContentHash: hash,
			Zones:       idx.Stats.Zones,
			Items:       idx.Stats.Items,
			LoadedAt:    session.LoadedAt,
		}
		if err := m.catalog.RecordLoad(ctx, rec); err != nil {
			// The catalog is bookkeeping; a failed write never fails
			// the load.
			logger.Warn("Recording load failed: %v", err)
		}
	}

	return session, nil
}

// Current returns the active session, if any.
func (m *SessionManager) Current() (*domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.current != nil
}

// Source returns the model source backing the active session.
func (m *SessionManager) Source() (driven.ModelSource, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source, m.source != nil
}

// Watch blocks watching the loaded model file and reloads the session
// whenever the file content changes. The reload goes through Load, so
// an unchanged hash (editor touch without content change) is a no-op.
// Returns when the context is cancelled.
func (m *SessionManager) Watch(ctx context.Context) error {
	session, ok := m.Current()
	if !ok {
		return domain.ErrNoModel
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(session.Path); err != nil {
		return fmt.Errorf("watch %s: %w", session.Path, err)
	}
	logger.Info("Watching %s for changes", session.Path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, open := <-watcher.Events:
			if !open {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("Model file changed: %s", event.Name)
			if _, err := m.Load(ctx, session.Path); err != nil {
				logger.Warn("Reload failed: %v", err)
			}
		case err, open := <-watcher.Errors:
			if !open {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// Close discards the active session.
func (m *SessionManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	m.source = nil
	m.closed = true
	return nil
}
