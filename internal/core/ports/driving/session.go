package driving

import (
	"context"

	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driven"
)

// SessionService manages the one-model-at-a-time session lifecycle:
// create-on-load, replace-on-new-upload, discard-on-session-end.
type SessionService interface {
	// Load parses the model file and builds its index. When the file's
	// content hash matches the current session, the existing session is
	// returned untouched.
	Load(ctx context.Context, path string) (*domain.Session, error)

	// Current returns the active session, if any.
	Current() (*domain.Session, bool)

	// Source returns the model source backing the active session.
	Source() (driven.ModelSource, bool)

	// Watch blocks watching the loaded model file, rebuilding the
	// session whenever the file content changes. Returns when the
	// context is cancelled.
	Watch(ctx context.Context) error

	// Close discards the active session.
	Close() error
}
