package domain

import "time"

// Session ties one loaded model to its built index. There is no
// process-wide current model: every call that needs the model or the
// index receives the session explicitly. Lifecycle is create-on-load,
// replace-on-new-upload, discard-on-session-end.
type Session struct {
	// ID is a fresh UUID per loaded model.
	ID string

	// Path is the model file path.
	Path string

	// ContentHash is the sha256 of the model file content, hex encoded.
	// A load with an unchanged hash reuses the existing session.
	ContentHash string

	// LoadedAt is when the model was parsed and indexed.
	LoadedAt time.Time

	// Index is the spatial/classification index built for this model.
	Index *Index
}

// ModelRecord is one row of the load catalog: a model the tool has
// loaded at some point, with the shape of its index at load time.
type ModelRecord struct {
	Path        string
	ContentHash string
	Zones       int
	Items       int
	LoadedAt    time.Time
}
