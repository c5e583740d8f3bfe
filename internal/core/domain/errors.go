package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoModel indicates no model has been loaded into the session.
	ErrNoModel = errors.New("no model loaded")

	// ErrEmptyModel indicates the model file contained no parseable entities.
	ErrEmptyModel = errors.New("model contains no entities")

	// ErrNoGeometry indicates an element carries no geometric representation.
	ErrNoGeometry = errors.New("no geometric representation")

	// ErrExtractionFailed indicates mesh extraction failed for one element.
	// The geometry sampler tolerates this per element and moves on.
	ErrExtractionFailed = errors.New("mesh extraction failed")

	// ErrSessionClosed indicates the session has been closed.
	ErrSessionClosed = errors.New("session closed")
)
