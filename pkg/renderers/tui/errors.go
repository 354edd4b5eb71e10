package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoCatalog is returned by Run when the renderer has no step catalog.
	ErrNoCatalog = errors.New("tui: step catalog is required")
)
