package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoController is returned when a runner has no survey controller.
	ErrNoController = errors.New("tui: survey controller is required")
)
