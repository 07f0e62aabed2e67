package server

import "errors"

var (
	// ErrInvalidRequest is returned for structurally invalid agent
	// submissions (missing hostname, bad status values).
	ErrInvalidRequest = errors.New("invalid request")

	errFailedToRegister = errors.New("failed to register agent")
	errFailedToReport   = errors.New("failed to record report")
)
