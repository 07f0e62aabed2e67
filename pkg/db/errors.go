package db

import (
	"errors"
	"fmt"
)

var (
	// ErrAgentNotFound is returned when an agent id has no row.
	ErrAgentNotFound = errors.New("agent not found")

	errFailedToClean     = errors.New("failed to clean")
	errFailedToBeginTx   = errors.New("failed to begin transaction")
	errFailedToScan      = errors.New("failed to scan")
	errFailedToQuery     = errors.New("failed to query")
	errFailedToInsert    = errors.New("failed to insert")
	errFailedToUpdate    = errors.New("failed to update")
	errFailedToInit      = errors.New("failed to initialize schema")
	errFailedToEnableWAL = errors.New("failed to enable WAL mode")
	errFailedOpenDB      = fmt.Errorf("failed to open database")
)
