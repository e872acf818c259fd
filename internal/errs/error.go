package errs

import (
	"errors"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("no available copies")
	ErrAlreadyReturned   = errors.New("loan already returned")
	ErrHasActiveLoans    = errors.New("book has issued loans outstanding")
	ErrAdminExists       = errors.New("username already exists")
	ErrInvalidCreds      = errors.New("invalid credentials")
	ErrGatewayFailure    = errors.New("notification gateway failure")

	// ErrReconciliation means a confirmed state change could not be paired
	// with its inventory counterpart. Never dropped silently: surfaced to the
	// caller and logged for manual correction.
	ErrReconciliation = errors.New("inventory reconciliation required")
)
