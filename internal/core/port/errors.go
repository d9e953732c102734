package port

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed ingestion input. Not retryable.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned by stores when an entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConcurrencyConflict means the per-entity unit could not be obtained
	// or committed. The whole operation may be retried from scratch.
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	// ErrStoreUnavailable means the persistence layer could not be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrDuplicateSpend is returned by BudgetTx.AppendSpend when the ledger
	// already holds a spend with the same ID.
	ErrDuplicateSpend = errors.New("duplicate spend")
)

// ValidationError describes one rejected ingestion field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap lets callers match any validation failure with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Retryable reports whether err may be resolved by re-running the whole
// operation against fresh state.
func Retryable(err error) bool {
	return errors.Is(err, ErrConcurrencyConflict) || errors.Is(err, ErrStoreUnavailable)
}
