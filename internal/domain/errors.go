package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady signals that the corpus snapshot has not been loaded yet.
	ErrNotReady = errors.New("corpus not ready")
	// ErrEmptyQuery signals a query that is empty after trimming.
	ErrEmptyQuery = errors.New("query text is required")
	// ErrAllTokensStopwords signals a query with no tokens left after stopword removal.
	ErrAllTokensStopwords = errors.New("query contains no valid tokens after stopword removal")
	// ErrInvalidRequest signals a malformed request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInternalRanking signals an unexpected numeric fault while ranking.
	ErrInternalRanking = errors.New("internal ranking failure")
	// ErrLoad signals a missing or malformed corpus snapshot field.
	ErrLoad = errors.New("corpus load failed")
)

// LoadError wraps ErrLoad with the snapshot field that could not be loaded.
type LoadError struct {
	Field string
	Err   error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrLoad.Error(), e.Field)
	}
	return fmt.Sprintf("%s: %s: %s", ErrLoad.Error(), e.Field, e.Err.Error())
}

// Unwrap exposes both ErrLoad and the underlying cause to errors.Is.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrLoad}
	}
	return []error{ErrLoad, e.Err}
}

// NewLoadError creates a load error for a snapshot field.
func NewLoadError(field string, err error) error {
	return &LoadError{Field: field, Err: err}
}
