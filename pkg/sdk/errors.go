package tfidx

import "github.com/kailas-cloud/tfidx/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotReady           = domain.ErrNotReady
	ErrEmptyQuery         = domain.ErrEmptyQuery
	ErrAllTokensStopwords = domain.ErrAllTokensStopwords
	ErrInvalidRequest     = domain.ErrInvalidRequest
	ErrLoad               = domain.ErrLoad
)
