package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/tfidx/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in bytes.
	MaxQueryLength = 4096
	DefaultTopK    = 5
	MaxTopK        = 100
)

// Request is a ranking query.
type Request struct {
	query string
	topK  int
}

// New normalizes search parameters. Non-positive topK falls back to
// DefaultTopK; larger values are clamped to MaxTopK. The query text is
// checked by Validate, which the ranker runs once the corpus is ready.
func New(query string, topK int) Request {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}
	return Request{query: query, topK: topK}
}

// Validate rejects blank and oversized queries.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.query) == "" {
		return domain.ErrEmptyQuery
	}
	if len(r.query) > MaxQueryLength {
		return fmt.Errorf("%w: query too long (max %d bytes)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	return nil
}

// Query returns the raw query text.
func (r *Request) Query() string { return r.query }

// TopK returns the maximum number of results.
func (r *Request) TopK() int { return r.topK }
