package search

import (
	"context"
	"errors"
	"time"

	"github.com/kailas-cloud/tfidx/internal/domain"
	"github.com/kailas-cloud/tfidx/internal/domain/query"
	"github.com/kailas-cloud/tfidx/internal/domain/search/request"
	"github.com/kailas-cloud/tfidx/internal/domain/search/result"
)

// Rank outcome labels.
const (
	StatusOK       = "ok"
	StatusEmpty    = "empty"
	StatusNotReady = "not_ready"
	StatusInvalid  = "invalid"
	StatusError    = "error"
)

// Service ranks the corpus against free-text queries.
type Service struct {
	corpus   SnapshotProvider
	recorder RankRecorder
}

// New creates a search service.
func New(corpus SnapshotProvider) *Service {
	return &Service{corpus: corpus}
}

// WithRecorder attaches a ranking observer (metrics).
func (s *Service) WithRecorder(r RankRecorder) *Service {
	s.recorder = r
	return s
}

// Rank returns at most req.TopK() results ordered by descending cosine
// similarity. A query with no weighted vocabulary terms yields an empty list.
func (s *Service) Rank(ctx context.Context, req *request.Request) ([]result.Result, error) {
	start := time.Now()

	results, err := s.rank(ctx, req)
	s.record(start, results, err)
	return results, err
}

func (s *Service) rank(ctx context.Context, req *request.Request) ([]result.Result, error) {
	snap, err := s.corpus.Snapshot()
	if err != nil {
		return nil, err
	}
	// Readiness comes first: every call answers not-ready until a snapshot is loaded.
	if err := req.Validate(); err != nil {
		return nil, err
	}

	vec, err := query.Vectorize(req.Query(), snap.Vocabulary(), snap.IDF())
	if err != nil {
		return nil, err
	}
	if vec.IsZero() {
		return []result.Result{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return assemble(snap, rank(snap, vec, req.TopK())), nil
}

func (s *Service) record(start time.Time, results []result.Result, err error) {
	if s.recorder == nil {
		return
	}
	s.recorder.RecordRank(outcome(results, err), time.Since(start), len(results))
}

func outcome(results []result.Result, err error) string {
	switch {
	case err == nil && len(results) == 0:
		return StatusEmpty
	case err == nil:
		return StatusOK
	case errors.Is(err, domain.ErrNotReady):
		return StatusNotReady
	case errors.Is(err, domain.ErrEmptyQuery),
		errors.Is(err, domain.ErrAllTokensStopwords),
		errors.Is(err, domain.ErrInvalidRequest):
		return StatusInvalid
	default:
		return StatusError
	}
}
