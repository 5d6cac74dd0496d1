package corpus

import (
	"context"
	"time"

	"github.com/kailas-cloud/tfidx/internal/domain/corpus"
)

// Source is the persistence interface for the corpus snapshot.
type Source interface {
	FetchField(ctx context.Context, field corpus.Field) (string, error)
	FetchProblems(ctx context.Context) ([]corpus.Problem, error)
}

// LoadRecorder observes load attempts. stats is nil when the attempt failed.
type LoadRecorder interface {
	RecordLoad(err error, duration time.Duration, stats *corpus.Stats)
}
