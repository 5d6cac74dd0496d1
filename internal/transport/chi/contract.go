package chi

import (
	"context"

	"github.com/kailas-cloud/tfidx/internal/domain/corpus"
	"github.com/kailas-cloud/tfidx/internal/domain/search/request"
	"github.com/kailas-cloud/tfidx/internal/domain/search/result"
	corpusuc "github.com/kailas-cloud/tfidx/internal/usecase/corpus"
	healthuc "github.com/kailas-cloud/tfidx/internal/usecase/health"
)

// Ranker ranks the corpus against a query.
type Ranker interface {
	Rank(ctx context.Context, req *request.Request) ([]result.Result, error)
}

// CorpusReader exposes corpus readiness and the loaded snapshot.
type CorpusReader interface {
	Status() corpusuc.Status
	Snapshot() (*corpus.Snapshot, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
