// Package snapshot reads the precomputed corpus snapshot from the configured
// store. Redis/Valkey keeps the delimited fields in one hash and each problem
// record as a JSON string; PostgreSQL keeps them in a single snapshot row and
// a problems table.
package snapshot

import (
	"go.uber.org/zap"

	"github.com/kailas-cloud/tfidx/internal/domain/corpus"
)

// DefaultKeyPrefix namespaces every key written by tfidx.
const DefaultKeyPrefix = "tfidx:"

// parseProblems decodes metadata records. Records without a usable
// problem_id are skipped and logged; the rest of the corpus stays usable.
func parseProblems(docs [][]byte, logger *zap.Logger) []corpus.Problem {
	problems := make([]corpus.Problem, 0, len(docs))
	skipped := 0
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		p, err := corpus.ParseProblem(doc)
		if err != nil {
			skipped++
			logger.Debug("skip problem record", zap.Error(err))
			continue
		}
		problems = append(problems, p)
	}
	if skipped > 0 {
		logger.Warn("skipped malformed problem records",
			zap.Int("skipped", skipped),
			zap.Int("loaded", len(problems)),
		)
	}
	return problems
}
