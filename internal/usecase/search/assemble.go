package search

import (
	"github.com/kailas-cloud/tfidx/internal/domain/corpus"
	"github.com/kailas-cloud/tfidx/internal/domain/search/result"
)

// assemble joins ranked rows with problem metadata. Row i maps to problem
// i+1; rows without metadata are dropped, so the output can be shorter than
// the ranked list.
func assemble(snap *corpus.Snapshot, ranked []scored) []result.Result {
	out := make([]result.Result, 0, len(ranked))
	for _, h := range ranked {
		docID := h.index + 1
		p, ok := snap.Problem(docID)
		if !ok {
			continue
		}
		out = append(out, result.New(docID, h.score, p))
	}
	return out
}
