package search

import (
	"math"
	"sort"

	"github.com/kailas-cloud/tfidx/internal/domain/corpus"
	"github.com/kailas-cloud/tfidx/internal/domain/query"
)

// scored is a document row index with its cosine similarity.
type scored struct {
	index int
	score float64
}

// rank scores every document against q and returns the topK best.
// Documents with zero magnitude are skipped; non-finite and non-positive
// scores are dropped. Ties break on ascending row index.
func rank(snap *corpus.Snapshot, q query.Vector, topK int) []scored {
	qw := q.Weights()
	qmag := q.Magnitude()
	if qmag == 0 || topK <= 0 {
		return nil
	}

	hits := make([]scored, 0, topK)
	for i := range snap.Size() {
		mag := snap.Magnitude(i)
		if mag == 0 {
			continue
		}
		score := dot(snap.Row(i), qw) / (mag * qmag)
		if math.IsNaN(score) || math.IsInf(score, 0) || score <= 0 {
			continue
		}
		hits = append(hits, scored{index: i, score: score})
	}

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].score != hits[b].score {
			return hits[a].score > hits[b].score
		}
		return hits[a].index < hits[b].index
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits
}

// dot multiplies over the shorter of the two vectors; missing entries are 0.
func dot(row, q []float64) float64 {
	n := min(len(row), len(q))
	var sum float64
	for j := range n {
		if row[j] == 0 || q[j] == 0 {
			continue
		}
		sum += row[j] * q[j]
	}
	return sum
}
