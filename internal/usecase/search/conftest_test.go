package search

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/kailas-cloud/tfidx/internal/domain"
	"github.com/kailas-cloud/tfidx/internal/domain/corpus"
	"github.com/kailas-cloud/tfidx/internal/domain/search/request"
)

// mockProvider implements SnapshotProvider; nil snap means not ready.
type mockProvider struct {
	mu   sync.Mutex
	snap *corpus.Snapshot
}

func (m *mockProvider) Snapshot() (*corpus.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return nil, domain.ErrNotReady
	}
	return m.snap, nil
}

func (m *mockProvider) publish(s *corpus.Snapshot) {
	m.mu.Lock()
	m.snap = s
	m.mu.Unlock()
}

type rankCall struct {
	status  string
	results int
}

// mockRecorder captures RecordRank calls.
type mockRecorder struct {
	calls []rankCall
}

func (r *mockRecorder) RecordRank(status string, _ time.Duration, results int) {
	r.calls = append(r.calls, rankCall{status: status, results: results})
}

// buildSnapshot creates a snapshot whose magnitudes are the L2 norms of rows.
// Metadata exists for every problem id listed in ids.
func buildSnapshot(t *testing.T, vocab []string, idf []float64, rows [][]float64, ids ...int) *corpus.Snapshot {
	t.Helper()
	mags := make([]float64, len(rows))
	for i, row := range rows {
		var sum float64
		for _, v := range row {
			sum += v * v
		}
		mags[i] = math.Sqrt(sum)
	}
	problems := make([]corpus.Problem, 0, len(ids))
	for _, id := range ids {
		p, err := corpus.NewProblem(id, "", nil)
		if err != nil {
			t.Fatal(err)
		}
		problems = append(problems, p)
	}
	snap, err := corpus.NewSnapshot(corpus.Data{
		Vocabulary: vocab,
		IDF:        idf,
		Magnitudes: mags,
		Matrix:     rows,
		Problems:   problems,
	}, len(rows), time.Now())
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	return snap
}

func allIDs(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i + 1
	}
	return ids
}

func mustRequest(t *testing.T, q string, topK int) *request.Request {
	t.Helper()
	r := request.New(q, topK)
	return &r
}
