package tfidx

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kailas-cloud/tfidx/internal/domain"
	"github.com/kailas-cloud/tfidx/internal/domain/corpus"
	corpusuc "github.com/kailas-cloud/tfidx/internal/usecase/corpus"
)

// --- db.Conn mock ---

type mockConn struct {
	pingErr error
	closed  bool
}

func (m *mockConn) Ping(context.Context) error { return m.pingErr }

func (m *mockConn) Close() { m.closed = true }

func (m *mockConn) WaitForReady(context.Context, time.Duration) error { return m.pingErr }

// --- corpusUseCase mock ---

type mockCorpus struct {
	mu      sync.Mutex
	snap    *corpus.Snapshot
	loadErr error
	loads   int
	status  corpusuc.Status
}

func (m *mockCorpus) Load(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	return m.loadErr
}

func (m *mockCorpus) Status() corpusuc.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *mockCorpus) Snapshot() (*corpus.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return nil, domain.ErrNotReady
	}
	return m.snap, nil
}

func (m *mockCorpus) IsReady() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap != nil
}

var errPing = errors.New("connection refused")

// --- helpers ---

// testSnapshot holds two documents over the vocabulary [sort, array].
func testSnapshot(t *testing.T) *corpus.Snapshot {
	t.Helper()
	p1, err := corpus.NewProblem(1, "Sort Colors", []byte(`{"problem_id":1,"title":"Sort Colors"}`))
	if err != nil {
		t.Fatal(err)
	}
	p2, err := corpus.NewProblem(2, "Merge Sorted", []byte(`{"problem_id":2,"title":"Merge Sorted"}`))
	if err != nil {
		t.Fatal(err)
	}
	snap, err := corpus.NewSnapshot(corpus.Data{
		Vocabulary: []string{"sort", "array"},
		IDF:        []float64{1, 2},
		Magnitudes: []float64{1, 1},
		Matrix:     [][]float64{{0.6, 0.8}, {1, 0}},
		Problems:   []corpus.Problem{p1, p2},
	}, 2, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	return snap
}

func testClient(t *testing.T, loader *mockCorpus) (*Client, *mockConn) {
	t.Helper()
	conn := &mockConn{}
	obs, err := newObserver(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return wireClient(conn, loader, obs), conn
}
