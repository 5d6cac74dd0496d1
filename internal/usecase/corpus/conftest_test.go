package corpus

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	domcorpus "github.com/kailas-cloud/tfidx/internal/domain/corpus"
)

// mockSource implements Source for tests and counts fetches per field.
type mockSource struct {
	mu            sync.Mutex
	calls         map[domcorpus.Field]int
	fields        map[domcorpus.Field]string
	fetchFieldFn  func(ctx context.Context, f domcorpus.Field) (string, error)
	fetchProblems func(ctx context.Context) ([]domcorpus.Problem, error)
	problems      []domcorpus.Problem
}

func (m *mockSource) FetchField(ctx context.Context, f domcorpus.Field) (string, error) {
	m.mu.Lock()
	m.calls[f]++
	m.mu.Unlock()
	if m.fetchFieldFn != nil {
		return m.fetchFieldFn(ctx, f)
	}
	return m.fields[f], nil
}

func (m *mockSource) FetchProblems(ctx context.Context) ([]domcorpus.Problem, error) {
	m.mu.Lock()
	m.calls[domcorpus.FieldProblems]++
	m.mu.Unlock()
	if m.fetchProblems != nil {
		return m.fetchProblems(ctx)
	}
	return m.problems, nil
}

func (m *mockSource) count(f domcorpus.Field) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[f]
}

// mockRecorder captures RecordLoad calls.
type mockRecorder struct {
	mu    sync.Mutex
	errs  []error
	stats []*domcorpus.Stats
}

func (r *mockRecorder) RecordLoad(err error, _ time.Duration, stats *domcorpus.Stats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
	r.stats = append(r.stats, stats)
}

// encodeMatrix builds the compressed payload for rows of weights.
func encodeMatrix(t *testing.T, rows [][]float64) string {
	t.Helper()
	lines := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		lines[i] = strings.Join(cells, ",")
	}
	out, err := EncodeMatrixText(strings.Join(lines, "\n") + "\n")
	if err != nil {
		t.Fatalf("encode matrix: %v", err)
	}
	return out
}

func testProblem(t *testing.T, id int) domcorpus.Problem {
	t.Helper()
	p, err := domcorpus.ParseProblem([]byte(`{"problem_id":` + strconv.Itoa(id) + `}`))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// newTestSource returns a one-document corpus with vocabulary [sort, array].
func newTestSource(t *testing.T) *mockSource {
	t.Helper()
	return &mockSource{
		calls: map[domcorpus.Field]int{},
		fields: map[domcorpus.Field]string{
			domcorpus.FieldMagnitudes: "0.7071067811865476",
			domcorpus.FieldIDF:        "1.0\n2.0\n",
			domcorpus.FieldVocabulary: "sort\narray\n",
			domcorpus.FieldMatrix:     encodeMatrix(t, [][]float64{{0.5, 0.5}}),
		},
		problems: []domcorpus.Problem{testProblem(t, 1)},
	}
}
