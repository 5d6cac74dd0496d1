package corpus

import (
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/tfidx/internal/domain"
)

// DefaultSize is the number of documents in the reference corpus.
const DefaultSize = 2500

var errEmptyField = errors.New("field is empty")

// Data is the decoded content of a snapshot before validation.
type Data struct {
	Vocabulary []string
	IDF        []float64
	Magnitudes []float64
	Matrix     [][]float64
	Problems   []Problem
}

// Stats summarizes the dimensions of a snapshot.
type Stats struct {
	VocabularySize int
	IDFSize        int
	Documents      int
	Problems       int
	LoadedAt       time.Time
}

// Snapshot is the immutable, fully loaded corpus. It is safe for concurrent
// readers; none of the slices it hands out may be modified.
type Snapshot struct {
	vocabulary []string
	idf        []float64
	magnitudes []float64
	matrix     [][]float64
	problems   map[int]Problem
	size       int
	loadedAt   time.Time
}

// NewSnapshot validates decoded data against the configured corpus size.
// Every field must be non-empty; matrix rows and magnitudes must both number
// exactly size. IDF and row lengths may differ from the vocabulary size.
func NewSnapshot(d Data, size int, loadedAt time.Time) (*Snapshot, error) {
	if size <= 0 {
		return nil, fmt.Errorf("corpus size must be positive, got %d", size)
	}

	switch {
	case len(d.Magnitudes) == 0:
		return nil, domain.NewLoadError(FieldMagnitudes.String(), errEmptyField)
	case len(d.IDF) == 0:
		return nil, domain.NewLoadError(FieldIDF.String(), errEmptyField)
	case len(d.Vocabulary) == 0:
		return nil, domain.NewLoadError(FieldVocabulary.String(), errEmptyField)
	case len(d.Matrix) == 0:
		return nil, domain.NewLoadError(FieldMatrix.String(), errEmptyField)
	case len(d.Problems) == 0:
		return nil, domain.NewLoadError(FieldProblems.String(), errEmptyField)
	}

	if len(d.Matrix) != size {
		return nil, domain.NewLoadError(FieldMatrix.String(),
			fmt.Errorf("matrix has %d rows, corpus size is %d", len(d.Matrix), size))
	}
	if len(d.Magnitudes) != size {
		return nil, domain.NewLoadError(FieldMagnitudes.String(),
			fmt.Errorf("%d magnitudes, corpus size is %d", len(d.Magnitudes), size))
	}

	problems := make(map[int]Problem, len(d.Problems))
	for _, p := range d.Problems {
		if _, dup := problems[p.ID()]; dup {
			continue // first record wins
		}
		problems[p.ID()] = p
	}

	return &Snapshot{
		vocabulary: d.Vocabulary,
		idf:        d.IDF,
		magnitudes: d.Magnitudes,
		matrix:     d.Matrix,
		problems:   problems,
		size:       size,
		loadedAt:   loadedAt,
	}, nil
}

// Size returns the number of documents D.
func (s *Snapshot) Size() int { return s.size }

// Vocabulary returns the ordered vocabulary.
func (s *Snapshot) Vocabulary() []string { return s.vocabulary }

// IDF returns the inverse document frequency weights.
func (s *Snapshot) IDF() []float64 { return s.idf }

// Magnitude returns the L2 norm of document i, or 0 when i is out of range.
func (s *Snapshot) Magnitude(i int) float64 {
	if i < 0 || i >= len(s.magnitudes) {
		return 0
	}
	return s.magnitudes[i]
}

// Row returns the term weights of document i, or nil when i is out of range.
func (s *Snapshot) Row(i int) []float64 {
	if i < 0 || i >= len(s.matrix) {
		return nil
	}
	return s.matrix[i]
}

// Problem looks up metadata by external document id.
func (s *Snapshot) Problem(id int) (Problem, bool) {
	p, ok := s.problems[id]
	return p, ok
}

// Stats returns the snapshot dimensions.
func (s *Snapshot) Stats() Stats {
	return Stats{
		VocabularySize: len(s.vocabulary),
		IDFSize:        len(s.idf),
		Documents:      s.size,
		Problems:       len(s.problems),
		LoadedAt:       s.loadedAt,
	}
}
