package corpus

import (
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/tfidx/internal/domain"
)

func mustProblem(t *testing.T, id int) Problem {
	t.Helper()
	p, err := NewProblem(id, "", nil)
	if err != nil {
		t.Fatalf("NewProblem(%d): %v", id, err)
	}
	return p
}

func validData(t *testing.T) Data {
	return Data{
		Vocabulary: []string{"sort", "array", "graph"},
		IDF:        []float64{1.2, 0.8, 2.0},
		Magnitudes: []float64{1, 0, 2},
		Matrix:     [][]float64{{1, 0, 0}, {}, {0, 0, 2}},
		Problems:   []Problem{mustProblem(t, 1), mustProblem(t, 3)},
	}
}

func TestNewSnapshot_Valid(t *testing.T) {
	at := time.Unix(1700000000, 0)
	s, err := NewSnapshot(validData(t), 3, at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Size() != 3 {
		t.Errorf("Size() = %d, want 3", s.Size())
	}
	st := s.Stats()
	if st.VocabularySize != 3 || st.IDFSize != 3 || st.Documents != 3 || st.Problems != 2 {
		t.Errorf("Stats() = %+v", st)
	}
	if !st.LoadedAt.Equal(at) {
		t.Errorf("LoadedAt = %v, want %v", st.LoadedAt, at)
	}
	if s.Magnitude(2) != 2 {
		t.Errorf("Magnitude(2) = %v", s.Magnitude(2))
	}
	if len(s.Row(1)) != 0 {
		t.Errorf("Row(1) = %v, want empty", s.Row(1))
	}
	if _, ok := s.Problem(2); ok {
		t.Error("Problem(2) found, want missing")
	}
	if p, ok := s.Problem(3); !ok || p.ID() != 3 {
		t.Errorf("Problem(3) = %v, %v", p, ok)
	}
}

func TestSnapshot_OutOfRange(t *testing.T) {
	s, err := NewSnapshot(validData(t), 3, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if s.Magnitude(-1) != 0 || s.Magnitude(3) != 0 {
		t.Error("out-of-range Magnitude should be 0")
	}
	if s.Row(-1) != nil || s.Row(3) != nil {
		t.Error("out-of-range Row should be nil")
	}
}

func TestNewSnapshot_EmptyField(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Data)
		field Field
	}{
		{"magnitudes", func(d *Data) { d.Magnitudes = nil }, FieldMagnitudes},
		{"idf", func(d *Data) { d.IDF = nil }, FieldIDF},
		{"vocabulary", func(d *Data) { d.Vocabulary = nil }, FieldVocabulary},
		{"matrix", func(d *Data) { d.Matrix = nil }, FieldMatrix},
		{"problems", func(d *Data) { d.Problems = nil }, FieldProblems},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validData(t)
			tt.edit(&d)
			_, err := NewSnapshot(d, 3, time.Now())
			assertLoadError(t, err, tt.field)
		})
	}
}

func TestNewSnapshot_SizeMismatch(t *testing.T) {
	d := validData(t)
	d.Matrix = d.Matrix[:2]
	_, err := NewSnapshot(d, 3, time.Now())
	assertLoadError(t, err, FieldMatrix)

	d = validData(t)
	d.Magnitudes = append(d.Magnitudes, 5)
	_, err = NewSnapshot(d, 3, time.Now())
	assertLoadError(t, err, FieldMagnitudes)
}

func TestNewSnapshot_IDFLengthMayDiffer(t *testing.T) {
	d := validData(t)
	d.IDF = d.IDF[:1]
	if _, err := NewSnapshot(d, 3, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewSnapshot_InvalidSize(t *testing.T) {
	if _, err := NewSnapshot(validData(t), 0, time.Now()); err == nil {
		t.Fatal("expected error for zero size")
	}
}

func TestNewSnapshot_DuplicateProblemFirstWins(t *testing.T) {
	d := validData(t)
	first, _ := NewProblem(1, "first", nil)
	second, _ := NewProblem(1, "second", nil)
	d.Problems = []Problem{first, second}
	s, err := NewSnapshot(d, 3, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	p, _ := s.Problem(1)
	if p.Title() != "first" {
		t.Errorf("Title() = %q, want first", p.Title())
	}
}

func assertLoadError(t *testing.T, err error, field Field) {
	t.Helper()
	if !errors.Is(err, domain.ErrLoad) {
		t.Fatalf("error = %v, want ErrLoad", err)
	}
	var le *domain.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("error = %T, want *LoadError", err)
	}
	if le.Field != field.String() {
		t.Errorf("Field = %q, want %q", le.Field, field)
	}
}
