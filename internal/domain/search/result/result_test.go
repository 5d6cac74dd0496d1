package result

import (
	"testing"

	"github.com/kailas-cloud/tfidx/internal/domain/corpus"
)

func TestNew(t *testing.T) {
	p, err := corpus.ParseProblem([]byte(`{"problem_id":3,"title":"Merge Intervals"}`))
	if err != nil {
		t.Fatal(err)
	}

	r := New(3, 0.75, p)

	if r.DocID() != 3 {
		t.Errorf("DocID() = %d", r.DocID())
	}
	if r.Score() != 0.75 {
		t.Errorf("Score() = %f", r.Score())
	}
	prob := r.Problem()
	if prob.Title() != "Merge Intervals" {
		t.Errorf("Problem().Title() = %q", prob.Title())
	}
	if string(r.Metadata()) != `{"problem_id":3,"title":"Merge Intervals"}` {
		t.Errorf("Metadata() = %s", r.Metadata())
	}
}
