package result

import (
	"encoding/json"

	"github.com/kailas-cloud/tfidx/internal/domain/corpus"
)

// Result is a single ranked document joined with its metadata.
type Result struct {
	docID   int
	score   float64
	problem corpus.Problem
}

// New creates a search result.
func New(docID int, score float64, problem corpus.Problem) Result {
	return Result{docID: docID, score: score, problem: problem}
}

// DocID returns the 1-based external document identifier.
func (r *Result) DocID() int { return r.docID }

// Score returns the cosine similarity.
func (r *Result) Score() float64 { return r.score }

// Problem returns the document metadata.
func (r *Result) Problem() corpus.Problem { return r.problem }

// Metadata returns the metadata record as stored.
func (r *Result) Metadata() json.RawMessage { return r.problem.Raw() }
