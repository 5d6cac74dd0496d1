package query

import (
	"math"
	"strings"

	"github.com/kailas-cloud/tfidx/internal/domain"
)

// Vector is a query TF-IDF vector aligned to a corpus vocabulary.
type Vector struct {
	weights   []float64
	magnitude float64
	tokens    int
}

// Weights returns the per-term weights. Length equals the vocabulary size.
func (v Vector) Weights() []float64 { return v.weights }

// Magnitude returns the L2 norm of the weights.
func (v Vector) Magnitude() float64 { return v.magnitude }

// Tokens returns the number of tokens left after stopword removal.
func (v Vector) Tokens() int { return v.tokens }

// IsZero reports whether the vector has no overlap with the weighted vocabulary.
func (v Vector) IsZero() bool { return v.magnitude == 0 }

// Vectorize builds the TF-IDF vector of text. Positions past the end of idf
// get weight 0, so the result always has len(vocabulary) entries.
func Vectorize(text string, vocabulary []string, idf []float64) (Vector, error) {
	if strings.TrimSpace(text) == "" {
		return Vector{}, domain.ErrEmptyQuery
	}

	tokens := RemoveStopwords(Tokenize(text))
	if len(tokens) == 0 {
		return Vector{}, domain.ErrAllTokensStopwords
	}

	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	n := float64(len(tokens))

	weights := make([]float64, len(vocabulary))
	limit := min(len(vocabulary), len(idf))
	var sum float64
	for j := range limit {
		c := counts[vocabulary[j]]
		if c == 0 {
			continue
		}
		w := float64(c) / n * idf[j]
		weights[j] = w
		sum += w * w
	}

	mag := math.Sqrt(sum)
	if math.IsNaN(mag) || math.IsInf(mag, 0) {
		return Vector{}, domain.ErrInternalRanking
	}
	return Vector{weights: weights, magnitude: mag, tokens: len(tokens)}, nil
}
