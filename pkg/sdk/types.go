package tfidx

import (
	"encoding/json"
	"time"
)

// SearchResult is a single ranked document.
type SearchResult struct {
	DocID     int // 1-based row in the snapshot matrix
	ProblemID int
	Title     string
	Score     float64
	Metadata  json.RawMessage
}

// CorpusState is the readiness of the loaded snapshot.
type CorpusState string

// Corpus state constants.
const (
	CorpusLoading CorpusState = "loading"
	CorpusReady   CorpusState = "ready"
	CorpusFailed  CorpusState = "failed"
)

// CorpusStatus describes the background loader.
type CorpusStatus struct {
	State    CorpusState
	Attempts int
	Err      error // last load failure, nil once ready
	LoadedAt time.Time
}

// CorpusStats summarizes a loaded snapshot.
type CorpusStats struct {
	VocabularySize int
	IDFSize        int
	Documents      int
	Problems       int
	LoadedAt       time.Time
}
