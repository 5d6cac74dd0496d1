package chi

import (
	"encoding/json"
	"time"
)

// Error codes returned in ErrorResponse.Code.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeNotReady         = "not_ready"
	codeInternalError    = "internal_error"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SearchRequest is the body of POST /api/v1/search.
type SearchRequest struct {
	Query string `json:"query"`
	TopK  *int   `json:"topK,omitempty"`
}

// SearchResultItem is a single ranked problem.
type SearchResultItem struct {
	Score   float64         `json:"score"`
	DocID   int             `json:"docId"`
	Problem json.RawMessage `json:"problem"`
}

// SearchResponse wraps ranked results.
type SearchResponse struct {
	Data []SearchResultItem `json:"data"`
}

// CorpusStatusResponse reports corpus readiness.
type CorpusStatusResponse struct {
	IsDataLoaded bool   `json:"isDataLoaded"`
	State        string `json:"state"`
	Attempts     int    `json:"attempts"`
	Error        string `json:"error,omitempty"`
}

// CorpusSummaryResponse describes the loaded snapshot.
type CorpusSummaryResponse struct {
	VocabularySize int       `json:"vocabularySize"`
	IDFSize        int       `json:"idfSize"`
	Documents      int       `json:"documents"`
	Problems       int       `json:"problems"`
	LoadedAt       time.Time `json:"loadedAt"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// VersionResponse is the body of GET /version.
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}
