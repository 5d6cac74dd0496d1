package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tfidx/internal/domain"
	"github.com/kailas-cloud/tfidx/internal/domain/search/request"
	"github.com/kailas-cloud/tfidx/internal/domain/search/result"
	"github.com/kailas-cloud/tfidx/internal/logger"
	corpusuc "github.com/kailas-cloud/tfidx/internal/usecase/corpus"
	healthuc "github.com/kailas-cloud/tfidx/internal/usecase/health"
	"github.com/kailas-cloud/tfidx/internal/version"
)

const maxBodyBytes = 64 << 10

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the ranking API.
type Server struct {
	search        Ranker
	corpus        CorpusReader
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search Ranker, corpus CorpusReader, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		corpus: corpus,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotReady, http.StatusServiceUnavailable, codeNotReady),
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrAllTokensStopwords, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeBadRequest),
	}
	return s
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Root)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/version", s.Version)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/corpus", s.GetCorpus)
		r.Get("/corpus/status", s.GetCorpusStatus)
		r.Post("/search", s.Search)
		r.Get("/search", s.SearchQuery)
	})
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("tfidx running"))
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var body SearchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	topK := 0
	if body.TopK != nil {
		topK = *body.TopK
	}
	s.rank(w, r, body.Query, topK)
}

// SearchQuery handles GET /api/v1/search?q=...&top_k=....
func (s *Server) SearchQuery(w http.ResponseWriter, r *http.Request) {
	var q *string
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid query parameter q")
		return
	}
	var topK *int
	if err := runtime.BindQueryParameter("form", true, false, "top_k", r.URL.Query(), &topK); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid query parameter top_k")
		return
	}

	query, k := "", 0
	if q != nil {
		query = *q
	}
	if topK != nil {
		k = *topK
	}
	s.rank(w, r, query, k)
}

func (s *Server) rank(w http.ResponseWriter, r *http.Request, query string, topK int) {
	req := request.New(query, topK)
	results, err := s.search.Rank(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]SearchResultItem, len(results))
	for i := range results {
		items[i] = searchResultToDTO(&results[i])
	}
	writeJSON(w, http.StatusOK, SearchResponse{Data: items})
}

// GetCorpusStatus handles GET /api/v1/corpus/status.
func (s *Server) GetCorpusStatus(w http.ResponseWriter, _ *http.Request) {
	st := s.corpus.Status()
	resp := CorpusStatusResponse{
		IsDataLoaded: st.State == corpusuc.StateReady,
		State:        st.State.String(),
		Attempts:     st.Attempts,
	}
	if st.Err != nil {
		resp.Error = st.Err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetCorpus handles GET /api/v1/corpus.
func (s *Server) GetCorpus(w http.ResponseWriter, r *http.Request) {
	snap, err := s.corpus.Snapshot()
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	st := snap.Stats()
	writeJSON(w, http.StatusOK, CorpusSummaryResponse{
		VocabularySize: st.VocabularySize,
		IDFSize:        st.IDFSize,
		Documents:      st.Documents,
		Problems:       st.Problems,
		LoadedAt:       st.LoadedAt.UTC(),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// Version handles GET /version.
func (s *Server) Version(w http.ResponseWriter, _ *http.Request) {
	info := version.Get()
	writeJSON(w, http.StatusOK, VersionResponse{
		Version: info.Version,
		Commit:  info.Commit,
		Date:    info.Date,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-facing message without exposing internals.
// Request validation errors carry their detail; others map to the sentinel text.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidRequest) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrNotReady,
		domain.ErrEmptyQuery,
		domain.ErrAllTokensStopwords,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func searchResultToDTO(r *result.Result) SearchResultItem {
	return SearchResultItem{
		Score:   r.Score(),
		DocID:   r.DocID(),
		Problem: r.Metadata(),
	}
}
