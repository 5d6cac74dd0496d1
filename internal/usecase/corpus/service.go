package corpus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/tfidx/internal/domain"
	"github.com/kailas-cloud/tfidx/internal/domain/corpus"
)

// DefaultFetchConcurrency bounds parallel field fetches.
const DefaultFetchConcurrency = 5

var errNoProblems = errors.New("no problem records")

// State is the readiness of the corpus cache.
type State int32

// Readiness states.
const (
	StateLoading State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "loading"
	}
}

// Status is a point-in-time view of the cache.
type Status struct {
	State    State
	Err      error
	Attempts int
	LoadedAt time.Time
}

// partial holds fields decoded by earlier attempts.
type partial struct {
	magnitudes []float64
	idf        []float64
	vocabulary []string
	matrix     [][]float64
	problems   []corpus.Problem
}

func (p *partial) has(f corpus.Field) bool {
	switch f {
	case corpus.FieldMagnitudes:
		return p.magnitudes != nil
	case corpus.FieldIDF:
		return p.idf != nil
	case corpus.FieldVocabulary:
		return p.vocabulary != nil
	case corpus.FieldMatrix:
		return p.matrix != nil
	case corpus.FieldProblems:
		return p.problems != nil
	}
	return false
}

func (p *partial) data() corpus.Data {
	return corpus.Data{
		Vocabulary: p.vocabulary,
		IDF:        p.idf,
		Magnitudes: p.magnitudes,
		Matrix:     p.matrix,
		Problems:   p.problems,
	}
}

// Service is the process-wide corpus cache. The snapshot is published
// atomically once every field has loaded; readers never see partial state.
type Service struct {
	src         Source
	size        int
	concurrency int
	loadTimeout time.Duration
	recorder    LoadRecorder
	logger      *zap.Logger
	now         func() time.Time

	snapshot atomic.Pointer[corpus.Snapshot]
	flight   singleflight.Group

	mu       sync.Mutex
	cached   partial
	state    State
	lastErr  error
	attempts int
}

// Option configures a Service.
type Option func(*Service)

// WithFetchConcurrency bounds how many fields are fetched in parallel.
func WithFetchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithLoadTimeout bounds each load attempt started by Run.
func WithLoadTimeout(d time.Duration) Option {
	return func(s *Service) { s.loadTimeout = d }
}

// WithRecorder attaches a load observer (metrics).
func WithRecorder(r LoadRecorder) Option {
	return func(s *Service) { s.recorder = r }
}

// New creates a corpus cache for a corpus of size documents.
func New(src Source, size int, logger *zap.Logger, opts ...Option) *Service {
	if size <= 0 {
		size = corpus.DefaultSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		src:         src,
		size:        size,
		concurrency: DefaultFetchConcurrency,
		logger:      logger,
		now:         time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// IsReady reports whether a snapshot has been published.
func (s *Service) IsReady() bool {
	return s.snapshot.Load() != nil
}

// Snapshot returns the published snapshot or domain.ErrNotReady.
func (s *Service) Snapshot() (*corpus.Snapshot, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, domain.ErrNotReady
	}
	return snap, nil
}

// Status returns the current readiness state and the last load error.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{State: s.state, Err: s.lastErr, Attempts: s.attempts}
	if snap := s.snapshot.Load(); snap != nil {
		st.LoadedAt = snap.Stats().LoadedAt
	}
	return st
}

// Load fetches, decodes and publishes the snapshot. It is a no-op once the
// cache is ready. Concurrent callers share one attempt. Fields decoded by a
// failed attempt are reused by the next one.
func (s *Service) Load(ctx context.Context) error {
	if s.IsReady() {
		return nil
	}
	_, err, _ := s.flight.Do("load", func() (any, error) {
		return nil, s.load(ctx)
	})
	return err
}

// Run loads the corpus, retrying every retryInterval until it succeeds or
// ctx is done. A non-positive retryInterval means a single attempt.
func (s *Service) Run(ctx context.Context, retryInterval time.Duration) {
	for {
		err := s.loadWithTimeout(ctx)
		if err == nil || ctx.Err() != nil || retryInterval <= 0 {
			return
		}

		s.logger.Warn("corpus load failed, retrying",
			zap.Duration("retry_in", retryInterval),
			zap.Error(err),
		)
		t := time.NewTimer(retryInterval)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
	}
}

func (s *Service) loadWithTimeout(ctx context.Context) error {
	if s.loadTimeout <= 0 {
		return s.Load(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, s.loadTimeout)
	defer cancel()
	return s.Load(ctx)
}

func (s *Service) load(ctx context.Context) error {
	if s.IsReady() {
		return nil
	}
	start := s.now()

	s.mu.Lock()
	s.attempts++
	attempt := s.attempts
	if s.state != StateFailed {
		s.state = StateLoading
	}
	s.mu.Unlock()

	s.logger.Debug("corpus load started", zap.Int("attempt", attempt))

	data, err := s.fetch(ctx)
	var snap *corpus.Snapshot
	if err == nil {
		snap, err = corpus.NewSnapshot(data, s.size, s.now())
		if err != nil {
			// Individually valid fields disagree; refetch everything next time.
			s.mu.Lock()
			s.cached = partial{}
			s.mu.Unlock()
		}
	}
	elapsed := s.now().Sub(start)

	if err != nil {
		s.mu.Lock()
		s.state = StateFailed
		s.lastErr = err
		s.mu.Unlock()

		s.logger.Error("corpus load failed",
			zap.Int("attempt", attempt),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		s.record(err, elapsed, nil)
		return err
	}

	// Publish under mu so Status never reports a stored snapshot as loading.
	s.mu.Lock()
	s.snapshot.Store(snap)
	s.state = StateReady
	s.lastErr = nil
	s.cached = partial{}
	s.mu.Unlock()

	stats := snap.Stats()
	s.logger.Info("corpus loaded",
		zap.Int("attempt", attempt),
		zap.Int("documents", stats.Documents),
		zap.Int("vocabulary", stats.VocabularySize),
		zap.Int("idf", stats.IDFSize),
		zap.Int("problems", stats.Problems),
		zap.Duration("duration", elapsed),
	)
	s.record(nil, elapsed, &stats)
	return nil
}

// fetch loads every field not already cached, in parallel.
func (s *Service) fetch(ctx context.Context) (corpus.Data, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, f := range corpus.ScalarFields {
		if s.isCached(f) {
			s.logger.Debug("reuse cached field", zap.Stringer("field", f))
			continue
		}
		g.Go(func() error { return s.fetchField(gctx, f) })
	}
	if !s.isCached(corpus.FieldProblems) {
		g.Go(func() error { return s.fetchProblems(gctx) })
	}

	if err := g.Wait(); err != nil {
		return corpus.Data{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cached.data(), nil
}

func (s *Service) fetchField(ctx context.Context, f corpus.Field) error {
	raw, err := s.src.FetchField(ctx, f)
	if err != nil {
		return domain.NewLoadError(f.String(), err)
	}
	if raw == "" {
		return domain.NewLoadError(f.String(), errEmptyValue)
	}

	var store func(*partial)
	switch f {
	case corpus.FieldMagnitudes:
		var v []float64
		v, err = parseMagnitudes(raw)
		store = func(p *partial) { p.magnitudes = v }
	case corpus.FieldIDF:
		var v []float64
		v, err = parseIDF(raw)
		store = func(p *partial) { p.idf = v }
	case corpus.FieldVocabulary:
		var v []string
		v, err = parseVocabulary(raw)
		store = func(p *partial) { p.vocabulary = v }
	case corpus.FieldMatrix:
		var v [][]float64
		v, err = decodeMatrix(raw)
		store = func(p *partial) { p.matrix = v }
	default:
		err = fmt.Errorf("unknown field %s", f)
	}
	if err != nil {
		return domain.NewLoadError(f.String(), err)
	}

	s.mu.Lock()
	store(&s.cached)
	s.mu.Unlock()
	s.logger.Debug("field decoded", zap.Stringer("field", f), zap.Int("bytes", len(raw)))
	return nil
}

func (s *Service) fetchProblems(ctx context.Context) error {
	problems, err := s.src.FetchProblems(ctx)
	if err != nil {
		return domain.NewLoadError(corpus.FieldProblems.String(), err)
	}
	if len(problems) == 0 {
		return domain.NewLoadError(corpus.FieldProblems.String(), errNoProblems)
	}

	s.mu.Lock()
	s.cached.problems = problems
	s.mu.Unlock()
	s.logger.Debug("problems loaded", zap.Int("count", len(problems)))
	return nil
}

func (s *Service) isCached(f corpus.Field) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cached.has(f)
}

func (s *Service) record(err error, d time.Duration, stats *corpus.Stats) {
	if s.recorder != nil {
		s.recorder.RecordLoad(err, d, stats)
	}
}
