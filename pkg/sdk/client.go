package tfidx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tfidx/internal/db"
	"github.com/kailas-cloud/tfidx/internal/domain/corpus"
	"github.com/kailas-cloud/tfidx/internal/domain/search/request"
	"github.com/kailas-cloud/tfidx/internal/domain/search/result"
	"github.com/kailas-cloud/tfidx/internal/repository/snapshot"
	corpusuc "github.com/kailas-cloud/tfidx/internal/usecase/corpus"
	healthuc "github.com/kailas-cloud/tfidx/internal/usecase/health"
	searchuc "github.com/kailas-cloud/tfidx/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultLoadTimeout      = 60 * time.Second
	defaultRetryInterval    = 15 * time.Second
)

// Internal interfaces, swapped out in tests.
type rankUseCase interface {
	Rank(ctx context.Context, req *request.Request) ([]result.Result, error)
}

type corpusUseCase interface {
	Load(ctx context.Context) error
	Status() corpusuc.Status
	Snapshot() (*corpus.Snapshot, error)
	IsReady() bool
}

// Client is the tfidx SDK entry point.
type Client struct {
	conn      db.Conn
	ranker    rankUseCase
	corpus    corpusUseCase
	healthSvc healthUseCase
	obs       *observer

	stop context.CancelFunc
	done chan struct{}
}

// New connects to the snapshot store and starts loading the corpus in the
// background. The provided context is used for the readiness check only; a
// failed first load is retried and does not fail New.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		corpusSize:    corpus.DefaultSize,
		loadTimeout:   defaultLoadTimeout,
		retryInterval: defaultRetryInterval,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	handle, err := snapshot.Open(snapshot.Options{
		Driver:     cfg.driver,
		Addrs:      cfg.addrs,
		Password:   cfg.password,
		Standalone: cfg.standalone,
		DSN:        cfg.dsn,
		KeyPrefix:  cfg.keyPrefix,
	}, zap.NewNop())
	if err != nil {
		return nil, fmt.Errorf("tfidx: %w", err)
	}

	if err := handle.Conn.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		handle.Conn.Close()
		return nil, fmt.Errorf("tfidx: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		handle.Conn.Close()
		return nil, err
	}

	loader := corpusuc.New(handle.Source, cfg.corpusSize, zap.NewNop(),
		corpusuc.WithFetchConcurrency(cfg.fetchConcurrency),
		corpusuc.WithLoadTimeout(cfg.loadTimeout),
		corpusuc.WithRecorder(loadRecorder{obs: obs}),
	)

	c := wireClient(handle.Conn, loader, obs)
	c.start(loader, cfg.retryInterval)
	return c, nil
}

func (cfg *clientConfig) validate() error {
	switch cfg.driver {
	case "postgres":
		if cfg.dsn == "" {
			return errors.New("tfidx: postgres dsn required")
		}
	case "valkey", "redis":
		if len(cfg.addrs) == 0 {
			return errors.New("tfidx: database address required")
		}
	case "":
		return errors.New("tfidx: database required (use WithValkey, WithRedis or WithPostgres)")
	default:
		return fmt.Errorf("tfidx: unknown driver %q", cfg.driver)
	}
	if cfg.corpusSize <= 0 {
		return fmt.Errorf("tfidx: corpus size must be positive, got %d", cfg.corpusSize)
	}
	return nil
}

func wireClient(conn db.Conn, loader corpusUseCase, obs *observer) *Client {
	return &Client{
		conn:      conn,
		ranker:    searchuc.New(loader),
		corpus:    loader,
		healthSvc: healthuc.New(conn, loader),
		obs:       obs,
	}
}

func (c *Client) start(loader *corpusuc.Service, retry time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	c.stop = cancel
	c.done = make(chan struct{})
	go func() {
		defer close(c.done)
		loader.Run(ctx, retry)
	}()
}

// Close stops background loading and releases the store connection.
func (c *Client) Close() {
	if c.stop != nil {
		c.stop()
		<-c.done
	}
	if c.conn != nil {
		c.conn.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.conn.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Load makes one load attempt and returns its error; it returns nil at once
// when the corpus is already loaded. A call that overlaps the background
// loader joins its attempt. Failed attempts are retried only by the
// background loader, every WithRetryInterval.
func (c *Client) Load(ctx context.Context) error {
	if err := c.corpus.Load(ctx); err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	return nil
}

// IsReady reports whether a snapshot has been loaded.
func (c *Client) IsReady() bool {
	return c.corpus.IsReady()
}

// Status describes the background loader.
func (c *Client) Status() CorpusStatus {
	st := c.corpus.Status()
	return CorpusStatus{
		State:    CorpusState(st.State.String()),
		Attempts: st.Attempts,
		Err:      st.Err,
		LoadedAt: st.LoadedAt,
	}
}

// Stats summarizes the loaded snapshot.
func (c *Client) Stats() (CorpusStats, error) {
	snap, err := c.corpus.Snapshot()
	if err != nil {
		return CorpusStats{}, err
	}
	st := snap.Stats()
	return CorpusStats{
		VocabularySize: st.VocabularySize,
		IDFSize:        st.IDFSize,
		Documents:      st.Documents,
		Problems:       st.Problems,
		LoadedAt:       st.LoadedAt,
	}, nil
}

// Search ranks the corpus against query and returns at most topK documents.
// topK <= 0 selects the default of 5.
func (c *Client) Search(ctx context.Context, query string, topK int) (hits []SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observeSearch(start, len(hits), err) }()

	req := request.New(query, topK)
	results, err := c.ranker.Rank(ctx, &req)
	if err != nil {
		return nil, err
	}

	hits = make([]SearchResult, 0, len(results))
	for i := range results {
		hits = append(hits, toSearchResult(&results[i]))
	}
	return hits, nil
}

func toSearchResult(r *result.Result) SearchResult {
	p := r.Problem()
	return SearchResult{
		DocID:     r.DocID(),
		ProblemID: p.ID(),
		Title:     p.Title(),
		Score:     r.Score(),
		Metadata:  r.Metadata(),
	}
}

// loadRecorder reports load attempts through the observer.
type loadRecorder struct {
	obs *observer
}

func (r loadRecorder) RecordLoad(err error, d time.Duration, stats *corpus.Stats) {
	r.obs.observeLoad(d, err, stats)
}
