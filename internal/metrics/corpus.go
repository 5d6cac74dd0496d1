package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/tfidx/internal/domain/corpus"
)

// Ranking and corpus Prometheus metrics.
var (
	RankRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tfidx",
			Name:      "rank_requests_total",
			Help:      "Total number of ranking requests",
		},
		[]string{"status"}, // ok / empty / not_ready / invalid / error
	)

	RankDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "tfidx",
			Name:      "rank_duration_seconds",
			Help:      "Ranking duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		},
	)

	RankResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "tfidx",
			Name:      "rank_results",
			Help:      "Number of results returned per ranking request",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
	)

	CorpusReady = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tfidx",
			Name:      "corpus_ready",
			Help:      "1 when the corpus snapshot is loaded",
		},
	)

	CorpusLoadTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tfidx",
			Name:      "corpus_load_total",
			Help:      "Corpus load attempts",
		},
		[]string{"status"}, // "success" / "error"
	)

	CorpusLoadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "tfidx",
			Name:      "corpus_load_duration_seconds",
			Help:      "Corpus load attempt duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	CorpusDocuments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tfidx",
			Name:      "corpus_documents",
			Help:      "Documents in the loaded corpus",
		},
	)

	CorpusVocabularySize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tfidx",
			Name:      "corpus_vocabulary_size",
			Help:      "Vocabulary terms in the loaded corpus",
		},
	)
)

var corpusMetricsRegistered bool

// RegisterCorpusMetrics registers ranking and corpus metrics. Must be called once from main.
func RegisterCorpusMetrics() {
	if corpusMetricsRegistered {
		return
	}
	prometheus.MustRegister(RankRequestsTotal)
	prometheus.MustRegister(RankDuration)
	prometheus.MustRegister(RankResults)
	prometheus.MustRegister(CorpusReady)
	prometheus.MustRegister(CorpusLoadTotal)
	prometheus.MustRegister(CorpusLoadDuration)
	prometheus.MustRegister(CorpusDocuments)
	prometheus.MustRegister(CorpusVocabularySize)
	corpusMetricsRegistered = true
}

// LoadRecorder feeds corpus load attempts into the corpus metrics.
type LoadRecorder struct{}

// RecordLoad implements usecase/corpus.LoadRecorder.
func (LoadRecorder) RecordLoad(err error, d time.Duration, stats *corpus.Stats) {
	CorpusLoadDuration.Observe(d.Seconds())
	if err != nil {
		CorpusLoadTotal.WithLabelValues("error").Inc()
		CorpusReady.Set(0)
		return
	}
	CorpusLoadTotal.WithLabelValues("success").Inc()
	CorpusReady.Set(1)
	if stats != nil {
		CorpusDocuments.Set(float64(stats.Documents))
		CorpusVocabularySize.Set(float64(stats.VocabularySize))
	}
}

// RankRecorder feeds ranking calls into the ranking metrics.
type RankRecorder struct{}

// RecordRank implements usecase/search.RankRecorder.
func (RankRecorder) RecordRank(status string, d time.Duration, results int) {
	RankRequestsTotal.WithLabelValues(status).Inc()
	RankDuration.Observe(d.Seconds())
	RankResults.Observe(float64(results))
}
