package search

import (
	"time"

	"github.com/kailas-cloud/tfidx/internal/domain/corpus"
)

// SnapshotProvider hands out the published corpus snapshot.
type SnapshotProvider interface {
	Snapshot() (*corpus.Snapshot, error)
}

// RankRecorder observes ranking calls. status is one of the Status* constants.
type RankRecorder interface {
	RecordRank(status string, duration time.Duration, results int)
}
