package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CorpusChecker reports whether the corpus snapshot is loaded.
type CorpusChecker interface {
	IsReady() bool
}
