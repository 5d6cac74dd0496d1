package snapshot

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tfidx/internal/domain/corpus"
)

// postgresStore is the consumer interface for the PostgreSQL snapshot (ISP).
type postgresStore interface {
	SnapshotField(ctx context.Context, column string) (string, error)
	ProblemDocuments(ctx context.Context) ([][]byte, error)
}

// PostgresSource implements usecase/corpus.Source over PostgreSQL.
type PostgresSource struct {
	store  postgresStore
	logger *zap.Logger
}

// NewPostgres creates a PostgreSQL-backed snapshot source.
func NewPostgres(s postgresStore, logger *zap.Logger) *PostgresSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresSource{store: s, logger: logger}
}

// FetchField returns the snapshot column named after the field.
func (p *PostgresSource) FetchField(ctx context.Context, field corpus.Field) (string, error) {
	if field == corpus.FieldProblems {
		return "", fmt.Errorf("field %s is not a snapshot column", field)
	}
	v, err := p.store.SnapshotField(ctx, field.String())
	if err != nil {
		return "", fmt.Errorf("select %s: %w", field, err)
	}
	return v, nil
}

// FetchProblems loads every row of the problems table.
func (p *PostgresSource) FetchProblems(ctx context.Context) ([]corpus.Problem, error) {
	docs, err := p.store.ProblemDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("select problems: %w", err)
	}
	return parseProblems(docs, p.logger), nil
}
