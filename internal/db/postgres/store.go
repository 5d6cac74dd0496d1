// Package postgres implements the corpus snapshot store on PostgreSQL via lib/pq.
//
// Expected schema:
//
//	CREATE TABLE corpus_snapshot (
//	    id             BIGSERIAL PRIMARY KEY,
//	    mag_values     TEXT,
//	    idf_values     TEXT,
//	    keyword_values TEXT,
//	    tf_idf_values  TEXT,
//	    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//	CREATE TABLE problems (
//	    problem_id INTEGER PRIMARY KEY,
//	    doc        JSONB NOT NULL
//	);
//
// The newest corpus_snapshot row wins.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/kailas-cloud/tfidx/internal/db"
)

// Compile-time check: Store implements db.Conn.
var _ db.Conn = (*Store)(nil)

const (
	defaultSnapshotTable = "corpus_snapshot"
	defaultProblemTable  = "problems"
)

// Config holds connection parameters for a PostgreSQL store.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SnapshotTable   string
	ProblemTable    string
}

// Store reads snapshot fields and problem documents from PostgreSQL.
type Store struct {
	db            *sql.DB
	snapshotTable string
	problemTable  string
}

// NewStore opens a connection pool. Connectivity is checked by WaitForReady.
func NewStore(cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}

	conn, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	s := &Store{
		db:            conn,
		snapshotTable: cfg.SnapshotTable,
		problemTable:  cfg.ProblemTable,
	}
	if s.snapshotTable == "" {
		s.snapshotTable = defaultSnapshotTable
	}
	if s.problemTable == "" {
		s.problemTable = defaultProblemTable
	}
	return s, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	_ = s.db.Close()
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// SnapshotField returns one text column of the newest snapshot row.
// A missing row or NULL column yields db.ErrKeyNotFound.
func (s *Store) SnapshotField(ctx context.Context, column string) (string, error) {
	var v sql.NullString
	err := s.db.QueryRowContext(ctx, snapshotFieldQuery(s.snapshotTable, column)).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", db.ErrKeyNotFound
		}
		return "", &db.Error{Op: db.OpSelect, Err: fmt.Errorf("%s.%s: %w", s.snapshotTable, column, err)}
	}
	if !v.Valid {
		return "", db.ErrKeyNotFound
	}
	return v.String, nil
}

// ProblemDocuments returns every problem document as raw JSON, ordered by problem_id.
func (s *Store) ProblemDocuments(ctx context.Context) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx, problemDocumentsQuery(s.problemTable))
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: fmt.Errorf("%s: %w", s.problemTable, err)}
	}
	defer rows.Close()

	var docs [][]byte
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, &db.Error{Op: db.OpSelect, Err: fmt.Errorf("scan %s: %w", s.problemTable, err)}
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: fmt.Errorf("iterate %s: %w", s.problemTable, err)}
	}
	return docs, nil
}

func snapshotFieldQuery(table, column string) string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY id DESC LIMIT 1",
		pq.QuoteIdentifier(column), pq.QuoteIdentifier(table))
}

func problemDocumentsQuery(table string) string {
	return fmt.Sprintf("SELECT doc FROM %s ORDER BY problem_id", pq.QuoteIdentifier(table))
}
