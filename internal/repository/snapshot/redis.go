package snapshot

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tfidx/internal/domain/corpus"
)

// redisStore is the consumer interface for the Redis/Valkey snapshot (ISP).
type redisStore interface {
	HGet(ctx context.Context, key, field string) (string, error)
	HSet(ctx context.Context, key string, fields map[string]string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}

// RedisSource implements usecase/corpus.Source over a Redis/Valkey store.
type RedisSource struct {
	store  redisStore
	prefix string
	logger *zap.Logger
}

// NewRedis creates a Redis-backed snapshot source. Empty prefix falls back to
// DefaultKeyPrefix.
func NewRedis(s redisStore, prefix string, logger *zap.Logger) *RedisSource {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSource{store: s, prefix: prefix, logger: logger}
}

// FetchField returns the raw text of one snapshot hash field.
func (r *RedisSource) FetchField(ctx context.Context, field corpus.Field) (string, error) {
	if field == corpus.FieldProblems {
		return "", fmt.Errorf("field %s is not a hash field", field)
	}
	v, err := r.store.HGet(ctx, r.corpusKey(), field.String())
	if err != nil {
		return "", fmt.Errorf("hget %s %s: %w", r.corpusKey(), field, err)
	}
	return v, nil
}

// FetchProblems loads every problem record under the problem key space.
// Keys are read in sorted order so duplicate ids resolve deterministically.
func (r *RedisSource) FetchProblems(ctx context.Context) ([]corpus.Problem, error) {
	keys, err := r.store.Scan(ctx, r.problemPattern())
	if err != nil {
		return nil, fmt.Errorf("scan problems: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)

	docs, err := r.store.GetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("get problems: %w", err)
	}
	return parseProblems(docs, r.logger), nil
}

func (r *RedisSource) corpusKey() string { return r.prefix + "corpus" }

func (r *RedisSource) problemKey(id int) string {
	return fmt.Sprintf("%sproblem:%d", r.prefix, id)
}

func (r *RedisSource) problemPattern() string { return r.prefix + "problem:*" }
