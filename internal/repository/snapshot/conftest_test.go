package snapshot

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

// mockRedisStore implements redisStore for tests.
type mockRedisStore struct {
	hgetFn     func(ctx context.Context, key, field string) (string, error)
	hsetFn     func(ctx context.Context, key string, fields map[string]string) error
	scanFn     func(ctx context.Context, pattern string) ([]string, error)
	getMultiFn func(ctx context.Context, keys []string) ([][]byte, error)
	setFn      func(ctx context.Context, key string, value []byte) error
	delFn      func(ctx context.Context, key string) error
}

func (m *mockRedisStore) HGet(ctx context.Context, key, field string) (string, error) {
	if m.hgetFn != nil {
		return m.hgetFn(ctx, key, field)
	}
	return "", nil
}

func (m *mockRedisStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockRedisStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func (m *mockRedisStore) GetMulti(ctx context.Context, keys []string) ([][]byte, error) {
	if m.getMultiFn != nil {
		return m.getMultiFn(ctx, keys)
	}
	return make([][]byte, len(keys)), nil
}

func (m *mockRedisStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func (m *mockRedisStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

// mockPostgresStore implements postgresStore for tests.
type mockPostgresStore struct {
	snapshotFieldFn    func(ctx context.Context, column string) (string, error)
	problemDocumentsFn func(ctx context.Context) ([][]byte, error)
}

func (m *mockPostgresStore) SnapshotField(ctx context.Context, column string) (string, error) {
	if m.snapshotFieldFn != nil {
		return m.snapshotFieldFn(ctx, column)
	}
	return "", nil
}

func (m *mockPostgresStore) ProblemDocuments(ctx context.Context) ([][]byte, error) {
	if m.problemDocumentsFn != nil {
		return m.problemDocumentsFn(ctx)
	}
	return nil, nil
}

func newTestRedisSource(t *testing.T) (*RedisSource, *mockRedisStore) {
	t.Helper()
	ms := &mockRedisStore{}
	return NewRedis(ms, "", zap.NewNop()), ms
}

func newTestPostgresSource(t *testing.T) (*PostgresSource, *mockPostgresStore) {
	t.Helper()
	ms := &mockPostgresStore{}
	return NewPostgres(ms, zap.NewNop()), ms
}
