package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/tfidx/internal/db"
)

// getMultiChunk bounds the number of GETs pipelined per DoMulti round-trip.
const getMultiChunk = 256

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := s.b().Get().Key(key).Build()
	data, err := s.do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// GetMulti fetches many keys with pipelined GETs (one DoMulti per chunk).
// Missing keys come back as nil entries at their position.
func (s *Store) GetMulti(ctx context.Context, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	out := make([][]byte, 0, len(keys))
	for start := 0; start < len(keys); start += getMultiChunk {
		end := min(start+getMultiChunk, len(keys))
		chunk := keys[start:end]

		cmds := make([]rueidis.Completed, len(chunk))
		for i, key := range chunk {
			cmds[i] = s.b().Get().Key(key).Build()
		}

		for i, res := range s.client.DoMulti(ctx, cmds...) {
			data, err := res.AsBytes()
			if err != nil {
				if rueidis.IsRedisNil(err) {
					out = append(out, nil)
					continue
				}
				return nil, &db.Error{Op: db.OpGet, Err: fmt.Errorf("key %s: %w", chunk[i], err)}
			}
			out = append(out, data)
		}
	}

	return out, nil
}

// Set stores a value at the given key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	cmd := s.b().Set().Key(key).Value(string(value)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}
