package snapshot

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tfidx/internal/domain/corpus"
)

// PublishResult reports what Publish wrote.
type PublishResult struct {
	Fields   int
	Problems int
	Removed  int
	Skipped  int
}

// Publish writes a snapshot into the store: problem records first, then the
// corpus hash, then stale problem keys are removed. Records without a usable
// problem_id are skipped.
func (r *RedisSource) Publish(
	ctx context.Context,
	fields map[corpus.Field]string,
	problems [][]byte,
) (PublishResult, error) {
	var res PublishResult

	hash := make(map[string]string, len(corpus.ScalarFields))
	for _, f := range corpus.ScalarFields {
		v, ok := fields[f]
		if !ok || v == "" {
			return res, fmt.Errorf("field %s is required", f)
		}
		hash[f.String()] = v
	}

	written := make(map[string]struct{}, len(problems))
	for _, doc := range problems {
		p, err := corpus.ParseProblem(doc)
		if err != nil {
			res.Skipped++
			r.logger.Warn("skip problem record", zap.Error(err))
			continue
		}
		key := r.problemKey(p.ID())
		if err := r.store.Set(ctx, key, doc); err != nil {
			return res, fmt.Errorf("set %s: %w", key, err)
		}
		written[key] = struct{}{}
	}
	res.Problems = len(written)

	if err := r.store.HSet(ctx, r.corpusKey(), hash); err != nil {
		return res, fmt.Errorf("hset %s: %w", r.corpusKey(), err)
	}
	res.Fields = len(hash)

	existing, err := r.store.Scan(ctx, r.problemPattern())
	if err != nil {
		return res, fmt.Errorf("scan problems: %w", err)
	}
	for _, key := range existing {
		if _, ok := written[key]; ok {
			continue
		}
		if err := r.store.Del(ctx, key); err != nil {
			return res, fmt.Errorf("del %s: %w", key, err)
		}
		res.Removed++
	}

	return res, nil
}
