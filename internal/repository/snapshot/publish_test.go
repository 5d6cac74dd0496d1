package snapshot

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/tfidx/internal/domain/corpus"
)

func fullFields() map[corpus.Field]string {
	return map[corpus.Field]string{
		corpus.FieldMagnitudes: "1,2",
		corpus.FieldIDF:        "1\n2",
		corpus.FieldVocabulary: "sort\narray",
		corpus.FieldMatrix:     "H4sIAAAAAAAA/w==",
	}
}

func TestPublish_HappyPath(t *testing.T) {
	src, ms := newTestRedisSource(t)
	set := map[string]string{}
	var deleted []string

	ms.setFn = func(_ context.Context, key string, value []byte) error {
		set[key] = string(value)
		return nil
	}
	ms.hsetFn = func(_ context.Context, key string, fields map[string]string) error {
		if key != "tfidx:corpus" {
			t.Errorf("unexpected key: %s", key)
		}
		if fields["keyword_values"] != "sort\narray" {
			t.Errorf("keyword_values = %q", fields["keyword_values"])
		}
		return nil
	}
	ms.scanFn = func(_ context.Context, _ string) ([]string, error) {
		return []string{"tfidx:problem:1", "tfidx:problem:7"}, nil
	}
	ms.delFn = func(_ context.Context, key string) error {
		deleted = append(deleted, key)
		return nil
	}

	res, err := src.Publish(context.Background(), fullFields(), [][]byte{
		[]byte(`{"problem_id":1}`),
		[]byte(`{"problem_id":2}`),
		[]byte(`{"bad":true}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Fields != 4 || res.Problems != 2 || res.Removed != 1 || res.Skipped != 1 {
		t.Errorf("result = %+v", res)
	}
	if set["tfidx:problem:2"] != `{"problem_id":2}` {
		t.Errorf("problem 2 = %q", set["tfidx:problem:2"])
	}
	if len(deleted) != 1 || deleted[0] != "tfidx:problem:7" {
		t.Errorf("deleted = %v, want [tfidx:problem:7]", deleted)
	}
}

func TestPublish_MissingField(t *testing.T) {
	src, ms := newTestRedisSource(t)
	ms.setFn = func(_ context.Context, _ string, _ []byte) error {
		t.Error("nothing must be written when a field is missing")
		return nil
	}

	fields := fullFields()
	delete(fields, corpus.FieldIDF)
	if _, err := src.Publish(context.Background(), fields, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestPublish_HSetError(t *testing.T) {
	src, ms := newTestRedisSource(t)
	hsetErr := errors.New("READONLY")
	ms.hsetFn = func(_ context.Context, _ string, _ map[string]string) error { return hsetErr }

	_, err := src.Publish(context.Background(), fullFields(), [][]byte{[]byte(`{"problem_id":1}`)})
	if !errors.Is(err, hsetErr) {
		t.Fatalf("expected hset error, got %v", err)
	}
}
