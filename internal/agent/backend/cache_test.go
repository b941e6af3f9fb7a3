package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeStore struct {
	data   map[string]string
	getErr error
	setErr error
	sets   int
}

func (f *fakeStore) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.sets++
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.data[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

type countingSource struct {
	calls int
	text  string
	err   error
}

func (s *countingSource) Info(ctx context.Context, topic string) (string, error) {
	s.calls++
	return s.text + ":" + topic, s.err
}

func TestInfoCacheReadThrough(t *testing.T) {
	store := &fakeStore{data: map[string]string{}}
	src := &countingSource{text: "Trippy"}
	cache := NewRedisInfoCache(store, src, time.Hour)

	for i := 0; i < 3; i++ {
		got, err := cache.Info(t.Context(), InfoCompany)
		if err != nil {
			t.Fatalf("Info: %v", err)
		}
		if got != "Trippy:company" {
			t.Errorf("got %q", got)
		}
	}
	if src.calls != 1 {
		t.Errorf("source called %d times, want 1", src.calls)
	}
	if store.data["trippy:info:company"] != "Trippy:company" {
		t.Errorf("cache content = %v", store.data)
	}
}

func TestInfoCacheDegradesOnRedisFailure(t *testing.T) {
	store := &fakeStore{data: map[string]string{}, getErr: errors.New("down"), setErr: errors.New("down")}
	src := &countingSource{text: "Trippy"}
	cache := NewRedisInfoCache(store, src, time.Hour)

	got, err := cache.Info(t.Context(), InfoContact)
	if err != nil || got != "Trippy:contact" {
		t.Errorf("got %q, %v", got, err)
	}
	if store.sets != 1 {
		t.Errorf("sets = %d", store.sets)
	}
}

func TestInfoCacheSourceError(t *testing.T) {
	store := &fakeStore{data: map[string]string{}}
	src := &countingSource{err: errors.New("backend down")}
	cache := NewRedisInfoCache(store, src, time.Hour)

	if _, err := cache.Info(t.Context(), InfoCompany); err == nil {
		t.Fatal("expected error")
	}
	if store.sets != 0 {
		t.Error("errors must not be cached")
	}
}
