package keystore

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingStore struct {
	inner *MemoryStore
	calls int
	fail  bool
}

func (s *countingStore) GetKeyByID(ctx context.Context, kid string) (*KeyRecord, error) {
	s.calls++
	if s.fail {
		return nil, errors.New("backend down")
	}
	return s.inner.GetKeyByID(ctx, kid)
}

func TestCacheReadThrough(t *testing.T) {
	backend := &countingStore{inner: NewMemoryStore()}
	if _, err := backend.inner.Save(&KeyRecord{KID: "k1", Key: "{}"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cache := NewCache(backend, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec, err := cache.GetKeyByID(ctx, "k1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if rec == nil {
			t.Fatal("expected a hit")
		}
	}
	if backend.calls != 1 {
		t.Fatalf("expected 1 backend read, got %d", backend.calls)
	}
}

func TestCacheNegativeCaching(t *testing.T) {
	backend := &countingStore{inner: NewMemoryStore()}
	cache := NewCache(backend, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec, err := cache.GetKeyByID(ctx, "absent")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if rec != nil {
			t.Fatalf("expected a miss, got %+v", rec)
		}
	}
	if backend.calls != 1 {
		t.Fatalf("misses must be cached too, got %d backend reads", backend.calls)
	}
}

func TestCacheInvalidate(t *testing.T) {
	backend := &countingStore{inner: NewMemoryStore()}
	if _, err := backend.inner.Save(&KeyRecord{KID: "k1", Key: "{}"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cache := NewCache(backend, time.Minute)
	ctx := context.Background()

	if _, err := cache.GetKeyByID(ctx, "k1"); err != nil {
		t.Fatalf("get: %v", err)
	}
	cache.Invalidate("k1")
	if _, err := cache.GetKeyByID(ctx, "k1"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if backend.calls != 2 {
		t.Fatalf("invalidate must force a backend read, got %d", backend.calls)
	}
}

func TestCacheDoesNotCacheErrors(t *testing.T) {
	backend := &countingStore{inner: NewMemoryStore(), fail: true}
	cache := NewCache(backend, time.Minute)
	ctx := context.Background()

	if _, err := cache.GetKeyByID(ctx, "k1"); err == nil {
		t.Fatal("expected backend failure")
	}

	backend.fail = false
	if _, err := backend.inner.Save(&KeyRecord{KID: "k1", Key: "{}"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec, err := cache.GetKeyByID(ctx, "k1")
	if err != nil {
		t.Fatalf("get after recovery: %v", err)
	}
	if rec == nil {
		t.Fatal("recovered backend must serve the record")
	}
	if backend.calls != 2 {
		t.Fatalf("errors must not be cached, got %d backend reads", backend.calls)
	}
}

func TestCacheEntryExpiry(t *testing.T) {
	backend := &countingStore{inner: NewMemoryStore()}
	if _, err := backend.inner.Save(&KeyRecord{KID: "k1", Key: "{}"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cache := NewCache(backend, 10*time.Millisecond)
	ctx := context.Background()

	if _, err := cache.GetKeyByID(ctx, "k1"); err != nil {
		t.Fatalf("get: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := cache.GetKeyByID(ctx, "k1"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if backend.calls != 2 {
		t.Fatalf("expired entry must be refetched, got %d backend reads", backend.calls)
	}
}
