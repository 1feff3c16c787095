package ratelimit

import (
	"context"
	"testing"
	"time"
)

func newTestMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

func TestMemoryStoreCounts(t *testing.T) {
	store := newTestMemoryStore()
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		count, ttl, err := store.Increment(ctx, "k", time.Minute)
		if err != nil {
			t.Fatalf("increment: %v", err)
		}
		if count != i {
			t.Fatalf("count = %d, want %d", count, i)
		}
		if ttl <= 0 || ttl > time.Minute {
			t.Fatalf("ttl out of range: %v", ttl)
		}
	}
}

func TestMemoryStoreWindowExpiry(t *testing.T) {
	store := newTestMemoryStore()
	ctx := context.Background()

	current := time.Now()
	store.now = func() time.Time { return current }

	if count, _, _ := store.Increment(ctx, "k", time.Minute); count != 1 {
		t.Fatalf("first count = %d", count)
	}
	if count, _, _ := store.Increment(ctx, "k", time.Minute); count != 2 {
		t.Fatalf("second count = %d", count)
	}

	current = current.Add(time.Minute + time.Second)
	count, _, err := store.Increment(ctx, "k", time.Minute)
	if err != nil {
		t.Fatalf("increment after expiry: %v", err)
	}
	if count != 1 {
		t.Fatalf("count after window = %d, want 1", count)
	}
}

func TestMemoryStoreReset(t *testing.T) {
	store := newTestMemoryStore()
	ctx := context.Background()

	store.Increment(ctx, "k", time.Minute)
	store.Increment(ctx, "k", time.Minute)
	if err := store.Reset(ctx, "k"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	count, _, _ := store.Increment(ctx, "k", time.Minute)
	if count != 1 {
		t.Fatalf("count after reset = %d, want 1", count)
	}
}

func TestMemoryStoreKeysAreIndependent(t *testing.T) {
	store := newTestMemoryStore()
	ctx := context.Background()

	store.Increment(ctx, "a", time.Minute)
	store.Increment(ctx, "a", time.Minute)
	count, _, _ := store.Increment(ctx, "b", time.Minute)
	if count != 1 {
		t.Fatalf("fresh key count = %d, want 1", count)
	}
}
