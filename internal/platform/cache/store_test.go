package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	var calls atomic.Int32
	boom := errors.New("boom")

	loader := func(context.Context) (int, error) {
		if calls.Add(1) == 1 {
			return 0, boom
		}
		return 7, nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	got, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}
	if got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "teams:wolves", "cached")
	if _, ok := store.Get(context.Background(), "teams:wolves"); !ok {
		t.Fatalf("expected cached value before expiry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "teams:wolves"); ok {
		t.Fatalf("expected value to expire")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore[string](0)
	store.Set(context.Background(), "teams:a", "a")
	store.Set(context.Background(), "teams:b", "b")
	store.Set(context.Background(), "holder", "h")

	store.DeletePrefix(context.Background(), "teams:")

	if store.Len() != 1 {
		t.Fatalf("expected only holder to remain, got %d entries", store.Len())
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
