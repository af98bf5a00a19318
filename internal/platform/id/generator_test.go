package id

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_NewID(t *testing.T) {
	t.Parallel()

	value, err := NewUUIDGenerator().NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if _, err := uuid.Parse(value); err != nil {
		t.Fatalf("expected a uuid, got %q: %v", value, err)
	}
}

func TestSequenceGenerator_IsUniqueUnderConcurrency(t *testing.T) {
	t.Parallel()

	gen := &SequenceGenerator{Prefix: "fine-"}
	seen := sync.Map{}
	var (
		wg         sync.WaitGroup
		duplicates sync.Map
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := gen.NewID()
			if err != nil {
				duplicates.Store("error: "+err.Error(), struct{}{})
				return
			}
			if _, loaded := seen.LoadOrStore(value, struct{}{}); loaded {
				duplicates.Store(value, struct{}{})
			}
		}()
	}
	wg.Wait()

	duplicates.Range(func(key, _ any) bool {
		t.Fatalf("unexpected duplicate or error: %v", key)
		return false
	})

	next, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if next != "fine-51" {
		t.Fatalf("expected fine-51, got %q", next)
	}
}
