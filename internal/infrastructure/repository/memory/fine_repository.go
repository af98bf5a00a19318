package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/booze-baton/internal/domain/fine"
)

type FineRepository struct {
	mu    sync.RWMutex
	items map[string]fine.Fine
}

func NewFineRepository(fines []fine.Fine) *FineRepository {
	items := make(map[string]fine.Fine, len(fines))
	for _, f := range fines {
		items[f.ID] = copyFine(f)
	}
	return &FineRepository{items: items}
}

func (r *FineRepository) Create(_ context.Context, f fine.Fine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[f.ID] = copyFine(f)
	return nil
}

func (r *FineRepository) GetByID(_ context.Context, id string) (fine.Fine, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return fine.Fine{}, false, nil
	}
	return copyFine(item), true, nil
}

func (r *FineRepository) List(_ context.Context, filter fine.Filter) ([]fine.Fine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fine.Fine, 0, len(r.items))
	for _, item := range r.items {
		if filter.Matches(item) {
			out = append(out, copyFine(item))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *FineRepository) SetPaid(_ context.Context, id string, paidDate *time.Time) (fine.Fine, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return fine.Fine{}, false, nil
	}
	item.Paid = paidDate != nil
	item.PaidDate = nil
	if paidDate != nil {
		day := *paidDate
		item.PaidDate = &day
	}
	r.items[id] = item
	return copyFine(item), true, nil
}

func (r *FineRepository) MarkAllPaid(_ context.Context, paidDate time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for id, item := range r.items {
		if item.Paid {
			continue
		}
		day := paidDate
		item.Paid = true
		item.PaidDate = &day
		r.items[id] = item
		count++
	}
	return count, nil
}

func (r *FineRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *FineRepository) DeleteAll(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := len(r.items)
	r.items = make(map[string]fine.Fine)
	return count, nil
}

// deleteByPlayer must be called with no lock held on r.
func (r *FineRepository) deleteByPlayer(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for id, item := range r.items {
		if item.PlayerName == name {
			delete(r.items, id)
			count++
		}
	}
	return count
}

func copyFine(f fine.Fine) fine.Fine {
	if f.PaidDate != nil {
		day := *f.PaidDate
		f.PaidDate = &day
	}
	return f
}
