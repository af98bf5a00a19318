package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/booze-baton/internal/domain/finereason"
	"github.com/shopspring/decimal"
)

type FineReasonRepository struct {
	mu    sync.RWMutex
	items map[string]finereason.Reason
}

func NewFineReasonRepository(reasons []finereason.Reason) *FineReasonRepository {
	items := make(map[string]finereason.Reason, len(reasons))
	for _, reason := range reasons {
		items[reason.ID] = reason
	}
	return &FineReasonRepository{items: items}
}

func (r *FineReasonRepository) List(_ context.Context) ([]finereason.Reason, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]finereason.Reason, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Text < out[j].Text
	})
	return out, nil
}

func (r *FineReasonRepository) Create(_ context.Context, reason finereason.Reason) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if strings.EqualFold(existing.Text, reason.Text) {
			return finereason.ErrAlreadyExists
		}
	}
	r.items[reason.ID] = reason
	return nil
}

func (r *FineReasonRepository) UpdateAmount(_ context.Context, id string, amount decimal.Decimal) (finereason.Reason, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return finereason.Reason{}, false, nil
	}
	item.Amount = amount
	r.items[id] = item
	return item, true, nil
}

func (r *FineReasonRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *FineReasonRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items), nil
}
