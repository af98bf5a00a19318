package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/booze-baton/internal/domain/baton"
)

type BatonRepository struct {
	mu      sync.RWMutex
	holder  *baton.Holder
	history []baton.HistoryEntry
}

func NewBatonRepository(holder *baton.Holder) *BatonRepository {
	r := &BatonRepository{}
	if holder != nil {
		copied := copyHolder(*holder)
		r.holder = &copied
	}
	return r
}

func (r *BatonRepository) GetHolder(_ context.Context) (baton.Holder, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.holder == nil {
		return baton.Holder{}, false, nil
	}
	return copyHolder(*r.holder), true, nil
}

func (r *BatonRepository) ReplaceHolder(_ context.Context, holder baton.Holder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := copyHolder(holder)
	r.holder = &copied
	return nil
}

func (r *BatonRepository) CommitTransfer(_ context.Context, expected baton.Holder, next baton.Holder, entry baton.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.holder == nil || r.holder.TeamID != expected.TeamID ||
		!sameMatchID(r.holder.LastProcessedMatchID, expected.LastProcessedMatchID) {
		return baton.ErrStaleHolder
	}
	for _, existing := range r.history {
		if existing.MatchID == entry.MatchID && existing.PreviousHolderTeamID == entry.PreviousHolderTeamID {
			return baton.ErrMatchRecorded
		}
	}

	copied := copyHolder(next)
	r.holder = &copied
	r.history = append(r.history, entry)
	return nil
}

func (r *BatonRepository) ListHistory(_ context.Context, limit int) ([]baton.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]baton.HistoryEntry, 0, len(r.history))
	for i := len(r.history) - 1; i >= 0; i-- {
		out = append(out, r.history[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *BatonRepository) DeleteHistoryEntry(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, entry := range r.history {
		if entry.ID == id {
			r.history = append(r.history[:i], r.history[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func copyHolder(h baton.Holder) baton.Holder {
	if h.LastProcessedMatchID != nil {
		matchID := *h.LastProcessedMatchID
		h.LastProcessedMatchID = &matchID
	}
	return h
}

func sameMatchID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
