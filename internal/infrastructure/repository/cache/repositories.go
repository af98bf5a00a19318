package cache

import (
	"context"

	"github.com/riskibarqy/booze-baton/internal/domain/finereason"
	"github.com/riskibarqy/booze-baton/internal/domain/player"
	basecache "github.com/riskibarqy/booze-baton/internal/platform/cache"
	"github.com/shopspring/decimal"
)

const (
	reasonKeyPrefix = "reason:"
	reasonListKey   = reasonKeyPrefix + "list"
	reasonCountKey  = reasonKeyPrefix + "count"
	playerKeyPrefix = "player:"
	playerListKey   = playerKeyPrefix + "list"
)

// FineReasonRepository serves the fine catalog from memory and drops the cache on every write.
type FineReasonRepository struct {
	next   finereason.Repository
	list   *basecache.Store[[]finereason.Reason]
	counts *basecache.Store[int]
}

func NewFineReasonRepository(next finereason.Repository, list *basecache.Store[[]finereason.Reason], counts *basecache.Store[int]) *FineReasonRepository {
	return &FineReasonRepository{next: next, list: list, counts: counts}
}

func (r *FineReasonRepository) List(ctx context.Context) ([]finereason.Reason, error) {
	items, err := r.list.GetOrLoad(ctx, reasonListKey, func(ctx context.Context) ([]finereason.Reason, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]finereason.Reason(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]finereason.Reason(nil), items...), nil
}

func (r *FineReasonRepository) Count(ctx context.Context) (int, error) {
	return r.counts.GetOrLoad(ctx, reasonCountKey, r.next.Count)
}

func (r *FineReasonRepository) Create(ctx context.Context, reason finereason.Reason) error {
	defer r.invalidate(ctx)
	return r.next.Create(ctx, reason)
}

func (r *FineReasonRepository) UpdateAmount(ctx context.Context, id string, amount decimal.Decimal) (finereason.Reason, bool, error) {
	defer r.invalidate(ctx)
	return r.next.UpdateAmount(ctx, id, amount)
}

func (r *FineReasonRepository) Delete(ctx context.Context, id string) (bool, error) {
	defer r.invalidate(ctx)
	return r.next.Delete(ctx, id)
}

func (r *FineReasonRepository) invalidate(ctx context.Context) {
	r.list.DeletePrefix(ctx, reasonKeyPrefix)
	r.counts.DeletePrefix(ctx, reasonKeyPrefix)
}

// PlayerRepository caches the roster listing. Single-player reads go to the backing store.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store[[]player.Player]
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store[[]player.Player]) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	items, err := r.cache.GetOrLoad(ctx, playerListKey, func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (player.Player, bool, error) {
	return r.next.GetByName(ctx, name)
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	defer r.cache.DeletePrefix(ctx, playerKeyPrefix)
	return r.next.Create(ctx, p)
}

func (r *PlayerRepository) UpdateGames(ctx context.Context, name string, field player.GamesField, value int) (player.Player, bool, error) {
	defer r.cache.DeletePrefix(ctx, playerKeyPrefix)
	return r.next.UpdateGames(ctx, name, field, value)
}

func (r *PlayerRepository) DeleteWithFines(ctx context.Context, name string) (bool, int, error) {
	defer r.cache.DeletePrefix(ctx, playerKeyPrefix)
	return r.next.DeleteWithFines(ctx, name)
}
