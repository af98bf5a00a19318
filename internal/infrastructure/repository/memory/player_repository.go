package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/booze-baton/internal/domain/player"
)

type PlayerRepository struct {
	mu     sync.RWMutex
	items  map[string]player.Player
	orders []string
	fines  *FineRepository
}

// NewPlayerRepository keeps players in insertion order. fines, when set, loses a player's
// fines together with the player.
func NewPlayerRepository(players []player.Player, fines *FineRepository) *PlayerRepository {
	items := make(map[string]player.Player, len(players))
	orders := make([]string, 0, len(players))
	for _, p := range players {
		if _, ok := items[p.Name]; ok {
			continue
		}
		items[p.Name] = p
		orders = append(orders, p.Name)
	}

	return &PlayerRepository{
		items:  items,
		orders: orders,
		fines:  fines,
	}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.orders))
	for _, name := range r.orders {
		out = append(out, r.items[name])
	}
	return out, nil
}

func (r *PlayerRepository) GetByName(_ context.Context, name string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[name]
	return p, ok, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[p.Name]; ok {
		return player.ErrAlreadyExists
	}
	r.items[p.Name] = p
	r.orders = append(r.orders, p.Name)
	return nil
}

func (r *PlayerRepository) UpdateGames(_ context.Context, name string, field player.GamesField, value int) (player.Player, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[name]
	if !ok {
		return player.Player{}, false, nil
	}
	if err := p.SetGames(field, value); err != nil {
		return player.Player{}, false, err
	}
	r.items[name] = p
	return p, true, nil
}

func (r *PlayerRepository) DeleteWithFines(_ context.Context, name string) (bool, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[name]; !ok {
		return false, 0, nil
	}
	delete(r.items, name)
	for i, existing := range r.orders {
		if existing == name {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}

	removed := 0
	if r.fines != nil {
		removed = r.fines.deleteByPlayer(name)
	}
	return true, removed, nil
}
