package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByName(ctx context.Context, name string) (Player, bool, error)
	// Create returns ErrAlreadyExists when the name is taken.
	Create(ctx context.Context, p Player) error
	UpdateGames(ctx context.Context, name string, field GamesField, value int) (Player, bool, error)
	// DeleteWithFines removes the player and every fine recorded against them atomically.
	DeleteWithFines(ctx context.Context, name string) (deleted bool, finesRemoved int, err error)
}
