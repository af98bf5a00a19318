package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/booze-baton/internal/domain/player"
	"github.com/riskibarqy/booze-baton/internal/platform/logging"
)

type PlayerService struct {
	playerRepo player.Repository
	authorizer AdminAuthorizer
	logger     *logging.Logger
	now        func() time.Time
}

func NewPlayerService(playerRepo player.Repository, authorizer AdminAuthorizer, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerService{
		playerRepo: playerRepo,
		authorizer: authorizer,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *PlayerService) ListPlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func (s *PlayerService) AddPlayer(ctx context.Context, name string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.AddPlayer")
	defer span.End()

	item := player.Player{
		Name:      player.NormalizeName(name),
		CreatedAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err := s.playerRepo.Create(ctx, item)
	switch {
	case errors.Is(err, player.ErrAlreadyExists):
		return player.Player{}, fmt.Errorf("%w: player %q already exists", ErrConflict, item.Name)
	case err != nil:
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}
	return item, nil
}

func (s *PlayerService) UpdateGames(ctx context.Context, name string, field player.GamesField, value int) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpdateGames")
	defer span.End()

	name = player.NormalizeName(name)
	if name == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if _, ok := player.AllGamesFields[field]; !ok {
		return player.Player{}, fmt.Errorf("%w: %w: %s", ErrInvalidInput, player.ErrUnknownGameField, field)
	}
	if field != player.GamesAdjustment && value < 0 {
		return player.Player{}, fmt.Errorf("%w: %s must be >= 0", ErrInvalidInput, field)
	}

	updated, found, err := s.playerRepo.UpdateGames(ctx, name, field, value)
	if err != nil {
		return player.Player{}, fmt.Errorf("update player games: %w", err)
	}
	if !found {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, name)
	}
	return updated, nil
}

// DeletePlayer removes the player together with their fines and reports how many fines went with them.
func (s *PlayerService) DeletePlayer(ctx context.Context, pin, name string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.DeletePlayer")
	defer span.End()

	if err := s.authorizer.Authorize(ctx, pin); err != nil {
		return 0, err
	}
	name = player.NormalizeName(name)
	if name == "" {
		return 0, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	deleted, finesRemoved, err := s.playerRepo.DeleteWithFines(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("delete player: %w", err)
	}
	if !deleted {
		return 0, fmt.Errorf("%w: player=%s", ErrNotFound, name)
	}

	s.logger.InfoContext(ctx, "player deleted", "player", name, "fines_removed", finesRemoved)
	return finesRemoved, nil
}
