package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/booze-baton/internal/domain/player"
	qb "github.com/riskibarqy/booze-baton/internal/platform/querybuilder"
)

var playerColumns = []string{
	"name",
	"eafc25_games",
	"season2425_games",
	"eafc26_games",
	"adjustment_games",
	"created_at",
}

var gamesColumns = map[player.GamesField]string{
	player.GamesEAFC25:     "eafc25_games",
	player.GamesSeason2425: "season2425_games",
	player.GamesEAFC26:     "eafc26_games",
	player.GamesAdjustment: "adjustment_games",
}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerColumns...).From("players").
		OrderBy("created_at ASC", "name ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerColumns...).From("players").
		Where(qb.Eq("name", name)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by name query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player by name: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	query, args, err := qb.InsertModel("players", playerToRow(p), "")
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: %s", player.ErrAlreadyExists, p.Name)
		}
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) UpdateGames(ctx context.Context, name string, field player.GamesField, value int) (player.Player, bool, error) {
	column, ok := gamesColumns[field]
	if !ok {
		return player.Player{}, false, fmt.Errorf("%w: %s", player.ErrUnknownGameField, field)
	}

	query, args, err := qb.Update("players").
		Set(column, value).
		Where(qb.Eq("name", name)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build update player games query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("update player games: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("rows affected update player games: %w", err)
	}
	if affected == 0 {
		return player.Player{}, false, nil
	}
	return r.GetByName(ctx, name)
}

func (r *PlayerRepository) DeleteWithFines(ctx context.Context, name string) (bool, int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("begin tx delete player: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	finesQuery, finesArgs, err := qb.DeleteFrom("fines").Where(qb.Eq("player_name", name)).ToSQL()
	if err != nil {
		return false, 0, fmt.Errorf("build delete player fines query: %w", err)
	}
	finesResult, err := tx.ExecContext(ctx, finesQuery, finesArgs...)
	if err != nil {
		return false, 0, fmt.Errorf("delete player fines: %w", err)
	}
	finesRemoved, err := finesResult.RowsAffected()
	if err != nil {
		return false, 0, fmt.Errorf("rows affected delete player fines: %w", err)
	}

	playerQuery, playerArgs, err := qb.DeleteFrom("players").Where(qb.Eq("name", name)).ToSQL()
	if err != nil {
		return false, 0, fmt.Errorf("build delete player query: %w", err)
	}
	playerResult, err := tx.ExecContext(ctx, playerQuery, playerArgs...)
	if err != nil {
		return false, 0, fmt.Errorf("delete player: %w", err)
	}
	deleted, err := playerResult.RowsAffected()
	if err != nil {
		return false, 0, fmt.Errorf("rows affected delete player: %w", err)
	}
	if deleted == 0 {
		return false, 0, nil
	}

	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("commit delete player tx: %w", err)
	}
	return true, int(finesRemoved), nil
}

func playerToRow(p player.Player) playerTableModel {
	return playerTableModel{
		Name:       p.Name,
		EAFC25:     p.EAFC25,
		Season2425: p.Season2425,
		EAFC26:     p.EAFC26,
		Adjustment: p.Adjustment,
		CreatedAt:  p.CreatedAt,
	}
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		Name:       row.Name,
		EAFC25:     row.EAFC25,
		Season2425: row.Season2425,
		EAFC26:     row.EAFC26,
		Adjustment: row.Adjustment,
		CreatedAt:  row.CreatedAt,
	}
}
