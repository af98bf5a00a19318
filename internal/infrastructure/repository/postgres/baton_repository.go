package postgres

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/booze-baton/internal/domain/baton"
	qb "github.com/riskibarqy/booze-baton/internal/platform/querybuilder"
)

const historyMatchHolderConstraint = "uq_baton_history_match_holder"

var batonHolderColumns = []string{
	"id",
	"team_id",
	"team_name",
	"country",
	"city",
	"logo",
	"last_processed_match_id",
	"updated_at",
	"updated_by",
}

var batonHistoryColumns = []string{
	"id",
	"previous_holder_team_id",
	"previous_holder_team_name",
	"new_holder_team_id",
	"new_holder_team_name",
	"match_id",
	"match_date",
	"competition_name",
	"competition_country",
	"home_team_id",
	"home_team_name",
	"home_team_logo",
	"away_team_id",
	"away_team_name",
	"away_team_logo",
	"home_score",
	"away_score",
	"outcome",
	"baton_moved",
	"reason",
	"updated_at",
	"updated_by",
}

const upsertHolderSuffix = `ON CONFLICT (id) DO UPDATE SET
	team_id = EXCLUDED.team_id,
	team_name = EXCLUDED.team_name,
	country = EXCLUDED.country,
	city = EXCLUDED.city,
	logo = EXCLUDED.logo,
	last_processed_match_id = EXCLUDED.last_processed_match_id,
	updated_at = EXCLUDED.updated_at,
	updated_by = EXCLUDED.updated_by`

type BatonRepository struct {
	db *sqlx.DB
}

func NewBatonRepository(db *sqlx.DB) *BatonRepository {
	return &BatonRepository{db: db}
}

func (r *BatonRepository) GetHolder(ctx context.Context) (baton.Holder, bool, error) {
	query, args, err := qb.Select(batonHolderColumns...).From("baton_holder").
		Where(qb.Eq("id", batonHolderSingletonID)).
		ToSQL()
	if err != nil {
		return baton.Holder{}, false, fmt.Errorf("build select baton holder query: %w", err)
	}

	var row batonHolderTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return baton.Holder{}, false, nil
		}
		return baton.Holder{}, false, fmt.Errorf("select baton holder: %w", err)
	}
	return holderFromRow(row), true, nil
}

func (r *BatonRepository) ReplaceHolder(ctx context.Context, holder baton.Holder) error {
	query, args, err := qb.InsertModel("baton_holder", holderToRow(holder), upsertHolderSuffix)
	if err != nil {
		return fmt.Errorf("build upsert baton holder query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert baton holder: %w", err)
	}
	return nil
}

// CommitTransfer locks the holder row, checks it still matches expected on team and last processed
// match, and writes the new holder together with its history row.
func (r *BatonRepository) CommitTransfer(ctx context.Context, expected baton.Holder, next baton.Holder, entry baton.HistoryEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx commit baton transfer: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lockQuery, lockArgs, err := qb.Select("team_id", "last_processed_match_id").From("baton_holder").
		Where(qb.Eq("id", batonHolderSingletonID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock baton holder query: %w", err)
	}

	var current batonHolderLockRow
	if err := tx.GetContext(ctx, &current, lockQuery, lockArgs...); err != nil {
		if isNotFound(err) {
			return crerr.Wrap(baton.ErrStaleHolder, "baton holder disappeared")
		}
		return fmt.Errorf("lock baton holder: %w", err)
	}
	if current.TeamID != expected.TeamID {
		return crerr.Wrapf(baton.ErrStaleHolder, "holder team changed from %d to %d", expected.TeamID, current.TeamID)
	}
	if !sameMatchID(nullInt64Ptr(current.LastProcessedMatchID), expected.LastProcessedMatchID) {
		return crerr.Wrapf(baton.ErrStaleHolder, "holder last processed match changed")
	}

	row := holderToRow(next)
	updateQuery, updateArgs, err := qb.Update("baton_holder").
		Set("team_id", row.TeamID).
		Set("team_name", row.TeamName).
		Set("country", row.Country).
		Set("city", row.City).
		Set("logo", row.Logo).
		Set("last_processed_match_id", row.LastProcessedMatchID).
		Set("updated_at", row.UpdatedAt).
		Set("updated_by", row.UpdatedBy).
		Where(qb.Eq("id", batonHolderSingletonID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update baton holder query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
		return fmt.Errorf("update baton holder: %w", err)
	}

	historyQuery, historyArgs, err := qb.InsertModel("baton_history", historyToRow(entry), "")
	if err != nil {
		return fmt.Errorf("build insert baton history query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, historyQuery, historyArgs...); err != nil {
		if isUniqueViolation(err, historyMatchHolderConstraint) {
			return crerr.Wrapf(baton.ErrMatchRecorded, "match %d already recorded", entry.MatchID)
		}
		return fmt.Errorf("insert baton history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit baton transfer tx: %w", err)
	}
	return nil
}

func (r *BatonRepository) ListHistory(ctx context.Context, limit int) ([]baton.HistoryEntry, error) {
	query, args, err := qb.Select(batonHistoryColumns...).From("baton_history").
		OrderBy("updated_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select baton history query: %w", err)
	}

	var rows []batonHistoryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select baton history: %w", err)
	}

	out := make([]baton.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, historyFromRow(row))
	}
	return out, nil
}

func (r *BatonRepository) DeleteHistoryEntry(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.DeleteFrom("baton_history").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete baton history query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete baton history: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected delete baton history: %w", err)
	}
	return affected > 0, nil
}

func holderToRow(h baton.Holder) batonHolderTableModel {
	return batonHolderTableModel{
		ID:                   batonHolderSingletonID,
		TeamID:               h.TeamID,
		TeamName:             h.TeamName,
		Country:              h.Country,
		City:                 h.City,
		Logo:                 h.Logo,
		LastProcessedMatchID: int64PtrToNull(h.LastProcessedMatchID),
		UpdatedAt:            h.UpdatedAt,
		UpdatedBy:            h.UpdatedBy,
	}
}

func holderFromRow(row batonHolderTableModel) baton.Holder {
	return baton.Holder{
		TeamID:               row.TeamID,
		TeamName:             row.TeamName,
		Country:              row.Country,
		City:                 row.City,
		Logo:                 row.Logo,
		LastProcessedMatchID: nullInt64Ptr(row.LastProcessedMatchID),
		UpdatedAt:            row.UpdatedAt,
		UpdatedBy:            row.UpdatedBy,
	}
}

func historyToRow(e baton.HistoryEntry) batonHistoryTableModel {
	return batonHistoryTableModel{
		ID:                     e.ID,
		PreviousHolderTeamID:   e.PreviousHolderTeamID,
		PreviousHolderTeamName: e.PreviousHolderTeamName,
		NewHolderTeamID:        e.NewHolderTeamID,
		NewHolderTeamName:      e.NewHolderTeamName,
		MatchID:                e.MatchID,
		MatchDate:              e.MatchDate,
		CompetitionName:        e.CompetitionName,
		CompetitionCountry:     e.CompetitionCountry,
		HomeTeamID:             e.Home.ID,
		HomeTeamName:           e.Home.Name,
		HomeTeamLogo:           e.Home.Logo,
		AwayTeamID:             e.Away.ID,
		AwayTeamName:           e.Away.Name,
		AwayTeamLogo:           e.Away.Logo,
		HomeScore:              e.HomeScore,
		AwayScore:              e.AwayScore,
		Outcome:                string(e.Outcome),
		BatonMoved:             e.BatonMoved,
		Reason:                 e.Reason,
		UpdatedAt:              e.UpdatedAt,
		UpdatedBy:              e.UpdatedBy,
	}
}

func historyFromRow(row batonHistoryTableModel) baton.HistoryEntry {
	return baton.HistoryEntry{
		ID:                     row.ID,
		PreviousHolderTeamID:   row.PreviousHolderTeamID,
		PreviousHolderTeamName: row.PreviousHolderTeamName,
		NewHolderTeamID:        row.NewHolderTeamID,
		NewHolderTeamName:      row.NewHolderTeamName,
		MatchID:                row.MatchID,
		MatchDate:              row.MatchDate,
		CompetitionName:        row.CompetitionName,
		CompetitionCountry:     row.CompetitionCountry,
		Home:                   baton.TeamRef{ID: row.HomeTeamID, Name: row.HomeTeamName, Logo: row.HomeTeamLogo},
		Away:                   baton.TeamRef{ID: row.AwayTeamID, Name: row.AwayTeamName, Logo: row.AwayTeamLogo},
		HomeScore:              row.HomeScore,
		AwayScore:              row.AwayScore,
		Outcome:                baton.Outcome(row.Outcome),
		BatonMoved:             row.BatonMoved,
		Reason:                 row.Reason,
		UpdatedAt:              row.UpdatedAt,
		UpdatedBy:              row.UpdatedBy,
	}
}

func sameMatchID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
