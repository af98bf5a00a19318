package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/booze-baton/internal/domain/finereason"
	qb "github.com/riskibarqy/booze-baton/internal/platform/querybuilder"
	"github.com/shopspring/decimal"
)

var fineReasonColumns = []string{"id", "reason", "amount", "position"}

type FineReasonRepository struct {
	db *sqlx.DB
}

func NewFineReasonRepository(db *sqlx.DB) *FineReasonRepository {
	return &FineReasonRepository{db: db}
}

func (r *FineReasonRepository) List(ctx context.Context) ([]finereason.Reason, error) {
	query, args, err := qb.Select(fineReasonColumns...).From("fine_reasons").
		OrderBy("position ASC", "reason ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fine reasons query: %w", err)
	}

	var rows []fineReasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fine reasons: %w", err)
	}

	out := make([]finereason.Reason, 0, len(rows))
	for _, row := range rows {
		out = append(out, reasonFromRow(row))
	}
	return out, nil
}

func (r *FineReasonRepository) Create(ctx context.Context, item finereason.Reason) error {
	query, args, err := qb.InsertModel("fine_reasons", fineReasonTableModel{
		ID:       item.ID,
		Reason:   item.Text,
		Amount:   item.Amount,
		Position: item.Position,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert fine reason query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: %s", finereason.ErrAlreadyExists, item.Text)
		}
		return fmt.Errorf("insert fine reason: %w", err)
	}
	return nil
}

func (r *FineReasonRepository) UpdateAmount(ctx context.Context, id string, amount decimal.Decimal) (finereason.Reason, bool, error) {
	query, args, err := qb.Update("fine_reasons").
		Set("amount", amount).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return finereason.Reason{}, false, fmt.Errorf("build update fine reason query: %w", err)
	}
	query += " RETURNING " + strings.Join(fineReasonColumns, ", ")

	var row fineReasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return finereason.Reason{}, false, nil
		}
		return finereason.Reason{}, false, fmt.Errorf("update fine reason amount: %w", err)
	}
	return reasonFromRow(row), true, nil
}

func (r *FineReasonRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.DeleteFrom("fine_reasons").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete fine reason query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete fine reason: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected delete fine reason: %w", err)
	}
	return affected > 0, nil
}

func (r *FineReasonRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("fine_reasons").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count fine reasons query: %w", err)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count fine reasons: %w", err)
	}
	return count, nil
}

func reasonFromRow(row fineReasonTableModel) finereason.Reason {
	return finereason.Reason{
		ID:       row.ID,
		Text:     row.Reason,
		Amount:   row.Amount,
		Position: row.Position,
	}
}
