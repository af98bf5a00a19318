package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/booze-baton/internal/domain/fine"
	qb "github.com/riskibarqy/booze-baton/internal/platform/querybuilder"
)

var fineColumns = []string{
	"id",
	"player_name",
	"reason",
	"amount",
	"fine_date",
	"paid",
	"paid_date",
	"created_at",
}

type FineRepository struct {
	db *sqlx.DB
}

func NewFineRepository(db *sqlx.DB) *FineRepository {
	return &FineRepository{db: db}
}

func (r *FineRepository) Create(ctx context.Context, f fine.Fine) error {
	query, args, err := qb.InsertModel("fines", fineToRow(f), "")
	if err != nil {
		return fmt.Errorf("build insert fine query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert fine: %w", err)
	}
	return nil
}

func (r *FineRepository) GetByID(ctx context.Context, id string) (fine.Fine, bool, error) {
	query, args, err := qb.Select(fineColumns...).From("fines").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fine.Fine{}, false, fmt.Errorf("build select fine by id query: %w", err)
	}

	var row fineTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fine.Fine{}, false, nil
		}
		return fine.Fine{}, false, fmt.Errorf("select fine by id: %w", err)
	}
	return fineFromRow(row), true, nil
}

func (r *FineRepository) List(ctx context.Context, filter fine.Filter) ([]fine.Fine, error) {
	conditions := make([]qb.Condition, 0, 5)
	if filter.PlayerName != "" {
		conditions = append(conditions, qb.Eq("player_name", filter.PlayerName))
	}
	if filter.ReasonContains != "" {
		conditions = append(conditions, qb.Contains("reason", filter.ReasonContains))
	}
	if filter.Paid != nil {
		conditions = append(conditions, qb.Eq("paid", *filter.Paid))
	}
	if filter.From != nil {
		conditions = append(conditions, qb.Gte("fine_date", *filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, qb.Lte("fine_date", *filter.To))
	}

	query, args, err := qb.Select(fineColumns...).From("fines").
		Where(conditions...).
		OrderBy("fine_date DESC", "created_at DESC", "id DESC").
		Limit(filter.Limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fines query: %w", err)
	}

	var rows []fineTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fines: %w", err)
	}

	out := make([]fine.Fine, 0, len(rows))
	for _, row := range rows {
		out = append(out, fineFromRow(row))
	}
	return out, nil
}

func (r *FineRepository) SetPaid(ctx context.Context, id string, paidDate *time.Time) (fine.Fine, bool, error) {
	var day *time.Time
	if paidDate != nil {
		d := fine.Day(*paidDate)
		day = &d
	}

	query, args, err := qb.Update("fines").
		Set("paid", day != nil).
		Set("paid_date", timePtrToNull(day)).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fine.Fine{}, false, fmt.Errorf("build update fine paid query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fine.Fine{}, false, fmt.Errorf("update fine paid: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fine.Fine{}, false, fmt.Errorf("rows affected update fine paid: %w", err)
	}
	if affected == 0 {
		return fine.Fine{}, false, nil
	}
	return r.GetByID(ctx, id)
}

func (r *FineRepository) MarkAllPaid(ctx context.Context, paidDate time.Time) (int, error) {
	query, args, err := qb.Update("fines").
		Set("paid", true).
		Set("paid_date", fine.Day(paidDate)).
		Where(qb.Eq("paid", false)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build mark all fines paid query: %w", err)
	}
	return r.execCount(ctx, "mark all fines paid", query, args)
}

func (r *FineRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.DeleteFrom("fines").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete fine query: %w", err)
	}
	affected, err := r.execCount(ctx, "delete fine", query, args)
	return affected > 0, err
}

func (r *FineRepository) DeleteAll(ctx context.Context) (int, error) {
	query, args, err := qb.DeleteFrom("fines").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete all fines query: %w", err)
	}
	return r.execCount(ctx, "delete all fines", query, args)
}

func (r *FineRepository) execCount(ctx context.Context, op, query string, args []any) (int, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected %s: %w", op, err)
	}
	return int(affected), nil
}

func fineToRow(f fine.Fine) fineTableModel {
	return fineTableModel{
		ID:         f.ID,
		PlayerName: f.PlayerName,
		Reason:     f.Reason,
		Amount:     f.Amount,
		FineDate:   fine.Day(f.Date),
		Paid:       f.Paid,
		PaidDate:   timePtrToNull(f.PaidDate),
		CreatedAt:  f.CreatedAt,
	}
}

func fineFromRow(row fineTableModel) fine.Fine {
	return fine.Fine{
		ID:         row.ID,
		PlayerName: row.PlayerName,
		Reason:     row.Reason,
		Amount:     row.Amount,
		Date:       fine.Day(row.FineDate),
		Paid:       row.Paid,
		PaidDate:   nullTimePtr(row.PaidDate),
		CreatedAt:  row.CreatedAt,
	}
}
