package postgres

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type fineTableModel struct {
	ID         string          `db:"id"`
	PlayerName string          `db:"player_name"`
	Reason     string          `db:"reason"`
	Amount     decimal.Decimal `db:"amount"`
	FineDate   time.Time       `db:"fine_date"`
	Paid       bool            `db:"paid"`
	PaidDate   sql.NullTime    `db:"paid_date"`
	CreatedAt  time.Time       `db:"created_at"`
}

type playerTableModel struct {
	Name       string    `db:"name"`
	EAFC25     int       `db:"eafc25_games"`
	Season2425 int       `db:"season2425_games"`
	EAFC26     int       `db:"eafc26_games"`
	Adjustment int       `db:"adjustment_games"`
	CreatedAt  time.Time `db:"created_at"`
}

type fineReasonTableModel struct {
	ID       string          `db:"id"`
	Reason   string          `db:"reason"`
	Amount   decimal.Decimal `db:"amount"`
	Position int             `db:"position"`
}

func nullTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	out := v.Time.UTC()
	return &out
}

func timePtrToNull(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}
