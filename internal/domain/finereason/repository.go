package finereason

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository persists the fine catalog.
type Repository interface {
	// List returns reasons in display order.
	List(ctx context.Context) ([]Reason, error)
	Create(ctx context.Context, r Reason) error
	UpdateAmount(ctx context.Context, id string, amount decimal.Decimal) (Reason, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}
