package fine

import (
	"context"
	"time"
)

// Repository persists fines.
type Repository interface {
	Create(ctx context.Context, f Fine) error
	GetByID(ctx context.Context, id string) (Fine, bool, error)
	// List returns matching fines ordered by date then creation time, newest first.
	List(ctx context.Context, filter Filter) ([]Fine, error)
	// SetPaid marks the fine paid on paidDate, or unpaid when paidDate is nil.
	SetPaid(ctx context.Context, id string, paidDate *time.Time) (Fine, bool, error)
	MarkAllPaid(ctx context.Context, paidDate time.Time) (int, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) (int, error)
}
