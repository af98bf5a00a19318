package baton

import (
	"context"
	"errors"
)

var (
	// ErrStaleHolder reports that the holder changed between read and commit.
	ErrStaleHolder = errors.New("baton holder changed concurrently")
	// ErrMatchRecorded reports that history already holds a row for the match and previous holder.
	ErrMatchRecorded = errors.New("baton match already recorded")
)

// Repository persists the holder singleton and the transfer history.
type Repository interface {
	GetHolder(ctx context.Context) (Holder, bool, error)
	// ReplaceHolder overwrites the singleton outside of match resolution.
	ReplaceHolder(ctx context.Context, holder Holder) error
	// CommitTransfer writes next and appends entry in one transaction, provided the stored
	// holder still matches expected on team and last processed match. Otherwise it returns
	// ErrStaleHolder, or ErrMatchRecorded for a duplicate history row, and writes nothing.
	CommitTransfer(ctx context.Context, expected Holder, next Holder, entry HistoryEntry) error
	ListHistory(ctx context.Context, limit int) ([]HistoryEntry, error)
	DeleteHistoryEntry(ctx context.Context, id string) (bool, error)
}
