package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/booze-baton/internal/domain/baton"
	"github.com/riskibarqy/booze-baton/internal/domain/fine"
	"github.com/riskibarqy/booze-baton/internal/domain/player"
	"github.com/shopspring/decimal"
)

func int64Ptr(v int64) *int64 { return &v }

func mustHolder(t *testing.T, repo *BatonRepository) baton.Holder {
	t.Helper()
	holder, ok, err := repo.GetHolder(context.Background())
	if err != nil {
		t.Fatalf("get holder: %v", err)
	}
	if !ok {
		t.Fatalf("expected a holder")
	}
	return holder
}

func TestBatonRepository_CommitTransferChecksExpectedMatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	wolves := baton.Holder{TeamID: 39, TeamName: "Wolves", LastProcessedMatchID: int64Ptr(100)}
	repo := NewBatonRepository(&wolves)

	next := baton.Holder{TeamID: 46, TeamName: "Foxes", LastProcessedMatchID: int64Ptr(101)}
	entry := baton.HistoryEntry{ID: "h1", MatchID: 101, PreviousHolderTeamID: 39, UpdatedAt: time.Now()}

	unprocessed := baton.Holder{TeamID: 39, TeamName: "Wolves"}
	if err := repo.CommitTransfer(ctx, unprocessed, next, entry); !errors.Is(err, baton.ErrStaleHolder) {
		t.Fatalf("expected ErrStaleHolder for a mismatched match id, got %v", err)
	}

	if err := repo.CommitTransfer(ctx, wolves, next, entry); err != nil {
		t.Fatalf("commit transfer: %v", err)
	}
	if holder := mustHolder(t, repo); holder.TeamID != 46 {
		t.Fatalf("expected Foxes to hold the baton, got team %d", holder.TeamID)
	}

	// replaying the same decision no longer matches the stored holder
	if err := repo.CommitTransfer(ctx, wolves, next, entry); !errors.Is(err, baton.ErrStaleHolder) {
		t.Fatalf("expected ErrStaleHolder on replay, got %v", err)
	}

	history, err := repo.ListHistory(ctx, 10)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
}

func TestBatonRepository_CommitTransferChecksExpectedTeam(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewBatonRepository(&baton.Holder{TeamID: 42, TeamName: "Wolves"})
	expected := mustHolder(t, repo)

	// an admin override lands between the read and the commit
	if err := repo.ReplaceHolder(ctx, baton.Holder{TeamID: 9, TeamName: "Owls"}); err != nil {
		t.Fatalf("replace holder: %v", err)
	}

	next := baton.Holder{TeamID: 46, TeamName: "Foxes", LastProcessedMatchID: int64Ptr(999)}
	entry := baton.HistoryEntry{ID: "h1", MatchID: 999, PreviousHolderTeamID: 42, UpdatedAt: time.Now()}
	if err := repo.CommitTransfer(ctx, expected, next, entry); !errors.Is(err, baton.ErrStaleHolder) {
		t.Fatalf("expected ErrStaleHolder after the holder team changed, got %v", err)
	}

	holder := mustHolder(t, repo)
	if holder.TeamID != 9 || holder.TeamName != "Owls" {
		t.Fatalf("expected the override to survive, got %+v", holder)
	}
	history, err := repo.ListHistory(ctx, 10)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected no history after a stale commit, got %d", len(history))
	}
}

func TestBatonRepository_CommitTransferRejectsRecordedMatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewBatonRepository(&baton.Holder{TeamID: 1, TeamName: "A"})
	first := baton.HistoryEntry{ID: "h1", MatchID: 7, PreviousHolderTeamID: 1, UpdatedAt: time.Now()}
	if err := repo.CommitTransfer(ctx, baton.Holder{TeamID: 1, TeamName: "A"}, baton.Holder{TeamID: 1, TeamName: "A", LastProcessedMatchID: int64Ptr(7)}, first); err != nil {
		t.Fatalf("commit transfer: %v", err)
	}

	// the holder was reset by an override, so the same match is seen as new
	if err := repo.ReplaceHolder(ctx, baton.Holder{TeamID: 1, TeamName: "A"}); err != nil {
		t.Fatalf("replace holder: %v", err)
	}
	again := baton.HistoryEntry{ID: "h2", MatchID: 7, PreviousHolderTeamID: 1, UpdatedAt: time.Now()}
	err := repo.CommitTransfer(ctx, baton.Holder{TeamID: 1, TeamName: "A"}, baton.Holder{TeamID: 1, TeamName: "A", LastProcessedMatchID: int64Ptr(7)}, again)
	if !errors.Is(err, baton.ErrMatchRecorded) {
		t.Fatalf("expected ErrMatchRecorded, got %v", err)
	}
	if holder := mustHolder(t, repo); holder.LastProcessedMatchID != nil {
		t.Fatalf("expected holder to stay untouched, got match %d", *holder.LastProcessedMatchID)
	}
}

func TestBatonRepository_HistoryNewestFirstAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewBatonRepository(&baton.Holder{TeamID: 1, TeamName: "A"})
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	var last *int64
	for i := int64(1); i <= 3; i++ {
		expected := baton.Holder{TeamID: 1, TeamName: "A", LastProcessedMatchID: last}
		next := baton.Holder{TeamID: 1, TeamName: "A", LastProcessedMatchID: int64Ptr(i)}
		entry := baton.HistoryEntry{ID: string(rune('a' + i)), MatchID: i, PreviousHolderTeamID: 1, UpdatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := repo.CommitTransfer(ctx, expected, next, entry); err != nil {
			t.Fatalf("commit match %d: %v", i, err)
		}
		last = int64Ptr(i)
	}

	history, err := repo.ListHistory(ctx, 2)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	if history[0].MatchID != 3 || history[1].MatchID != 2 {
		t.Fatalf("expected newest first, got %d then %d", history[0].MatchID, history[1].MatchID)
	}

	deleted, err := repo.DeleteHistoryEntry(ctx, history[0].ID)
	if err != nil || !deleted {
		t.Fatalf("delete entry: deleted=%t err=%v", deleted, err)
	}

	deleted, err = repo.DeleteHistoryEntry(ctx, "missing")
	if err != nil {
		t.Fatalf("delete missing entry: %v", err)
	}
	if deleted {
		t.Fatalf("expected missing entry to report not deleted")
	}
}

func TestFineRepository_ListFiltersAndOrders(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }
	repo := NewFineRepository([]fine.Fine{
		{ID: "1", PlayerName: "Dave", Reason: "Late to kick-off", Amount: decimal.NewFromInt(2), Date: day(1)},
		{ID: "2", PlayerName: "Dave", Reason: "Own goal", Amount: decimal.NewFromInt(1), Date: day(3)},
		{ID: "3", PlayerName: "Sam", Reason: "late again", Amount: decimal.NewFromInt(2), Date: day(2)},
	})

	all, err := repo.List(ctx, fine.Filter{})
	if err != nil {
		t.Fatalf("list fines: %v", err)
	}
	if len(all) != 3 || all[0].ID != "2" || all[1].ID != "3" || all[2].ID != "1" {
		t.Fatalf("expected fines ordered by date desc, got %+v", all)
	}

	late, err := repo.List(ctx, fine.Filter{ReasonContains: "LATE"})
	if err != nil {
		t.Fatalf("list late fines: %v", err)
	}
	if len(late) != 2 {
		t.Fatalf("expected 2 late fines, got %d", len(late))
	}

	paid, err := repo.MarkAllPaid(ctx, day(5))
	if err != nil {
		t.Fatalf("mark all paid: %v", err)
	}
	if paid != 3 {
		t.Fatalf("expected 3 fines marked paid, got %d", paid)
	}

	unpaid, _, err := repo.SetPaid(ctx, "3", nil)
	if err != nil {
		t.Fatalf("set unpaid: %v", err)
	}
	if unpaid.Paid || unpaid.PaidDate != nil {
		t.Fatalf("expected fine 3 to be unpaid without a paid date, got %+v", unpaid)
	}

	onlyUnpaid := false
	items, err := repo.List(ctx, fine.Filter{Paid: &onlyUnpaid})
	if err != nil {
		t.Fatalf("list unpaid fines: %v", err)
	}
	if len(items) != 1 || items[0].ID != "3" {
		t.Fatalf("expected only fine 3 unpaid, got %+v", items)
	}
}

func TestPlayerRepository_DeleteWithFinesRemovesTheirFines(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fines := NewFineRepository([]fine.Fine{
		{ID: "1", PlayerName: "Dave", Reason: "x", Date: time.Now()},
		{ID: "2", PlayerName: "Dave", Reason: "y", Date: time.Now()},
		{ID: "3", PlayerName: "Sam", Reason: "z", Date: time.Now()},
	})
	players := NewPlayerRepository([]player.Player{{Name: "Dave"}, {Name: "Sam"}}, fines)

	if err := players.Create(ctx, player.Player{Name: "Dave"}); !errors.Is(err, player.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	deleted, removed, err := players.DeleteWithFines(ctx, "Dave")
	if err != nil || !deleted {
		t.Fatalf("delete player: deleted=%t err=%v", deleted, err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 fines removed, got %d", removed)
	}

	remaining, err := fines.List(ctx, fine.Filter{})
	if err != nil {
		t.Fatalf("list fines: %v", err)
	}
	if len(remaining) != 1 || remaining[0].PlayerName != "Sam" {
		t.Fatalf("expected only Sam's fine to remain, got %+v", remaining)
	}

	list, err := players.List(ctx)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Sam" {
		t.Fatalf("expected only Sam to remain, got %+v", list)
	}
}
