package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/booze-baton/internal/domain/fine"
	"github.com/riskibarqy/booze-baton/internal/infrastructure/repository/memory"
	finemock "github.com/riskibarqy/booze-baton/internal/mocks/domain/fine"
	"github.com/riskibarqy/booze-baton/internal/platform/id"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var testToday = time.Date(2026, 2, 8, 18, 30, 0, 0, time.UTC)

func newTestFineService(repo fine.Repository) *FineService {
	svc := NewFineService(repo, NewStaticPINAuthorizer(testPIN), &id.SequenceGenerator{Prefix: "fine-"}, nil)
	svc.now = func() time.Time { return testToday }
	return svc
}

func mustAddFine(t *testing.T, svc *FineService, input AddFineInput) fine.Fine {
	t.Helper()
	item, err := svc.AddFine(context.Background(), input)
	if err != nil {
		t.Fatalf("add fine %+v: %v", input, err)
	}
	return item
}

func TestFineService_AddFine(t *testing.T) {
	t.Parallel()

	svc := newTestFineService(memory.NewFineRepository(nil))

	item := mustAddFine(t, svc, AddFineInput{PlayerName: "  Big   Dave ", Reason: "Own goal", Amount: "£1.50", Date: "07/02/2026"})
	if item.ID != "fine-1" || item.PlayerName != "Big Dave" || item.Paid {
		t.Fatalf("unexpected fine %+v", item)
	}
	if !item.Amount.Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("expected amount 1.5, got %s", item.Amount)
	}
	if !item.Date.Equal(time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %s", item.Date)
	}

	paid := mustAddFine(t, svc, AddFineInput{PlayerName: "Sam", Reason: "Late", Amount: "2", Date: "2026-02-01", PaidDate: "2026-02-03"})
	if !paid.Paid || paid.PaidDate == nil {
		t.Fatalf("expected a paid fine with a paid date, got %+v", paid)
	}
	if got := paid.PaidDate.Format(fine.DateLayout); got != "2026-02-03" {
		t.Fatalf("expected paid date 2026-02-03, got %s", got)
	}
}

func TestFineService_AddFine_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestFineService(finemock.NewRepository(t))
	cases := map[string]AddFineInput{
		"missing player": {Reason: "Late", Amount: "1", Date: "2026-02-01"},
		"missing reason": {PlayerName: "Sam", Amount: "1", Date: "2026-02-01"},
		"bad amount":     {PlayerName: "Sam", Reason: "Late", Amount: "lots", Date: "2026-02-01"},
		"negative":       {PlayerName: "Sam", Reason: "Late", Amount: "-1", Date: "2026-02-01"},
		"bad date":       {PlayerName: "Sam", Reason: "Late", Amount: "1", Date: "yesterday"},
		"bad paid date":  {PlayerName: "Sam", Reason: "Late", Amount: "1", Date: "2026-02-01", PaidDate: "31/31/2026"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.AddFine(context.Background(), input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestFineService_PaidLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestFineService(memory.NewFineRepository(nil))
	first := mustAddFine(t, svc, AddFineInput{PlayerName: "Sam", Reason: "Late", Amount: "2", Date: "2026-02-01"})
	mustAddFine(t, svc, AddFineInput{PlayerName: "Dave", Reason: "Own goal", Amount: "1", Date: "2026-02-02"})

	marked, err := svc.MarkPaid(ctx, first.ID, "")
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if marked.PaidDate == nil || marked.PaidDate.Format(fine.DateLayout) != "2026-02-08" {
		t.Fatalf("expected paid date to default to today, got %v", marked.PaidDate)
	}

	unmarked, err := svc.MarkUnpaid(ctx, first.ID)
	if err != nil {
		t.Fatalf("mark unpaid: %v", err)
	}
	if unmarked.Paid {
		t.Fatalf("expected fine to be unpaid")
	}

	count, err := svc.MarkAllPaid(ctx, "05/02/2026")
	if err != nil {
		t.Fatalf("mark all paid: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 fines marked paid, got %d", count)
	}

	unpaid := false
	remaining, err := svc.ListFines(ctx, ListFinesInput{Paid: &unpaid})
	if err != nil {
		t.Fatalf("list fines: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected no unpaid fines, got %d", len(remaining))
	}

	if _, err := svc.MarkPaid(ctx, "missing", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFineService_ListFines_DateRange(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestFineService(memory.NewFineRepository(nil))
	for _, date := range []string{"2026-01-01", "2026-01-15", "2026-02-01"} {
		mustAddFine(t, svc, AddFineInput{PlayerName: "Sam", Reason: "Late", Amount: "1", Date: date})
	}

	items, err := svc.ListFines(ctx, ListFinesInput{From: "2026-01-10", To: "31/01/2026"})
	if err != nil {
		t.Fatalf("list fines: %v", err)
	}
	if len(items) != 1 || items[0].Date.Format(fine.DateLayout) != "2026-01-15" {
		t.Fatalf("expected only the 2026-01-15 fine, got %+v", items)
	}

	if _, err := svc.ListFines(ctx, ListFinesInput{From: "2026-02-01", To: "2026-01-01"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for an inverted range, got %v", err)
	}
}

func TestFineService_DeleteAndClearAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := finemock.NewRepository(t)
	repo.On("Delete", mock.Anything, "fine-1").Return(true, nil).Once()
	repo.On("Delete", mock.Anything, "fine-2").Return(false, nil).Once()
	repo.On("DeleteAll", mock.Anything).Return(7, nil).Once()
	svc := newTestFineService(repo)

	if err := svc.DeleteFine(ctx, "fine-1"); err != nil {
		t.Fatalf("delete fine: %v", err)
	}
	if err := svc.DeleteFine(ctx, "fine-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := svc.ClearAll(ctx, "0000"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	count, err := svc.ClearAll(ctx, testPIN)
	if err != nil {
		t.Fatalf("clear all: %v", err)
	}
	if count != 7 {
		t.Fatalf("expected 7 fines cleared, got %d", count)
	}
}

func TestFineService_RepositoryErrorsAreWrapped(t *testing.T) {
	t.Parallel()

	boom := errors.New("db down")
	repo := finemock.NewRepository(t)
	repo.On("Create", mock.Anything, mock.AnythingOfType("fine.Fine")).Return(boom).Once()
	svc := newTestFineService(repo)

	_, err := svc.AddFine(context.Background(), AddFineInput{PlayerName: "Sam", Reason: "Late", Amount: "1", Date: "2026-02-01"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected repository error, got %v", err)
	}
	if !strings.Contains(err.Error(), "create fine") {
		t.Fatalf("expected wrapped error context, got %q", err.Error())
	}
}
