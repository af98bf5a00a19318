package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/booze-baton/internal/domain/finereason"
	"github.com/riskibarqy/booze-baton/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/booze-baton/internal/platform/id"
	"github.com/shopspring/decimal"
)

func TestFineReasonService_SeedsDefaultsOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewFineReasonRepository(nil)
	svc := NewFineReasonService(repo, NewStaticPINAuthorizer(testPIN), &id.SequenceGenerator{Prefix: "reason-"}, nil)
	defaults := finereason.Defaults()

	for range 2 {
		items, err := svc.ListReasons(ctx)
		if err != nil {
			t.Fatalf("list reasons: %v", err)
		}
		if len(items) != len(defaults) {
			t.Fatalf("expected %d seeded reasons, got %d", len(defaults), len(items))
		}
		if items[0].Text != defaults[0].Text {
			t.Fatalf("expected first reason %q, got %q", defaults[0].Text, items[0].Text)
		}
	}
}

func TestFineReasonService_Mutations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewFineReasonRepository([]finereason.Reason{
		{ID: "r1", Text: "Own goal", Amount: decimal.NewFromInt(1), Position: 1},
	})
	svc := NewFineReasonService(repo, NewStaticPINAuthorizer(testPIN), &id.SequenceGenerator{Prefix: "reason-"}, nil)

	if _, err := svc.AddReason(ctx, "bad", AddReasonInput{Text: "Missed pen", Amount: "1"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	added, err := svc.AddReason(ctx, testPIN, AddReasonInput{Text: "Missed pen", Amount: "£1.50"})
	if err != nil {
		t.Fatalf("add reason: %v", err)
	}
	if added.Position != 2 {
		t.Fatalf("expected position 2, got %d", added.Position)
	}

	if _, err := svc.AddReason(ctx, testPIN, AddReasonInput{Text: "own GOAL", Amount: "1"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for a duplicate reason, got %v", err)
	}

	updated, err := svc.UpdateReasonAmount(ctx, testPIN, "r1", "3")
	if err != nil {
		t.Fatalf("update amount: %v", err)
	}
	if !updated.Amount.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("expected amount 3, got %s", updated.Amount)
	}

	if _, err := svc.UpdateReasonAmount(ctx, testPIN, "nope", "3"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.UpdateReasonAmount(ctx, testPIN, "r1", "-3"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	if err := svc.DeleteReason(ctx, testPIN, "r1"); err != nil {
		t.Fatalf("delete reason: %v", err)
	}
	if err := svc.DeleteReason(ctx, testPIN, "r1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	items, err := svc.ListReasons(ctx)
	if err != nil {
		t.Fatalf("list reasons: %v", err)
	}
	if len(items) != 1 || items[0].Text != "Missed pen" {
		t.Fatalf("expected only Missed pen to remain, got %+v", items)
	}
}
