package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/booze-baton/internal/domain/fine"
	"github.com/riskibarqy/booze-baton/internal/domain/player"
	"github.com/riskibarqy/booze-baton/internal/platform/id"
	"github.com/riskibarqy/booze-baton/internal/platform/logging"
)

const maxFineListLimit = 5000

type AddFineInput struct {
	PlayerName string
	Reason     string
	Amount     string
	Date       string
	// PaidDate marks the fine as already paid when set.
	PaidDate string
}

type ListFinesInput struct {
	PlayerName string
	Reason     string
	Paid       *bool
	From       string
	To         string
	Limit      int
}

type FineService struct {
	repo       fine.Repository
	authorizer AdminAuthorizer
	ids        id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewFineService(repo fine.Repository, authorizer AdminAuthorizer, ids id.Generator, logger *logging.Logger) *FineService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &FineService{
		repo:       repo,
		authorizer: authorizer,
		ids:        ids,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *FineService) AddFine(ctx context.Context, input AddFineInput) (fine.Fine, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FineService.AddFine")
	defer span.End()

	item, err := s.buildFine(input)
	if err != nil {
		return fine.Fine{}, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return fine.Fine{}, fmt.Errorf("create fine: %w", err)
	}
	return item, nil
}

func (s *FineService) buildFine(input AddFineInput) (fine.Fine, error) {
	amount, err := fine.ParseAmount(input.Amount)
	if err != nil {
		return fine.Fine{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	date, err := fine.ParseDate(input.Date)
	if err != nil {
		return fine.Fine{}, fmt.Errorf("%w: fine date: %v", ErrInvalidInput, err)
	}

	item := fine.Fine{
		PlayerName: player.NormalizeName(input.PlayerName),
		Reason:     strings.TrimSpace(input.Reason),
		Amount:     amount,
		Date:       date,
		CreatedAt:  s.now().UTC(),
	}
	if strings.TrimSpace(input.PaidDate) != "" {
		paidDate, err := fine.ParseDate(input.PaidDate)
		if err != nil {
			return fine.Fine{}, fmt.Errorf("%w: paid date: %v", ErrInvalidInput, err)
		}
		item.Paid = true
		item.PaidDate = &paidDate
	}
	if err := item.Validate(); err != nil {
		return fine.Fine{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item.ID, err = s.ids.NewID()
	if err != nil {
		return fine.Fine{}, fmt.Errorf("generate fine id: %w", err)
	}
	return item, nil
}

func (s *FineService) ListFines(ctx context.Context, input ListFinesInput) ([]fine.Fine, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FineService.ListFines")
	defer span.End()

	filter := fine.Filter{
		PlayerName:     player.NormalizeName(input.PlayerName),
		ReasonContains: strings.TrimSpace(input.Reason),
		Paid:           input.Paid,
		Limit:          input.Limit,
	}
	if filter.Limit <= 0 || filter.Limit > maxFineListLimit {
		filter.Limit = maxFineListLimit
	}
	if strings.TrimSpace(input.From) != "" {
		from, err := fine.ParseDate(input.From)
		if err != nil {
			return nil, fmt.Errorf("%w: from: %v", ErrInvalidInput, err)
		}
		filter.From = &from
	}
	if strings.TrimSpace(input.To) != "" {
		to, err := fine.ParseDate(input.To)
		if err != nil {
			return nil, fmt.Errorf("%w: to: %v", ErrInvalidInput, err)
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list fines: %w", err)
	}
	return items, nil
}

// MarkPaid marks one fine paid. An empty paidDate means today.
func (s *FineService) MarkPaid(ctx context.Context, fineID, paidDate string) (fine.Fine, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FineService.MarkPaid")
	defer span.End()

	fineID = strings.TrimSpace(fineID)
	if fineID == "" {
		return fine.Fine{}, fmt.Errorf("%w: fine id is required", ErrInvalidInput)
	}
	day, err := s.paidDay(paidDate)
	if err != nil {
		return fine.Fine{}, err
	}

	return s.setPaid(ctx, fineID, &day)
}

func (s *FineService) MarkUnpaid(ctx context.Context, fineID string) (fine.Fine, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FineService.MarkUnpaid")
	defer span.End()

	fineID = strings.TrimSpace(fineID)
	if fineID == "" {
		return fine.Fine{}, fmt.Errorf("%w: fine id is required", ErrInvalidInput)
	}
	return s.setPaid(ctx, fineID, nil)
}

func (s *FineService) setPaid(ctx context.Context, fineID string, paidDate *time.Time) (fine.Fine, error) {
	updated, found, err := s.repo.SetPaid(ctx, fineID, paidDate)
	if err != nil {
		return fine.Fine{}, fmt.Errorf("update fine paid status: %w", err)
	}
	if !found {
		return fine.Fine{}, fmt.Errorf("%w: fine=%s", ErrNotFound, fineID)
	}
	return updated, nil
}

func (s *FineService) MarkAllPaid(ctx context.Context, paidDate string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FineService.MarkAllPaid")
	defer span.End()

	day, err := s.paidDay(paidDate)
	if err != nil {
		return 0, err
	}
	count, err := s.repo.MarkAllPaid(ctx, day)
	if err != nil {
		return 0, fmt.Errorf("mark all fines paid: %w", err)
	}

	s.logger.InfoContext(ctx, "marked all fines paid", "count", count, "paid_date", day.Format(fine.DateLayout))
	return count, nil
}

func (s *FineService) DeleteFine(ctx context.Context, fineID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FineService.DeleteFine")
	defer span.End()

	fineID = strings.TrimSpace(fineID)
	if fineID == "" {
		return fmt.Errorf("%w: fine id is required", ErrInvalidInput)
	}
	deleted, err := s.repo.Delete(ctx, fineID)
	if err != nil {
		return fmt.Errorf("delete fine: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: fine=%s", ErrNotFound, fineID)
	}
	return nil
}

// ClearAll removes every fine in the ledger.
func (s *FineService) ClearAll(ctx context.Context, pin string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FineService.ClearAll")
	defer span.End()

	if err := s.authorizer.Authorize(ctx, pin); err != nil {
		return 0, err
	}
	count, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear fines: %w", err)
	}

	s.logger.WarnContext(ctx, "cleared all fines", "count", count)
	return count, nil
}

func (s *FineService) paidDay(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return fine.Day(s.now().UTC()), nil
	}
	day, err := fine.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: paid date: %v", ErrInvalidInput, err)
	}
	return day, nil
}
