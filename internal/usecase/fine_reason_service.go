package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/riskibarqy/booze-baton/internal/domain/fine"
	"github.com/riskibarqy/booze-baton/internal/domain/finereason"
	"github.com/riskibarqy/booze-baton/internal/platform/id"
	"github.com/riskibarqy/booze-baton/internal/platform/logging"
)

type AddReasonInput struct {
	Text   string
	Amount string
}

type FineReasonService struct {
	repo       finereason.Repository
	authorizer AdminAuthorizer
	ids        id.Generator
	logger     *logging.Logger

	seedMu sync.Mutex
	seeded bool
}

func NewFineReasonService(repo finereason.Repository, authorizer AdminAuthorizer, ids id.Generator, logger *logging.Logger) *FineReasonService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &FineReasonService{
		repo:       repo,
		authorizer: authorizer,
		ids:        ids,
		logger:     logger,
	}
}

// ListReasons returns the catalog, seeding the league defaults the first time it is empty.
func (s *FineReasonService) ListReasons(ctx context.Context) ([]finereason.Reason, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FineReasonService.ListReasons")
	defer span.End()

	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fine reasons: %w", err)
	}
	return items, nil
}

func (s *FineReasonService) ensureSeeded(ctx context.Context) error {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	if s.seeded {
		return nil
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count fine reasons: %w", err)
	}
	if count > 0 {
		s.seeded = true
		return nil
	}

	for _, item := range finereason.Defaults() {
		item.ID, err = s.ids.NewID()
		if err != nil {
			return fmt.Errorf("generate fine reason id: %w", err)
		}
		if err := s.repo.Create(ctx, item); err != nil && !errors.Is(err, finereason.ErrAlreadyExists) {
			return fmt.Errorf("seed fine reason %q: %w", item.Text, err)
		}
	}

	s.seeded = true
	s.logger.InfoContext(ctx, "seeded default fine reasons", "count", len(finereason.Defaults()))
	return nil
}

func (s *FineReasonService) AddReason(ctx context.Context, pin string, input AddReasonInput) (finereason.Reason, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FineReasonService.AddReason")
	defer span.End()

	if err := s.authorizer.Authorize(ctx, pin); err != nil {
		return finereason.Reason{}, err
	}
	amount, err := fine.ParseAmount(input.Amount)
	if err != nil {
		return finereason.Reason{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.ensureSeeded(ctx); err != nil {
		return finereason.Reason{}, err
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return finereason.Reason{}, fmt.Errorf("count fine reasons: %w", err)
	}
	item := finereason.Reason{
		Text:     strings.TrimSpace(input.Text),
		Amount:   amount,
		Position: count + 1,
	}
	if err := item.Validate(); err != nil {
		return finereason.Reason{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	item.ID, err = s.ids.NewID()
	if err != nil {
		return finereason.Reason{}, fmt.Errorf("generate fine reason id: %w", err)
	}

	err = s.repo.Create(ctx, item)
	switch {
	case errors.Is(err, finereason.ErrAlreadyExists):
		return finereason.Reason{}, fmt.Errorf("%w: fine reason %q already exists", ErrConflict, item.Text)
	case err != nil:
		return finereason.Reason{}, fmt.Errorf("create fine reason: %w", err)
	}
	return item, nil
}

func (s *FineReasonService) UpdateReasonAmount(ctx context.Context, pin, reasonID, rawAmount string) (finereason.Reason, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FineReasonService.UpdateReasonAmount")
	defer span.End()

	if err := s.authorizer.Authorize(ctx, pin); err != nil {
		return finereason.Reason{}, err
	}
	reasonID = strings.TrimSpace(reasonID)
	if reasonID == "" {
		return finereason.Reason{}, fmt.Errorf("%w: fine reason id is required", ErrInvalidInput)
	}
	amount, err := fine.ParseAmount(rawAmount)
	if err != nil {
		return finereason.Reason{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if amount.IsNegative() {
		return finereason.Reason{}, fmt.Errorf("%w: amount must be >= 0", ErrInvalidInput)
	}

	updated, found, err := s.repo.UpdateAmount(ctx, reasonID, amount)
	if err != nil {
		return finereason.Reason{}, fmt.Errorf("update fine reason amount: %w", err)
	}
	if !found {
		return finereason.Reason{}, fmt.Errorf("%w: fine reason=%s", ErrNotFound, reasonID)
	}
	return updated, nil
}

func (s *FineReasonService) DeleteReason(ctx context.Context, pin, reasonID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FineReasonService.DeleteReason")
	defer span.End()

	if err := s.authorizer.Authorize(ctx, pin); err != nil {
		return err
	}
	reasonID = strings.TrimSpace(reasonID)
	if reasonID == "" {
		return fmt.Errorf("%w: fine reason id is required", ErrInvalidInput)
	}

	deleted, err := s.repo.Delete(ctx, reasonID)
	if err != nil {
		return fmt.Errorf("delete fine reason: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: fine reason=%s", ErrNotFound, reasonID)
	}
	return nil
}
