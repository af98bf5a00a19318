package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/booze-baton/internal/domain/baton"
	"github.com/riskibarqy/booze-baton/internal/platform/cache"
	"github.com/riskibarqy/booze-baton/internal/platform/id"
	"github.com/riskibarqy/booze-baton/internal/platform/logging"
	"github.com/riskibarqy/booze-baton/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultFixtureLookback = 100
	defaultHistoryLimit    = 50
	maxHistoryLimit        = 500
	updatedByManual        = "manual"
)

type BatonServiceConfig struct {
	FixtureLookback int
	SearchCacheTTL  time.Duration
}

// MatchSummary describes the fixture a decision was based on.
type MatchSummary struct {
	MatchID     int64
	Home        string
	Away        string
	Score       string
	Competition string
	Country     string
	Date        time.Time
}

// UpdateResult is what an update run reports back to the caller.
type UpdateResult struct {
	Status         baton.Status
	Message        string
	Reason         string
	Outcome        baton.Outcome
	Holder         baton.Holder
	PreviousHolder *baton.Holder
	NewHolder      *baton.Holder
	Match          *MatchSummary
}

type SetHolderInput struct {
	TeamID   int64
	TeamName string
	Country  string
	City     string
	Logo     string
}

type BatonService struct {
	repo       baton.Repository
	provider   FootballDataProvider
	resolver   *baton.Resolver
	authorizer AdminAuthorizer
	ids        id.Generator
	metrics    *metrics.Recorder
	search     *cache.Store[[]TeamSearchResult]
	cfg        BatonServiceConfig
	logger     *logging.Logger
	now        func() time.Time
}

func NewBatonService(
	repo baton.Repository,
	provider FootballDataProvider,
	resolver *baton.Resolver,
	authorizer AdminAuthorizer,
	ids id.Generator,
	recorder *metrics.Recorder,
	cfg BatonServiceConfig,
	logger *logging.Logger,
) *BatonService {
	if logger == nil {
		logger = logging.Default()
	}
	if resolver == nil {
		resolver = baton.NewResolver()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if cfg.FixtureLookback <= 0 {
		cfg.FixtureLookback = defaultFixtureLookback
	}

	return &BatonService{
		repo:       repo,
		provider:   provider,
		resolver:   resolver,
		authorizer: authorizer,
		ids:        ids,
		metrics:    recorder,
		search:     cache.NewStore[[]TeamSearchResult](cfg.SearchCacheTTL),
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *BatonService) CurrentHolder(ctx context.Context) (baton.Holder, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BatonService.CurrentHolder")
	defer span.End()

	holder, exists, err := s.repo.GetHolder(ctx)
	if err != nil {
		return baton.Holder{}, fmt.Errorf("get baton holder: %w", err)
	}
	if !exists {
		return baton.Holder{}, fmt.Errorf("%w: no baton holder has been set", ErrNotFound)
	}
	return holder, nil
}

// UpdateBaton resolves the holder's latest competitive result and applies it.
func (s *BatonService) UpdateBaton(ctx context.Context, pin string) (result UpdateResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BatonService.UpdateBaton")
	defer func() { endSpan(span, err) }()

	if err := s.authorizer.Authorize(ctx, pin); err != nil {
		return UpdateResult{}, err
	}

	holder, err := s.CurrentHolder(ctx)
	if err != nil {
		return UpdateResult{}, err
	}
	span.SetAttributes(attribute.Int64("baton.holder_team_id", holder.TeamID))

	fixtures, err := s.provider.FinishedFixtures(ctx, holder.TeamID, s.cfg.FixtureLookback)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("fetch fixtures for team=%d: %w", holder.TeamID, err)
	}

	decision, err := s.resolver.Resolve(holder, fixtures)
	switch {
	case errors.Is(err, baton.ErrMalformedFixture):
		return UpdateResult{}, fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
	case err != nil:
		return UpdateResult{}, fmt.Errorf("resolve baton transfer: %w", err)
	}

	if !decision.RequiresWrite() {
		s.metrics.BatonResolved(string(decision.Status))
		s.logger.InfoContext(ctx, "baton update made no changes", "team_id", holder.TeamID, "reason", decision.Reason)
		return buildUpdateResult(decision), nil
	}

	entryID, err := s.ids.NewID()
	if err != nil {
		return UpdateResult{}, fmt.Errorf("generate history id: %w", err)
	}
	now := s.now().UTC()
	decision.Next.UpdatedAt = now
	decision.Next.UpdatedBy = updatedByManual
	entry := decision.HistoryEntry(entryID, now, updatedByManual)

	err = s.repo.CommitTransfer(ctx, holder, decision.Next, entry)
	switch {
	case errors.Is(err, baton.ErrMatchRecorded):
		s.metrics.BatonResolved(string(baton.StatusNoUpdate))
		s.logger.InfoContext(ctx, "baton match already recorded", "team_id", holder.TeamID, "match_id", entry.MatchID)
		return buildUpdateResult(baton.Decision{
			Status:   baton.StatusNoUpdate,
			Reason:   baton.ReasonAlreadyProcessed,
			Previous: holder,
			Next:     holder,
			Match:    decision.Match,
		}), nil
	case errors.Is(err, baton.ErrStaleHolder):
		return UpdateResult{}, fmt.Errorf("%w: baton holder changed during update, retry", ErrConflict)
	case err != nil:
		return UpdateResult{}, fmt.Errorf("commit baton transfer: %w", err)
	}

	s.metrics.BatonResolved(string(decision.Status))
	s.logger.InfoContext(ctx, "baton update applied",
		"status", string(decision.Status),
		"match_id", entry.MatchID,
		"previous_team_id", decision.Previous.TeamID,
		"new_team_id", decision.Next.TeamID,
	)
	return buildUpdateResult(decision), nil
}

func (s *BatonService) SetHolder(ctx context.Context, pin string, input SetHolderInput) (baton.Holder, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BatonService.SetHolder")
	defer span.End()

	if err := s.authorizer.Authorize(ctx, pin); err != nil {
		return baton.Holder{}, err
	}
	if input.TeamID <= 0 {
		return baton.Holder{}, fmt.Errorf("%w: team id must be > 0", ErrInvalidInput)
	}
	name := strings.TrimSpace(input.TeamName)
	if name == "" {
		return baton.Holder{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	holder := baton.Holder{
		TeamID:    input.TeamID,
		TeamName:  name,
		Country:   strings.TrimSpace(input.Country),
		City:      strings.TrimSpace(input.City),
		Logo:      strings.TrimSpace(input.Logo),
		UpdatedAt: s.now().UTC(),
		UpdatedBy: updatedByManual,
	}
	if err := s.repo.ReplaceHolder(ctx, holder); err != nil {
		return baton.Holder{}, fmt.Errorf("replace baton holder: %w", err)
	}

	s.logger.InfoContext(ctx, "baton holder replaced", "team_id", holder.TeamID, "team_name", holder.TeamName)
	return holder, nil
}

func (s *BatonService) ListHistory(ctx context.Context, limit int) ([]baton.HistoryEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BatonService.ListHistory")
	defer span.End()

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	items, err := s.repo.ListHistory(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list baton history: %w", err)
	}
	return items, nil
}

func (s *BatonService) DeleteHistoryEntry(ctx context.Context, pin, entryID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.BatonService.DeleteHistoryEntry")
	defer span.End()

	if err := s.authorizer.Authorize(ctx, pin); err != nil {
		return err
	}
	entryID = strings.TrimSpace(entryID)
	if entryID == "" {
		return fmt.Errorf("%w: history entry id is required", ErrInvalidInput)
	}

	deleted, err := s.repo.DeleteHistoryEntry(ctx, entryID)
	if err != nil {
		return fmt.Errorf("delete baton history entry: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: history entry=%s", ErrNotFound, entryID)
	}
	return nil
}

// SearchTeams looks teams up by name. Results are cached per normalized query.
func (s *BatonService) SearchTeams(ctx context.Context, query string) ([]TeamSearchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BatonService.SearchTeams")
	defer span.End()

	key := strings.ToLower(strings.Join(strings.Fields(query), " "))
	if len(key) < 2 {
		return nil, fmt.Errorf("%w: search query must be at least 2 characters", ErrInvalidInput)
	}

	return s.search.GetOrLoad(ctx, key, func(ctx context.Context) ([]TeamSearchResult, error) {
		teams, err := s.provider.SearchTeams(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("search teams: %w", err)
		}
		return teams, nil
	})
}

// LatestCompetitiveMatch returns the team's most recent competitive fixture, or nil when there is none.
func (s *BatonService) LatestCompetitiveMatch(ctx context.Context, teamID int64) (*baton.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BatonService.LatestCompetitiveMatch")
	defer span.End()

	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id must be > 0", ErrInvalidInput)
	}

	fixtures, err := s.provider.FinishedFixtures(ctx, teamID, s.cfg.FixtureLookback)
	if err != nil {
		return nil, fmt.Errorf("fetch fixtures for team=%d: %w", teamID, err)
	}
	latest, ok := s.resolver.LatestCompetitive(fixtures)
	if !ok {
		return nil, nil
	}
	return &latest, nil
}

func buildUpdateResult(d baton.Decision) UpdateResult {
	result := UpdateResult{
		Status:  d.Status,
		Reason:  d.Reason,
		Outcome: d.Outcome,
		Holder:  d.Next,
	}
	if d.Match != nil {
		result.Match = &MatchSummary{
			MatchID:     d.Match.MatchID,
			Home:        d.Match.Home.Name,
			Away:        d.Match.Away.Name,
			Score:       d.Match.Score(),
			Competition: d.Match.CompetitionName,
			Country:     d.Match.CompetitionCountry,
			Date:        d.Match.Date,
		}
	}

	switch d.Status {
	case baton.StatusMoved:
		previous, next := d.Previous, d.Next
		result.PreviousHolder = &previous
		result.NewHolder = &next
		result.Message = fmt.Sprintf("Baton moved: %s → %s", previous.TeamName, next.TeamName)
	case baton.StatusStayed:
		result.Message = fmt.Sprintf("Baton stayed with %s (%s)", d.Previous.TeamName, strings.ToLower(string(d.Outcome)))
	default:
		switch d.Reason {
		case baton.ReasonNoFinishedMatches:
			result.Message = "No finished matches found for " + d.Previous.TeamName
		case baton.ReasonNoCompetitiveMatches:
			result.Message = "No competitive matches found for " + d.Previous.TeamName
		case baton.ReasonAlreadyProcessed:
			result.Message = "This match has already been processed"
		default:
			result.Message = d.Reason
		}
	}
	return result
}
