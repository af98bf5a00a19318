package usecase

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/booze-baton/internal/domain/baton"
	"github.com/riskibarqy/booze-baton/internal/infrastructure/repository/memory"
	batonmock "github.com/riskibarqy/booze-baton/internal/mocks/domain/baton"
	"github.com/riskibarqy/booze-baton/internal/platform/id"
	"github.com/stretchr/testify/mock"
)

const testPIN = "4321"

var (
	testWolves = baton.TeamRef{ID: 39, Name: "Wolves", Logo: "wolves.png"}
	testFoxes  = baton.TeamRef{ID: 46, Name: "Foxes", Logo: "foxes.png"}
	testKickAt = time.Date(2026, 2, 7, 15, 0, 0, 0, time.UTC)
)

type fakeFootballProvider struct {
	fixtures     []baton.Fixture
	teams        []TeamSearchResult
	err          error
	fixtureCalls atomic.Int32
	searchCalls  atomic.Int32
	lastLookback int
}

func (p *fakeFootballProvider) SearchTeams(_ context.Context, _ string) ([]TeamSearchResult, error) {
	p.searchCalls.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	return p.teams, nil
}

func (p *fakeFootballProvider) FinishedFixtures(_ context.Context, _ int64, last int) ([]baton.Fixture, error) {
	p.fixtureCalls.Add(1)
	p.lastLookback = last
	if p.err != nil {
		return nil, p.err
	}
	return p.fixtures, nil
}

func testIntPtr(v int) *int { return &v }

func testFixture(matchID int64, home, away baton.TeamRef, homeScore, awayScore int, competition string) baton.Fixture {
	return baton.Fixture{
		MatchID:            matchID,
		Date:               testKickAt,
		CompetitionID:      39,
		CompetitionName:    competition,
		CompetitionCountry: "England",
		Home:               home,
		Away:               away,
		HomeScore:          testIntPtr(homeScore),
		AwayScore:          testIntPtr(awayScore),
	}
}

func newTestBatonService(repo baton.Repository, provider FootballDataProvider) *BatonService {
	svc := NewBatonService(
		repo,
		provider,
		baton.NewResolver(),
		NewStaticPINAuthorizer(testPIN),
		&id.SequenceGenerator{Prefix: "hist-"},
		nil,
		BatonServiceConfig{FixtureLookback: 25, SearchCacheTTL: time.Minute},
		nil,
	)
	svc.now = func() time.Time { return time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC) }
	return svc
}

func mustUpdate(t *testing.T, svc *BatonService) UpdateResult {
	t.Helper()
	result, err := svc.UpdateBaton(context.Background(), testPIN)
	if err != nil {
		t.Fatalf("update baton: %v", err)
	}
	return result
}

func mustHistory(t *testing.T, svc *BatonService, limit, want int) []baton.HistoryEntry {
	t.Helper()
	history, err := svc.ListHistory(context.Background(), limit)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(history) != want {
		t.Fatalf("expected %d history entries, got %d", want, len(history))
	}
	return history
}

func TestBatonService_UpdateBaton_LossMovesAndIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewBatonRepository(&baton.Holder{TeamID: 39, TeamName: "Wolves", Country: "England", City: "Wolverhampton"})
	provider := &fakeFootballProvider{fixtures: []baton.Fixture{
		testFixture(999, testWolves, testFoxes, 1, 3, "Premier League"),
	}}
	svc := newTestBatonService(repo, provider)

	result := mustUpdate(t, svc)
	if result.Status != baton.StatusMoved {
		t.Fatalf("expected moved, got %s", result.Status)
	}
	if result.Message != "Baton moved: Wolves → Foxes" {
		t.Fatalf("unexpected message %q", result.Message)
	}
	if result.Reason != "Wolves lost 1-3. Baton moves to Foxes." {
		t.Fatalf("unexpected reason %q", result.Reason)
	}
	if result.PreviousHolder == nil || result.PreviousHolder.TeamName != "Wolves" {
		t.Fatalf("unexpected previous holder %+v", result.PreviousHolder)
	}
	if result.NewHolder == nil || result.NewHolder.TeamName != "Foxes" {
		t.Fatalf("unexpected new holder %+v", result.NewHolder)
	}
	if result.Match == nil || result.Match.Score != "1-3" {
		t.Fatalf("unexpected match summary %+v", result.Match)
	}
	if provider.lastLookback != 25 {
		t.Fatalf("expected lookback 25, got %d", provider.lastLookback)
	}

	holder, err := svc.CurrentHolder(ctx)
	if err != nil {
		t.Fatalf("current holder: %v", err)
	}
	if holder.TeamID != 46 || holder.Country != "England" || holder.City != "" || holder.Logo != "foxes.png" {
		t.Fatalf("unexpected stored holder %+v", holder)
	}
	if holder.UpdatedBy != updatedByManual {
		t.Fatalf("expected updated_by %q, got %q", updatedByManual, holder.UpdatedBy)
	}

	history := mustHistory(t, svc, 0, 1)
	if history[0].ID != "hist-1" || !history[0].BatonMoved || history[0].Outcome != baton.OutcomeLoss {
		t.Fatalf("unexpected history entry %+v", history[0])
	}

	// Foxes now hold the baton; the same match must not be applied twice for them either.
	provider.fixtures = []baton.Fixture{testFixture(999, testWolves, testFoxes, 1, 3, "Premier League")}
	again := mustUpdate(t, svc)
	if again.Status != baton.StatusNoUpdate {
		t.Fatalf("expected no_update, got %s", again.Status)
	}
	if again.Message != "This match has already been processed" {
		t.Fatalf("unexpected message %q", again.Message)
	}

	mustHistory(t, svc, 0, 1)
}

func TestBatonService_UpdateBaton_DrawStays(t *testing.T) {
	t.Parallel()

	repo := memory.NewBatonRepository(&baton.Holder{TeamID: 39, TeamName: "Wolves"})
	svc := newTestBatonService(repo, &fakeFootballProvider{fixtures: []baton.Fixture{
		testFixture(1000, testFoxes, testWolves, 2, 2, "Premier League"),
	}})

	result := mustUpdate(t, svc)
	if result.Status != baton.StatusStayed {
		t.Fatalf("expected stayed, got %s", result.Status)
	}
	if result.Message != "Baton stayed with Wolves (draw)" {
		t.Fatalf("unexpected message %q", result.Message)
	}
	if result.NewHolder != nil {
		t.Fatalf("expected no new holder, got %+v", result.NewHolder)
	}
	if result.Holder.LastProcessedMatchID == nil || *result.Holder.LastProcessedMatchID != 1000 {
		t.Fatalf("expected last processed match 1000, got %v", result.Holder.LastProcessedMatchID)
	}

	history := mustHistory(t, svc, 10, 1)
	if history[0].BatonMoved {
		t.Fatalf("expected a draw entry to record no move")
	}
}

func TestBatonService_UpdateBaton_NoUpdateMessages(t *testing.T) {
	t.Parallel()

	friendly := testFixture(1, testWolves, testFoxes, 0, 4, "Club Friendlies")
	cases := map[string]struct {
		fixtures []baton.Fixture
		message  string
	}{
		"no fixtures":     {fixtures: nil, message: "No finished matches found for Wolves"},
		"only friendlies": {fixtures: []baton.Fixture{friendly}, message: "No competitive matches found for Wolves"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			repo := batonmock.NewRepository(t)
			repo.On("GetHolder", mock.Anything).Return(baton.Holder{TeamID: 39, TeamName: "Wolves"}, true, nil).Once()

			svc := newTestBatonService(repo, &fakeFootballProvider{fixtures: tc.fixtures})
			result := mustUpdate(t, svc)
			if result.Status != baton.StatusNoUpdate {
				t.Fatalf("expected no_update, got %s", result.Status)
			}
			if result.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, result.Message)
			}
			repo.AssertNotCalled(t, "CommitTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestBatonService_UpdateBaton_RejectsWrongPIN(t *testing.T) {
	t.Parallel()

	repo := batonmock.NewRepository(t)
	provider := &fakeFootballProvider{}
	svc := newTestBatonService(repo, provider)

	_, err := svc.UpdateBaton(context.Background(), "1234 ")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if provider.fixtureCalls.Load() != 0 {
		t.Fatalf("provider must not be called without authorization")
	}
}

func TestBatonService_UpdateBaton_MissingHolder(t *testing.T) {
	t.Parallel()

	svc := newTestBatonService(memory.NewBatonRepository(nil), &fakeFootballProvider{})
	_, err := svc.UpdateBaton(context.Background(), testPIN)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBatonService_UpdateBaton_StaleCommitIsConflict(t *testing.T) {
	t.Parallel()

	lastProcessed := int64(10)
	holder := baton.Holder{TeamID: 39, TeamName: "Wolves", LastProcessedMatchID: &lastProcessed}
	repo := batonmock.NewRepository(t)
	repo.On("GetHolder", mock.Anything).Return(holder, true, nil).Once()
	repo.
		On("CommitTransfer", mock.Anything, holder, mock.MatchedBy(func(next baton.Holder) bool {
			return next.TeamID == 46 && next.LastProcessedMatchID != nil && *next.LastProcessedMatchID == 11
		}), mock.MatchedBy(func(entry baton.HistoryEntry) bool {
			return entry.MatchID == 11 && entry.PreviousHolderTeamID == 39 && entry.UpdatedBy == updatedByManual
		})).
		Return(baton.ErrStaleHolder).
		Once()

	svc := newTestBatonService(repo, &fakeFootballProvider{fixtures: []baton.Fixture{
		testFixture(11, testWolves, testFoxes, 0, 1, "FA Cup"),
	}})

	_, err := svc.UpdateBaton(context.Background(), testPIN)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestBatonService_UpdateBaton_RecordedMatchIsNoUpdate(t *testing.T) {
	t.Parallel()

	holder := baton.Holder{TeamID: 39, TeamName: "Wolves"}
	repo := batonmock.NewRepository(t)
	repo.On("GetHolder", mock.Anything).Return(holder, true, nil).Once()
	repo.On("CommitTransfer", mock.Anything, holder, mock.Anything, mock.Anything).
		Return(baton.ErrMatchRecorded).
		Once()

	svc := newTestBatonService(repo, &fakeFootballProvider{fixtures: []baton.Fixture{
		testFixture(11, testWolves, testFoxes, 0, 1, "FA Cup"),
	}})

	result := mustUpdate(t, svc)
	if result.Status != baton.StatusNoUpdate {
		t.Fatalf("expected no_update, got %s", result.Status)
	}
	if result.Message != "This match has already been processed" {
		t.Fatalf("unexpected message %q", result.Message)
	}
	if result.Holder.TeamID != 39 || result.NewHolder != nil {
		t.Fatalf("expected Wolves to keep the baton, got holder=%+v new=%+v", result.Holder, result.NewHolder)
	}
}

func TestBatonService_UpdateBaton_ProviderFailures(t *testing.T) {
	t.Parallel()

	t.Run("provider error", func(t *testing.T) {
		t.Parallel()
		repo := memory.NewBatonRepository(&baton.Holder{TeamID: 39, TeamName: "Wolves"})
		svc := newTestBatonService(repo, &fakeFootballProvider{err: ErrDependencyUnavailable})
		if _, err := svc.UpdateBaton(context.Background(), testPIN); !errors.Is(err, ErrDependencyUnavailable) {
			t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
		}
	})

	t.Run("malformed fixture", func(t *testing.T) {
		t.Parallel()
		broken := testFixture(12, testWolves, testFoxes, 0, 1, "Premier League")
		broken.AwayScore = nil
		repo := memory.NewBatonRepository(&baton.Holder{TeamID: 39, TeamName: "Wolves"})
		svc := newTestBatonService(repo, &fakeFootballProvider{fixtures: []baton.Fixture{broken}})
		_, err := svc.UpdateBaton(context.Background(), testPIN)
		if !errors.Is(err, ErrDependencyUnavailable) || !errors.Is(err, baton.ErrMalformedFixture) {
			t.Fatalf("expected a malformed fixture dependency error, got %v", err)
		}
	})
}

func TestBatonService_SetHolderClearsProcessedMatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	processed := int64(77)
	repo := memory.NewBatonRepository(&baton.Holder{TeamID: 39, TeamName: "Wolves", LastProcessedMatchID: &processed})
	svc := newTestBatonService(repo, &fakeFootballProvider{})

	if _, err := svc.SetHolder(ctx, "nope", SetHolderInput{TeamID: 46, TeamName: "Foxes"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.SetHolder(ctx, testPIN, SetHolderInput{TeamID: 46}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	holder, err := svc.SetHolder(ctx, testPIN, SetHolderInput{TeamID: 46, TeamName: " Foxes ", Country: "England", City: "Leicester"})
	if err != nil {
		t.Fatalf("set holder: %v", err)
	}
	if holder.TeamName != "Foxes" || holder.LastProcessedMatchID != nil {
		t.Fatalf("unexpected holder %+v", holder)
	}

	stored, err := svc.CurrentHolder(ctx)
	if err != nil {
		t.Fatalf("current holder: %v", err)
	}
	if stored.TeamID != holder.TeamID || stored.LastProcessedMatchID != nil {
		t.Fatalf("unexpected stored holder %+v", stored)
	}
}

func TestBatonService_DeleteHistoryEntry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := batonmock.NewRepository(t)
	repo.On("DeleteHistoryEntry", mock.Anything, "hist-9").Return(true, nil).Once()
	repo.On("DeleteHistoryEntry", mock.Anything, "missing").Return(false, nil).Once()
	svc := newTestBatonService(repo, &fakeFootballProvider{})

	if err := svc.DeleteHistoryEntry(ctx, testPIN, "hist-9"); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	if err := svc.DeleteHistoryEntry(ctx, testPIN, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.DeleteHistoryEntry(ctx, "bad", "hist-9"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestBatonService_SearchTeamsIsCachedPerQuery(t *testing.T) {
	t.Parallel()

	provider := &fakeFootballProvider{teams: []TeamSearchResult{{TeamID: 42, TeamName: "Arsenal"}}}
	svc := newTestBatonService(memory.NewBatonRepository(nil), provider)

	first, err := svc.SearchTeams(context.Background(), " Arsenal ")
	if err != nil {
		t.Fatalf("search teams: %v", err)
	}
	second, err := svc.SearchTeams(context.Background(), "arsenal")
	if err != nil {
		t.Fatalf("search teams: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected cached results to match: %+v vs %+v", first, second)
	}
	if calls := provider.searchCalls.Load(); calls != 1 {
		t.Fatalf("expected 1 provider call, got %d", calls)
	}

	if _, err := svc.SearchTeams(context.Background(), "a"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBatonService_LatestCompetitiveMatch(t *testing.T) {
	t.Parallel()

	friendly := testFixture(5, testWolves, testFoxes, 1, 0, "Friendlies")
	league := testFixture(4, testFoxes, testWolves, 2, 1, "Premier League")
	provider := &fakeFootballProvider{fixtures: []baton.Fixture{friendly}}
	svc := newTestBatonService(memory.NewBatonRepository(nil), provider)

	match, err := svc.LatestCompetitiveMatch(context.Background(), 39)
	if err != nil {
		t.Fatalf("latest match: %v", err)
	}
	if match != nil {
		t.Fatalf("expected no competitive match, got %+v", match)
	}

	provider.fixtures = []baton.Fixture{friendly, league}
	match, err = svc.LatestCompetitiveMatch(context.Background(), 39)
	if err != nil {
		t.Fatalf("latest match: %v", err)
	}
	if match == nil || match.MatchID != 4 {
		t.Fatalf("expected match 4, got %+v", match)
	}

	if _, err := svc.LatestCompetitiveMatch(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
