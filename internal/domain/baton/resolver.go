package baton

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidHolder    = errors.New("invalid baton holder")
	ErrMalformedFixture = errors.New("malformed fixture")
)

// Resolver decides baton transfers. It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	excluded map[int64]struct{}
}

// NewResolver builds a resolver that ignores the given competition ids on top of name-based
// friendly detection. With no ids the club friendlies competition is excluded.
func NewResolver(excludedCompetitionIDs ...int64) *Resolver {
	if len(excludedCompetitionIDs) == 0 {
		excludedCompetitionIDs = []int64{ClubFriendliesCompetitionID}
	}
	excluded := make(map[int64]struct{}, len(excludedCompetitionIDs))
	for _, id := range excludedCompetitionIDs {
		excluded[id] = struct{}{}
	}
	return &Resolver{excluded: excluded}
}

func (r *Resolver) IsCompetitive(f Fixture) bool {
	name := strings.ToLower(f.CompetitionName)
	if strings.Contains(name, "friendly") || strings.Contains(name, "friendlies") {
		return false
	}
	_, excluded := r.excluded[f.CompetitionID]
	return !excluded
}

// LatestCompetitive returns the most recent competitive fixture.
// Fixtures sharing the latest date are ordered by the highest match id.
func (r *Resolver) LatestCompetitive(fixtures []Fixture) (Fixture, bool) {
	var (
		latest Fixture
		found  bool
	)
	for _, f := range fixtures {
		if !r.IsCompetitive(f) {
			continue
		}
		if !found || newer(f, latest) {
			latest = f
			found = true
		}
	}
	return latest, found
}

// Resolve computes the transfer decision for holder given its finished fixtures.
func (r *Resolver) Resolve(holder Holder, fixtures []Fixture) (Decision, error) {
	if holder.TeamID <= 0 {
		return Decision{}, fmt.Errorf("%w: team id is required", ErrInvalidHolder)
	}
	for i := range fixtures {
		if err := validateOrderKeys(fixtures[i]); err != nil && r.IsCompetitive(fixtures[i]) {
			return Decision{}, err
		}
	}

	noUpdate := Decision{Status: StatusNoUpdate, Previous: holder, Next: holder}
	if len(fixtures) == 0 {
		noUpdate.Reason = ReasonNoFinishedMatches
		return noUpdate, nil
	}

	latest, ok := r.LatestCompetitive(fixtures)
	if !ok {
		noUpdate.Reason = ReasonNoCompetitiveMatches
		return noUpdate, nil
	}
	if err := ValidateFixture(latest); err != nil {
		return Decision{}, err
	}
	if holder.ProcessedMatch(latest.MatchID) {
		noUpdate.Reason = ReasonAlreadyProcessed
		noUpdate.Match = &latest
		return noUpdate, nil
	}

	holderScore, opponentScore := *latest.AwayScore, *latest.HomeScore
	opponent := latest.Home
	if latest.Home.ID == holder.TeamID {
		holderScore, opponentScore = *latest.HomeScore, *latest.AwayScore
		opponent = latest.Away
	}

	matchID := latest.MatchID
	next := holder
	next.LastProcessedMatchID = &matchID

	decision := Decision{Previous: holder, Match: &latest}
	score := strconv.Itoa(holderScore) + "-" + strconv.Itoa(opponentScore)
	switch {
	case holderScore > opponentScore:
		decision.Status = StatusStayed
		decision.Outcome = OutcomeWin
		decision.Reason = fmt.Sprintf("%s won %s. Baton stays.", holder.TeamName, score)
	case holderScore == opponentScore:
		decision.Status = StatusStayed
		decision.Outcome = OutcomeDraw
		decision.Reason = fmt.Sprintf("%s drew %s. Baton stays.", holder.TeamName, score)
	default:
		decision.Status = StatusMoved
		decision.Outcome = OutcomeLoss
		decision.Reason = fmt.Sprintf("%s lost %s. Baton moves to %s.", holder.TeamName, score, opponent.Name)
		next.TeamID = opponent.ID
		next.TeamName = opponent.Name
		next.Logo = opponent.Logo
		next.Country = competitionCountry(latest)
		next.City = ""
	}
	decision.Next = next

	return decision, nil
}

// ValidateFixture checks the fields the resolver relies on.
func ValidateFixture(f Fixture) error {
	switch {
	case f.MatchID <= 0:
		return fmt.Errorf("%w: match id is required", ErrMalformedFixture)
	case f.Home.ID <= 0 || f.Away.ID <= 0:
		return fmt.Errorf("%w: match %d is missing a team id", ErrMalformedFixture, f.MatchID)
	case f.HomeScore == nil || f.AwayScore == nil:
		return fmt.Errorf("%w: match %d is missing a score", ErrMalformedFixture, f.MatchID)
	case f.Date.IsZero():
		return fmt.Errorf("%w: match %d is missing a date", ErrMalformedFixture, f.MatchID)
	}
	return nil
}

// validateOrderKeys checks the fields LatestCompetitive orders on.
func validateOrderKeys(f Fixture) error {
	switch {
	case f.MatchID <= 0:
		return fmt.Errorf("%w: match id is required", ErrMalformedFixture)
	case f.Date.IsZero():
		return fmt.Errorf("%w: match %d is missing a date", ErrMalformedFixture, f.MatchID)
	}
	return nil
}

func newer(a, b Fixture) bool {
	if a.Date.Equal(b.Date) {
		return a.MatchID > b.MatchID
	}
	return a.Date.After(b.Date)
}

func competitionCountry(f Fixture) string {
	if country := strings.TrimSpace(f.CompetitionCountry); country != "" {
		return country
	}
	return DefaultCountry
}

func derefScore(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func scoreText(v *int) string {
	if v == nil {
		return "?"
	}
	return strconv.Itoa(*v)
}
