package baton

import "time"

type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeDraw Outcome = "DRAW"
	OutcomeLoss Outcome = "LOSS"
)

type Status string

const (
	StatusNoUpdate Status = "no_update"
	StatusStayed   Status = "stayed"
	StatusMoved    Status = "moved"
)

const (
	ReasonNoFinishedMatches    = "no finished matches found"
	ReasonNoCompetitiveMatches = "no competitive matches found"
	ReasonAlreadyProcessed     = "match already processed"
)

// DefaultCountry is used when the competition carries no country, e.g. continental cups.
const DefaultCountry = "International"

// ClubFriendliesCompetitionID is the provider's catch-all competition for club friendlies.
const ClubFriendliesCompetitionID int64 = 667

// TeamRef identifies one side of a fixture.
type TeamRef struct {
	ID   int64
	Name string
	Logo string
}

// Holder is the singleton record of the team carrying the baton.
type Holder struct {
	TeamID               int64
	TeamName             string
	Country              string
	City                 string
	Logo                 string
	LastProcessedMatchID *int64
	UpdatedAt            time.Time
	UpdatedBy            string
}

func (h Holder) ProcessedMatch(matchID int64) bool {
	return h.LastProcessedMatchID != nil && *h.LastProcessedMatchID == matchID
}

// Fixture is one finished match reported by the sports-data provider.
type Fixture struct {
	MatchID            int64
	Date               time.Time
	CompetitionID      int64
	CompetitionName    string
	CompetitionCountry string
	Home               TeamRef
	Away               TeamRef
	HomeScore          *int
	AwayScore          *int
}

// Score renders "home-away"; missing goals render as "?".
func (f Fixture) Score() string {
	return scoreText(f.HomeScore) + "-" + scoreText(f.AwayScore)
}

// HistoryEntry is the append-only audit row written for each applied decision.
type HistoryEntry struct {
	ID                     string
	PreviousHolderTeamID   int64
	PreviousHolderTeamName string
	NewHolderTeamID        int64
	NewHolderTeamName      string
	MatchID                int64
	MatchDate              time.Time
	CompetitionName        string
	CompetitionCountry     string
	Home                   TeamRef
	Away                   TeamRef
	HomeScore              int
	AwayScore              int
	Outcome                Outcome
	BatonMoved             bool
	Reason                 string
	UpdatedAt              time.Time
	UpdatedBy              string
}

// Decision is the pure result of resolving a holder against its fixtures.
type Decision struct {
	Status   Status
	Reason   string
	Previous Holder
	Next     Holder
	Match    *Fixture
	Outcome  Outcome
}

func (d Decision) Moved() bool {
	return d.Status == StatusMoved
}

func (d Decision) RequiresWrite() bool {
	return d.Status != StatusNoUpdate
}

// HistoryEntry builds the audit row for an applied decision. It must not be called for no-update decisions.
func (d Decision) HistoryEntry(id string, at time.Time, updatedBy string) HistoryEntry {
	entry := HistoryEntry{
		ID:                     id,
		PreviousHolderTeamID:   d.Previous.TeamID,
		PreviousHolderTeamName: d.Previous.TeamName,
		NewHolderTeamID:        d.Next.TeamID,
		NewHolderTeamName:      d.Next.TeamName,
		Outcome:                d.Outcome,
		BatonMoved:             d.Moved(),
		Reason:                 d.Reason,
		UpdatedAt:              at,
		UpdatedBy:              updatedBy,
	}
	if d.Match != nil {
		entry.MatchID = d.Match.MatchID
		entry.MatchDate = d.Match.Date
		entry.CompetitionName = d.Match.CompetitionName
		entry.CompetitionCountry = competitionCountry(*d.Match)
		entry.Home = d.Match.Home
		entry.Away = d.Match.Away
		entry.HomeScore = derefScore(d.Match.HomeScore)
		entry.AwayScore = derefScore(d.Match.AwayScore)
	}
	return entry
}
