package postgres

import (
	"database/sql"
	"time"
)

const batonHolderSingletonID = 1

type batonHolderTableModel struct {
	ID                   int           `db:"id"`
	TeamID               int64         `db:"team_id"`
	TeamName             string        `db:"team_name"`
	Country              string        `db:"country"`
	City                 string        `db:"city"`
	Logo                 string        `db:"logo"`
	LastProcessedMatchID sql.NullInt64 `db:"last_processed_match_id"`
	UpdatedAt            time.Time     `db:"updated_at"`
	UpdatedBy            string        `db:"updated_by"`
}

type batonHolderLockRow struct {
	TeamID               int64         `db:"team_id"`
	LastProcessedMatchID sql.NullInt64 `db:"last_processed_match_id"`
}

type batonHistoryTableModel struct {
	ID                     string    `db:"id"`
	PreviousHolderTeamID   int64     `db:"previous_holder_team_id"`
	PreviousHolderTeamName string    `db:"previous_holder_team_name"`
	NewHolderTeamID        int64     `db:"new_holder_team_id"`
	NewHolderTeamName      string    `db:"new_holder_team_name"`
	MatchID                int64     `db:"match_id"`
	MatchDate              time.Time `db:"match_date"`
	CompetitionName        string    `db:"competition_name"`
	CompetitionCountry     string    `db:"competition_country"`
	HomeTeamID             int64     `db:"home_team_id"`
	HomeTeamName           string    `db:"home_team_name"`
	HomeTeamLogo           string    `db:"home_team_logo"`
	AwayTeamID             int64     `db:"away_team_id"`
	AwayTeamName           string    `db:"away_team_name"`
	AwayTeamLogo           string    `db:"away_team_logo"`
	HomeScore              int       `db:"home_score"`
	AwayScore              int       `db:"away_score"`
	Outcome                string    `db:"outcome"`
	BatonMoved             bool      `db:"baton_moved"`
	Reason                 string    `db:"reason"`
	UpdatedAt              time.Time `db:"updated_at"`
	UpdatedBy              string    `db:"updated_by"`
}
