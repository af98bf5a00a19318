package usecase

import (
	"context"

	"github.com/riskibarqy/booze-baton/internal/domain/baton"
)

// TeamSearchResult is a compact team record returned by the sports-data provider.
type TeamSearchResult struct {
	TeamID   int64
	TeamName string
	Country  string
	City     string
	Logo     string
}

// FootballDataProvider is the sports-data source for team lookups and finished fixtures.
type FootballDataProvider interface {
	SearchTeams(ctx context.Context, query string) ([]TeamSearchResult, error)
	// FinishedFixtures returns up to last finished fixtures for the team, in provider order.
	FinishedFixtures(ctx context.Context, teamID int64, last int) ([]baton.Fixture, error)
}
