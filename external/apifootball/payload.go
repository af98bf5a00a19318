package apifootball

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/booze-baton/internal/domain/baton"
	"github.com/riskibarqy/booze-baton/internal/usecase"
)

const unknownCountry = "Unknown"

type providerPayload interface {
	providerError() (string, bool)
}

// envelope is the common API-Football response shape. errors is [] when empty
// and an object keyed by field when the request was rejected.
type envelope[T any] struct {
	Errors   json.RawMessage `json:"errors"`
	Results  int             `json:"results"`
	Response []T             `json:"response"`
}

func (e *envelope[T]) providerError() (string, bool) {
	raw := bytes.TrimSpace(e.Errors)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}

	var decoded any
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return abbreviateBody(raw), true
	}
	switch typed := decoded.(type) {
	case map[string]any:
		if len(typed) == 0 {
			return "", false
		}
	case []any:
		if len(typed) == 0 {
			return "", false
		}
	case string:
		if strings.TrimSpace(typed) == "" {
			return "", false
		}
	case nil:
		return "", false
	}
	return abbreviateBody(raw), true
}

type teamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type teamItem struct {
	Team struct {
		ID      int64  `json:"id"`
		Name    string `json:"name"`
		Country string `json:"country"`
		Logo    string `json:"logo"`
	} `json:"team"`
	Venue struct {
		City string `json:"city"`
	} `json:"venue"`
}

func (t teamItem) toResult() usecase.TeamSearchResult {
	country := strings.TrimSpace(t.Team.Country)
	if country == "" {
		country = unknownCountry
	}
	return usecase.TeamSearchResult{
		TeamID:   t.Team.ID,
		TeamName: t.Team.Name,
		Country:  country,
		City:     strings.TrimSpace(t.Venue.City),
		Logo:     t.Team.Logo,
	}
}

type fixtureItem struct {
	Fixture struct {
		ID        int64  `json:"id"`
		Date      string `json:"date"`
		Timestamp int64  `json:"timestamp"`
	} `json:"fixture"`
	League struct {
		ID      int64  `json:"id"`
		Name    string `json:"name"`
		Country string `json:"country"`
		Type    string `json:"type"`
	} `json:"league"`
	Teams struct {
		Home teamRef `json:"home"`
		Away teamRef `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

func (f fixtureItem) toFixture() baton.Fixture {
	return baton.Fixture{
		MatchID:            f.Fixture.ID,
		Date:               parseFixtureDate(f.Fixture.Date, f.Fixture.Timestamp),
		CompetitionID:      f.League.ID,
		CompetitionName:    f.League.Name,
		CompetitionCountry: strings.TrimSpace(f.League.Country),
		Home:               baton.TeamRef{ID: f.Teams.Home.ID, Name: f.Teams.Home.Name, Logo: f.Teams.Home.Logo},
		Away:               baton.TeamRef{ID: f.Teams.Away.ID, Name: f.Teams.Away.Name, Logo: f.Teams.Away.Logo},
		HomeScore:          f.Goals.Home,
		AwayScore:          f.Goals.Away,
	}
}

func parseFixtureDate(raw string, unix int64) time.Time {
	value := strings.TrimSpace(raw)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z0700", "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC()
		}
	}
	if unix > 0 {
		return time.Unix(unix, 0).UTC()
	}
	return time.Time{}
}
