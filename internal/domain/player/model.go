package player

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrAlreadyExists    = errors.New("player already exists")
	ErrUnknownGameField = errors.New("unknown games field")
)

// GamesField names one of the appearance counters kept per player.
type GamesField string

const (
	GamesEAFC25     GamesField = "eafc25"
	GamesSeason2425 GamesField = "season2425"
	GamesEAFC26     GamesField = "eafc26"
	GamesAdjustment GamesField = "adjustment"
)

var AllGamesFields = map[GamesField]struct{}{
	GamesEAFC25:     {},
	GamesSeason2425: {},
	GamesEAFC26:     {},
	GamesAdjustment: {},
}

// Player is a league member who can be fined.
type Player struct {
	Name       string
	EAFC25     int
	Season2425 int
	EAFC26     int
	Adjustment int
	CreatedAt  time.Time
}

// TotalGames counts games played across tracked seasons.
// Season2425 games are already part of the EAFC25 counter, so they are subtracted.
func (p Player) TotalGames() int {
	return p.EAFC25 - p.Season2425 + p.EAFC26 + p.Adjustment
}

func (p *Player) SetGames(field GamesField, value int) error {
	switch field {
	case GamesEAFC25:
		p.EAFC25 = value
	case GamesSeason2425:
		p.Season2425 = value
	case GamesEAFC26:
		p.EAFC26 = value
	case GamesAdjustment:
		p.Adjustment = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameField, field)
	}
	return nil
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if len(p.Name) > 64 {
		return fmt.Errorf("player name must be at most 64 characters")
	}
	return nil
}

func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
