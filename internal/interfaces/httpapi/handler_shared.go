package httpapi

import (
	"time"

	"github.com/riskibarqy/booze-baton/internal/domain/baton"
	"github.com/riskibarqy/booze-baton/internal/domain/fine"
	"github.com/riskibarqy/booze-baton/internal/domain/finereason"
	"github.com/riskibarqy/booze-baton/internal/domain/player"
	"github.com/riskibarqy/booze-baton/internal/usecase"
	"github.com/shopspring/decimal"
)

type setHolderRequest struct {
	TeamID   int64  `json:"team_id" validate:"required,gt=0"`
	TeamName string `json:"team_name" validate:"required,max=120"`
	Country  string `json:"country" validate:"omitempty,max=80"`
	City     string `json:"city" validate:"omitempty,max=80"`
	Logo     string `json:"logo" validate:"omitempty,url"`
}

type addFineRequest struct {
	PlayerName string `json:"player_name" validate:"required,max=64"`
	Reason     string `json:"reason" validate:"required,max=300"`
	Amount     string `json:"amount" validate:"required"`
	Date       string `json:"date" validate:"required"`
	PaidDate   string `json:"paid_date" validate:"omitempty"`
}

type paidDateRequest struct {
	PaidDate string `json:"paid_date" validate:"omitempty"`
}

type addPlayerRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

type updateGamesRequest struct {
	Field string `json:"field" validate:"required,oneof=eafc25 season2425 eafc26 adjustment"`
	Value *int   `json:"value" validate:"required"`
}

type addReasonRequest struct {
	Reason string `json:"reason" validate:"required,max=300"`
	Amount string `json:"amount" validate:"required"`
}

type updateReasonAmountRequest struct {
	Amount string `json:"amount" validate:"required"`
}

type holderDTO struct {
	TeamID               int64  `json:"team_id"`
	TeamName             string `json:"team_name"`
	Country              string `json:"country"`
	City                 string `json:"city,omitempty"`
	Logo                 string `json:"logo,omitempty"`
	LastProcessedMatchID *int64 `json:"last_processed_match_id"`
	UpdatedAt            string `json:"updated_at,omitempty"`
	UpdatedBy            string `json:"updated_by,omitempty"`
}

type matchSummaryDTO struct {
	MatchID     int64  `json:"match_id"`
	Home        string `json:"home"`
	Away        string `json:"away"`
	Score       string `json:"score"`
	Competition string `json:"competition"`
	Country     string `json:"country"`
	Date        string `json:"date"`
}

type updateBatonDTO struct {
	Status         string           `json:"status"`
	Message        string           `json:"message"`
	Reason         string           `json:"reason,omitempty"`
	Outcome        string           `json:"outcome,omitempty"`
	Holder         holderDTO        `json:"holder"`
	PreviousHolder *holderDTO       `json:"previous_holder,omitempty"`
	NewHolder      *holderDTO       `json:"new_holder,omitempty"`
	Match          *matchSummaryDTO `json:"match,omitempty"`
}

type teamRefDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

type historyEntryDTO struct {
	ID                     string     `json:"id"`
	PreviousHolderTeamID   int64      `json:"previous_holder_team_id"`
	PreviousHolderTeamName string     `json:"previous_holder_team_name"`
	NewHolderTeamID        int64      `json:"new_holder_team_id"`
	NewHolderTeamName      string     `json:"new_holder_team_name"`
	MatchID                int64      `json:"match_id"`
	MatchDate              string     `json:"match_date"`
	CompetitionName        string     `json:"competition_name"`
	CompetitionCountry     string     `json:"competition_country"`
	Home                   teamRefDTO `json:"home"`
	Away                   teamRefDTO `json:"away"`
	HomeScore              int        `json:"home_score"`
	AwayScore              int        `json:"away_score"`
	Outcome                string     `json:"outcome"`
	BatonMoved             bool       `json:"baton_moved"`
	Reason                 string     `json:"reason"`
	UpdatedAt              string     `json:"updated_at"`
	UpdatedBy              string     `json:"updated_by"`
}

type teamSearchDTO struct {
	TeamID   int64  `json:"team_id"`
	TeamName string `json:"team_name"`
	Country  string `json:"country"`
	City     string `json:"city"`
	Logo     string `json:"logo"`
}

type fixtureDTO struct {
	MatchID            int64      `json:"match_id"`
	Date               string     `json:"date"`
	CompetitionID      int64      `json:"competition_id"`
	CompetitionName    string     `json:"competition_name"`
	CompetitionCountry string     `json:"competition_country"`
	Home               teamRefDTO `json:"home"`
	Away               teamRefDTO `json:"away"`
	HomeScore          *int       `json:"home_score"`
	AwayScore          *int       `json:"away_score"`
}

type fineDTO struct {
	ID         string `json:"id"`
	PlayerName string `json:"player_name"`
	Reason     string `json:"reason"`
	Amount     string `json:"amount"`
	Date       string `json:"date"`
	Paid       bool   `json:"paid"`
	PaidDate   string `json:"paid_date,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type countDTO struct {
	Count int `json:"count"`
}

type importResultDTO struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

type playerDTO struct {
	Name       string `json:"name"`
	EAFC25     int    `json:"eafc25"`
	Season2425 int    `json:"season2425"`
	EAFC26     int    `json:"eafc26"`
	Adjustment int    `json:"adjustment"`
	TotalGames int    `json:"total_games"`
}

type deletePlayerDTO struct {
	Name         string `json:"name"`
	FinesRemoved int    `json:"fines_removed"`
}

type reasonDTO struct {
	ID       string `json:"id"`
	Reason   string `json:"reason"`
	Amount   string `json:"amount"`
	Position int    `json:"position"`
}

type ledgerSummaryDTO struct {
	TotalPot           string `json:"total_pot"`
	TotalUnpaid        string `json:"total_unpaid"`
	FineCount          int    `json:"fine_count"`
	WorstOffender      string `json:"worst_offender,omitempty"`
	WorstOffenderTotal string `json:"worst_offender_total"`
}

type reasonCountDTO struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

type playerStatsDTO struct {
	Name         string           `json:"name"`
	Total        string           `json:"total"`
	Unpaid       string           `json:"unpaid"`
	Count        int              `json:"count"`
	Average      string           `json:"average"`
	WorstFine    string           `json:"worst_fine"`
	PaymentRate  string           `json:"payment_rate"`
	TopReasons   []reasonCountDTO `json:"top_reasons"`
	Games        int              `json:"games"`
	FinesPerGame string           `json:"fines_per_game"`
}

type forfeitEntryDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type forfeitStandingsDTO struct {
	LeastGames     *forfeitEntryDTO `json:"least_games"`
	HighestTotal   *forfeitEntryDTO `json:"highest_total"`
	HighestPerGame *forfeitEntryDTO `json:"highest_per_game"`
}

type ledgerOverviewDTO struct {
	Summary  ledgerSummaryDTO    `json:"summary"`
	Players  []playerStatsDTO    `json:"players"`
	Forfeits forfeitStandingsDTO `json:"forfeits"`
}

func money(v decimal.Decimal) string {
	return v.StringFixed(2)
}

func formatTimestamp(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func holderToDTO(h baton.Holder) holderDTO {
	return holderDTO{
		TeamID:               h.TeamID,
		TeamName:             h.TeamName,
		Country:              h.Country,
		City:                 h.City,
		Logo:                 h.Logo,
		LastProcessedMatchID: h.LastProcessedMatchID,
		UpdatedAt:            formatTimestamp(h.UpdatedAt),
		UpdatedBy:            h.UpdatedBy,
	}
}

func optionalHolderToDTO(h *baton.Holder) *holderDTO {
	if h == nil {
		return nil
	}
	out := holderToDTO(*h)
	return &out
}

func updateResultToDTO(v usecase.UpdateResult) updateBatonDTO {
	out := updateBatonDTO{
		Status:         string(v.Status),
		Message:        v.Message,
		Reason:         v.Reason,
		Outcome:        string(v.Outcome),
		Holder:         holderToDTO(v.Holder),
		PreviousHolder: optionalHolderToDTO(v.PreviousHolder),
		NewHolder:      optionalHolderToDTO(v.NewHolder),
	}
	if v.Match != nil {
		out.Match = &matchSummaryDTO{
			MatchID:     v.Match.MatchID,
			Home:        v.Match.Home,
			Away:        v.Match.Away,
			Score:       v.Match.Score,
			Competition: v.Match.Competition,
			Country:     v.Match.Country,
			Date:        formatTimestamp(v.Match.Date),
		}
	}
	return out
}

func teamRefToDTO(v baton.TeamRef) teamRefDTO {
	return teamRefDTO{ID: v.ID, Name: v.Name, Logo: v.Logo}
}

func historyEntryToDTO(v baton.HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		ID:                     v.ID,
		PreviousHolderTeamID:   v.PreviousHolderTeamID,
		PreviousHolderTeamName: v.PreviousHolderTeamName,
		NewHolderTeamID:        v.NewHolderTeamID,
		NewHolderTeamName:      v.NewHolderTeamName,
		MatchID:                v.MatchID,
		MatchDate:              formatTimestamp(v.MatchDate),
		CompetitionName:        v.CompetitionName,
		CompetitionCountry:     v.CompetitionCountry,
		Home:                   teamRefToDTO(v.Home),
		Away:                   teamRefToDTO(v.Away),
		HomeScore:              v.HomeScore,
		AwayScore:              v.AwayScore,
		Outcome:                string(v.Outcome),
		BatonMoved:             v.BatonMoved,
		Reason:                 v.Reason,
		UpdatedAt:              formatTimestamp(v.UpdatedAt),
		UpdatedBy:              v.UpdatedBy,
	}
}

func fixtureToDTO(v baton.Fixture) fixtureDTO {
	return fixtureDTO{
		MatchID:            v.MatchID,
		Date:               formatTimestamp(v.Date),
		CompetitionID:      v.CompetitionID,
		CompetitionName:    v.CompetitionName,
		CompetitionCountry: v.CompetitionCountry,
		Home:               teamRefToDTO(v.Home),
		Away:               teamRefToDTO(v.Away),
		HomeScore:          v.HomeScore,
		AwayScore:          v.AwayScore,
	}
}

func fineToDTO(v fine.Fine) fineDTO {
	out := fineDTO{
		ID:         v.ID,
		PlayerName: v.PlayerName,
		Reason:     v.Reason,
		Amount:     money(v.Amount),
		Date:       v.Date.Format(fine.DateLayout),
		Paid:       v.Paid,
		CreatedAt:  formatTimestamp(v.CreatedAt),
	}
	if v.PaidDate != nil {
		out.PaidDate = v.PaidDate.Format(fine.DateLayout)
	}
	return out
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		Name:       v.Name,
		EAFC25:     v.EAFC25,
		Season2425: v.Season2425,
		EAFC26:     v.EAFC26,
		Adjustment: v.Adjustment,
		TotalGames: v.TotalGames(),
	}
}

func reasonToDTO(v finereason.Reason) reasonDTO {
	return reasonDTO{
		ID:       v.ID,
		Reason:   v.Text,
		Amount:   money(v.Amount),
		Position: v.Position,
	}
}

func playerStatsToDTO(v usecase.PlayerStats) playerStatsDTO {
	reasons := make([]reasonCountDTO, 0, len(v.TopReasons))
	for _, item := range v.TopReasons {
		reasons = append(reasons, reasonCountDTO{Reason: item.Reason, Count: item.Count})
	}
	return playerStatsDTO{
		Name:         v.Name,
		Total:        money(v.Total),
		Unpaid:       money(v.Unpaid),
		Count:        v.Count,
		Average:      money(v.Average),
		WorstFine:    money(v.WorstFine),
		PaymentRate:  v.PaymentRate.String(),
		TopReasons:   reasons,
		Games:        v.Games,
		FinesPerGame: money(v.FinesPerGame),
	}
}

func forfeitEntryToDTO(v *usecase.ForfeitEntry, moneyValue bool) *forfeitEntryDTO {
	if v == nil {
		return nil
	}
	value := v.Value.String()
	if moneyValue {
		value = money(v.Value)
	}
	return &forfeitEntryDTO{Name: v.Name, Value: value}
}

func ledgerOverviewToDTO(v usecase.LedgerOverview) ledgerOverviewDTO {
	players := make([]playerStatsDTO, 0, len(v.Players))
	for _, item := range v.Players {
		players = append(players, playerStatsToDTO(item))
	}
	return ledgerOverviewDTO{
		Summary: ledgerSummaryDTO{
			TotalPot:           money(v.Summary.TotalPot),
			TotalUnpaid:        money(v.Summary.TotalUnpaid),
			FineCount:          v.Summary.FineCount,
			WorstOffender:      v.Summary.WorstOffender,
			WorstOffenderTotal: money(v.Summary.WorstOffenderTotal),
		},
		Players: players,
		Forfeits: forfeitStandingsDTO{
			LeastGames:     forfeitEntryToDTO(v.Forfeits.LeastGames, false),
			HighestTotal:   forfeitEntryToDTO(v.Forfeits.HighestTotal, true),
			HighestPerGame: forfeitEntryToDTO(v.Forfeits.HighestPerGame, true),
		},
	}
}
