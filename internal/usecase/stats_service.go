package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/booze-baton/internal/domain/fine"
	"github.com/riskibarqy/booze-baton/internal/domain/player"
	"github.com/riskibarqy/booze-baton/internal/platform/metrics"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
)

const topReasonCount = 3

var hundred = decimal.NewFromInt(100)

type LedgerSummary struct {
	TotalPot           decimal.Decimal
	TotalUnpaid        decimal.Decimal
	FineCount          int
	WorstOffender      string
	WorstOffenderTotal decimal.Decimal
}

type ReasonCount struct {
	Reason string
	Count  int
}

type PlayerStats struct {
	Name         string
	Total        decimal.Decimal
	Unpaid       decimal.Decimal
	Count        int
	Average      decimal.Decimal
	WorstFine    decimal.Decimal
	PaymentRate  decimal.Decimal
	TopReasons   []ReasonCount
	Games        int
	FinesPerGame decimal.Decimal
}

type ForfeitEntry struct {
	Name  string
	Value decimal.Decimal
}

// ForfeitStandings ranks players with at least one fine. Nil entries mean nobody qualifies.
type ForfeitStandings struct {
	LeastGames     *ForfeitEntry
	HighestTotal   *ForfeitEntry
	HighestPerGame *ForfeitEntry
}

type LedgerOverview struct {
	Summary  LedgerSummary
	Players  []PlayerStats
	Forfeits ForfeitStandings
}

type LedgerStatsService struct {
	fineRepo   fine.Repository
	playerRepo player.Repository
	metrics    *metrics.Recorder
}

func NewLedgerStatsService(fineRepo fine.Repository, playerRepo player.Repository, recorder *metrics.Recorder) *LedgerStatsService {
	return &LedgerStatsService{
		fineRepo:   fineRepo,
		playerRepo: playerRepo,
		metrics:    recorder,
	}
}

// Overview computes the ledger summary, per-player breakdown and forfeit standings.
func (s *LedgerStatsService) Overview(ctx context.Context) (LedgerOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerStatsService.Overview")
	defer span.End()

	fines, players, err := s.load(ctx)
	if err != nil {
		return LedgerOverview{}, err
	}

	games := gamesByPlayer(players)
	grouped := groupFinesByPlayer(fines)

	overview := LedgerOverview{
		Summary: summarize(fines),
		Players: make([]PlayerStats, 0, len(grouped)),
	}
	for name, items := range grouped {
		overview.Players = append(overview.Players, playerStats(name, items, games[name]))
	}
	sort.Slice(overview.Players, func(i, j int) bool {
		a, b := overview.Players[i], overview.Players[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.Name < b.Name
	})
	overview.Forfeits = forfeitStandings(overview.Players)

	unpaid, _ := overview.Summary.TotalUnpaid.Float64()
	s.metrics.UnpaidAmount(unpaid)
	return overview, nil
}

func (s *LedgerStatsService) PlayerStats(ctx context.Context, name string) (PlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LedgerStatsService.PlayerStats")
	defer span.End()

	name = player.NormalizeName(name)
	if name == "" {
		return PlayerStats{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	var (
		items   []fine.Fine
		member  player.Player
		exists  bool
		workers = pool.New().WithContext(ctx).WithCancelOnError()
	)
	workers.Go(func(ctx context.Context) error {
		var err error
		items, err = s.fineRepo.List(ctx, fine.Filter{PlayerName: name})
		if err != nil {
			return fmt.Errorf("list player fines: %w", err)
		}
		return nil
	})
	workers.Go(func(ctx context.Context) error {
		var err error
		member, exists, err = s.playerRepo.GetByName(ctx, name)
		if err != nil {
			return fmt.Errorf("get player: %w", err)
		}
		return nil
	})
	if err := workers.Wait(); err != nil {
		return PlayerStats{}, err
	}
	if !exists && len(items) == 0 {
		return PlayerStats{}, fmt.Errorf("%w: player=%s", ErrNotFound, name)
	}

	games := 0
	if exists {
		games = member.TotalGames()
	}
	return playerStats(name, items, games), nil
}

func (s *LedgerStatsService) load(ctx context.Context) ([]fine.Fine, []player.Player, error) {
	var (
		fines   []fine.Fine
		players []player.Player
		workers = pool.New().WithContext(ctx).WithCancelOnError()
	)
	workers.Go(func(ctx context.Context) error {
		var err error
		fines, err = s.fineRepo.List(ctx, fine.Filter{})
		if err != nil {
			return fmt.Errorf("list fines: %w", err)
		}
		return nil
	})
	workers.Go(func(ctx context.Context) error {
		var err error
		players, err = s.playerRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list players: %w", err)
		}
		return nil
	})
	if err := workers.Wait(); err != nil {
		return nil, nil, err
	}
	return fines, players, nil
}

func summarize(fines []fine.Fine) LedgerSummary {
	out := LedgerSummary{FineCount: len(fines)}
	totals := make(map[string]decimal.Decimal)
	for _, item := range fines {
		out.TotalPot = out.TotalPot.Add(item.Amount)
		if !item.Paid {
			out.TotalUnpaid = out.TotalUnpaid.Add(item.Amount)
		}
		totals[item.PlayerName] = totals[item.PlayerName].Add(item.Amount)
	}

	for name, total := range totals {
		if out.WorstOffender == "" ||
			total.GreaterThan(out.WorstOffenderTotal) ||
			(total.Equal(out.WorstOffenderTotal) && name < out.WorstOffender) {
			out.WorstOffender = name
			out.WorstOffenderTotal = total
		}
	}
	return out
}

func playerStats(name string, items []fine.Fine, games int) PlayerStats {
	out := PlayerStats{Name: name, Count: len(items), Games: games}
	reasons := make(map[string]int)
	paid := 0
	for _, item := range items {
		out.Total = out.Total.Add(item.Amount)
		if item.Paid {
			paid++
		} else {
			out.Unpaid = out.Unpaid.Add(item.Amount)
		}
		if item.Amount.GreaterThan(out.WorstFine) {
			out.WorstFine = item.Amount
		}
		reasons[item.Reason]++
	}

	if out.Count > 0 {
		count := decimal.NewFromInt(int64(out.Count))
		out.Average = out.Total.Div(count).Round(2)
		out.PaymentRate = decimal.NewFromInt(int64(paid)).Mul(hundred).Div(count).Round(0)
	}
	if games > 0 {
		out.FinesPerGame = out.Total.Div(decimal.NewFromInt(int64(games))).Round(2)
	}

	out.TopReasons = make([]ReasonCount, 0, len(reasons))
	for reason, count := range reasons {
		out.TopReasons = append(out.TopReasons, ReasonCount{Reason: reason, Count: count})
	}
	sort.Slice(out.TopReasons, func(i, j int) bool {
		if out.TopReasons[i].Count != out.TopReasons[j].Count {
			return out.TopReasons[i].Count > out.TopReasons[j].Count
		}
		return out.TopReasons[i].Reason < out.TopReasons[j].Reason
	})
	if len(out.TopReasons) > topReasonCount {
		out.TopReasons = out.TopReasons[:topReasonCount]
	}
	return out
}

func forfeitStandings(players []PlayerStats) ForfeitStandings {
	var out ForfeitStandings
	for _, p := range players {
		games := decimal.NewFromInt(int64(p.Games))
		if out.LeastGames == nil || games.LessThan(out.LeastGames.Value) ||
			(games.Equal(out.LeastGames.Value) && p.Name < out.LeastGames.Name) {
			out.LeastGames = &ForfeitEntry{Name: p.Name, Value: games}
		}
		if out.HighestTotal == nil || p.Total.GreaterThan(out.HighestTotal.Value) ||
			(p.Total.Equal(out.HighestTotal.Value) && p.Name < out.HighestTotal.Name) {
			out.HighestTotal = &ForfeitEntry{Name: p.Name, Value: p.Total}
		}
		if out.HighestPerGame == nil || p.FinesPerGame.GreaterThan(out.HighestPerGame.Value) ||
			(p.FinesPerGame.Equal(out.HighestPerGame.Value) && p.Name < out.HighestPerGame.Name) {
			out.HighestPerGame = &ForfeitEntry{Name: p.Name, Value: p.FinesPerGame}
		}
	}
	return out
}

func gamesByPlayer(players []player.Player) map[string]int {
	out := make(map[string]int, len(players))
	for _, p := range players {
		out[p.Name] = p.TotalGames()
	}
	return out
}

func groupFinesByPlayer(fines []fine.Fine) map[string][]fine.Fine {
	out := make(map[string][]fine.Fine)
	for _, item := range fines {
		out[item.PlayerName] = append(out[item.PlayerName], item)
	}
	return out
}
