package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/booze-baton/external/apifootball"
	"github.com/riskibarqy/booze-baton/internal/config"
	"github.com/riskibarqy/booze-baton/internal/domain/baton"
	"github.com/riskibarqy/booze-baton/internal/domain/fine"
	"github.com/riskibarqy/booze-baton/internal/domain/finereason"
	"github.com/riskibarqy/booze-baton/internal/domain/player"
	repocache "github.com/riskibarqy/booze-baton/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/booze-baton/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/booze-baton/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/booze-baton/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/booze-baton/internal/platform/cache"
	idgen "github.com/riskibarqy/booze-baton/internal/platform/id"
	"github.com/riskibarqy/booze-baton/internal/platform/logging"
	"github.com/riskibarqy/booze-baton/internal/platform/metrics"
	"github.com/riskibarqy/booze-baton/internal/platform/resilience"
	"github.com/riskibarqy/booze-baton/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// App holds the HTTP server and the resources that must be released on shutdown.
type App struct {
	Server *http.Server
	db     *sqlx.DB
}

type repositories struct {
	baton   baton.Repository
	fines   fine.Repository
	players player.Repository
	reasons finereason.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	app := &App{}
	repos, err := app.buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var recorder *metrics.Recorder
	if cfg.MetricsEnabled {
		recorder = metrics.New()
	}

	provider := apifootball.NewClient(apifootball.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.FootballTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURL:    cfg.FootballBaseURL,
		APIKey:     cfg.FootballAPIKey,
		Timeout:    cfg.FootballTimeout,
		MaxRetries: cfg.FootballMaxRetries,
		Logger:     logger.With("component", "api-football"),
		Metrics:    recorder,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballCircuitEnabled,
			FailureThreshold: cfg.FootballCircuitFailureCount,
			OpenTimeout:      cfg.FootballCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FootballCircuitHalfOpenMaxReq,
		},
	})

	authorizer := usecase.NewStaticPINAuthorizer(cfg.AdminPIN)
	ids := idgen.NewUUIDGenerator()

	batonSvc := usecase.NewBatonService(
		repos.baton,
		provider,
		baton.NewResolver(cfg.BatonExcludedCompetitionIDs...),
		authorizer,
		ids,
		recorder,
		usecase.BatonServiceConfig{
			FixtureLookback: cfg.FootballFixtureLookback,
			SearchCacheTTL:  cfg.CacheTTL,
		},
		logger,
	)
	fineSvc := usecase.NewFineService(repos.fines, authorizer, ids, logger)
	csvSvc := usecase.NewFineCSVService(fineSvc, repos.fines, cfg.CSVImportWorkers, recorder, logger)
	playerSvc := usecase.NewPlayerService(repos.players, authorizer, logger)
	reasonSvc := usecase.NewFineReasonService(repos.reasons, authorizer, ids, logger)
	statsSvc := usecase.NewLedgerStatsService(repos.fines, repos.players, recorder)

	handler := httpapi.NewHandler(batonSvc, fineSvc, csvSvc, playerSvc, reasonSvc, statsSvc, logger)
	router := httpapi.NewRouter(handler, recorder, logger, cfg.CORSAllowedOrigins)

	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return app, nil
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		fines := memory.NewFineRepository(nil)
		return repositories{
			baton:   memory.NewBatonRepository(nil),
			fines:   fines,
			players: memory.NewPlayerRepository(nil, fines),
			reasons: memory.NewFineReasonRepository(nil),
		}, nil
	case config.StoreDriverPostgres:
		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		a.db = db
		return repositories{
			baton: postgres.NewBatonRepository(db),
			fines: postgres.NewFineRepository(db),
			players: repocache.NewPlayerRepository(
				postgres.NewPlayerRepository(db),
				basecache.NewStore[[]player.Player](cfg.CacheTTL),
			),
			reasons: repocache.NewFineReasonRepository(
				postgres.NewFineReasonRepository(db),
				basecache.NewStore[[]finereason.Reason](cfg.CacheTTL),
				basecache.NewStore[int](cfg.CacheTTL),
			),
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}
