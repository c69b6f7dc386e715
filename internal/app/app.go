package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/oguzatak/lig-takip/external/askf"
	"github.com/oguzatak/lig-takip/external/tff"
	"github.com/oguzatak/lig-takip/internal/config"
	"github.com/oguzatak/lig-takip/internal/domain/season"
	"github.com/oguzatak/lig-takip/internal/infrastructure/repository/memory"
	"github.com/oguzatak/lig-takip/internal/infrastructure/repository/postgres"
	"github.com/oguzatak/lig-takip/internal/interfaces/httpapi"
	"github.com/oguzatak/lig-takip/internal/platform/cache"
	"github.com/oguzatak/lig-takip/internal/platform/logging"
	"github.com/oguzatak/lig-takip/internal/platform/resilience"
	"github.com/oguzatak/lig-takip/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	fixtureRepo := memory.NewFixtureRepository(memory.SeedFixtures())

	seasonRepo, closeStore, err := newSeasonStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	tffClient := tff.NewClient(tff.ClientConfig{
		BaseURL:    cfg.TFFBaseURL,
		Timeout:    cfg.TFFTimeout,
		MaxRetries: cfg.TFFMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.TFFCircuitEnabled,
			FailureThreshold: cfg.TFFCircuitFailureCount,
			OpenTimeout:      cfg.TFFCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.TFFCircuitHalfOpenMaxReq,
		},
	})
	askfClient := askf.NewClient(askf.ClientConfig{
		PageURL:    cfg.ASKFPageURL,
		Timeout:    cfg.ASKFTimeout,
		MaxRetries: cfg.ASKFMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ASKFCircuitEnabled,
			FailureThreshold: cfg.ASKFCircuitFailureCount,
			OpenTimeout:      cfg.ASKFCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ASKFCircuitHalfOpenMaxReq,
		},
	})

	var responseCache *cache.Store
	if cfg.CacheEnabled {
		responseCache = cache.NewStore(cfg.CacheTTL)
	}

	syncSvc := usecase.NewSyncService(
		leagueRepo,
		teamRepo,
		fixtureRepo,
		seasonRepo,
		tffClient,
		askfClient,
		responseCache,
		usecase.SyncConfig{ForceWindow: cfg.SyncForceWindow},
		logger,
	)
	fixtureSvc := usecase.NewFixtureService(leagueRepo, teamRepo, fixtureRepo, seasonRepo, logger)
	leagueSvc := usecase.NewLeagueService(leagueRepo)

	handler := httpapi.NewHandler(leagueSvc, fixtureSvc, syncSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		closeStore()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, closeStore, nil
}

func newSeasonStore(cfg config.Config) (season.Repository, func(), error) {
	if cfg.StoreDriver != config.StorePostgres {
		return memory.NewSeasonRepository(), func() {}, nil
	}

	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}

	return postgres.NewSeasonRepository(db), closeDB(db), nil
}

func closeDB(db *sqlx.DB) func() {
	return func() {
		_ = db.Close()
	}
}
