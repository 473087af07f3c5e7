package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/rl-fantasy/external/liquipedia"
	"github.com/riskibarqy/rl-fantasy/internal/config"
	"github.com/riskibarqy/rl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/rl-fantasy/internal/domain/player"
	"github.com/riskibarqy/rl-fantasy/internal/domain/playerstats"
	"github.com/riskibarqy/rl-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/rl-fantasy/internal/domain/transfer"
	"github.com/riskibarqy/rl-fantasy/internal/domain/week"
	"github.com/riskibarqy/rl-fantasy/internal/infrastructure/events"
	cacherepo "github.com/riskibarqy/rl-fantasy/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/rl-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/rl-fantasy/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/rl-fantasy/internal/interfaces/httpapi"
	"github.com/riskibarqy/rl-fantasy/internal/platform/cache"
	idgen "github.com/riskibarqy/rl-fantasy/internal/platform/id"
	"github.com/riskibarqy/rl-fantasy/internal/platform/logging"
	"github.com/riskibarqy/rl-fantasy/internal/platform/resilience"
	"github.com/riskibarqy/rl-fantasy/internal/usecase"
)

type repositories struct {
	players   player.Repository
	weeks     week.Repository
	rosters   fantasy.Repository
	stats     playerstats.Repository
	scores    scoring.Repository
	transfers transfer.Repository
}

type publisher interface {
	usecase.EventPublisher
	Close() error
}

// NewHTTPServer wires storage, events and services into the API server. The
// returned cleanup releases the database and broker connections.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	repos, closeRepos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, closeRepos)

	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		repos.stats = cacherepo.NewPlayerStatsRepository(repos.stats, store)
		repos.scores = cacherepo.NewScoreRepository(repos.scores, store)
		logger.Info("repository cache enabled", "ttl", cfg.CacheTTL.String())
	}

	scoringRules := scoring.DefaultRules()
	if cfg.ScoringRulesPath != "" {
		scoringRules, err = scoring.LoadRulesFile(cfg.ScoringRulesPath)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("load scoring rules: %w", err)
		}
		logger.Info("scoring rules loaded", "path", cfg.ScoringRulesPath)
	}

	bus, err := newPublisher(ctx, cfg, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	closers = append(closers, func() {
		if err := bus.Close(); err != nil {
			logger.Warn("close event publisher failed", "error", err)
		}
	})

	ids := idgen.NewUUIDGenerator()
	handler := httpapi.NewHandler(
		usecase.NewRosterService(repos.rosters, repos.players, repos.weeks, repos.transfers, scoringRules.Roster, bus, ids, logger),
		usecase.NewPlayerService(repos.players, idgen.NewUUIDGenerator(idgen.WithPrefix("rl")), logger),
		usecase.NewWeekService(repos.weeks, logger),
		usecase.NewStatsService(repos.weeks, repos.players, repos.stats, scoringRules.SeriesLength, logger),
		usecase.NewScoringService(repos.weeks, repos.rosters, repos.stats, repos.scores, scoringRules, bus, cfg.PublishWorkers, logger),
		usecase.NewLeaderboardService(repos.weeks, repos.scores, logger),
		newScheduleService(cfg, logger),
		logger,
	)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AdminToken:         cfg.AdminToken,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func(), error) {
	if cfg.StorageDriver != config.StoragePostgres {
		logger.Info("using in-memory storage")
		return repositories{
			players:   memory.NewPlayerRepository(memory.SeedPlayers()),
			weeks:     memory.NewWeekRepository(),
			rosters:   memory.NewRosterRepository(),
			stats:     memory.NewPlayerStatsRepository(),
			scores:    memory.NewScoreRepository(),
			transfers: memory.NewTransferRepository(),
		}, func() {}, nil
	}

	db, err := postgres.Open(ctx, postgres.OpenConfig{
		URL:                         cfg.DBURL,
		DisablePreparedBinaryResult: cfg.DBDisablePreparedBinary,
	})
	if err != nil {
		return repositories{}, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Warn("close postgres failed", "error", err)
		}
	}

	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		closeDB()
		return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
	}
	logger.Info("using postgres storage", "db_name", postgres.DatabaseName(cfg.DBURL))

	return postgresRepositories(db), closeDB, nil
}

func postgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		players:   postgres.NewPlayerRepository(db),
		weeks:     postgres.NewWeekRepository(db),
		rosters:   postgres.NewRosterRepository(db),
		stats:     postgres.NewPlayerStatsRepository(db),
		scores:    postgres.NewScoreRepository(db),
		transfers: postgres.NewTransferRepository(db),
	}
}

func newPublisher(ctx context.Context, cfg config.Config, logger *logging.Logger) (publisher, error) {
	if !cfg.NATSEnabled {
		return events.NewNoopPublisher(logger), nil
	}

	natsCfg := events.DefaultNATSConfig()
	natsCfg.URL = cfg.NATSURL
	natsCfg.StreamName = cfg.NATSStreamName
	natsCfg.SubjectPrefix = cfg.NATSSubjectPrefix
	natsCfg.PublishTimeout = cfg.NATSPublishTimeout

	pub, err := events.NewNATSPublisher(ctx, natsCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create nats publisher: %w", err)
	}
	logger.Info("nats publisher enabled", "stream", natsCfg.StreamName, "subject_prefix", natsCfg.SubjectPrefix)
	return pub, nil
}

func newScheduleService(cfg config.Config, logger *logging.Logger) *usecase.ScheduleService {
	if !cfg.LiquipediaEnabled {
		return usecase.NewScheduleService(nil, nil, logger)
	}

	client := liquipedia.NewClient(liquipedia.ClientConfig{
		BaseURL:   cfg.LiquipediaBaseURL,
		Page:      cfg.LiquipediaPage,
		UserAgent: cfg.LiquipediaUserAgent,
		Timeout:   cfg.LiquipediaTimeout,
		Logger:    logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.LiquipediaCircuitEnabled,
			FailureThreshold: cfg.LiquipediaCircuitFailureCount,
			OpenTimeout:      cfg.LiquipediaCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.LiquipediaCircuitHalfOpenMaxReq,
		},
	})
	return usecase.NewScheduleService(client, cache.NewStore(cfg.LiquipediaCacheTTL), logger)
}
