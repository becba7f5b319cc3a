package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"

	_ "github.com/lib/pq"

	"github.com/wicketbid/cricket-auction/internal/config"
	"github.com/wicketbid/cricket-auction/internal/domain/auction"
	"github.com/wicketbid/cricket-auction/internal/domain/player"
	"github.com/wicketbid/cricket-auction/internal/domain/team"
	"github.com/wicketbid/cricket-auction/internal/infrastructure/repository/memory"
	"github.com/wicketbid/cricket-auction/internal/infrastructure/repository/postgres"
	"github.com/wicketbid/cricket-auction/internal/interfaces/httpapi"
	idgen "github.com/wicketbid/cricket-auction/internal/platform/id"
	"github.com/wicketbid/cricket-auction/internal/platform/logging"
	"github.com/wicketbid/cricket-auction/internal/usecase"
)

type storageBackend struct {
	playerRepo player.Repository
	teamRepo   team.Repository
	ledger     auction.Ledger
	pinger     httpapi.StoragePinger
	close      func() error
}

// dbPinger lets the health endpoint report a lost database connection. The
// in-memory backend leaves the pinger nil.
type dbPinger struct {
	db *sqlx.DB
}

func (p dbPinger) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// NewHTTPServer wires the configured storage backend into the services and
// returns the API server plus a cleanup callback for the storage resources.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	rules := auction.Rules{
		InitialPurse:   cfg.InitialPurse,
		BasePriceTiers: cfg.BasePriceTiers,
	}
	if err := rules.Validate(); err != nil {
		return nil, nil, fmt.Errorf("auction rules: %w", err)
	}

	backend, err := buildStorageBackend(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	rosterSvc := usecase.NewRosterService(
		backend.playerRepo,
		backend.teamRepo,
		rules,
		idgen.NewRandomGenerator(),
		logger,
	)
	auctionSvc := usecase.NewAuctionService(backend.ledger, backend.playerRepo, logger)
	importSvc := usecase.NewImportService(rosterSvc, cfg.ImportMaxWorkers, logger)

	handler := httpapi.NewHandler(auctionSvc, rosterSvc, importSvc, backend.pinger, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = backend.close()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, backend.close, nil
}

func buildStorageBackend(cfg config.Config, logger *logging.Logger) (storageBackend, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return storageBackend{}, err
		}
		logger.Info("storage backend ready", "driver", cfg.StorageDriver, "db", dbNameFromURL(cfg.DBURL))

		return storageBackend{
			playerRepo: postgres.NewPlayerRepository(db),
			teamRepo:   postgres.NewTeamRepository(db),
			ledger:     postgres.NewLedgerRepository(db),
			pinger:     dbPinger{db: db},
			close:      db.Close,
		}, nil
	default:
		store := memory.NewStore(memory.SeedPlayers(), memory.SeedTeams())
		logger.Info("storage backend ready", "driver", cfg.StorageDriver)

		return storageBackend{
			playerRepo: store,
			teamRepo:   store.TeamRepository(),
			ledger:     store,
			close:      func() error { return nil },
		}, nil
	}
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return db, nil
}
