package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/courtside/hooprun/internal/config"
	"github.com/courtside/hooprun/internal/domain/court"
	"github.com/courtside/hooprun/internal/domain/notification"
	"github.com/courtside/hooprun/internal/domain/order"
	"github.com/courtside/hooprun/internal/domain/post"
	"github.com/courtside/hooprun/internal/domain/product"
	"github.com/courtside/hooprun/internal/domain/profile"
	"github.com/courtside/hooprun/internal/domain/roster"
	"github.com/courtside/hooprun/internal/domain/run"
	"github.com/courtside/hooprun/internal/infrastructure/account/courtpass"
	"github.com/courtside/hooprun/internal/infrastructure/push"
	cacherepo "github.com/courtside/hooprun/internal/infrastructure/repository/cache"
	"github.com/courtside/hooprun/internal/infrastructure/repository/memory"
	"github.com/courtside/hooprun/internal/infrastructure/repository/postgres"
	"github.com/courtside/hooprun/internal/interfaces/httpapi"
	basecache "github.com/courtside/hooprun/internal/platform/cache"
	idgen "github.com/courtside/hooprun/internal/platform/id"
	"github.com/courtside/hooprun/internal/platform/logging"
	"github.com/courtside/hooprun/internal/platform/resilience"
	"github.com/courtside/hooprun/internal/usecase"
)

type repositories struct {
	courts        court.Repository
	profiles      profile.Repository
	runs          run.Repository
	joinedRuns    roster.Repository
	orders        order.Repository
	products      product.Repository
	posts         post.Repository
	notifications notification.Repository
}

// NewHTTPServer wires the whole service and returns the server plus a
// cleanup that releases the dispatcher pool and the database handle.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, db, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.courts = cacherepo.NewCourtRepository(repos.courts, store)
		repos.profiles = cacherepo.NewProfileRepository(repos.profiles, store)
		repos.products = cacherepo.NewProductRepository(repos.products, store)
	}

	var pushSender usecase.PushSender
	if cfg.PushEnabled {
		pushSender = push.NewClient(push.ClientConfig{
			BaseURL: cfg.PushBaseURL,
			APIKey:  cfg.PushAPIKey,
			Retries: cfg.PushRetries,
			Timeout: cfg.PushTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.PushCircuitEnabled,
				FailureThreshold: cfg.PushCircuitFailureCount,
				OpenTimeout:      cfg.PushCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.PushCircuitHalfOpenMax,
			},
		}, logger)
	} else {
		logger.Info("push delivery disabled", "reason", "PUSH_ENABLED=false")
	}

	ids := idgen.NewRandomGenerator()
	dispatcher, err := usecase.NewNotificationDispatcher(repos.notifications, pushSender, ids, logger, cfg.NotificationPoolSize)
	if err != nil {
		return nil, nil, fmt.Errorf("build notification dispatcher: %w", err)
	}

	runSvc := usecase.NewRunService(repos.runs, repos.courts, repos.profiles, repos.joinedRuns, dispatcher, ids, logger)
	rosterSvc := usecase.NewRosterService(repos.joinedRuns, repos.runs, repos.profiles, repos.orders, dispatcher, ids, logger)
	courtSvc := usecase.NewCourtService(repos.courts, ids, logger)
	profileSvc := usecase.NewProfileService(repos.profiles, logger)
	productSvc := usecase.NewProductService(repos.products, repos.orders, logger)
	postSvc := usecase.NewPostService(repos.posts, repos.profiles, ids, logger)
	notificationSvc := usecase.NewNotificationService(repos.notifications, logger)

	verifier := courtpass.NewClient(
		&http.Client{Timeout: cfg.CourtPassTimeout},
		cfg.CourtPassBaseURL,
		cfg.CourtPassIntrospectPath,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.CourtPassCircuitEnabled,
			FailureThreshold: cfg.CourtPassCircuitFailureCount,
			OpenTimeout:      cfg.CourtPassCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.CourtPassCircuitHalfOpenMax,
		},
		logger,
	)

	handler := httpapi.NewHandler(runSvc, rosterSvc, courtSvc, profileSvc, productSvc, postSvc, notificationSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	stopSweep := startRunCompletionSweep(runSvc, cfg.RunCompletionInterval, logger)

	cleanup := func(context.Context) error {
		stopSweep()
		dispatcher.Close()
		if db != nil {
			return db.Close()
		}
		return nil
	}

	return server, cleanup, nil
}

// startRunCompletionSweep periodically flips past runs to Completed. The
// internal job endpoint stays available for external schedulers; this loop
// covers deployments without one.
func startRunCompletionSweep(runSvc *usecase.RunService, interval time.Duration, logger *logging.Logger) func() {
	if interval <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				count, err := runSvc.CompletePastRuns(ctx)
				cancel()
				if err != nil {
					logger.Error("run completion sweep failed", "error", err)
					continue
				}
				if count > 0 {
					logger.Info("run completion sweep", "completed", count)
				}
			}
		}
	}()

	return func() { close(done) }
}

// buildRepositories picks the storage backend. With DB_URL set the service
// runs on Postgres; without it everything lives in process memory with demo
// seed data, which is how local development runs.
func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	if cfg.DBURL == "" {
		logger.Info("storage backend", "driver", "memory", "reason", "DB_URL empty")
		orders := memory.NewOrderRepository(nil)
		return repositories{
			courts:        memory.NewCourtRepository(memory.SeedCourts()),
			profiles:      memory.NewProfileRepository(memory.SeedProfiles()),
			runs:          memory.NewRunRepository(memory.SeedRuns(time.Now())),
			joinedRuns:    memory.NewJoinedRunRepository(orders, nil),
			orders:        orders,
			products:      memory.NewProductRepository(memory.SeedProducts()),
			posts:         memory.NewPostRepository(nil),
			notifications: memory.NewNotificationRepository(),
		}, nil, nil
	}

	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dsn, otelsql.WithDBName(dbNameFromURL(cfg.DBURL)))
	if err != nil {
		return repositories{}, nil, fmt.Errorf("connect postgres: %w", err)
	}
	logger.Info("storage backend", "driver", "postgres", "database", dbNameFromURL(cfg.DBURL))

	return repositories{
		courts:        postgres.NewCourtRepository(db),
		profiles:      postgres.NewProfileRepository(db),
		runs:          postgres.NewRunRepository(db),
		joinedRuns:    postgres.NewJoinedRunRepository(db),
		orders:        postgres.NewOrderRepository(db),
		products:      postgres.NewProductRepository(db),
		posts:         postgres.NewPostRepository(db),
		notifications: postgres.NewNotificationRepository(db),
	}, db, nil
}
