package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/vantage-crm/vantage-crm/internal/app"
	"github.com/vantage-crm/vantage-crm/internal/auth"
	"github.com/vantage-crm/vantage-crm/internal/authz"
	"github.com/vantage-crm/vantage-crm/internal/crm/accounts"
	"github.com/vantage-crm/vantage-crm/internal/crm/contacts"
	"github.com/vantage-crm/vantage-crm/internal/crm/demos"
	"github.com/vantage-crm/vantage-crm/internal/crm/notes"
	"github.com/vantage-crm/vantage-crm/internal/crm/opportunities"
	"github.com/vantage-crm/vantage-crm/internal/leaderboard"
	"github.com/vantage-crm/vantage-crm/internal/observability"
	"github.com/vantage-crm/vantage-crm/internal/platform/cache"
	"github.com/vantage-crm/vantage-crm/internal/platform/db"
	"github.com/vantage-crm/vantage-crm/internal/users"
	"github.com/vantage-crm/vantage-crm/internal/view"
	"github.com/vantage-crm/vantage-crm/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, caching disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	tokens := auth.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL)
	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo, tokens)
	authHandler := auth.NewHandler(logger, authService)
	authMiddleware := &auth.Middleware{Tokens: tokens, Logger: logger}

	accountsRepo := accounts.NewRepository(dbpool)
	accountsService := accounts.NewService(accountsRepo)
	accountsHandler := accounts.NewHandler(logger, accountsService)

	contactsRepo := contacts.NewRepository(dbpool)
	contactsService := contacts.NewService(contactsRepo)
	contactsHandler := contacts.NewHandler(logger, contactsService)

	demosRepo := demos.NewRepository(dbpool)
	demosService := demos.NewService(demosRepo)
	demosHandler := demos.NewHandler(logger, demosService)

	notesRepo := notes.NewRepository(dbpool)
	notesService := notes.NewService(notesRepo)
	notesHandler := notes.NewHandler(logger, notesService)

	opportunitiesRepo := opportunities.NewRepository(dbpool)
	opportunitiesService := opportunities.NewService(opportunitiesRepo)
	opportunitiesHandler := opportunities.NewHandler(logger, opportunitiesService)

	usersRepo := users.NewRepository(dbpool)
	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(logger, usersService)

	leaderboardRepo := leaderboard.NewRepository(dbpool)
	leaderboardService := leaderboard.NewService(leaderboardRepo, redisClient, logger, cfg.LeaderboardTTL)
	leaderboardHandler := leaderboard.NewHandler(logger, leaderboardService)

	registry := authz.NewRegistry()
	registry.Register(authz.EntityNote, notes.NewOwnershipLoader(notesRepo))
	registry.Register(authz.EntityOpportunity, opportunities.NewOwnershipLoader(opportunitiesRepo))
	evaluator := authz.NewEvaluator(registry, logger, metrics)
	owner := authz.Middleware{Evaluator: evaluator}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	queueClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init queue client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := queueClient.Close(); err != nil {
			logger.Warn("queue client close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, queueClient, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:               logger,
		Config:               cfg,
		Templates:            templates,
		AuthMiddleware:       authMiddleware,
		Owner:                owner,
		AuthHandler:          authHandler,
		AccountsHandler:      accountsHandler,
		ContactsHandler:      contactsHandler,
		DemosHandler:         demosHandler,
		NotesHandler:         notesHandler,
		OpportunitiesHandler: opportunitiesHandler,
		LeaderboardHandler:   leaderboardHandler,
		UsersHandler:         usersHandler,
		JobsHandler:          jobsHandler,
		Metrics:              metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
