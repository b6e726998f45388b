package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/series-points/config"
	"github.com/Dosada05/series-points/db"
	_ "github.com/Dosada05/series-points/docs"
	"github.com/Dosada05/series-points/handlers"
	"github.com/Dosada05/series-points/live"
	"github.com/Dosada05/series-points/metrics"
	"github.com/Dosada05/series-points/middleware"
	"github.com/Dosada05/series-points/repositories"
	"github.com/Dosada05/series-points/routes"
	"github.com/Dosada05/series-points/services"
	"github.com/Dosada05/series-points/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("database_driver", cfg.DatabaseDriver),
		slog.Bool("trust_user_header", cfg.TrustUserHeader),
	)

	dbConn, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if err := db.Migrate(context.Background(), dbConn, cfg.DatabaseDriver); err != nil {
		logger.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database migrations applied")

	// Standings export is optional; without R2 settings the endpoint answers 503.
	var uploader storage.FileUploader
	if cfg.R2Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(context.Background(), storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Warn("R2 storage not configured, standings export disabled")
	}

	hub := live.NewHub(logger)
	go hub.Run()
	defer hub.Stop()
	logger.Info("live hub started")

	metricsManager := metrics.NewManager()

	userRepo := repositories.NewUserRepository(dbConn, cfg.DatabaseDriver)
	seriesRepo := repositories.NewSeriesRepository(dbConn)
	teamRepo := repositories.NewTeamRepository(dbConn)
	roundRepo := repositories.NewRoundRepository(dbConn)
	scoreRepo := repositories.NewScoreRepository(dbConn)
	logger.Info("repositories initialized")

	gate := services.NewAccessGate(userRepo)
	authService := services.NewAuthService(userRepo, []byte(cfg.JWTSecretKey), cfg.TokenTTL)
	userService := services.NewUserService(dbConn, userRepo, teamRepo, gate, logger)
	seriesService := services.NewSeriesService(seriesRepo, gate)
	teamService := services.NewTeamService(teamRepo, seriesRepo, userRepo, gate)
	roundService := services.NewRoundService(roundRepo, seriesRepo, gate)
	scoreService := services.NewScoreService(scoreRepo, roundRepo, teamRepo, userRepo, gate, hub, logger)
	standingsService := services.NewStandingsService(scoreRepo, roundRepo, seriesRepo, gate, uploader, logger)
	logger.Info("services initialized")

	seeded, err := userService.EnsureBootstrapScorer(context.Background(), cfg.BootstrapScorerName, cfg.BootstrapScorerPassword)
	if err != nil {
		logger.Error("failed to seed bootstrap scorer", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("bootstrap scorer ready", slog.Int("user_id", seeded.ID))

	router := chi.NewRouter()
	routes.SetupRoutes(router, routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		User:      handlers.NewUserHandler(userService, metricsManager),
		Series:    handlers.NewSeriesHandler(seriesService),
		Team:      handlers.NewTeamHandler(teamService, userService),
		Round:     handlers.NewRoundHandler(roundService),
		Score:     handlers.NewScoreHandler(scoreService, metricsManager),
		Standings: handlers.NewStandingsHandler(standingsService, metricsManager),
		WebSocket: handlers.NewWebSocketHandler(hub, seriesService, cfg.CORSAllowedOrigins, logger),
		Health:    handlers.NewHealthHandler(dbConn),
	}, routes.Options{
		Authenticator:  middleware.NewAuthenticator([]byte(cfg.JWTSecretKey), cfg.TrustUserHeader),
		Metrics:        metricsManager,
		Logger:         logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
