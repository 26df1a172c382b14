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
	_ "github.com/lib/pq"
	"github.com/pooltrack/tournament-api/config"
	"github.com/pooltrack/tournament-api/db"
	_ "github.com/pooltrack/tournament-api/docs"
	"github.com/pooltrack/tournament-api/handlers"
	"github.com/pooltrack/tournament-api/metrics"
	"github.com/pooltrack/tournament-api/repositories"
	api "github.com/pooltrack/tournament-api/routes"
	"github.com/pooltrack/tournament-api/services"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
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

	metricsService := metrics.NewService()

	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	mappingRepo := repositories.NewPostgresMappingRepository(dbConn)
	logger.Info("repositories initialized")

	mappingService := services.NewMappingService(mappingRepo, playerRepo, tournamentRepo, logger)
	playerService := services.NewPlayerService(playerRepo, mappingService)
	tournamentService := services.NewTournamentService(tournamentRepo, mappingRepo, mappingService)
	logger.Info("services initialized")

	playerHandler := handlers.NewPlayerHandler(playerService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	mappingHandler := handlers.NewMappingHandler(mappingService)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		playerHandler,
		tournamentHandler,
		mappingHandler,
		metricsService,
	)
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
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
