package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SiphoYawe/Laurel-sub000/internal/api"
	"github.com/SiphoYawe/Laurel-sub000/internal/coach"
	"github.com/SiphoYawe/Laurel-sub000/internal/config"
	"github.com/SiphoYawe/Laurel-sub000/internal/db"
	"github.com/SiphoYawe/Laurel-sub000/internal/gamification"
	"github.com/SiphoYawe/Laurel-sub000/internal/logger"
	"github.com/SiphoYawe/Laurel-sub000/internal/repository/sqlite"
	"github.com/SiphoYawe/Laurel-sub000/internal/scheduler"
	"github.com/SiphoYawe/Laurel-sub000/internal/services"
	"github.com/SiphoYawe/Laurel-sub000/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Laurel Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("session_size=%d", cfg.SessionSize)
	log.Debug("default_new_per_day=%d", cfg.DefaultNewPerDay)
	log.Debug("default_reviews_per_day=%d", cfg.DefaultReviewsPerDay)
	log.Debug("rollup_hour_utc=%d", cfg.RollupHourUTC)
	log.Debug("rollup_worker_count=%d", cfg.RollupWorkerCount)
	log.Debug("rollup_queue_size=%d", cfg.RollupQueueSize)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	cardRepo := sqlite.NewCardRepository(database.DB)
	deckRepo := sqlite.NewDeckRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)
	profileRepo := sqlite.NewProfileRepository(database.DB)

	// Background rollup reconciliation
	rollupPool := worker.NewPool(cfg.RollupWorkerCount, cfg.RollupQueueSize)
	sched := scheduler.New(rollupPool, profileRepo, statsRepo)

	// Services
	profileService := services.NewProfileService(profileRepo, gamification.DefaultTable())
	deckService := services.NewDeckService(deckRepo, cfg.DefaultNewPerDay, cfg.DefaultReviewsPerDay)
	cardService := services.NewCardService(cardRepo, deckRepo)
	reviewService := services.NewReviewService(cardRepo, deckRepo, profileRepo, cfg.SessionSize)
	statsService := services.NewStatsService(statsRepo)
	coachService := services.NewCoachService(coach.NewMockProvider())

	srv := &api.Server{
		DB:             database.DB,
		ProfileService: profileService,
		DeckService:    deckService,
		CardService:    cardService,
		ReviewService:  reviewService,
		StatsService:   statsService,
		CoachService:   coachService,
	}

	ctx, cancel := context.WithCancel(context.Background())
	rollupPool.Start(ctx)

	if err := sched.Start(cfg.RollupHourUTC); err != nil {
		log.Error("failed to start scheduler: %v", err)
		os.Exit(1)
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping scheduler")
	sched.Stop()

	log.Debug("stopping worker pool")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("waiting for rollup pool")
	rollupPool.Stop()

	log.Info("===========================================")
	log.Info("Laurel Server Stopped")
	log.Info("===========================================")
}
