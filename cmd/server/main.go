package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wayfarer-app/wayfarer/internal/api"
	"github.com/wayfarer-app/wayfarer/internal/auth"
	"github.com/wayfarer-app/wayfarer/internal/config"
	"github.com/wayfarer-app/wayfarer/internal/core"
	"github.com/wayfarer-app/wayfarer/internal/store"
)

func main() {
	log.Logger = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	// Initialize database store
	dbStore, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer dbStore.Close()

	profileStore := store.NewProfileStore(cfg.DataDir)

	safetyRecords, err := store.LoadSafetyRecords(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load safety database")
	}
	stays, err := store.LoadStays(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load stays catalogue")
	}

	// AI engine: connectivity probe plus the two completion tiers.
	probe := core.NewConnectivityProbe(cfg.ProbeAddr, cfg.ProbeTimeout)
	remote, err := core.NewRemoteProvider(context.Background(), cfg.GeminiAPIKey, cfg.RemoteModel, cfg.RemoteTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize remote provider")
	}
	defer remote.Close()
	local := core.NewLocalProvider(cfg.OllamaBinary, cfg.LocalModel, cfg.LocalTimeout)

	analyticsService := core.NewAnalyticsService(dbStore)
	aiService := core.NewAIService(probe, remote, local, analyticsService)

	memoryService := core.NewMemoryService(profileStore, aiService, cfg.DataDir)
	journalService := core.NewJournalService(aiService, dbStore, memoryService)
	safetyService := core.NewSafetyService(aiService, probe, safetyRecords, cfg.GNewsToken)
	weatherService := core.NewWeatherService(probe, cfg.DataDir)
	locationService := core.NewLocationService(probe)

	authManager := auth.NewManager(cfg.JWTSecret)

	apiHandler := api.NewAPIHandler(
		authManager,
		dbStore,
		aiService,
		journalService,
		memoryService,
		safetyService,
		weatherService,
		locationService,
		analyticsService,
		stays,
	)
	router := api.NewRouter(apiHandler)

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		// The local model tier can legitimately take a minute; write
		// timeouts must outlast it.
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	// Give in-flight AI calls time to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting gracefully")
}
