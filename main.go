package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hitrate-app-go/config"
	"hitrate-app-go/database"
	"hitrate-app-go/handlers"
	"hitrate-app-go/logging"
	"hitrate-app-go/middleware"
	"hitrate-app-go/services"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Configure(logging.Config{
		Level:       cfg.Logging.Level,
		Output:      os.Stdout,
		Prefix:      cfg.Logging.Prefix,
		EnableColor: cfg.Logging.EnableColor,
	})
	cfg.LogConfiguration()

	// Database
	db, err := database.NewMongoConnection(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		Database: cfg.Database.Database,
	})
	if err != nil {
		logging.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	// Cache is optional: a nil CacheService disables it.
	var cache *services.CacheService
	if cfg.IsCacheConfigured() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Address,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			logging.Warnf("Redis unavailable, caching disabled: %v", err)
		} else {
			cache = services.NewCacheService(client, cfg.Cache.TTL)
			logging.Infof("Cache enabled at %s", cfg.Cache.Address)
		}
	}

	// Repositories
	gameLogRepo := database.NewMongoGameLogRepository(db)
	teamTotalsRepo := database.NewMongoTeamTotalsRepository(db)
	userRepo := database.NewMongoUserRepository(db)

	// Services
	dataLoader := services.NewDataLoaderService(cfg.Feeds.DataDir, gameLogRepo, teamTotalsRepo)
	scheduleService := services.NewScheduleService(cfg.Feeds.ScheduleBaseURL)
	injuryService := services.NewInjuryService(cfg.Feeds.InjuryBaseURL)
	summaryService := services.NewSummaryService(gameLogRepo, teamTotalsRepo, scheduleService, injuryService, cache)
	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret)

	// Initial feed ingest
	logging.Infof("Loading feeds for leagues: %v", cfg.App.Leagues)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	if err := dataLoader.LoadAll(ctx, cfg.App.Leagues); err != nil {
		logging.Warnf("Initial feed load had errors: %v", err)
	}
	cancel()

	// Background refresh
	if cfg.IsRefreshEnabled() {
		refresher, err := services.NewRefresherService(dataLoader, cache, cfg.App.Leagues, cfg.Feeds.RefreshInterval)
		if err != nil {
			logging.Fatalf("Failed to create refresher: %v", err)
		}
		if err := refresher.Start(); err != nil {
			logging.Fatalf("Failed to start refresher: %v", err)
		}
		defer refresher.Stop()
	}

	// Handlers and routes
	authHandler := handlers.NewAuthHandler(authService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	healthHandler := handlers.NewHealthHandler(db)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	r := mux.NewRouter()
	r.Use(middleware.SecurityMiddleware)

	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.HandleFunc("/api/login", authHandler.Login).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.RequireAuth)
	api.HandleFunc("/{league}/hitrates", summaryHandler.GetHitRates).Methods("GET")

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Infof("Server starting on %s", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logging.Info("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Errorf("Server shutdown: %v", err)
	}
}
