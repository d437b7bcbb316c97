package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/alpengrip/cruxsync/internal/config"
	"github.com/alpengrip/cruxsync/internal/database"
	"github.com/alpengrip/cruxsync/internal/handlers"
	"github.com/alpengrip/cruxsync/internal/logger"
	"github.com/alpengrip/cruxsync/internal/remote"
	"github.com/alpengrip/cruxsync/internal/repositories"
	"github.com/alpengrip/cruxsync/internal/services"
	"github.com/alpengrip/cruxsync/internal/worker"
)

func main() {
	ctx := context.Background()

	godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Initialize database connections
	postgresPool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create postgres pool: %v", err)
	}
	defer postgresPool.Close()

	if err := database.InitSchema(ctx, postgresPool); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to create redis client: %v", err)
	}
	defer redisClient.Close()

	// Repositories
	gymRepo := repositories.NewPostgresGymRepository(postgresPool)
	wallRepo := repositories.NewPostgresSpraywallRepository(postgresPool)
	boulderRepo := repositories.NewPostgresBoulderRepository(postgresPool)
	accountRepo := repositories.NewPostgresAccountRepository(postgresPool)
	sessionRepo := repositories.NewRedisSessionRepository(redisClient)
	lockRepo := repositories.NewRedisSyncLockRepository(redisClient)

	// Services
	source := remote.NewClient(cfg.RemoteBaseURL, cfg.RemoteToken)
	syncService := services.NewSyncService(gymRepo, wallRepo, boulderRepo, lockRepo, source)
	evictionService := services.NewEvictionService(gymRepo)
	authService := services.NewAuthService(accountRepo, sessionRepo, cfg.JWTSecret, cfg.JWTExpiry)

	// Background eviction
	evictionWorker := worker.NewEvictionWorker(evictionService, cfg.EvictionInterval, cfg.RetentionWindow)
	evictionWorker.Start(ctx)
	defer evictionWorker.Stop()

	// HTTP server
	handler := handlers.NewHandler(authService, syncService, evictionService, gymRepo, wallRepo, boulderRepo, cfg.RetentionWindow)
	router := handlers.NewRouter(handler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	// graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server stopped gracefully")
}
