package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"mathboard/internal/auth"
	"mathboard/internal/config"
	"mathboard/internal/handler"
	"mathboard/internal/middleware"
	"mathboard/internal/repository/postgres"
	"mathboard/internal/service"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logOut := io.Writer(os.Stdout)
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = logFile
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Token verifier for the identity provider's JWKS endpoint
	verifier, err := auth.NewJWKSVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create token verifier: %v", err)
	}
	defer verifier.Close()

	// pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	discussionRepo := postgres.NewDiscussionRepository(repoConfig)
	operationRepo := postgres.NewOperationRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Services
	discussionService := service.NewDiscussionService(discussionRepo, operationRepo, logger)
	operationService := service.NewOperationService(discussionRepo, operationRepo, txManager, logger)
	chainService := service.NewChainService(operationRepo, logger)

	// Handlers
	discussionHandler := handler.NewDiscussionHandler(discussionService, logger)
	operationHandler := handler.NewOperationHandler(operationService, chainService, logger)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ method patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", discussionHandler.HealthCheck)

	// Discussion routes
	mux.HandleFunc("GET /api/discussions", discussionHandler.ListDiscussions)
	mux.HandleFunc("POST /api/discussions", discussionHandler.CreateDiscussion)
	mux.HandleFunc("GET /api/discussions/{id}", discussionHandler.GetDiscussion)
	mux.HandleFunc("PATCH /api/discussions/{id}", discussionHandler.UpdateDiscussion)

	// Per-discussion operation listings
	mux.HandleFunc("GET /api/discussions/{id}/operations", operationHandler.ListByDiscussion)
	mux.HandleFunc("GET /api/discussions/{id}/operations/count", operationHandler.CountByDiscussion)

	// Operation routes
	mux.HandleFunc("POST /api/operations", operationHandler.CreateOperation)
	mux.HandleFunc("GET /api/operations/{id}", operationHandler.GetOperation)
	mux.HandleFunc("GET /api/operations/{id}/children", operationHandler.ListChildren)
	mux.HandleFunc("GET /api/operations/{id}/chain", operationHandler.GetChain)

	// Middleware chain, applied in reverse order (they wrap each other)
	var h http.Handler = mux
	h = middleware.Auth(verifier)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
