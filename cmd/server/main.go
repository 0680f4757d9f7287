package main

import (
	"alcyxob/virtual-coach/internal/api"
	"alcyxob/virtual-coach/internal/config"
	"alcyxob/virtual-coach/internal/logger"
	"alcyxob/virtual-coach/internal/oracle"
	"alcyxob/virtual-coach/internal/repository"
	"alcyxob/virtual-coach/internal/repository/mongo"
	"alcyxob/virtual-coach/internal/repository/sqlstore"
	"alcyxob/virtual-coach/internal/service"
	"alcyxob/virtual-coach/internal/storage"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title Virtual Coach API
// @version 1.0
// @description Onboarding assessment and weekly swim/run plan generation.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "error", err)
	}
	log.Info("Starting Virtual Coach server...", "driver", cfg.Database.Driver, "model", cfg.Gemini.Model)

	ctx := context.Background()

	// --- Database Connection ---
	store, closeStore, err := openStore(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("could not open database", "error", err)
	}
	defer closeStore()

	// --- Initialize Storage ---
	fileStorage := storage.NewPassThroughStorage()
	if cfg.S3.Enabled() {
		if fileStorage, err = storage.NewS3Storage(ctx, cfg.S3, log); err != nil {
			log.Fatal("failed to initialize S3 storage", "error", err)
		}
	}

	// --- Model client ---
	gemini, err := oracle.NewGeminiClient(ctx, cfg.Gemini)
	if err != nil {
		log.Fatal("failed to initialize Gemini client", "error", err)
	}

	// --- Initialize Services ---
	planService := service.NewPlanService(service.PlanServiceDeps{
		Store:     store,
		Generator: oracle.NewPlanOracle(gemini, log),
		Exercises: service.NewExerciseCatalog(store.Exercises, fileStorage, cfg.S3.URLExpiry, log),
		Timeout:   cfg.Gemini.Timeout,
	}, log)
	assessmentService := service.NewAssessmentService(store, oracle.NewAssessmentOracle(gemini, log), log)

	// --- Initialize Gin Engine ---
	if cfg.Log.Mode == "production" || cfg.Log.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(log, cfg.Server.CORSOrigins)
	api.SetupRoutes(router, cfg.JWT.Secret, planService, assessmentService, log)

	// --- Start HTTP Server ---
	writeTimeout := cfg.Server.WriteTimeout
	if floor := cfg.Gemini.Timeout + 10*time.Second; writeTimeout < floor {
		// Plan generation must be able to answer after the model call times out.
		writeTimeout = floor
	}
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  120 * time.Second,
	}

	log.Info("Server starting", "address", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ListenAndServe error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("Server exiting.")
}

// openStore connects the configured backend and returns its repositories.
func openStore(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*repository.Store, func(), error) {
	switch cfg.Driver {
	case "mongo":
		client, err := mongo.ConnectDB(ctx, cfg.URI)
		if err != nil {
			return nil, nil, err
		}
		appDB := client.Database(cfg.Name)

		indexCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(indexCtx, appDB); err != nil {
			_ = mongo.DisconnectDB(client)
			return nil, nil, err
		}
		log.Info("MongoDB connection established", "database", cfg.Name)
		return mongo.NewStore(appDB), func() {
			if err := mongo.DisconnectDB(client); err != nil {
				log.Error("failed to disconnect MongoDB", "error", err)
			}
		}, nil
	default:
		db, err := sqlstore.Open(ctx, cfg.Driver, cfg.URI)
		if err != nil {
			return nil, nil, err
		}
		log.Info("SQL database connection established", "driver", cfg.Driver)
		return sqlstore.NewStore(db), func() {
			if err := db.Close(); err != nil {
				log.Error("failed to close database", "error", err)
			}
		}, nil
	}
}
