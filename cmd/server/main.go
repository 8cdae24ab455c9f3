package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"visit-route-service/internal/adapters/cache"
	"visit-route-service/internal/adapters/repositories"
	"visit-route-service/internal/api"
	"visit-route-service/internal/config"
	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/db"
	"visit-route-service/internal/platform/obs"
	"visit-route-service/internal/ports"
	"visit-route-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres directory, Redis cache) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	logger, err := obs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := repositories.InitSchema(conn); err != nil {
		logger.Fatal("init schema", zap.Error(err))
	}
	if err := repositories.SeedFromJSON(conn, cfg.SeedPath); err != nil {
		logger.Fatal("seed directory", zap.Error(err))
	}

	polygon, err := config.LoadCoveragePolygon(cfg.CoveragePath)
	if err != nil {
		logger.Fatal("load coverage polygon", zap.Error(err))
	}

	table := services.DefaultCapabilityTable()
	if cfg.CapabilityPath != "" {
		table, err = services.LoadCapabilityTable(cfg.CapabilityPath)
		if err != nil {
			logger.Fatal("load capability table", zap.Error(err))
		}
	}

	// The schedule cache is optional: without REDIS_ADDR every agenda
	// request recomputes from the directory snapshot.
	var scheduleCache ports.ScheduleCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer func() { _ = client.Close() }()
		scheduleCache = cache.NewRedisScheduleCache(client)
	}

	router := api.NewRouter(api.Dependencies{
		Patients: repositories.NewPostgresPatientRepository(conn),
		Staff:    repositories.NewPostgresStaffRepository(conn),
		Notes:    repositories.NewPostgresNoteRepository(conn),
		Store:    repositories.NewPostgresAssignmentRepository(conn),
		Cache:    scheduleCache,
		CacheTTL: cfg.ScheduleCacheTTL,
		Polygon:  polygon,
		Programs: domain.DefaultPrograms,
		Table:    table,
		Logger:   logger,
	})

	logger.Info("server listening", zap.String("addr", ":"+cfg.Port))
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
