package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"rastreio/internal/cache"
	"rastreio/internal/carrier"
	"rastreio/internal/config"
	"rastreio/internal/correction"
	"rastreio/internal/database"
	"rastreio/internal/detector"
	"rastreio/internal/handlers"
	"rastreio/internal/server"
	"rastreio/internal/validation"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	// Initialize database
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Database initialized at %s", cfg.DBPath)

	// Assemble the detection engine. The shipment store doubles as the
	// history reader for personalized boosting.
	table := carrier.DefaultTable()
	engine := detector.New(table, db.Shipments, logger)
	engine.HistoryLimit = cfg.HistoryLimit
	validator := validation.New(engine, logger)
	suggester := correction.New(engine, logger)

	cacheManager := cache.NewManager(cache.Config{
		TTL:             cfg.CacheTTL,
		CleanupInterval: time.Minute,
		Disabled:        cfg.DisableCache,
	})
	cacheManager.Start()
	defer cacheManager.Close()

	router := server.NewRouter(server.Handlers{
		Detection: handlers.NewDetectionHandler(engine, validator, suggester, cacheManager),
		Carriers:  handlers.NewCarrierHandler(table),
		Shipments: handlers.NewShipmentHandler(db, validator),
		Health:    handlers.NewHealthHandler(db),
	})

	handler := server.Chain(
		router,
		server.LoggingMiddleware,
		server.RecoveryMiddleware,
		server.CORSMiddleware,
		server.ContentTypeMiddleware,
		server.SecurityMiddleware,
	)

	srv := &http.Server{
		Addr:    cfg.Address(),
		Handler: handler,

		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdownTimeout := 30 * time.Second
	if err := server.HandleSignals(srv, shutdownTimeout); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
