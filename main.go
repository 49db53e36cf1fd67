package main

import (
	"context"
	"encoding/json"
	stdlog "log"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/salesfolio/backend/src/config"
	"github.com/username/salesfolio/backend/src/database"
	"github.com/username/salesfolio/backend/src/handlers"
	"github.com/username/salesfolio/backend/src/logger"
	"github.com/username/salesfolio/backend/src/model"
	"github.com/username/salesfolio/backend/src/parsers"
	"github.com/username/salesfolio/backend/src/processors"
	"github.com/username/salesfolio/backend/src/services"
)

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Salesfolio backend server starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	logger.L.Info("Database initialized successfully.")

	salesStore := model.NewSalesStore(database.DB)
	mappingStore := model.NewMappingStore(database.DB)

	if config.Cfg.SeedDataPath != "" {
		if err := model.SeedFromFile(context.Background(), mappingStore, config.Cfg.SeedDataPath); err != nil {
			logger.L.Error("Failed to load seed data", "path", config.Cfg.SeedDataPath, "error", err)
		}
	}

	logger.L.Info("Initializing report cache...")
	reportCache := cache.New(config.Cfg.CacheExpiry, services.CacheCleanupInterval)

	logger.L.Info("Initializing services and handlers...")
	aggregationProcessor := processors.NewAggregationProcessor(
		processors.NewBreakdownProcessor(parsers.LabelRegistries()),
		processors.NewTimeSeriesProcessor(),
	)
	uploadService := services.NewUploadService(
		salesStore, mappingStore,
		processors.NewReconcileProcessor(), aggregationProcessor,
		reportCache,
	)

	uploadHandler := handlers.NewUploadHandler(uploadService)
	metricsHandler := handlers.NewMetricsHandler(uploadService)
	mappingHandler := handlers.NewMappingHandler(mappingStore, uploadService)

	logger.L.Info("Configuring routes...")
	rootMux := http.NewServeMux()
	apiRouter := http.NewServeMux()

	apiRouter.HandleFunc("POST /api/upload/{platform}", uploadHandler.HandleUpload)
	apiRouter.HandleFunc("GET /api/metrics/{platform}", metricsHandler.HandleGetMetrics)
	apiRouter.HandleFunc("GET /api/mappings/{platform}", mappingHandler.HandleGetCodeMappings)
	apiRouter.HandleFunc("PUT /api/mappings/{platform}", mappingHandler.HandlePutCodeMappings)
	apiRouter.HandleFunc("POST /api/province-aliases", mappingHandler.HandleAddProvinceAliases)

	rootMux.Handle("/api/", apiRouter)

	rootMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"message": "Salesfolio backend is running"})
		} else if !strings.HasPrefix(r.URL.Path, "/api/") {
			logger.L.Warn("Root level path not found", "method", r.Method, "path", r.URL.Path)
			http.NotFound(w, r)
		}
	})

	logger.L.Info("Applying global middleware...")
	limiter := handlers.NewRateLimiter(float64(config.Cfg.RateLimitRPS), int(config.Cfg.RateLimitBurst))
	finalHandler := handlers.RequestLogger(
		handlers.CORSMiddleware(config.Cfg.AllowedOrigins)(limiter.Middleware(rootMux)))

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      finalHandler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}
