package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"go-dashboard-wizard/internal/ai"
	"go-dashboard-wizard/internal/api"
	"go-dashboard-wizard/internal/config"
	"go-dashboard-wizard/internal/session"
	"go-dashboard-wizard/internal/store"
	"go-dashboard-wizard/pkg/router"
	"go-dashboard-wizard/pkg/utils"
)

// @title Dashboard Wizard API
// @version 1.0
// @description Upload tabular data, clean it with an AI collaborator, review the removals, and generate a dashboard.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	cfgFile := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	// Init DB
	if err := store.InitDB(cfg.DBPath); err != nil {
		sugar.Fatalw("database init failed", "path", cfg.DBPath, "error", err)
	}

	uploads := utils.NewUploadManager(cfg.UploadsDir)
	if err := uploads.EnsureBaseDirExists(); err != nil {
		sugar.Fatalw("uploads dir init failed", "dir", cfg.UploadsDir, "error", err)
	}

	svc := ai.NewClient(ai.ClientOptions{
		APIKey:      cfg.AIAPIKey,
		BaseURL:     cfg.AIBaseURL,
		Model:       cfg.AIModel,
		HTTPTimeout: cfg.HTTPTimeout(),
		RetryMax:    cfg.RetryMaxAttempts,
		BaseDelay:   cfg.RetryBaseDelay(),
		MaxDelay:    cfg.RetryMaxDelay(),
	})

	manager := session.NewManager(svc, uploads, cfg.PageSize, sugar)

	// Create router
	r := router.New()

	// Register API routes
	api.RegisterRoutes(r, manager)

	sugar.Infow("starting server", "addr", cfg.ListenAddr)
	if err := r.Start(cfg.ListenAddr); err != nil {
		sugar.Fatalw("server stopped", "error", err)
	}
}
