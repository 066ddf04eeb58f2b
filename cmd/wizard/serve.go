package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-dashboard-wizard/internal/ai"
	"go-dashboard-wizard/internal/api"
	"go-dashboard-wizard/internal/session"
	"go-dashboard-wizard/internal/store"
	"go-dashboard-wizard/pkg/router"
	"go-dashboard-wizard/pkg/utils"
)

var flagListenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the wizard HTTP backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		if flagListenAddr != "" {
			c.ListenAddr = flagListenAddr
		}

		logger, err := zap.NewProduction()
		if err != nil {
			return err
		}
		defer logger.Sync()
		sugar := logger.Sugar()

		if err := store.InitDB(c.DBPath); err != nil {
			return err
		}

		uploads := utils.NewUploadManager(c.UploadsDir)
		if err := uploads.EnsureBaseDirExists(); err != nil {
			return err
		}

		svc := ai.NewClient(ai.ClientOptions{
			APIKey:      c.AIAPIKey,
			BaseURL:     c.AIBaseURL,
			Model:       c.AIModel,
			HTTPTimeout: c.HTTPTimeout(),
			RetryMax:    c.RetryMaxAttempts,
			BaseDelay:   c.RetryBaseDelay(),
			MaxDelay:    c.RetryMaxDelay(),
		})

		manager := session.NewManager(svc, uploads, c.PageSize, sugar)

		r := router.New()
		api.RegisterRoutes(r, manager)

		sugar.Infow("starting server", "addr", c.ListenAddr)
		return r.Start(c.ListenAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagListenAddr, "listen", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
