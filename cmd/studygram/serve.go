package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/studygram/internal/config"
	"github.com/jonathan/studygram/internal/db"
	"github.com/jonathan/studygram/internal/observability"
	"github.com/jonathan/studygram/internal/server"
	"github.com/jonathan/studygram/internal/study"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing document analysis and the study organizer.
Requires JWT_SECRET. Uses PostgreSQL when DATABASE_URL is set and an in-memory
store otherwise.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogDevMode)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	repo, closeRepo, err := openRepository(cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	srv, err := server.New(server.Options{
		Config: cfg,
		Repo:   repo,
		JWT:    jwtConfig,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// openRepository connects to PostgreSQL and applies the schema, or falls back
// to the in-memory store when no database URL is configured
func openRepository(databaseURL string, logger *zap.Logger) (study.Repository, func(), error) {
	if databaseURL == "" {
		logger.Warn("DATABASE_URL is not set; using in-memory storage, data will not survive a restart")
		return study.NewMemoryRepository(), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, nil, err
	}
	logger.Info("connected to database")
	return database, database.Close, nil
}
