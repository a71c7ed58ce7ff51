package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/meera/intern-match/internal/config"
	"github.com/meera/intern-match/internal/db"
	"github.com/meera/intern-match/internal/geo"
	"github.com/meera/intern-match/internal/logger"
	"github.com/meera/intern-match/internal/matching"
	"github.com/meera/intern-match/internal/server"
	"github.com/meera/intern-match/internal/similarity"
)

var (
	servePort   int
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the matching, stats, and application endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

// loadConfig assembles the effective configuration: config file values,
// filled from defaults, overridden by environment variables and flags.
func loadConfig() (config.Config, error) {
	cfg := config.Config{}
	if serveConfig != "" {
		loaded, err := config.LoadConfig(serveConfig)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	cfg = cfg.MergeWithDefaults(config.DefaultConfig())

	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.DatabaseURL = url
	}
	if url := os.Getenv("SIMILARITY_SERVICE_URL"); url != "" {
		cfg.SimilarityServiceURL = url
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL environment variable or database_url config value is required")
	}
	return cfg, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	var sim matching.SimilarityScorer
	if cfg.SimilarityServiceURL != "" {
		timeout := time.Duration(cfg.SimilarityTimeoutSeconds) * time.Second
		sim = similarity.NewClient(cfg.SimilarityServiceURL, timeout, log)
	}

	ranker := matching.NewRanker(database, database, database, sim, geo.DefaultGazetteer(), log)

	srv := server.New(server.Config{Port: cfg.Port}, database, ranker, log)
	return srv.Start()
}
