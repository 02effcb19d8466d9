package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/customs-atlas/pkg/server"
	"github.com/de-tools/customs-atlas/pkg/services/config"
	"github.com/de-tools/customs-atlas/pkg/services/kpi"
	"github.com/de-tools/customs-atlas/pkg/store/postgres"
	"github.com/de-tools/customs-atlas/pkg/store/postgres/declarations"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the customs-atlas web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "customs-atlas.yaml",
		"Path to the configuration profile")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := postgres.NewDB(ctx, postgres.Settings{DSN: cfg.Database.DSN})
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to declarations database")
		os.Exit(1)
	}
	defer db.Close()

	store, err := declarations.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create declarations store: %w", err)
	}

	calc, err := kpi.NewCalculator(store, kpi.Settings{
		YearFilter:              cfg.Analysis.YearFilter,
		UndervalThreshold:       cfg.Analysis.UndervalThreshold,
		MinObservations:         cfg.Analysis.MinObservations,
		MinImporterObservations: cfg.Analysis.MinImporterObservations,
		Weights:                 cfg.Weights(),
		VolumeTiers:             cfg.VolumeTiers(),
		GradeBands:              cfg.GradeBands(),
	})
	if err != nil {
		return fmt.Errorf("failed to create calculator: %w", err)
	}

	addr := cfg.Server.Addr
	if envAddr := os.Getenv("SERVER_ADDR"); envAddr != "" {
		addr = envAddr
	}

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: 10 * time.Second,
		Dependencies:    server.Dependencies{Calculator: calc},
	})
	return webAPI.Start()
}
