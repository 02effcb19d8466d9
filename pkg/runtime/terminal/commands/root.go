// Package commands wires the report subcommands of the customs-atlas CLI.
package commands

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/customs-atlas/pkg/export"
	"github.com/de-tools/customs-atlas/pkg/export/excel"
	"github.com/de-tools/customs-atlas/pkg/export/terminal"
	"github.com/de-tools/customs-atlas/pkg/services/config"
	"github.com/de-tools/customs-atlas/pkg/services/kpi"
	"github.com/de-tools/customs-atlas/pkg/services/report"
	"github.com/de-tools/customs-atlas/pkg/store/postgres"
	"github.com/de-tools/customs-atlas/pkg/store/postgres/declarations"
)

// reportCmd holds the flags shared by every report subcommand.
type reportCmd struct {
	profilePath string
	output      string
	year        string
	threshold   float64
	console     io.Writer
}

func (rc *reportCmd) bindFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&rc.profilePath, "config", "customs-atlas.yaml", "Path to the configuration profile")
	cmd.Flags().StringVar(&rc.output, "output", "", "Output workbook path; prints to the console when empty")
	cmd.Flags().StringVar(&rc.year, "year", "", "Override the 2-digit minimum declaration year, e.g. 23")
	cmd.Flags().Float64Var(&rc.threshold, "threshold", 0, "Override the undervaluation ratio threshold, e.g. 1.3")
}

// session is an open analysis run: a live DB connection plus the
// assembler built on it.
type session struct {
	db        *sql.DB
	assembler *report.Assembler
}

func (s *session) Close() error {
	return s.db.Close()
}

func (rc *reportCmd) open(ctx context.Context) (*session, error) {
	cfg, err := config.Load(rc.profilePath)
	if err != nil {
		return nil, err
	}

	settings := kpi.Settings{
		YearFilter:              cfg.Analysis.YearFilter,
		UndervalThreshold:       cfg.Analysis.UndervalThreshold,
		MinObservations:         cfg.Analysis.MinObservations,
		MinImporterObservations: cfg.Analysis.MinImporterObservations,
		Weights:                 cfg.Weights(),
		VolumeTiers:             cfg.VolumeTiers(),
		GradeBands:              cfg.GradeBands(),
	}
	if rc.year != "" {
		settings.YearFilter = rc.year
	}
	if rc.threshold > 0 {
		settings.UndervalThreshold = rc.threshold
	}

	db, err := postgres.NewDB(ctx, postgres.Settings{DSN: cfg.Database.DSN})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to declarations database: %w", err)
	}

	store, err := declarations.NewStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	calc, err := kpi.NewCalculator(store, settings)
	if err != nil {
		db.Close()
		return nil, err
	}
	assembler, err := report.NewAssembler(calc)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &session{db: db, assembler: assembler}, nil
}

func (rc *reportCmd) renderer(ctx context.Context) (export.Renderer, error) {
	if rc.output == "" {
		return terminal.NewReporter(rc.console), nil
	}
	r, err := excel.NewRenderer(rc.output)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().Str("output", rc.output).Msg("rendering workbook")
	return r, nil
}
