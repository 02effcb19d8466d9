package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/de-tools/customs-atlas/pkg/models/domain"
)

// NewRevenueCmd reports revenue trends, concentration and composition.
func NewRevenueCmd(console io.Writer) *cobra.Command {
	rc := &reportCmd{console: console}
	cmd := &cobra.Command{
		Use:   "revenue",
		Short: "Generate the customs revenue analysis report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rc.run(cmd.Context(), func(ctx context.Context, s *session) (*domain.Report, error) {
				return s.assembler.Revenue(ctx)
			})
		},
	}
	rc.bindFlags(cmd)
	return cmd
}

// NewAnomalyCmd reports undervaluation, misclassification and risk scores.
func NewAnomalyCmd(console io.Writer) *cobra.Command {
	rc := &reportCmd{console: console}
	cmd := &cobra.Command{
		Use:   "anomaly",
		Short: "Generate the anomaly detection report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rc.run(cmd.Context(), func(ctx context.Context, s *session) (*domain.Report, error) {
				return s.assembler.Anomaly(ctx)
			})
		},
	}
	rc.bindFlags(cmd)
	return cmd
}

// NewScorecardCmd evaluates the KPI scorecard.
func NewScorecardCmd(console io.Writer) *cobra.Command {
	rc := &reportCmd{console: console}
	cmd := &cobra.Command{
		Use:   "scorecard",
		Short: "Evaluate KPIs against WCO PMM benchmarks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rc.run(cmd.Context(), func(ctx context.Context, s *session) (*domain.Report, error) {
				return s.assembler.Scorecard(ctx)
			})
		},
	}
	rc.bindFlags(cmd)
	return cmd
}

func (rc *reportCmd) run(ctx context.Context, assemble func(context.Context, *session) (*domain.Report, error)) error {
	s, err := rc.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	rep, err := assemble(ctx, s)
	if err != nil {
		return err
	}

	renderer, err := rc.renderer(ctx)
	if err != nil {
		return err
	}
	return renderer.Render(ctx, rep)
}
