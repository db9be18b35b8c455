package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vialabel/vialcad/internal/output"
	"github.com/vialabel/vialcad/printcheck"
)

func newValidateCmd() *cobra.Command {
	var (
		flagStructural bool
		flagTimeout    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "validate <mesh.stl>...",
		Short: "Check exported meshes for printability",
		Long: `validate runs the manifold, wall thickness and overhang checks against
each mesh. All meshes and all checks are always attempted; the command exits
non-zero if any check did not pass.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limits := printcheck.DefaultLimits()
			if flagStructural {
				limits = printcheck.StructuralLimits()
			}
			ctx := cmd.Context()
			if flagTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, flagTimeout)
				defer cancel()
			}
			reports, err := printcheck.ValidateFiles(ctx, args, limits)
			if err != nil {
				return err
			}
			failed := 0
			for _, r := range reports {
				output.Println(fmt.Sprintf("%s: %s", r.Mesh, r.Status()))
				for _, res := range r.Results {
					output.Println(fmt.Sprintf("  %-14s %-12s %s", res.Name, res.Status, res.Detail))
					if res.Status != printcheck.StatusPass {
						failed++
					}
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d check(s) did not pass", failed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&flagStructural, "structural", false, "apply load-bearing wall thickness limits")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "wall-clock budget for the geometric checks (0 = none)")
	return cmd
}
