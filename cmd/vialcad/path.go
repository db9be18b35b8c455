package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vialabel/vialcad/dims"
	"github.com/vialabel/vialcad/internal/output"
	"github.com/vialabel/vialcad/labelpath"
)

func newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Validate the label stock path against material bend limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig()
			if err != nil {
				return err
			}
			d, err := dims.Derive(cfg)
			if err != nil {
				return err
			}
			route, err := labelpath.Check(cfg, d)
			for _, w := range route {
				output.Println(fmt.Sprintf("%-16s (%7.1f, %7.1f, %6.1f)  wrap %5.1f°  r %5.2f",
					w.Name, w.Pos.X, w.Pos.Y, w.Pos.Z, w.WrapAngle, w.RollerRadius))
			}
			output.Println(fmt.Sprintf("total length %.1f mm", labelpath.Length(route)))
			return err
		},
	}
}
