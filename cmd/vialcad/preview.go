package main

import (
	"github.com/spf13/cobra"

	"github.com/vialabel/vialcad/internal/output"
	"github.com/vialabel/vialcad/preview"
)

func newPreviewCmd() *cobra.Command {
	var (
		flagOut    string
		flagWidth  int
		flagHeight int
	)
	cmd := &cobra.Command{
		Use:   "preview <assembly.json>",
		Short: "Render the assembly manifest to a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := preview.RenderFile(args[0], flagOut, flagWidth, flagHeight); err != nil {
				return err
			}
			output.Info("preview rendered", "path", flagOut)
			return nil
		},
	}
	cmd.Flags().StringVarP(&flagOut, "out", "o", "assembly.png", "output image path")
	cmd.Flags().IntVar(&flagWidth, "width", 1280, "image width in pixels")
	cmd.Flags().IntVar(&flagHeight, "height", 960, "image height in pixels")
	return cmd
}
