package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vialabel/vialcad/dims"
	"github.com/vialabel/vialcad/internal/output"
	"github.com/vialabel/vialcad/manifest"
)

func newManifestCmd() *cobra.Command {
	var (
		flagMeshDir string
		flagOut     string
	)
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Publish the assembly manifest for the exported meshes",
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
			m, err := manifest.Build(flagMeshDir, manifest.DefaultPlacements(cfg, d))
			if err != nil {
				return err
			}
			out := flagOut
			if out == "" {
				out = filepath.Join(flagMeshDir, "assembly.json")
			}
			if err := manifest.WriteFile(out, m); err != nil {
				return err
			}
			output.Info("assembly manifest written", "path", out, "components", len(m.Components))
			return nil
		},
	}
	cmd.Flags().StringVar(&flagMeshDir, "mesh-dir", "meshes", "directory holding the exported component meshes")
	cmd.Flags().StringVarP(&flagOut, "out", "o", "", "manifest output path (default: <mesh-dir>/assembly.json)")
	return cmd
}
