package main

import (
	"github.com/spf13/cobra"

	"github.com/vialabel/vialcad/config"
	"github.com/vialabel/vialcad/internal/output"
)

var (
	// Global flags
	flagConfig  string
	flagProfile string
	flagVerbose bool
)

// rootCmd is the base command for the vialcad CLI.
var rootCmd = &cobra.Command{
	Use:   "vialcad",
	Short: "Vial label applicator design pipeline",
	Long: `vialcad derives, lays out and validates the printed parts of the vial
label applicator.

It provides commands to:
  - Resolve a parameter profile and derive every dependent dimension
  - Validate the label stock path against material bend limits
  - Publish the assembly manifest consumed by preview and QA tools
  - Check exported meshes for printability before committing to a print`,
	PersistentPreRunE: initializeGlobals,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to parameter file (default: built-in table)")
	rootCmd.PersistentFlags().StringVarP(&flagProfile, "profile", "p", "", "named parameter profile to apply")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "increase output verbosity")

	rootCmd.AddCommand(newDeriveCmd())
	rootCmd.AddCommand(newPathCmd())
	rootCmd.AddCommand(newManifestCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newPreviewCmd())
}

// initializeGlobals sets up logging based on global flags.
func initializeGlobals(cmd *cobra.Command, _ []string) error {
	output.SetupLogging(flagVerbose)
	return nil
}

// resolveConfig loads the active configuration from the --config file, or
// the built-in parameter table when none is given.
func resolveConfig() (config.Resolved, error) {
	if flagConfig != "" {
		return config.ResolveFile(flagConfig, flagProfile)
	}
	return config.Resolve(flagProfile)
}
