package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vialabel/vialcad/dims"
	"github.com/vialabel/vialcad/internal/output"
)

func newDeriveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "derive",
		Short: "Resolve the configuration and print every derived dimension",
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
			output.Debug("dimensions derived", "profile", cfg.Profile)
			for _, row := range deriveRows(d) {
				output.Println(fmt.Sprintf("%-28s %10.3f", row.name, row.value))
			}
			return nil
		},
	}
}

type deriveRow struct {
	name  string
	value float64
}

func deriveRows(d dims.Derived) []deriveRow {
	return []deriveRow{
		{"cradle_v_angle", d.CradleVAngle},
		{"cradle_center_above_vertex", d.CradleCenterAboveVertex},
		{"cradle_v_wall_height", d.CradleVWallHeight},
		{"cradle_block_width", d.CradleBlockWidth},
		{"cradle_block_height", d.CradleBlockHeight},
		{"cradle_base_width", d.CradleBaseWidth},
		{"cradle_length", d.CradleLength},
		{"vial_center_z", d.VialCenterZ},
		{"peel_channel_width", d.PeelChannelWidth},
		{"peel_overall_width", d.PeelOverallWidth},
		{"frame_width", d.FrameWidth},
		{"frame_length", d.FrameLength},
		{"peel_wall_x", d.PeelWallX},
		{"peel_mount_z", d.PeelMountZ},
		{"cradle_x", d.CradleX},
		{"cradle_y", d.CradleY},
		{"spool_x", d.SpoolX},
		{"spool_y", d.SpoolY},
		{"spool_exit_z", d.SpoolExitZ},
		{"dancer_x", d.DancerX},
		{"dancer_y", d.DancerY},
		{"dancer_roller_z", d.DancerRollerZ},
		{"guide_x", d.GuideX},
		{"guide_y", d.GuideY},
		{"guide_roller_z", d.GuideRollerZ},
	}
}
