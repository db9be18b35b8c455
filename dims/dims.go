// Package dims computes every dependent dimension of the applicator from a
// resolved configuration. Derivations are pure functions of already-resolved
// or already-derived values, so the dependency graph is acyclic and two runs
// over the same configuration produce bit-identical results.
package dims

import (
	"fmt"
	"math"

	"github.com/vialabel/vialcad/config"
)

// Derived holds all computed dimensions for one run. Millimeters and degrees.
type Derived struct {
	// Vial cradle.
	CradleVAngle             float64 // included V-block angle, open interval (0, 180) degrees
	CradleCenterAboveVertex  float64 // vial center height above the V vertex
	CradleVWallHeight        float64 // V wall height above the vertex
	CradleBlockWidth         float64
	CradleBlockHeight        float64
	CradleBaseWidth          float64
	CradleLength             float64
	VialCenterZ              float64 // vial axis height in assembly frame

	// Peel plate.
	PeelChannelWidth float64 // label width plus clearance per side
	PeelOverallWidth float64 // channel plus guide walls

	// Frame. FrameWidth is the minimum plate width that fits every
	// component footprint; the configured plate must be at least as wide.
	FrameWidth  float64
	FrameLength float64

	// Component placements in the assembly frame, origin at plate center.
	PeelWallX     float64
	PeelMountZ    float64
	CradleX       float64
	CradleY       float64
	SpoolX        float64
	SpoolY        float64
	SpoolExitZ    float64
	DancerX       float64
	DancerY       float64
	DancerRollerZ float64
	GuideX        float64
	GuideY        float64
	GuideRollerZ  float64
}

// DerivationError reports a derived dimension outside its physical bound.
// It always aborts the run: generating geometry from it would yield an
// unmanufacturable part.
type DerivationError struct {
	Dimension string
	Value     float64
	Reason    string
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("derive %s = %.3g: %s", e.Dimension, e.Value, e.Reason)
}

// Derive computes the full dimension set from cfg.
func Derive(cfg config.Resolved) (Derived, error) {
	var d Derived
	r := cfg.VialDiameter / 2

	// The V-groove vertex sits at the top of the base plate; the walls lose
	// half a wall thickness of usable depth to the groove cut.
	usable := cfg.CradleVBlockHeight - cfg.WallThickness/2
	if usable <= r {
		return d, &DerivationError{
			Dimension: "cradle_v_angle",
			Value:     usable,
			Reason:    fmt.Sprintf("V-block height %gmm cannot seat a vial of radius %gmm", cfg.CradleVBlockHeight, r),
		}
	}
	halfAngle := math.Asin(r / usable)
	d.CradleVAngle = 2 * halfAngle * 180 / math.Pi
	if d.CradleVAngle <= 0 || d.CradleVAngle >= 180 {
		return d, &DerivationError{
			Dimension: "cradle_v_angle",
			Value:     d.CradleVAngle,
			Reason:    "included angle must lie in (0, 180) degrees",
		}
	}
	d.CradleCenterAboveVertex = r / math.Sin(halfAngle)
	// Walls reach half a radius past the vial center so the vial cannot
	// roll out during label application.
	d.CradleVWallHeight = d.CradleCenterAboveVertex + r/2
	d.CradleBlockWidth = 2*d.CradleVWallHeight*math.Tan(halfAngle) + 2*cfg.WallThickness
	d.CradleBlockHeight = cfg.BaseThickness + d.CradleVWallHeight
	d.CradleBaseWidth = cfg.VialDiameter + 20
	d.CradleLength = cfg.VialDiameter + 19
	d.VialCenterZ = cfg.BaseThickness + cfg.CradleVBlockHeight

	d.PeelChannelWidth = cfg.LabelWidth + 2*cfg.PeelChannelClearance
	if d.PeelChannelWidth <= 0 {
		return d, &DerivationError{
			Dimension: "peel_channel_width",
			Value:     d.PeelChannelWidth,
			Reason:    "channel width must be positive",
		}
	}
	d.PeelOverallWidth = d.PeelChannelWidth + 2*cfg.WallThickness

	footprint := math.Max(d.CradleBaseWidth, math.Max(d.PeelOverallWidth, cfg.SpoolFlangeDiameter))
	d.FrameWidth = footprint + 2*cfg.FrameMargin
	if d.FrameWidth > cfg.FrameWidth {
		return d, &DerivationError{
			Dimension: "frame_width",
			Value:     d.FrameWidth,
			Reason:    fmt.Sprintf("component footprints need %gmm but the plate is %gmm wide", d.FrameWidth, cfg.FrameWidth),
		}
	}
	d.FrameLength = cfg.FrameLength

	// Placement layout, origin at base plate center. Mirrors the frame's
	// top-view arrangement: spool and dancer at the back-left feeding the
	// guide roller, peel wall at the right end, cradle in front of it.
	d.PeelWallX = cfg.FrameLength/2 - cfg.FrameWallThickness/2 - 5
	d.PeelMountZ = cfg.FrameWallHeight/2 + cfg.BaseThickness
	d.CradleX = d.PeelWallX - 35
	d.CradleY = 25
	d.SpoolX = -cfg.FrameLength/2 + 30
	d.SpoolY = -cfg.FrameWidth/2 + 30
	d.SpoolExitZ = cfg.BaseThickness + cfg.SpoolFlangeThickness + cfg.SpoolHeight/2
	d.DancerX = -cfg.FrameLength/2 + 80
	d.DancerY = -cfg.FrameWidth/2 + 35
	d.DancerRollerZ = cfg.BaseThickness + cfg.PivotPostHeight + cfg.DancerArmThickness/2
	d.GuideX = d.PeelWallX - 70
	d.GuideY = -cfg.FrameWidth/2 + 25
	d.GuideRollerZ = cfg.BaseThickness + cfg.BracketHeight - cfg.BearingOD/2 - 2

	return d, nil
}
