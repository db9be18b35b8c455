// Package labelpath models the route the label stock travels from the supply
// spool to the vial and validates it against the label material's bend
// limits. It is a pure function of the resolved configuration and derived
// dimensions, so it runs before any geometry is generated and catches layout
// mistakes early.
package labelpath

import (
	"fmt"
	"math"
	"strings"

	"github.com/vialabel/vialcad/config"
	"github.com/vialabel/vialcad/dims"
	"gonum.org/v1/gonum/spatial/r3"
)

// Waypoint is one station along the label path. WrapAngle is how far the
// stock bends around the station in degrees; stations with zero wrap are
// straight-line pass-throughs and their radius is not checked.
type Waypoint struct {
	Name         string
	Pos          r3.Vec
	WrapAngle    float64
	RollerRadius float64
	// Sharp marks a station that bends the stock over an intentionally
	// sharp edge, exempting it from the minimum bend radius. The peel edge
	// relies on a sharp bend to separate label from backing.
	Sharp bool
}

// Total label path length must land in this window: shorter paths leave no
// room for tension control, longer ones waste stock on every run.
const (
	minPathLength = 200
	maxPathLength = 1000
)

// Route builds the waypoint sequence for the assembled machine, from spool
// exit to vial contact.
func Route(cfg config.Resolved, d dims.Derived) []Waypoint {
	vialRadius := cfg.VialDiameter / 2
	return []Waypoint{
		{
			Name:         "spool_exit",
			Pos:          r3.Vec{X: d.SpoolX, Y: d.SpoolY, Z: d.SpoolExitZ},
			RollerRadius: cfg.SpoolSpindleOD / 2,
		},
		{
			Name:         "dancer_roller",
			Pos:          r3.Vec{X: d.DancerX + 0.7*cfg.DancerArmLength, Y: d.DancerY + 10, Z: d.DancerRollerZ},
			WrapAngle:    35,
			RollerRadius: cfg.BearingOD / 2,
		},
		{
			Name:         "guide_roller",
			Pos:          r3.Vec{X: d.GuideX, Y: d.GuideY, Z: d.GuideRollerZ},
			WrapAngle:    50,
			RollerRadius: cfg.BearingOD / 2,
		},
		{
			Name: "peel_entry",
			Pos:  r3.Vec{X: d.PeelWallX - cfg.PeelBodyDepth, Y: 0, Z: d.PeelMountZ},
		},
		{
			Name:         "peel_edge",
			Pos:          r3.Vec{X: d.PeelWallX, Y: 0, Z: d.PeelMountZ},
			WrapAngle:    160,
			RollerRadius: 1,
			Sharp:        true,
		},
		{
			Name:         "vial_contact",
			Pos:          r3.Vec{X: d.CradleX, Y: d.CradleY, Z: d.VialCenterZ + vialRadius},
			WrapAngle:    270,
			RollerRadius: vialRadius,
		},
	}
}

// Length returns the total path length: straight segments between stations
// plus the wrap arc at each station.
func Length(route []Waypoint) float64 {
	var total float64
	for i := 1; i < len(route); i++ {
		total += r3.Norm(r3.Sub(route[i].Pos, route[i-1].Pos))
	}
	for _, w := range route {
		total += w.RollerRadius * w.WrapAngle * math.Pi / 180
	}
	return total
}

// Error collects every constraint the route violates.
type Error struct {
	Issues []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("label path invalid:\n  %s", strings.Join(e.Issues, "\n  "))
}

// Validate checks the route against the material's minimum bend radius, the
// total length window and the base plate: no station may sit below the plate
// top. All violations are collected before returning.
func Validate(route []Waypoint, minBendRadius, plateTop float64) error {
	var issues []string
	if len(route) < 2 {
		issues = append(issues, "route needs at least two waypoints")
		return &Error{Issues: issues}
	}
	for _, w := range route {
		if w.WrapAngle > 0 && !w.Sharp && w.RollerRadius < minBendRadius {
			issues = append(issues, fmt.Sprintf(
				"%s: bend radius %.2fmm below material minimum %.2fmm", w.Name, w.RollerRadius, minBendRadius))
		}
		if w.Pos.Z < plateTop {
			issues = append(issues, fmt.Sprintf(
				"%s: height %.2fmm is below the base plate top %.2fmm", w.Name, w.Pos.Z, plateTop))
		}
	}
	if l := Length(route); l < minPathLength || l > maxPathLength {
		issues = append(issues, fmt.Sprintf(
			"total path length %.1fmm outside [%d, %d]mm", l, minPathLength, maxPathLength))
	}
	if len(issues) > 0 {
		return &Error{Issues: issues}
	}
	return nil
}

// Check builds the route for cfg and validates it in one step.
func Check(cfg config.Resolved, d dims.Derived) ([]Waypoint, error) {
	route := Route(cfg, d)
	return route, Validate(route, cfg.MinBendRadius, cfg.BaseThickness)
}
