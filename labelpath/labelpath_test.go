package labelpath_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vialabel/vialcad/config"
	"github.com/vialabel/vialcad/dims"
	"github.com/vialabel/vialcad/labelpath"
	"gonum.org/v1/gonum/spatial/r3"
)

func defaultRoute(t *testing.T, profile string) (config.Resolved, dims.Derived, []labelpath.Waypoint) {
	t.Helper()
	cfg, err := config.Resolve(profile)
	require.NoError(t, err)
	d, err := dims.Derive(cfg)
	require.NoError(t, err)
	return cfg, d, labelpath.Route(cfg, d)
}

func TestRouteDefaultsValid(t *testing.T) {
	cfg, d, route := defaultRoute(t, "")
	require.Len(t, route, 6)
	require.Equal(t, "spool_exit", route[0].Name)
	require.Equal(t, "vial_contact", route[5].Name)
	require.NoError(t, labelpath.Validate(route, cfg.MinBendRadius, cfg.BaseThickness))

	_, err := labelpath.Check(cfg, d)
	require.NoError(t, err)
}

func TestRouteProfileValid(t *testing.T) {
	cfg, _, route := defaultRoute(t, "22mm")
	require.NoError(t, labelpath.Validate(route, cfg.MinBendRadius, cfg.BaseThickness))
}

func TestLengthWithinWindow(t *testing.T) {
	_, _, route := defaultRoute(t, "")
	l := labelpath.Length(route)
	require.Greater(t, l, 200.0)
	require.Less(t, l, 1000.0)
}

func TestValidateRejectsTightBend(t *testing.T) {
	cfg, _, route := defaultRoute(t, "")
	for i := range route {
		if route[i].Name == "guide_roller" {
			route[i].RollerRadius = 2
		}
	}
	err := labelpath.Validate(route, cfg.MinBendRadius, cfg.BaseThickness)
	var perr *labelpath.Error
	require.ErrorAs(t, err, &perr)
	require.Len(t, perr.Issues, 1)
	require.Contains(t, perr.Issues[0], "guide_roller")
	require.Contains(t, perr.Issues[0], "bend radius")
}

func TestValidatePeelEdgeSharpExempt(t *testing.T) {
	cfg, _, route := defaultRoute(t, "")
	for _, w := range route {
		if w.Name == "peel_edge" {
			require.True(t, w.Sharp)
			require.Less(t, w.RollerRadius, cfg.MinBendRadius)
		}
	}
	require.NoError(t, labelpath.Validate(route, cfg.MinBendRadius, cfg.BaseThickness))
}

func TestValidateRejectsWaypointBelowPlate(t *testing.T) {
	cfg, _, route := defaultRoute(t, "")
	route[2].Pos.Z = cfg.BaseThickness - 1
	err := labelpath.Validate(route, cfg.MinBendRadius, cfg.BaseThickness)
	var perr *labelpath.Error
	require.ErrorAs(t, err, &perr)
	require.Contains(t, perr.Issues[0], "below the base plate")
}

func TestValidateCollectsAllIssues(t *testing.T) {
	err := labelpath.Validate([]labelpath.Waypoint{
		{Name: "a", Pos: r3.Vec{Z: -1}, WrapAngle: 90, RollerRadius: 1},
		{Name: "b", Pos: r3.Vec{X: 10, Z: 5}},
	}, 6, 0)
	var perr *labelpath.Error
	require.ErrorAs(t, err, &perr)
	// Tight bend at a, a below plate, and a path far too short.
	require.Len(t, perr.Issues, 3)
}
