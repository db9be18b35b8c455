package printcheck_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vialabel/vialcad/mesh"
	"github.com/vialabel/vialcad/mesh/meshtest"
	"github.com/vialabel/vialcad/printcheck"
	"gonum.org/v1/gonum/spatial/r3"
)

func mustMesh(t *testing.T, tris []mesh.Triangle) *mesh.Mesh {
	t.Helper()
	m, err := mesh.New(tris, 0)
	require.NoError(t, err)
	return m
}

func TestManifoldClosedCube(t *testing.T) {
	m := mustMesh(t, meshtest.Box(r3.Vec{}, r3.Vec{X: 10, Y: 10, Z: 10}))
	res := printcheck.Manifold(m)
	require.Equal(t, printcheck.StatusPass, res.Status)
	require.InDelta(t, 1000, res.Worst, 1e-9)
}

func TestManifoldCubeWithHole(t *testing.T) {
	m := mustMesh(t, meshtest.OpenBox(r3.Vec{}, r3.Vec{X: 10, Y: 10, Z: 10}))
	res := printcheck.Manifold(m)
	require.Equal(t, printcheck.StatusFail, res.Status)
	require.InDelta(t, 3, res.Worst, 0, "hole exposes the removed triangle's 3 edges")
	require.Contains(t, res.Detail, "non-manifold edge")
}

func TestManifoldReportDeterministic(t *testing.T) {
	m := mustMesh(t, meshtest.OpenBox(r3.Vec{}, r3.Vec{X: 10, Y: 10, Z: 10}))
	first := printcheck.Manifold(m)
	require.Equal(t, printcheck.StatusFail, first.Status)
	for i := 0; i < 20; i++ {
		res := printcheck.Manifold(m)
		require.Equal(t, first.Detail, res.Detail, "same mesh must yield the same report")
		require.Equal(t, first.Location, res.Location)
		require.Equal(t, first.Worst, res.Worst)
	}
}

func TestWallThicknessHollowCube(t *testing.T) {
	m := mustMesh(t, meshtest.HollowBox(r3.Vec{}, r3.Vec{X: 20, Y: 20, Z: 20}, 2))

	limits := printcheck.DefaultLimits() // 0.8mm
	res := printcheck.WallThickness(context.Background(), m, limits)
	require.Equal(t, printcheck.StatusPass, res.Status)
	require.InDelta(t, 2, res.Worst, 1e-9)

	limits.MinWall = 3
	res = printcheck.WallThickness(context.Background(), m, limits)
	require.Equal(t, printcheck.StatusFail, res.Status)
	require.InDelta(t, 2, res.Worst, 1e-9)
}

func TestWallThicknessDeadlineInconclusive(t *testing.T) {
	m := mustMesh(t, meshtest.HollowBox(r3.Vec{}, r3.Vec{X: 20, Y: 20, Z: 20}, 2))
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	res := printcheck.WallThickness(ctx, m, printcheck.DefaultLimits())
	require.Equal(t, printcheck.StatusInconclusive, res.Status)
	require.Contains(t, res.Detail, "deadline")
}

func TestWallThicknessUndeterminedIsInconclusive(t *testing.T) {
	// A lone triangle gives every probe ray nothing to hit.
	m := mustMesh(t, []mesh.Triangle{{V: [3]r3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 10, Y: 0, Z: 0},
		{X: 0, Y: 10, Z: 0},
	}}})
	res := printcheck.WallThickness(context.Background(), m, printcheck.DefaultLimits())
	require.Equal(t, printcheck.StatusInconclusive, res.Status)
	require.Contains(t, res.Detail, "could not be determined")
}

func TestOverhangCone(t *testing.T) {
	// Apex-down cone whose side surface leans 60 degrees from vertical.
	m := mustMesh(t, meshtest.Cone(r3.Vec{}, 10, 60, 32))

	limits := printcheck.DefaultLimits()
	limits.OverhangAngle = 45
	res := printcheck.Overhang(m, limits)
	require.Equal(t, printcheck.StatusFail, res.Status)
	require.Greater(t, res.Worst, 0.0, "side area should be unsupported overhang")

	limits.OverhangAngle = 70
	res = printcheck.Overhang(m, limits)
	require.Equal(t, printcheck.StatusPass, res.Status)
	require.Equal(t, 0.0, res.Worst)
}

func TestOverhangBedContactSupported(t *testing.T) {
	// A box's underside is a 90 degree overhang but rests on the bed.
	m := mustMesh(t, meshtest.Box(r3.Vec{}, r3.Vec{X: 10, Y: 10, Z: 10}))
	res := printcheck.Overhang(m, printcheck.DefaultLimits())
	require.Equal(t, printcheck.StatusPass, res.Status)
	require.Equal(t, 0.0, res.Worst)
}

func TestValidateAccumulatesAllChecks(t *testing.T) {
	m := mustMesh(t, meshtest.Box(r3.Vec{}, r3.Vec{X: 10, Y: 10, Z: 10}))
	report := printcheck.Validate(context.Background(), "box", m, printcheck.StructuralLimits())
	require.Len(t, report.Results, 3)
	require.Equal(t, printcheck.StatusPass, report.Status())

	names := []string{report.Results[0].Name, report.Results[1].Name, report.Results[2].Name}
	require.Equal(t, []string{"manifold", "wall_thickness", "overhang"}, names)
}

func TestValidateFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.stl")
	holed := filepath.Join(dir, "holed.stl")
	require.NoError(t, mesh.WriteSTLFile(good, meshtest.Box(r3.Vec{}, r3.Vec{X: 10, Y: 10, Z: 10})))
	require.NoError(t, mesh.WriteSTLFile(holed, meshtest.OpenBox(r3.Vec{}, r3.Vec{X: 10, Y: 10, Z: 10})))

	reports, err := printcheck.ValidateFiles(context.Background(), []string{good, holed}, printcheck.DefaultLimits())
	require.NoError(t, err)
	require.Len(t, reports, 2)
	require.Equal(t, "good.stl", reports[0].Mesh)
	require.Equal(t, printcheck.StatusPass, reports[0].Status())
	require.Equal(t, printcheck.StatusFail, reports[1].Status())
	require.True(t, printcheck.Failed(reports))

	_, err = printcheck.ValidateFiles(context.Background(), nil, printcheck.DefaultLimits())
	require.ErrorIs(t, err, printcheck.ErrNoMeshes)

	_, err = printcheck.ValidateFiles(context.Background(), []string{filepath.Join(dir, "absent.stl")}, printcheck.DefaultLimits())
	require.Error(t, err)
}
