package preview_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vialabel/vialcad/manifest"
	"github.com/vialabel/vialcad/mesh"
	"github.com/vialabel/vialcad/mesh/meshtest"
	"github.com/vialabel/vialcad/preview"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestRenderManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, mesh.WriteSTLFile(filepath.Join(dir, "plate.stl"),
		meshtest.Box(r3.Vec{X: -50, Y: -30}, r3.Vec{X: 50, Y: 30, Z: 5})))
	require.NoError(t, mesh.WriteSTLFile(filepath.Join(dir, "block.stl"),
		meshtest.Box(r3.Vec{}, r3.Vec{X: 10, Y: 10, Z: 10})))

	m, err := manifest.Build(dir, []manifest.Placement{
		{Name: "plate", MeshPath: "plate.stl", Color: &[3]float64{0.6, 0.6, 0.6}},
		{Name: "block", MeshPath: "block.stl", Position: [3]float64{20, 0, 5}, Rotation: [3]float64{0, 0, 45}},
	})
	require.NoError(t, err)

	img, err := preview.Render(m, dir, 64, 48)
	require.NoError(t, err)
	b := img.Bounds()
	require.Equal(t, 64, b.Dx())
	require.Equal(t, 48, b.Dy())
}

func TestRenderFileWritesPNG(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, mesh.WriteSTLFile(filepath.Join(dir, "block.stl"),
		meshtest.Box(r3.Vec{}, r3.Vec{X: 10, Y: 10, Z: 10})))
	m, err := manifest.Build(dir, []manifest.Placement{
		{Name: "block", MeshPath: "block.stl"},
	})
	require.NoError(t, err)
	mp := filepath.Join(dir, "assembly.json")
	require.NoError(t, manifest.WriteFile(mp, m))

	out := filepath.Join(dir, "assembly.png")
	require.NoError(t, preview.RenderFile(mp, out, 64, 64))
	require.FileExists(t, out)
}

func TestRenderEmptyManifest(t *testing.T) {
	_, err := preview.Render(manifest.Manifest{Version: manifest.Version}, t.TempDir(), 64, 64)
	require.Error(t, err)
}
