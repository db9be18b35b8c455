package mesh_test

import (
	"bytes"
	"path/filepath"
	"testing"

	hstl "github.com/hschendel/stl"
	"github.com/stretchr/testify/require"
	"github.com/vialabel/vialcad/internal/d3"
	"github.com/vialabel/vialcad/mesh"
	"github.com/vialabel/vialcad/mesh/meshtest"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSTLWriteRead(t *testing.T) {
	model := meshtest.Box(r3.Vec{}, r3.Vec{X: 12, Y: 8, Z: 4})
	var buf bytes.Buffer
	require.NoError(t, mesh.WriteSTL(&buf, model))
	require.Equal(t, 84+50*len(model), buf.Len())

	got, err := mesh.ReadSTL(&buf)
	require.NoError(t, err)
	require.Equal(t, len(model), len(got))
	for i := range model {
		for j := 0; j < 3; j++ {
			require.True(t, d3.EqualWithin(model[i].V[j], got[i].V[j], 1e-6),
				"triangle %d vertex %d", i, j)
		}
	}
}

func TestSTLFileReadableByIndependentParser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.stl")
	model := meshtest.Box(r3.Vec{}, r3.Vec{X: 10, Y: 10, Z: 10})
	require.NoError(t, mesh.WriteSTLFile(path, model))

	solid, err := hstl.ReadFile(path)
	require.NoError(t, err)
	require.False(t, solid.IsAscii)
	require.Equal(t, len(model), len(solid.Triangles))
	for i, tri := range solid.Triangles {
		want := model[i].Normal()
		require.InDelta(t, want.X, float64(tri.Normal[0]), 1e-6)
		require.InDelta(t, want.Y, float64(tri.Normal[1]), 1e-6)
		require.InDelta(t, want.Z, float64(tri.Normal[2]), 1e-6)
	}
}

func TestReadSTLRejectsGarbage(t *testing.T) {
	_, err := mesh.ReadSTL(bytes.NewReader(nil))
	require.ErrorContains(t, err, "EOF")

	// A header promising triangles that never arrive.
	var buf bytes.Buffer
	require.NoError(t, mesh.WriteSTL(&buf, meshtest.Box(r3.Vec{}, d3.Elem(1))))
	_, err = mesh.ReadSTL(bytes.NewReader(buf.Bytes()[:100]))
	require.Error(t, err)
}

func TestWriteSTLEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, mesh.WriteSTL(&buf, nil))
}
