// Package meshtest builds small synthetic solids used by tests across the
// repository. All solids are closed triangulated surfaces with outward
// winding unless stated otherwise.
package meshtest

import (
	"math"

	"github.com/vialabel/vialcad/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// boxFaces indexes the 12 outward-wound triangles of a box whose vertices
// are ordered bottom 0..3 counterclockwise, then top 4..7.
var boxFaces = [12][3]int{
	{0, 2, 1}, {0, 3, 2}, // bottom, -z
	{4, 5, 6}, {4, 6, 7}, // top, +z
	{0, 1, 5}, {0, 5, 4}, // front, -y
	{2, 3, 7}, {2, 7, 6}, // back, +y
	{0, 4, 7}, {0, 7, 3}, // left, -x
	{1, 2, 6}, {1, 6, 5}, // right, +x
}

func boxVertices(min, max r3.Vec) [8]r3.Vec {
	return [8]r3.Vec{
		{X: min.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: max.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: max.Z},
	}
}

// Box returns a solid axis aligned box between min and max.
func Box(min, max r3.Vec) []mesh.Triangle {
	v := boxVertices(min, max)
	tris := make([]mesh.Triangle, 0, 12)
	for _, f := range boxFaces {
		tris = append(tris, mesh.Triangle{V: [3]r3.Vec{v[f[0]], v[f[1]], v[f[2]]}})
	}
	return tris
}

// OpenBox returns Box with one bottom triangle removed, leaving a hole.
func OpenBox(min, max r3.Vec) []mesh.Triangle {
	return Box(min, max)[1:]
}

// HollowBox returns a box shell of the given wall thickness: an outer box
// plus an inner cavity surface whose normals point into the cavity.
func HollowBox(min, max r3.Vec, wall float64) []mesh.Triangle {
	tris := Box(min, max)
	iv := boxVertices(r3.Add(min, r3.Vec{X: wall, Y: wall, Z: wall}),
		r3.Sub(max, r3.Vec{X: wall, Y: wall, Z: wall}))
	for _, f := range boxFaces {
		// Reversed winding: material lies outside the cavity surface.
		tris = append(tris, mesh.Triangle{V: [3]r3.Vec{iv[f[0]], iv[f[2]], iv[f[1]]}})
	}
	return tris
}

// Cone returns an apex-down cone standing on its tip at apex, closed with a
// flat top disc at apex.Z+height. slopeDeg is the angle of the side surface
// measured from the vertical axis.
func Cone(apex r3.Vec, height, slopeDeg float64, segments int) []mesh.Triangle {
	radius := height * math.Tan(slopeDeg*math.Pi/180)
	top := r3.Add(apex, r3.Vec{Z: height})
	ring := make([]r3.Vec, segments)
	for i := range ring {
		phi := 2 * math.Pi * float64(i) / float64(segments)
		ring[i] = r3.Add(top, r3.Vec{X: radius * math.Cos(phi), Y: radius * math.Sin(phi)})
	}
	tris := make([]mesh.Triangle, 0, 2*segments)
	for i := range ring {
		j := (i + 1) % segments
		tris = append(tris,
			mesh.Triangle{V: [3]r3.Vec{apex, ring[j], ring[i]}}, // side, outward
			mesh.Triangle{V: [3]r3.Vec{top, ring[i], ring[j]}},  // top disc, +z
		)
	}
	return tris
}
