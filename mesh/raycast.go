package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// RayCast finds the nearest intersection of the ray origin+t*dir with the
// mesh surface for t > minDist. dir need not be normalized; the returned
// distance is measured in units of the actual length of dir. Returns the
// distance, the index of the hit face and whether a hit was found.
//
// minDist filters out the self-intersection at the ray origin when casting
// from a surface point.
func (m *Mesh) RayCast(origin, dir r3.Vec, minDist float64) (dist float64, face int, ok bool) {
	dist = math.MaxFloat64
	face = -1
	for i := range m.Faces {
		t, hit := m.intersectFace(i, origin, dir)
		if hit && t > minDist && t < dist {
			dist = t
			face = i
		}
	}
	return dist, face, face >= 0
}

// intersectFace is the Möller–Trumbore ray/triangle intersection test.
func (m *Mesh) intersectFace(i int, origin, dir r3.Vec) (t float64, ok bool) {
	const eps = 1e-12
	f := m.Faces[i]
	v0 := m.Vertices[f[0]]
	e1 := r3.Sub(m.Vertices[f[1]], v0)
	e2 := r3.Sub(m.Vertices[f[2]], v0)
	p := r3.Cross(dir, e2)
	det := r3.Dot(e1, p)
	if math.Abs(det) < eps {
		return 0, false // ray parallel to triangle plane
	}
	inv := 1 / det
	s := r3.Sub(origin, v0)
	u := inv * r3.Dot(s, p)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := r3.Cross(s, e1)
	v := inv * r3.Dot(dir, q)
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t = inv * r3.Dot(e2, q)
	if t < 0 {
		return 0, false
	}
	return t, true
}
