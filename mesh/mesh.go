// Package mesh holds the triangulated-surface model shared by the print
// validator, the assembly manifest tooling and the preview renderer. Meshes
// are read from STL files produced by the CAD export stage; this package
// never authors geometry.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/vialabel/vialcad/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle is a single triangle with vertices in counterclockwise winding
// as seen from outside the solid.
type Triangle struct {
	V [3]r3.Vec
}

// Normal returns the unit normal of the triangle.
func (t Triangle) Normal() r3.Vec {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Area returns the surface area of the triangle.
func (t Triangle) Area() float64 {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	return 0.5 * r3.Norm(r3.Cross(e1, e2))
}

// Centroid returns the center of mass of the triangle.
func (t Triangle) Centroid() r3.Vec {
	v := r3.Add(t.V[0], r3.Add(t.V[1], t.V[2]))
	return r3.Scale(1./3., v)
}

// Mesh is an indexed triangle mesh with welded vertices. Faces store indices
// into Vertices. Shared vertices are required for edge topology queries, so
// meshes are always constructed through New which welds triangle soup.
type Mesh struct {
	Vertices []r3.Vec
	Faces    [][3]int
	bb       d3.Box
}

// EdgeUse counts how often an undirected edge is used by faces in each
// direction. A closed orientable surface uses every edge exactly once
// forwards and once backwards.
type EdgeUse struct {
	Forward int
	Reverse int
}

// New builds an indexed mesh from a triangle soup, welding vertices closer
// than vertexTol. vertexTol should be around 1/1000th of the smallest
// triangle side; if zero it is inferred from the model.
func New(triangles []Triangle, vertexTolOrZero float64) (*Mesh, error) {
	if len(triangles) == 0 {
		return nil, errors.New("empty triangle slice")
	}
	bb := d3.Empty()
	minSide2 := math.MaxFloat64
	maxSide2 := -math.MaxFloat64
	for i := range triangles {
		for j, vert := range triangles[i].V {
			bb = bb.Include(vert)
			side2 := r3.Norm2(r3.Sub(triangles[i].V[(j+1)%3], vert))
			minSide2 = math.Min(minSide2, side2)
			maxSide2 = math.Max(maxSide2, side2)
		}
	}
	tol := vertexTolOrZero
	suggested := math.Sqrt(minSide2) / 256
	if tol > math.Sqrt(maxSide2)/2 {
		return nil, fmt.Errorf("vertex tolerance too large for mesh, suggested: %g", suggested)
	}
	if tol == 0 {
		tol = suggested
	}
	maxDim := d3.Max(bb.Size())
	div := int64(maxDim/tol + 1e-12)
	if div <= 0 {
		return nil, errors.New("vertex tolerance larger than model size")
	}
	if div > math.MaxInt64/2 {
		return nil, errors.New("vertex tolerance too small, overflowed int64")
	}

	m := &Mesh{
		Faces: make([][3]int, 0, len(triangles)),
		bb:    bb,
	}
	// Weld vertices on an integer grid in resolution space.
	cache := make(map[[3]int64]int)
	ri := 1 / tol
	for i := range triangles {
		var face [3]int
		for j, vert := range triangles[i].V {
			v := r3.Scale(ri, vert)
			vi := [3]int64{int64(v.X), int64(v.Y), int64(v.Z)}
			vertexIdx, ok := cache[vi]
			if !ok {
				vertexIdx = len(m.Vertices)
				cache[vi] = vertexIdx
				m.Vertices = append(m.Vertices, vert)
			}
			face[j] = vertexIdx
		}
		if face[0] == face[1] || face[1] == face[2] || face[2] == face[0] {
			// Triangle collapsed during welding.
			continue
		}
		m.Faces = append(m.Faces, face)
	}
	if len(m.Faces) == 0 {
		return nil, errors.New("all triangles degenerate after vertex welding")
	}
	return m, nil
}

// NumFaces returns the number of faces in the mesh.
func (m *Mesh) NumFaces() int { return len(m.Faces) }

// Triangle returns the ith face as a Triangle.
func (m *Mesh) Triangle(i int) Triangle {
	f := m.Faces[i]
	return Triangle{V: [3]r3.Vec{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}}
}

// Bounds returns the axis aligned bounding box of the mesh.
func (m *Mesh) Bounds() r3.Box { return r3.Box(m.bb) }

// SurfaceArea returns the total face area of the mesh.
func (m *Mesh) SurfaceArea() float64 {
	var area float64
	for i := range m.Faces {
		area += m.Triangle(i).Area()
	}
	return area
}

// Volume returns the signed volume enclosed by the mesh using the divergence
// theorem. The result is positive for a closed surface with outward-facing
// normals and meaningless for open surfaces.
func (m *Mesh) Volume() float64 {
	var vol float64
	for _, f := range m.Faces {
		a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		vol += r3.Dot(a, r3.Cross(b, c))
	}
	return vol / 6
}

// EdgeUses returns the per-edge face usage of the mesh. Edge keys store the
// lower vertex index first.
func (m *Mesh) EdgeUses() map[[2]int]EdgeUse {
	uses := make(map[[2]int]EdgeUse, 3*len(m.Faces)/2)
	for _, f := range m.Faces {
		for j := 0; j < 3; j++ {
			a, b := f[j], f[(j+1)%3]
			key := [2]int{a, b}
			forward := true
			if a > b {
				key = [2]int{b, a}
				forward = false
			}
			u := uses[key]
			if forward {
				u.Forward++
			} else {
				u.Reverse++
			}
			uses[key] = u
		}
	}
	return uses
}
