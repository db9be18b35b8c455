// Package printcheck runs printability analyses against exported component
// meshes: watertightness, minimum wall thickness and unsupported overhangs.
// Checks are independent of one another and of mesh order, so a report is
// fully determined by the input mesh and limits.
//
// The overhang support test is deliberately concrete: a face steeper than the
// overhang limit counts as supported when it sits on the print bed (its
// centroid within BedAdjacency of the model's lowest point) or when a
// vertical ray cast downward from its centroid hits other material within
// SupportDist.
package printcheck

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/vialabel/vialcad/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Status is the outcome of a single check.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	// StatusInconclusive marks a check cut short by a caller deadline.
	// It is never reported as a pass.
	StatusInconclusive Status = "inconclusive"
)

// Limits parameterizes the geometric checks. All lengths are millimeters,
// angles degrees.
type Limits struct {
	// MinWall is the minimum acceptable local wall thickness.
	MinWall float64
	// OverhangAngle is the maximum face angle from vertical before a face
	// counts as an overhang. A vertical wall is 0, a ceiling 90.
	OverhangAngle float64
	// MaxOverhangRatio is the acceptable fraction of total surface area
	// classified as unsupported overhang.
	MaxOverhangRatio float64
	// SupportDist is how far below an overhang face material may sit and
	// still support it.
	SupportDist float64
	// BedAdjacency treats faces this close to the model's lowest point as
	// printed directly on the bed.
	BedAdjacency float64
	// Samples caps the number of surface points probed by the wall
	// thickness estimate.
	Samples int
}

// DefaultLimits returns limits for thin single-wall parts such as the peel
// plate lip.
func DefaultLimits() Limits {
	return Limits{
		MinWall:          0.8,
		OverhangAngle:    45,
		MaxOverhangRatio: 0.05,
		SupportDist:      5,
		BedAdjacency:     0.5,
		Samples:          2000,
	}
}

// StructuralLimits returns limits for load bearing parts: the frame, the
// cradle and the dancer pivot post.
func StructuralLimits() Limits {
	l := DefaultLimits()
	l.MinWall = 2.0
	return l
}

// Result is the outcome of one check on one mesh.
type Result struct {
	Name     string
	Status   Status
	Worst    float64
	Location r3.Vec
	Detail   string
}

// Report collects the check results for a single mesh.
type Report struct {
	Mesh    string
	Results []Result
}

// Status folds the per-check outcomes: any fail wins, then any
// inconclusive, then pass.
func (r Report) Status() Status {
	status := StatusPass
	for _, res := range r.Results {
		switch {
		case res.Status == StatusFail:
			return StatusFail
		case res.Status == StatusInconclusive:
			status = StatusInconclusive
		}
	}
	return status
}

// Validate runs all checks against m and returns the accumulated report.
// Check failures do not abort the run; every check is always attempted.
func Validate(ctx context.Context, name string, m *mesh.Mesh, limits Limits) Report {
	return Report{
		Mesh: name,
		Results: []Result{
			Manifold(m),
			WallThickness(ctx, m, limits),
			Overhang(m, limits),
		},
	}
}

// Manifold checks that the mesh is watertight: every edge shared by exactly
// two faces with consistent winding, enclosing a positive finite volume. The
// first offending edge found is reported.
func Manifold(m *mesh.Mesh) Result {
	res := Result{Name: "manifold", Status: StatusPass}
	var (
		bad       int
		lowest    [2]int
		lowestUse mesh.EdgeUse
	)
	for edge, use := range m.EdgeUses() {
		if use.Forward == 1 && use.Reverse == 1 {
			continue
		}
		// Map order is randomized; report the lowest-numbered offending
		// edge so the same mesh always yields the same report.
		if bad == 0 || edge[0] < lowest[0] || (edge[0] == lowest[0] && edge[1] < lowest[1]) {
			lowest, lowestUse = edge, use
		}
		bad++
	}
	if bad > 0 {
		res.Status = StatusFail
		res.Worst = float64(bad)
		res.Location = m.Vertices[lowest[0]]
		res.Detail = fmt.Sprintf("%d non-manifold edge(s); first: edge %d-%d used %d time(s) forward, %d reverse",
			bad, lowest[0], lowest[1], lowestUse.Forward, lowestUse.Reverse)
		return res
	}
	vol := m.Volume()
	res.Worst = vol
	if vol <= 0 || math.IsInf(vol, 0) || math.IsNaN(vol) {
		res.Status = StatusFail
		res.Detail = fmt.Sprintf("enclosed volume %g is not positive and finite", vol)
		return res
	}
	res.Detail = fmt.Sprintf("watertight, volume %.2f mm³", vol)
	return res
}

// wallProbeMinDist filters out the self-intersection at the probe origin.
const wallProbeMinDist = 0.01

// WallThickness estimates local wall thickness by casting rays from sampled
// face centroids along the inward normal and reports the minimum observed
// thickness. Sampling is deterministic for a given mesh and limit set. If ctx
// expires mid-sampling the partial result is reported as inconclusive.
func WallThickness(ctx context.Context, m *mesh.Mesh, limits Limits) Result {
	res := Result{Name: "wall_thickness", Status: StatusPass}
	faces := sampleFaces(m.NumFaces(), limits.Samples)
	minThickness := math.MaxFloat64
	for n, face := range faces {
		if n%64 == 0 && ctx.Err() != nil {
			res.Status = StatusInconclusive
			res.Worst = minThickness
			res.Detail = fmt.Sprintf("deadline exceeded after %d/%d samples", n, len(faces))
			return res
		}
		tri := m.Triangle(face)
		inward := r3.Scale(-1, tri.Normal())
		dist, _, ok := m.RayCast(tri.Centroid(), inward, wallProbeMinDist)
		if ok && dist < minThickness {
			minThickness = dist
			res.Location = tri.Centroid()
		}
	}
	res.Worst = minThickness
	if minThickness == math.MaxFloat64 {
		// No probe ray hit opposing material. Thickness is unknown, which
		// must not read as a pass.
		res.Status = StatusInconclusive
		res.Detail = fmt.Sprintf("no probe ray hit material over %d samples, thickness could not be determined", len(faces))
		return res
	}
	if minThickness < limits.MinWall {
		res.Status = StatusFail
		res.Detail = fmt.Sprintf("minimum wall %.3f mm below limit %.3f mm", minThickness, limits.MinWall)
		return res
	}
	res.Detail = fmt.Sprintf("minimum wall %.3f mm over %d samples", minThickness, len(faces))
	return res
}

// sampleFaces picks up to limit face indices, every face when the mesh is
// small enough. The fixed seed keeps reports reproducible run to run.
func sampleFaces(numFaces, limit int) []int {
	if limit <= 0 || numFaces <= limit {
		idx := make([]int, numFaces)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	rng := rand.New(rand.NewSource(42))
	idx := make([]int, limit)
	for i := range idx {
		idx[i] = rng.Intn(numFaces)
	}
	return idx
}

// Overhang classifies faces steeper than the overhang limit and measures how
// much of the surface area they cover after discounting supported ones. The
// worst result value is the unsupported area fraction.
func Overhang(m *mesh.Mesh, limits Limits) Result {
	res := Result{Name: "overhang", Status: StatusPass}
	minZ := m.Bounds().Min.Z
	var totalArea, unsupportedArea, worstAngle float64
	for i := 0; i < m.NumFaces(); i++ {
		tri := m.Triangle(i)
		area := tri.Area()
		totalArea += area
		n := tri.Normal()
		if n.Z >= 0 {
			continue
		}
		angle := math.Asin(math.Min(1, -n.Z)) * 180 / math.Pi
		if angle <= limits.OverhangAngle {
			continue
		}
		if supported(m, tri, minZ, limits) {
			continue
		}
		unsupportedArea += area
		if angle > worstAngle {
			worstAngle = angle
			res.Location = tri.Centroid()
		}
	}
	ratio := 0.0
	if totalArea > 0 {
		ratio = unsupportedArea / totalArea
	}
	res.Worst = ratio
	if ratio > limits.MaxOverhangRatio {
		res.Status = StatusFail
		res.Detail = fmt.Sprintf("%.1f%% of surface area is unsupported overhang (worst %.1f°, limit %g°)",
			100*ratio, worstAngle, limits.OverhangAngle)
		return res
	}
	res.Detail = fmt.Sprintf("%.1f%% unsupported overhang area", 100*ratio)
	return res
}

func supported(m *mesh.Mesh, tri mesh.Triangle, minZ float64, limits Limits) bool {
	c := tri.Centroid()
	if c.Z-minZ <= limits.BedAdjacency {
		return true
	}
	dist, _, ok := m.RayCast(c, r3.Vec{Z: -1}, wallProbeMinDist)
	return ok && dist <= limits.SupportDist
}
