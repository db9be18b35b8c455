// Package preview renders an assembly manifest to a PNG, replacing a manual
// CAD viewer session for quick layout review. Each component mesh is posed by
// its manifest placement and drawn in its display color.
package preview

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/vialabel/vialcad/manifest"
)

const (
	fovy        = 30 // vertical field of view in degrees
	supersample = 2  // render at 2x and downsample for antialiasing
)

var (
	background    = fauxgl.HexColor("#FFF8E3")
	fallbackColor = fauxgl.HexColor("#468966")
	lightDir      = fauxgl.V(-0.75, 1, 0.25).Normalize()
	// Isometric-ish view from the front-right, Z up.
	eyeDir = fauxgl.V(1, -1, 0.7).Normalize()
)

type component struct {
	mesh  *fauxgl.Mesh
	color fauxgl.Color
}

// Render draws every component of m into a width x height image. Relative
// mesh paths resolve against baseDir.
func Render(m manifest.Manifest, baseDir string, width, height int) (image.Image, error) {
	if len(m.Components) == 0 {
		return nil, errors.New("manifest has no components to render")
	}
	var (
		comps = make([]component, 0, len(m.Components))
		box   fauxgl.Box
	)
	for i, p := range m.Components {
		path := p.MeshPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		fm, err := fauxgl.LoadSTL(path)
		if err != nil {
			return nil, fmt.Errorf("load mesh for %q: %w", p.Name, err)
		}
		fm.Transform(poseMatrix(p))
		if i == 0 {
			box = fm.BoundingBox()
		} else {
			box = box.Extend(fm.BoundingBox())
		}
		color := fallbackColor
		if p.Color != nil {
			color = fauxgl.Color{R: p.Color[0], G: p.Color[1], B: p.Color[2], A: 1}
		}
		comps = append(comps, component{mesh: fm, color: color})
	}

	center := box.Center()
	radius := box.Size().Length() / 2
	if radius == 0 {
		return nil, errors.New("assembly has zero extent")
	}
	dist := 2.8 * radius
	eye := center.Add(eyeDir.MulScalar(dist))
	up := fauxgl.V(0, 0, 1)

	ctx := fauxgl.NewContext(width*supersample, height*supersample)
	ctx.ClearColorBufferWith(background)
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, dist/10, dist*10)
	for _, c := range comps {
		shader := fauxgl.NewPhongShader(matrix, lightDir, eye)
		shader.ObjectColor = c.color
		ctx.Shader = shader
		ctx.DrawMesh(c.mesh)
	}
	img := ctx.Image()
	return resize.Resize(uint(width), uint(height), img, resize.Bilinear), nil
}

// RenderFile reads the manifest at manifestPath and writes the rendered
// image to outPath as PNG. Mesh paths resolve against the manifest's
// directory.
func RenderFile(manifestPath, outPath string, width, height int) error {
	m, err := manifest.ReadFile(manifestPath)
	if err != nil {
		return err
	}
	img, err := Render(m, filepath.Dir(manifestPath), width, height)
	if err != nil {
		return err
	}
	return fauxgl.SavePNG(outPath, img)
}

// poseMatrix builds the placement transform: XYZ Euler rotation in degrees
// followed by translation.
func poseMatrix(p manifest.Placement) fauxgl.Matrix {
	return fauxgl.Identity().
		Rotate(fauxgl.V(1, 0, 0), fauxgl.Radians(p.Rotation[0])).
		Rotate(fauxgl.V(0, 1, 0), fauxgl.Radians(p.Rotation[1])).
		Rotate(fauxgl.V(0, 0, 1), fauxgl.Radians(p.Rotation[2])).
		Translate(fauxgl.V(p.Position[0], p.Position[1], p.Position[2]))
}
