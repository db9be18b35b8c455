// Package manifest aggregates component placements into the assembly
// manifest, the single source of truth for where every part sits in the
// shared assembly frame. Downstream tools (preview rendering, assembly QA)
// consume only this file; placement data is never duplicated elsewhere.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vialabel/vialcad/config"
	"github.com/vialabel/vialcad/dims"
)

// Version is the manifest format version written by this package.
const Version = 1

// Placement is one component's final pose. Position is millimeters in the
// assembly frame, Rotation is XYZ Euler angles in degrees, Color is an
// optional display color with channels in [0, 1].
type Placement struct {
	Name     string      `json:"name"`
	MeshPath string      `json:"mesh_path"`
	Position [3]float64  `json:"position"`
	Rotation [3]float64  `json:"rotation"`
	Color    *[3]float64 `json:"color,omitempty"`
}

// Manifest is the ordered collection of placements plus a format version.
// Component order is the caller-supplied generation order, never re-sorted,
// so identical runs produce byte-identical files.
type Manifest struct {
	Version    int         `json:"version"`
	Components []Placement `json:"components"`
}

// Error reports a placement that cannot be published.
type Error struct {
	Name   string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("manifest: component %q: %s", e.Name, e.Reason)
}

// Build validates placements and assembles the manifest. Relative mesh paths
// are resolved against baseDir for the existence check. Duplicate component
// names and dangling mesh references fail before anything can be written.
func Build(baseDir string, placements []Placement) (Manifest, error) {
	seen := make(map[string]bool, len(placements))
	for _, p := range placements {
		if p.Name == "" {
			return Manifest{}, &Error{Name: p.Name, Reason: "empty component name"}
		}
		if seen[p.Name] {
			return Manifest{}, &Error{Name: p.Name, Reason: "duplicate component name"}
		}
		seen[p.Name] = true
		path := p.MeshPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		if _, err := os.Stat(path); err != nil {
			return Manifest{}, &Error{Name: p.Name, Reason: fmt.Sprintf("mesh file %s does not exist", p.MeshPath)}
		}
	}
	return Manifest{Version: Version, Components: placements}, nil
}

// WriteFile serializes m to path as indented JSON. Serialization is
// deterministic: field order is fixed and components keep their order.
func WriteFile(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// ReadFile loads a manifest and checks its format version.
func ReadFile(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("manifest %s: %w", path, err)
	}
	if m.Version != Version {
		return Manifest{}, fmt.Errorf("manifest %s: unsupported version %d, want %d", path, m.Version, Version)
	}
	return m, nil
}

func rgb(r, g, b float64) *[3]float64 {
	return &[3]float64{r, g, b}
}

// DefaultPlacements returns the placements for the six printed components in
// generation order. Mesh paths are relative to the export directory and
// follow the component name.
func DefaultPlacements(cfg config.Resolved, d dims.Derived) []Placement {
	return []Placement{
		{
			Name:     "frame",
			MeshPath: "frame.stl",
			Color:    rgb(0.6, 0.6, 0.6),
		},
		{
			Name:     "peel_plate",
			MeshPath: "peel_plate.stl",
			Position: [3]float64{d.PeelWallX - cfg.PeelBodyDepth/2 - cfg.FrameWallThickness/2, 0, d.PeelMountZ},
			Rotation: [3]float64{90, 0, 0},
			Color:    rgb(0.2, 0.5, 0.8),
		},
		{
			Name:     "vial_cradle",
			MeshPath: "vial_cradle.stl",
			Position: [3]float64{d.CradleX, d.CradleY, cfg.BaseThickness},
			Color:    rgb(0.8, 0.4, 0.2),
		},
		{
			Name:     "spool_holder",
			MeshPath: "spool_holder.stl",
			Position: [3]float64{d.SpoolX, d.SpoolY, cfg.BaseThickness},
			Color:    rgb(0.3, 0.7, 0.3),
		},
		{
			Name:     "dancer_arm",
			MeshPath: "dancer_arm.stl",
			Position: [3]float64{d.DancerX, d.DancerY, cfg.BaseThickness + cfg.PivotPostHeight},
			Color:    rgb(0.7, 0.2, 0.5),
		},
		{
			Name:     "guide_roller_bracket",
			MeshPath: "guide_roller_bracket.stl",
			Position: [3]float64{d.GuideX, d.GuideY, cfg.BaseThickness},
			Color:    rgb(0.8, 0.8, 0.2),
		},
	}
}
