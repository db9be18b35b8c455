// Package config resolves the parametric configuration of the vial label
// applicator. A configuration document is a TOML file with a [default] base
// table and optional [profiles.<name>] tables whose entries replace base
// values key-by-key. Validation runs once on the merged result; a Resolved
// value is never mutated after Resolve returns.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed config.toml
var builtinTOML []byte

// Resolved is the merged, validated parameter set for one run.
// All dimensions are millimeters.
type Resolved struct {
	Profile string // active profile name, empty for base table only.

	VialDiameter          float64
	VialHeight            float64
	LabelWidth            float64
	LabelHeight           float64
	LabelOffsetFromBottom float64
	LabelThickness        float64
	MinBendRadius         float64
	WallThickness         float64
	BaseThickness         float64
	MountHoleDiameter     float64
	FrameLength           float64
	FrameWidth            float64
	FrameWallHeight       float64
	FrameWallThickness    float64
	FrameMargin           float64
	PeelChannelClearance  float64
	PeelBodyDepth         float64
	CradleVBlockHeight    float64
	SpoolSpindleOD        float64
	SpoolFlangeDiameter   float64
	SpoolFlangeThickness  float64
	SpoolHeight           float64
	DancerArmLength       float64
	DancerArmThickness    float64
	PivotBore             float64
	BearingOD             float64
	BearingID             float64
	BracketHeight         float64
	PivotPostHeight       float64
}

// Error reports one or more problems with a configuration document.
// All issues found during validation are collected before returning.
type Error struct {
	Profile string
	Issues  []string
}

func (e *Error) Error() string {
	if len(e.Issues) == 1 {
		return "config: " + e.Issues[0]
	}
	return fmt.Sprintf("config: %d issues:\n  %s", len(e.Issues), strings.Join(e.Issues, "\n  "))
}

// requiredKeys are the keys the base table must define after merging.
var requiredKeys = []string{
	"vial_diameter",
	"vial_height",
	"label_width",
	"label_height",
	"label_offset_from_bottom",
	"label_thickness",
	"min_bend_radius",
	"wall_thickness",
	"base_thickness",
	"mount_hole_diameter",
	"frame_length",
	"frame_width",
	"frame_wall_height",
	"frame_wall_thickness",
	"frame_margin",
	"peel_channel_clearance",
	"peel_body_depth",
	"cradle_v_block_height",
	"spool_spindle_od",
	"spool_flange_diameter",
	"spool_flange_thickness",
	"spool_height",
	"dancer_arm_length",
	"dancer_arm_thickness",
	"pivot_bore",
	"bearing_od",
	"bearing_id",
	"bracket_height",
	"pivot_post_height",
}

// Printable minimum for any wall dimension on an FDM printer.
const minPrintableWall = 0.8

// Sanity bounds for any single dimension.
const (
	minDimension = 0.01
	maxDimension = 500.0
)

type document struct {
	Default  map[string]interface{}            `toml:"default"`
	Profiles map[string]map[string]interface{} `toml:"profiles"`
}

// Resolve loads the built-in configuration document and applies the named
// profile. An empty profile name selects the base table alone.
func Resolve(profile string) (Resolved, error) {
	return resolveBytes(builtinTOML, profile)
}

// ResolveFile is Resolve for an external configuration document.
func ResolveFile(path, profile string) (Resolved, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Resolved{}, &Error{Profile: profile, Issues: []string{fmt.Sprintf("reading %s: %v", path, err)}}
	}
	return resolveBytes(b, profile)
}

func resolveBytes(b []byte, profile string) (Resolved, error) {
	var doc document
	if err := toml.Unmarshal(b, &doc); err != nil {
		return Resolved{}, &Error{Profile: profile, Issues: []string{"parsing TOML: " + err.Error()}}
	}
	if doc.Default == nil {
		return Resolved{}, &Error{Profile: profile, Issues: []string{"document has no [default] table"}}
	}

	merged := make(map[string]interface{}, len(doc.Default))
	for k, v := range doc.Default {
		merged[k] = v
	}
	if profile != "" {
		override, ok := doc.Profiles[profile]
		if !ok {
			return Resolved{}, &Error{Profile: profile, Issues: []string{
				fmt.Sprintf("unknown profile %q, available: %s", profile, availableProfiles(doc)),
			}}
		}
		// Wholesale key replacement. No partial merging of values.
		for k, v := range override {
			merged[k] = v
		}
	}
	return validate(merged, profile)
}

func availableProfiles(doc document) string {
	if len(doc.Profiles) == 0 {
		return "(none)"
	}
	names := make([]string, 0, len(doc.Profiles))
	for name := range doc.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func validate(merged map[string]interface{}, profile string) (Resolved, error) {
	var issues []string
	vals := make(map[string]float64, len(merged))
	for _, key := range requiredKeys {
		raw, ok := merged[key]
		if !ok {
			issues = append(issues, "missing required key: "+key)
			continue
		}
		v, ok := asFloat(raw)
		if !ok {
			issues = append(issues, fmt.Sprintf("%s: expected number, got %T", key, raw))
			continue
		}
		vals[key] = v
	}
	if len(issues) > 0 {
		// Range and cross-field checks need the full numeric table.
		return Resolved{}, &Error{Profile: profile, Issues: issues}
	}

	for _, key := range requiredKeys {
		v := vals[key]
		switch {
		case v < minDimension:
			issues = append(issues, fmt.Sprintf("%s: %gmm is below minimum (%gmm)", key, v, minDimension))
		case v > maxDimension:
			issues = append(issues, fmt.Sprintf("%s: %gmm exceeds maximum (%gmm)", key, v, maxDimension))
		}
	}
	if w := vals["wall_thickness"]; w < minPrintableWall {
		issues = append(issues, fmt.Sprintf("wall_thickness: %gmm below printable minimum (%gmm)", w, minPrintableWall))
	}
	if vals["label_width"] >= vals["frame_width"] {
		issues = append(issues, fmt.Sprintf("label_width (%gmm) must be < frame_width (%gmm)",
			vals["label_width"], vals["frame_width"]))
	}
	if vals["label_height"] >= vals["vial_height"] {
		issues = append(issues, fmt.Sprintf("label_height (%gmm) must be < vial_height (%gmm)",
			vals["label_height"], vals["vial_height"]))
	}
	if vals["label_offset_from_bottom"]+vals["label_height"] > vals["vial_height"] {
		issues = append(issues, "label_offset_from_bottom + label_height exceeds vial_height")
	}
	if vals["spool_flange_diameter"] <= vals["spool_spindle_od"] {
		issues = append(issues, fmt.Sprintf("spool_flange_diameter (%gmm) must be > spool_spindle_od (%gmm)",
			vals["spool_flange_diameter"], vals["spool_spindle_od"]))
	}
	if vals["bearing_od"] <= vals["bearing_id"] {
		issues = append(issues, fmt.Sprintf("bearing_od (%gmm) must be > bearing_id (%gmm)",
			vals["bearing_od"], vals["bearing_id"]))
	}
	if len(issues) > 0 {
		return Resolved{}, &Error{Profile: profile, Issues: issues}
	}

	return Resolved{
		Profile:               profile,
		VialDiameter:          vals["vial_diameter"],
		VialHeight:            vals["vial_height"],
		LabelWidth:            vals["label_width"],
		LabelHeight:           vals["label_height"],
		LabelOffsetFromBottom: vals["label_offset_from_bottom"],
		LabelThickness:        vals["label_thickness"],
		MinBendRadius:         vals["min_bend_radius"],
		WallThickness:         vals["wall_thickness"],
		BaseThickness:         vals["base_thickness"],
		MountHoleDiameter:     vals["mount_hole_diameter"],
		FrameLength:           vals["frame_length"],
		FrameWidth:            vals["frame_width"],
		FrameWallHeight:       vals["frame_wall_height"],
		FrameWallThickness:    vals["frame_wall_thickness"],
		FrameMargin:           vals["frame_margin"],
		PeelChannelClearance:  vals["peel_channel_clearance"],
		PeelBodyDepth:         vals["peel_body_depth"],
		CradleVBlockHeight:    vals["cradle_v_block_height"],
		SpoolSpindleOD:        vals["spool_spindle_od"],
		SpoolFlangeDiameter:   vals["spool_flange_diameter"],
		SpoolFlangeThickness:  vals["spool_flange_thickness"],
		SpoolHeight:           vals["spool_height"],
		DancerArmLength:       vals["dancer_arm_length"],
		DancerArmThickness:    vals["dancer_arm_thickness"],
		PivotBore:             vals["pivot_bore"],
		BearingOD:             vals["bearing_od"],
		BearingID:             vals["bearing_id"],
		BracketHeight:         vals["bracket_height"],
		PivotPostHeight:       vals["pivot_post_height"],
	}, nil
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	}
	return 0, false
}
