package dims

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vialabel/vialcad/config"
)

func resolve(t *testing.T, profile string) config.Resolved {
	t.Helper()
	cfg, err := config.Resolve(profile)
	require.NoError(t, err)
	return cfg
}

func TestDeriveDeterministic(t *testing.T) {
	cfg := resolve(t, "")
	a, err := Derive(cfg)
	require.NoError(t, err)
	b, err := Derive(cfg)
	require.NoError(t, err)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("two derivations of the same config differ (-first +second):\n%s", diff)
	}
}

func TestDeriveDefaults(t *testing.T) {
	d, err := Derive(resolve(t, ""))
	require.NoError(t, err)

	assert.Greater(t, d.CradleVAngle, 0.0)
	assert.Less(t, d.CradleVAngle, 180.0)
	// peel_channel_width = label_width + 2 * clearance
	assert.InDelta(t, 41.0, d.PeelChannelWidth, 1e-12)
	assert.InDelta(t, 36.0, d.CradleBaseWidth, 1e-12)
	assert.InDelta(t, 35.0, d.CradleLength, 1e-12)
	// Derived frame width must fit on the configured plate.
	assert.LessOrEqual(t, d.FrameWidth, 120.0)
	// Peel wall sits inset from the right plate edge.
	assert.InDelta(t, 93.0, d.PeelWallX, 1e-12)
	assert.InDelta(t, 20.0, d.PeelMountZ, 1e-12)
}

func TestDeriveProfileChangesOnlyDependentDims(t *testing.T) {
	base, err := Derive(resolve(t, ""))
	require.NoError(t, err)
	wide, err := Derive(resolve(t, "22mm"))
	require.NoError(t, err)

	// Vial-dependent dimensions move with the profile.
	assert.NotEqual(t, base.CradleVAngle, wide.CradleVAngle)
	assert.NotEqual(t, base.FrameWidth, wide.FrameWidth)
	assert.NotEqual(t, base.PeelChannelWidth, wide.PeelChannelWidth)

	// Dimensions unrelated to the vial and label stay put.
	assert.Equal(t, base.SpoolExitZ, wide.SpoolExitZ)
	assert.Equal(t, base.DancerRollerZ, wide.DancerRollerZ)
}

func TestDeriveVialTooLargeForVBlock(t *testing.T) {
	cfg := resolve(t, "")
	cfg.VialDiameter = 60.0 // radius exceeds the usable V-block depth
	_, err := Derive(cfg)
	var derr *DerivationError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "cradle_v_angle", derr.Dimension)
}

func TestDeriveFrameTooNarrow(t *testing.T) {
	cfg := resolve(t, "")
	cfg.FrameWidth = 50.0 // narrower than any component footprint allows
	cfg.LabelWidth = 40.0
	_, err := Derive(cfg)
	var derr *DerivationError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "frame_width", derr.Dimension)
}
