package cv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHysteresis_DefaultBandSequence(t *testing.T) {
	// A slow rise above the high threshold, a slow fall below the low
	// threshold, and a return to mid-scale should trace out the full band.
	samples := []uint8{100, 120, 128, 129, 80, 78, 77, 76, 128}
	expected := []bool{false, false, false, true, true, true, true, false, false}

	h := NewDefault()
	for i, s := range samples {
		level := h.Update(s)
		assert.Equal(t, expected[i], level, "sample %d (%d)", i, s)
	}
}

func TestHysteresis_RetainsInsideBand(t *testing.T) {
	h := NewDefault()
	h.Update(200) // go high
	assert.True(t, h.Level())

	for _, s := range []uint8{150, 130, 128, 90, 78} {
		h.Update(s)
		assert.True(t, h.Level(), "sample %d should stay high inside the band", s)
	}
}

func TestHysteresis_MidScaleHoldsLevel(t *testing.T) {
	h := NewDefault()
	assert.False(t, h.Update(128), "mid-scale from low should not flip to high")

	h.Update(200)
	assert.True(t, h.Level())
	assert.True(t, h.Update(128), "mid-scale from high should not flip to low")
}

func TestHysteresis_CustomThresholds(t *testing.T) {
	h := New(50, 200)
	assert.False(t, h.Update(199))
	assert.True(t, h.Update(201))
	assert.True(t, h.Update(51))
	assert.False(t, h.Update(49))
}

func TestNew_PanicsOnInvertedThresholds(t *testing.T) {
	assert.Panics(t, func() { New(200, 100) })
	assert.Panics(t, func() { New(100, 100) })
}
