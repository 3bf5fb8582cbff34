package led

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdate_SolidReturnsBaseColor(t *testing.T) {
	c := New()
	mode, _ := c.Update(Descriptor{ModeColor: RGB{R: 10, G: 20, B: 30}, ModeAnim: Solid})
	assert.Equal(t, RGB{R: 10, G: 20, B: 30}, mode)
}

func TestUpdate_ActivityOffIsBlack(t *testing.T) {
	c := New()
	_, activity := c.Update(Descriptor{ActivityColor: RGB{R: 255}, ActivityOn: false, ActivityAnim: Solid})
	assert.Equal(t, RGB{}, activity)
}

func TestUpdate_BlinkTogglesEveryHalfPeriod(t *testing.T) {
	c := New()

	_, on := c.Update(Descriptor{ActivityColor: RGB{R: 255}, ActivityOn: true, ActivityAnim: Blink, Now: 0})
	assert.Equal(t, RGB{R: 255}, on)

	_, off := c.Update(Descriptor{ActivityColor: RGB{R: 255}, ActivityOn: true, ActivityAnim: Blink, Now: 250})
	assert.Equal(t, RGB{}, off)

	_, onAgain := c.Update(Descriptor{ActivityColor: RGB{R: 255}, ActivityOn: true, ActivityAnim: Blink, Now: 500})
	assert.Equal(t, RGB{R: 255}, onAgain)
}

func TestTriangleBrightness_PeaksAtMidPhase(t *testing.T) {
	assert.Equal(t, uint8(0), triangleBrightness(0))
	assert.Equal(t, uint8(254), triangleBrightness(127))
	assert.Equal(t, uint8(254), triangleBrightness(128))
	assert.Equal(t, uint8(0), triangleBrightness(255))
}

func TestUpdate_GlowUsesExplicitPhase(t *testing.T) {
	c := New()
	_, mid := c.Update(Descriptor{
		ActivityColor: RGB{R: 200, G: 200, B: 200},
		ActivityOn:    true,
		ActivityAnim:  Glow,
		ActivityPhase: 127,
	})
	assert.Greater(t, mid.R, uint8(0))
	assert.Less(t, mid.R, uint8(200))
}
