// Package led translates the coordinator's per-tick LED descriptor into
// two concrete RGB colors: a mode indicator and an activity indicator,
// each capable of solid, blink, or glow animation.
package led

import "github.com/lucasb-eyer/go-colorful"

// Animation selects how a single LED's color evolves over time.
type Animation int

const (
	Solid Animation = iota
	Blink
	Glow
)

const (
	blinkPeriodMs uint32 = 500
	glowPeriodMs  uint32 = 1000
)

// RGB is an 8-bit-per-channel color, the wire shape a pixel-chain driver
// consumes.
type RGB struct {
	R, G, B uint8
}

// Descriptor is the per-tick input the coordinator hands to Controller.
type Descriptor struct {
	ModeColor     RGB
	ActivityColor RGB
	ActivityOn    bool
	ActivityAnim  Animation
	ActivityPhase uint8 // used verbatim for Glow when non-zero (e.g. cycle mode's ramp)
	ModeAnim      Animation
	Now           uint32
}

// animState tracks one LED's animation progress between ticks.
type animState struct {
	anim       Animation
	base       RGB
	periodMs   uint32
	lastUpdate uint32
	on         bool
}

// Controller owns the two animation states and renders them to concrete
// colors each tick.
type Controller struct {
	mode     animState
	activity animState
}

// New creates a Controller with both LEDs off.
func New() *Controller {
	return &Controller{}
}

// Update applies d and returns the rendered mode and activity colors. A
// change in animation type or base color since the previous tick (a mode
// change, a menu page change, or a setting-value change) reseeds that
// LED's phase so the new animation starts clean rather than continuing
// mid-cycle from whatever the previous classification left behind.
func (c *Controller) Update(d Descriptor) (modeRGB, activityRGB RGB) {
	reseed(&c.mode, d.ModeAnim, d.ModeColor, d.Now)
	reseed(&c.activity, d.ActivityAnim, d.ActivityColor, d.Now)

	modeRGB = render(&c.mode, d.Now, 0)
	activityRGB = render(&c.activity, d.Now, d.ActivityPhase)
	if !d.ActivityOn {
		activityRGB = RGB{}
	}
	return modeRGB, activityRGB
}

func reseed(s *animState, anim Animation, base RGB, now uint32) {
	if s.anim != anim || s.base != base {
		s.anim = anim
		s.base = base
		s.periodMs = periodFor(anim)
		s.lastUpdate = now
		return
	}
	s.base = base
}

func periodFor(a Animation) uint32 {
	switch a {
	case Blink:
		return blinkPeriodMs
	case Glow:
		return glowPeriodMs
	default:
		return 0
	}
}

// render computes the color for one LED's animation state at tick now.
// explicitPhase, when non-zero, overrides the glow phase derived from
// elapsed time — used by the cycle mode handler, which already tracks its
// own phase ramp tied to its output period rather than the LED's.
func render(s *animState, now uint32, explicitPhase uint8) RGB {
	switch s.anim {
	case Solid:
		return s.base
	case Blink:
		if s.periodMs == 0 {
			return s.base
		}
		half := s.periodMs / 2
		elapsed := (now - s.lastUpdate) % s.periodMs
		if elapsed < half {
			return s.base
		}
		return RGB{}
	case Glow:
		phase := explicitPhase
		if phase == 0 && s.periodMs != 0 {
			elapsed := (now - s.lastUpdate) % s.periodMs
			phase = uint8((uint64(elapsed) * 255) / uint64(s.periodMs))
		}
		return scale(s.base, triangleBrightness(phase))
	default:
		return RGB{}
	}
}

// triangleBrightness maps an 8-bit phase to a triangle wave: 0..127 ramps
// 0..254, 128..255 ramps 254..0.
func triangleBrightness(phase uint8) uint8 {
	if phase < 128 {
		return uint8(int(phase) * 2)
	}
	return uint8((255 - int(phase)) * 2)
}

// scale applies brightness to base using a linear RGB blend toward black,
// via go-colorful rather than hand-rolled (channel*brightness)/255
// integer math.
func scale(base RGB, brightness uint8) RGB {
	c := colorful.Color{R: float64(base.R) / 255, G: float64(base.G) / 255, B: float64(base.B) / 255}
	black := colorful.Color{}
	blended := black.BlendRgb(c, float64(brightness)/255)
	return RGB{
		R: uint8(clamp01(blended.R) * 255),
		G: uint8(clamp01(blended.G) * 255),
		B: uint8(clamp01(blended.B) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
