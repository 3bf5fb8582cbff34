// Package coordinator owns the three finite state machines (top, mode,
// menu) and the mode-handler dispatch, driving the whole per-tick
// pipeline behind a single Update entry point: sample inputs, produce at
// most one event, route it through the FSMs, run the active mode
// handler, and leave an LED descriptor behind for the feedback
// controller to render.
package coordinator

import (
	"log/slog"

	"github.com/arcfirmware/gatecore/button"
	"github.com/arcfirmware/gatecore/cv"
	"github.com/arcfirmware/gatecore/fsm"
	"github.com/arcfirmware/gatecore/gesture"
	"github.com/arcfirmware/gatecore/hal"
	"github.com/arcfirmware/gatecore/led"
	"github.com/arcfirmware/gatecore/mode"
	"github.com/arcfirmware/gatecore/settings"
)

// Top is the two-valued top-level state.
type Top int

const (
	Perform Top = iota
	Menu
)

func (t Top) String() string {
	if t == Menu {
		return "menu"
	}
	return "perform"
}

const menuTimeoutDefaultMs uint32 = 60_000
const menuTimeoutExtendedMs uint32 = 300_000

const adcChannel uint8 = 0

// Coordinator owns the three FSMs, the input front ends, the active mode
// context, a reference to the settings record, and the bookkeeping needed
// for menu timeout and settings persistence on exit.
type Coordinator struct {
	h     hal.HAL
	store *settings.Store

	top  *fsm.Machine
	mode *fsm.Machine
	menu *fsm.Machine

	buttonA *button.Button
	buttonB *button.Button
	hys     *cv.Hysteresis
	events  *gesture.Processor

	settings *settings.Record
	modeCtx  mode.Context

	currentMode   mode.Mode
	currentPage   Page
	menuEntryMode mode.Mode
	menuEntryTick uint32
	lastActivity  uint32

	// suppressModeNext is armed by exitMenuViaHold and consumed by the
	// very next mode-next event Update would otherwise route to the mode
	// FSM, so a solo A-hold that exits the menu does not also advance the
	// mode on the matching release.
	suppressModeNext bool

	output bool
}

// New builds a Coordinator bound to h and rec. rec is shared by reference
// for the coordinator's lifetime; the coordinator mutates it when a menu
// B-tap cycles a setting and on menu exit, when it copies the current mode
// into it and persists it.
func New(h hal.HAL, store *settings.Store, rec *settings.Record) *Coordinator {
	c := &Coordinator{
		h:        h,
		store:    store,
		buttonA:  button.New(h.Pins().ButtonA),
		buttonB:  button.New(h.Pins().ButtonB),
		hys:      cv.NewDefault(),
		events:   gesture.New(),
		settings: rec,
	}
	if rec.GlobalCVOption() {
		c.hys.SetThresholds(cv.AltLowThreshold, cv.AltHighThreshold)
	}

	c.currentMode = mode.Mode(rec.Mode)
	c.top = newTopMachine(c)
	c.mode = newModeMachine(c)
	c.menu = newMenuMachine(c)
	return c
}

// Start activates the three FSMs and initializes the mode context from
// the loaded settings record. Called once during bring-up, after settings
// have been loaded and before the tick loop begins.
func (c *Coordinator) Start(now uint32) {
	c.modeCtx.Init(c.currentMode, c.settings, now)
	c.top.Start()
	c.mode.Start()
	c.menu.Start()
	c.lastActivity = now
}

// Update runs one tick of the full pipeline: sample, condition, produce
// an event, route it through the FSMs, run the active mode handler, then
// compute the output bit.
func (c *Coordinator) Update() {
	cvLevel := c.hys.Update(c.h.ReadADC(adcChannel))

	now := c.h.Millis()
	c.buttonA.Update(c.h, now)
	c.buttonB.Update(c.h, now)

	evt := c.events.Update(gesture.Input{
		APressed: c.buttonA.Pressed(),
		BPressed: c.buttonB.Pressed(),
		CVHigh:   cvLevel,
		Now:      now,
	})

	if evt != gesture.None {
		if c.Top() == Menu {
			c.lastActivity = now
		}
		if evt == gesture.APress {
			c.suppressModeNext = false
		}

		id := fsm.ID(evt)
		if !c.top.Process(id) {
			switch {
			case c.Top() == Menu:
				c.menu.Process(id)
			case evt == gesture.ModeNext && c.suppressModeNext:
				c.suppressModeNext = false
			default:
				c.mode.Process(id)
			}
		}
	}

	if c.Top() == Menu && now-c.lastActivity >= c.menuTimeoutMs() {
		c.top.Process(fsm.ID(gesture.Timeout))
	}

	input := c.modeInput(cvLevel)
	c.output = c.modeCtx.Process(input, now)

	slog.Debug("tick", "top", c.Top(), "mode", c.currentMode, "output", c.output)
}

// modeInput computes the active mode handler's input bit: the CV level
// while menu is open (so a handler preview stays live), otherwise CV ORed
// with a B-only press, plus A when gate-A-manual is enabled.
func (c *Coordinator) modeInput(cvLevel bool) bool {
	if c.Top() == Menu {
		return cvLevel
	}

	aPressed := c.buttonA.Pressed()
	bPressed := c.buttonB.Pressed()

	input := cvLevel || (bPressed && !aPressed)
	if c.currentMode == mode.Gate && c.settings.GateAMode == settings.GateAManual && aPressed {
		input = true
	}
	return input
}

func (c *Coordinator) menuTimeoutMs() uint32 {
	if c.settings.MenuTimeoutOption() {
		return menuTimeoutExtendedMs
	}
	return menuTimeoutDefaultMs
}

// Top returns the current top-level state.
func (c *Coordinator) Top() Top {
	if c.top.Current() == fsm.ID(Menu) {
		return Menu
	}
	return Perform
}

// Mode returns the current signal-processing mode.
func (c *Coordinator) Mode() mode.Mode { return c.currentMode }

// Page returns the current menu page (meaningful only while Top()==Menu).
func (c *Coordinator) Page() Page { return c.currentPage }

// Output returns the current output bit.
func (c *Coordinator) Output() bool { return c.output }

// CVLevel returns the current CV digital level.
func (c *Coordinator) CVLevel() bool { return c.hys.Level() }

// LEDDescriptor builds this tick's descriptor for the LED feedback
// controller: mode color/animation plus activity color/animation, switching
// to the current menu page's color and value-cycle feedback while the menu
// is open.
func (c *Coordinator) LEDDescriptor(now uint32) led.Descriptor {
	if c.Top() == Perform {
		return led.Descriptor{
			ModeColor:     led.ModeColors[c.currentMode],
			ModeAnim:      led.Solid,
			ActivityColor: led.ModeColors[c.currentMode],
			ActivityOn:    c.output,
			ActivityAnim:  c.activityAnimation(),
			ActivityPhase: c.modeCtx.CyclePhase(),
			Now:           now,
		}
	}

	page := c.currentPage
	valueIndex := c.currentSettingValue(page)
	return led.Descriptor{
		ModeColor:     page.color(),
		ModeAnim:      page.animation(),
		ActivityColor: page.color(),
		ActivityOn:    valueIndex > 0,
		ActivityAnim:  activityAnimForValueIndex(valueIndex),
		Now:           now,
	}
}

func (c *Coordinator) activityAnimation() led.Animation {
	if c.currentMode == mode.Cycle {
		return led.Glow
	}
	return led.Solid
}

// activityAnimForValueIndex implements the menu activity-LED convention:
// 0 = off, 1 = solid, 2 = blink, 3+ = glow.
func activityAnimForValueIndex(v uint8) led.Animation {
	switch v {
	case 0:
		return led.Solid // ActivityOn is false for 0, so this value is unused
	case 1:
		return led.Solid
	case 2:
		return led.Blink
	default:
		return led.Glow
	}
}

func (c *Coordinator) currentSettingValue(p Page) uint8 {
	switch p {
	case PageGateABehavior:
		return uint8(c.settings.GateAMode)
	case PageTriggerEdge:
		return uint8(c.settings.TriggerEdge)
	case PageTriggerPulse:
		return c.settings.TriggerPulse
	case PageToggleEdge:
		return uint8(c.settings.ToggleEdge)
	case PageDivideDivisor:
		return c.settings.DivideDivisor
	case PageCycleTempo:
		return c.settings.CycleTempo
	case PageGlobalCV:
		return boolIndex(c.settings.GlobalCVOption())
	case PageMenuTimeout:
		return boolIndex(c.settings.MenuTimeoutOption())
	default:
		return 0
	}
}

func boolIndex(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
