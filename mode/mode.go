// Package mode implements the five signal-processing mode handlers: gate,
// trigger, toggle, divide, and cycle. Exactly one variant of Context is
// live at a time; changing modes reinitializes the variant in place
// rather than allocating a new one.
package mode

import "github.com/arcfirmware/gatecore/settings"

// Mode is the five-valued ordinal selecting which handler is active.
type Mode int

const (
	Gate Mode = iota
	Trigger
	Toggle
	Divide
	Cycle
	count
)

func (m Mode) String() string {
	switch m {
	case Gate:
		return "gate"
	case Trigger:
		return "trigger"
	case Toggle:
		return "toggle"
	case Divide:
		return "divide"
	case Cycle:
		return "cycle"
	default:
		return "unknown"
	}
}

// Count is the number of modes, for modulo-cycling.
const Count = int(count)

// Next returns the mode following m, wrapping around.
func (m Mode) Next() Mode {
	return Mode((int(m) + 1) % Count)
}

var pulseDurationsMs = [...]uint32{10, 50, 100, 1}
var divisors = [...]uint8{2, 4, 8, 24}

// halfPeriodsMs holds the half-period (toggle interval) in ms for the
// cycle-tempo setting's five BPM values: 60, 80, 100, 120, 160.
var halfPeriodsMs = [...]uint32{500, 375, 300, 250, 187}

// Context is the tagged union of per-mode state. Only one variant is
// meaningful at a time, selected by Tag; Init reinitializes the active
// variant and clears the others implicitly (they are simply not read).
type Context struct {
	Tag Mode

	gate    gateState
	trigger triggerState
	toggle  toggleState
	divide  divideState
	cycle   cycleState
}

type gateState struct {
	output bool
}

type triggerState struct {
	output     bool
	previous   bool
	pulseStart uint32
	pulseDurMs uint32
}

type toggleState struct {
	output   bool
	previous bool
	rising   bool // true = toggle on rising edge, false = falling edge
}

type divideState struct {
	output     bool
	previous   bool
	counter    uint8
	divisor    uint8
	pulseStart uint32
	pulseDurMs uint32
}

type cycleState struct {
	output     bool
	running    bool
	lastToggle uint32
	periodMs   uint32
	phase      uint8
}

// Init (re)initializes the context for tag using the current settings
// record and the tick time now. The output starts low except for gate,
// which mirrors its next input unconditionally.
func (c *Context) Init(tag Mode, s *settings.Record, now uint32) {
	c.Tag = tag
	switch tag {
	case Gate:
		c.gate = gateState{}
	case Trigger:
		c.trigger = triggerState{
			pulseDurMs: pulseDurationsMs[s.TriggerPulse%uint8(len(pulseDurationsMs))],
		}
	case Toggle:
		c.toggle = toggleState{rising: s.ToggleEdge == settings.EdgeRising}
	case Divide:
		c.divide = divideState{
			divisor:    divisors[s.DivideDivisor%uint8(len(divisors))],
			pulseDurMs: pulseDurationsMs[0],
		}
	case Cycle:
		c.cycle = cycleState{
			periodMs:   halfPeriodsMs[s.CycleTempo%uint8(len(halfPeriodsMs))],
			lastToggle: now,
			running:    true,
		}
	}
}

// Process advances the active variant by one tick given input and the
// current tick time, returning the new output bit.
func (c *Context) Process(input bool, now uint32) bool {
	switch c.Tag {
	case Gate:
		return c.processGate(input)
	case Trigger:
		return c.processTrigger(input, now)
	case Toggle:
		return c.processToggle(input)
	case Divide:
		return c.processDivide(input, now)
	case Cycle:
		return c.processCycle(now)
	default:
		return false
	}
}

// Output returns the active variant's current output bit without
// advancing it.
func (c *Context) Output() bool {
	switch c.Tag {
	case Gate:
		return c.gate.output
	case Trigger:
		return c.trigger.output
	case Toggle:
		return c.toggle.output
	case Divide:
		return c.divide.output
	case Cycle:
		return c.cycle.output
	default:
		return false
	}
}

// CyclePhase returns the 8-bit brightness phase for the cycle mode's LED
// glow; zero for every other mode.
func (c *Context) CyclePhase() uint8 {
	if c.Tag == Cycle {
		return c.cycle.phase
	}
	return 0
}

// CycleRunning reports whether the cycle mode's free-running clock is
// active; false for every other mode.
func (c *Context) CycleRunning() bool {
	return c.Tag == Cycle && c.cycle.running
}

func (c *Context) processGate(input bool) bool {
	c.gate.output = input
	return c.gate.output
}

func (c *Context) processToggle(input bool) bool {
	risingEdge := input && !c.toggle.previous
	fallingEdge := !input && c.toggle.previous
	if (c.toggle.rising && risingEdge) || (!c.toggle.rising && fallingEdge) {
		c.toggle.output = !c.toggle.output
	}
	c.toggle.previous = input
	return c.toggle.output
}
