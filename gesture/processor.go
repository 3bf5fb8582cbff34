// Package gesture merges debounced button state and CV level over time
// into a single semantic Event per tick: presses, taps, holds, and the
// two compound gestures (menu-toggle, mode-next) that distinguish solo
// holds from two-button sequences by their ordering.
package gesture

// holdThresholdMs is the duration a press must be held to latch as a hold.
const holdThresholdMs uint32 = 500

// Input bundles the conditioned per-tick state the processor consumes.
type Input struct {
	APressed bool
	BPressed bool
	CVHigh   bool
	Now      uint32
}

// Processor holds the event-processor state: per-button press/hold
// tracking plus the two flags needed to arbitrate between the two
// compound gestures without double-firing or degenerating one into the
// other on release.
type Processor struct {
	aPrevious    bool
	aHoldLatched bool

	bPrevious    bool
	bHoldLatched bool

	cvPrevious bool

	compoundFired       bool
	bTouchedDuringAHold bool

	aPressTime uint32
	bPressTime uint32
}

// New creates a Processor with all buttons assumed released and CV low.
func New() *Processor {
	return &Processor{}
}

// Update merges the tick's input into at most one Event, in priority
// order: A transitions, then B transitions, then the compound-gesture
// rewrite, then CV edges.
func (p *Processor) Update(input Input) Event {
	aEvent := p.processA(input)
	bEvent, bHoldJustLatched := p.processB(input)

	event := aEvent
	if event == None {
		event = bEvent
	}

	if bHoldJustLatched && input.APressed && p.aPressTime < p.bPressTime && !p.compoundFired {
		event = MenuToggle
		p.compoundFired = true
	}

	if !input.APressed && !input.BPressed {
		p.compoundFired = false
	}

	if event == None {
		switch {
		case input.CVHigh && !p.cvPrevious:
			event = CVRise
		case !input.CVHigh && p.cvPrevious:
			event = CVFall
		}
	}

	p.aPrevious = input.APressed
	p.bPrevious = input.BPressed
	p.cvPrevious = input.CVHigh

	return event
}

// processA handles button A's press/tap/release/hold transitions.
func (p *Processor) processA(input Input) Event {
	event := None

	switch {
	case input.APressed && !p.aPrevious:
		p.aPressTime = input.Now
		p.aHoldLatched = false
		p.bTouchedDuringAHold = false
		event = APress
	case !input.APressed && p.aPrevious:
		switch {
		case !p.aHoldLatched:
			event = ATap
		case !p.bTouchedDuringAHold && !p.compoundFired:
			event = ModeNext
		default:
			event = ARelease
		}
		p.aHoldLatched = false
	case input.APressed && !p.aHoldLatched:
		if input.Now-p.aPressTime >= holdThresholdMs {
			p.aHoldLatched = true
			if !input.BPressed {
				event = AHold
			}
		}
	}

	return event
}

// processB handles button B's press/tap/release/hold transitions. There is
// no mode-next equivalent for B. Reports whether B's hold just latched
// this tick (independent of whether an event was emitted), since the
// compound-gesture rewrite needs that transition even when B-hold's own
// emission is suppressed by A being held.
func (p *Processor) processB(input Input) (Event, bool) {
	event := None
	holdJustLatched := false

	switch {
	case input.BPressed && !p.bPrevious:
		p.bPressTime = input.Now
		p.bHoldLatched = false
		if p.aHoldLatched {
			p.bTouchedDuringAHold = true
		}
		event = BPress
	case !input.BPressed && p.bPrevious:
		if !p.bHoldLatched {
			event = BTap
		} else {
			event = BRelease
		}
		p.bHoldLatched = false
	case input.BPressed && !p.bHoldLatched:
		if input.Now-p.bPressTime >= holdThresholdMs {
			p.bHoldLatched = true
			holdJustLatched = true
			if !input.APressed {
				event = BHold
			}
		}
	}

	return event, holdJustLatched
}

// CompoundFired reports whether the menu-toggle compound has already fired
// for the current press sequence (diagnostics/tests).
func (p *Processor) CompoundFired() bool { return p.compoundFired }

// BTouchedDuringAHold reports whether B was pressed while A's hold was
// already latched, for the current A press (diagnostics/tests).
func (p *Processor) BTouchedDuringAHold() bool { return p.bTouchedDuringAHold }
