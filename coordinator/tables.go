package coordinator

import (
	"github.com/arcfirmware/gatecore/cv"
	"github.com/arcfirmware/gatecore/fsm"
	"github.com/arcfirmware/gatecore/gesture"
	"github.com/arcfirmware/gatecore/mode"
	"github.com/arcfirmware/gatecore/settings"
)

// newTopMachine builds the PERFORM/MENU state machine. A solo A-hold
// latches at the 500ms threshold (event a-hold) and only then, on
// release, resolves to mode-next; in MENU the table intercepts the
// earlier a-hold event directly so the menu exits the instant the hold
// latches rather than waiting for release. Because a-hold is consumed
// here and mode-next is not wired into this table at all, the later
// release's mode-next would otherwise fall through to the mode FSM
// (which is wildcard on mode-next from any state) and advance the mode
// as an unwanted side effect of the same gesture that just closed the
// menu; exitMenuViaHold guards against that by arming a one-shot
// suppression the routing in Update consumes.
func newTopMachine(c *Coordinator) *fsm.Machine {
	states := []fsm.State{
		{ID: fsm.ID(Perform)},
		{ID: fsm.ID(Menu)},
	}
	transitions := []fsm.Transition{
		{From: fsm.ID(Perform), Event: fsm.ID(gesture.MenuToggle), To: fsm.ID(Menu), Action: c.enterMenu},
		{From: fsm.ID(Menu), Event: fsm.ID(gesture.MenuToggle), To: fsm.ID(Perform), Action: c.exitMenu},
		{From: fsm.ID(Menu), Event: fsm.ID(gesture.Timeout), To: fsm.ID(Perform), Action: c.exitMenu},
		{From: fsm.ID(Menu), Event: fsm.ID(gesture.AHold), To: fsm.ID(Perform), Action: c.exitMenuViaHold},
	}
	return fsm.New(states, transitions, fsm.ID(Perform))
}

// newModeMachine builds the five-state mode machine: a single wildcard
// transition advances to the next mode on mode-next, from any mode.
func newModeMachine(c *Coordinator) *fsm.Machine {
	states := make([]fsm.State, mode.Count)
	for i := range states {
		states[i] = fsm.State{ID: fsm.ID(i)}
	}
	transitions := []fsm.Transition{
		{From: fsm.AnyState, Event: fsm.ID(gesture.ModeNext), To: fsm.NoTransition, Action: c.cycleNextMode},
	}
	return fsm.New(states, transitions, fsm.ID(c.currentMode))
}

// newMenuMachine builds the eight-page menu machine: A-tap advances the
// page, B-tap cycles the current page's value, both from any page.
func newMenuMachine(c *Coordinator) *fsm.Machine {
	states := make([]fsm.State, PageCount)
	for i := range states {
		states[i] = fsm.State{ID: fsm.ID(i)}
	}
	transitions := []fsm.Transition{
		{From: fsm.AnyState, Event: fsm.ID(gesture.ATap), To: fsm.NoTransition, Action: c.nextPage},
		{From: fsm.AnyState, Event: fsm.ID(gesture.BTap), To: fsm.NoTransition, Action: c.cycleValue},
	}
	return fsm.New(states, transitions, fsm.ID(c.currentPage))
}

// enterMenu records the mode menu was entered from, resets the menu
// timeout clock, and jumps the menu FSM to that mode's entry page.
func (c *Coordinator) enterMenu() {
	c.menuEntryMode = c.currentMode
	c.menuEntryTick = c.h.Millis()
	c.lastActivity = c.menuEntryTick
	c.currentPage = entryPage[c.currentMode]
	c.menu.JumpTo(fsm.ID(c.currentPage))
}

// exitMenu copies the current mode into the settings record and persists
// it.
func (c *Coordinator) exitMenu() {
	c.settings.Mode = uint8(c.currentMode)
	c.store.Save(*c.settings)
}

// exitMenuViaHold is exitMenu plus a one-shot flag telling Update to
// swallow the mode-next event that the same physical A release will
// still emit once aHoldLatched resolves, so closing the menu this way
// never also advances the mode.
func (c *Coordinator) exitMenuViaHold() {
	c.exitMenu()
	c.suppressModeNext = true
}

// cycleNextMode advances to the next mode, reinitializes the mode
// context from the current settings, and counts as activity.
func (c *Coordinator) cycleNextMode() {
	now := c.h.Millis()
	c.currentMode = c.currentMode.Next()
	c.modeCtx.Init(c.currentMode, c.settings, now)
	c.lastActivity = now
}

// nextPage advances the menu page, wrapping around.
func (c *Coordinator) nextPage() {
	c.currentPage = Page((int(c.currentPage) + 1) % PageCount)
	c.lastActivity = c.h.Millis()
}

// cycleValue advances the current page's setting field modulo its value
// count, reinitializing the mode context if the changed setting governs
// the active mode.
func (c *Coordinator) cycleValue() {
	now := c.h.Millis()
	page := c.currentPage
	count := page.valueCount()

	switch page {
	case PageGateABehavior:
		c.settings.GateAMode = settings.GateAMode((uint8(c.settings.GateAMode) + 1) % count)
	case PageTriggerEdge:
		c.settings.TriggerEdge = settings.Edge((uint8(c.settings.TriggerEdge) + 1) % count)
	case PageTriggerPulse:
		c.settings.TriggerPulse = (c.settings.TriggerPulse + 1) % count
	case PageToggleEdge:
		c.settings.ToggleEdge = settings.Edge((uint8(c.settings.ToggleEdge) + 1) % count)
	case PageDivideDivisor:
		c.settings.DivideDivisor = (c.settings.DivideDivisor + 1) % count
	case PageCycleTempo:
		c.settings.CycleTempo = (c.settings.CycleTempo + 1) % count
	case PageGlobalCV:
		c.settings.SetGlobalCVOption(!c.settings.GlobalCVOption())
		if c.settings.GlobalCVOption() {
			c.hys.SetThresholds(cv.AltLowThreshold, cv.AltHighThreshold)
		} else {
			c.hys.SetThresholds(cv.DefaultLowThreshold, cv.DefaultHighThreshold)
		}
	case PageMenuTimeout:
		c.settings.SetMenuTimeoutOption(!c.settings.MenuTimeoutOption())
	}

	c.lastActivity = now

	if pageGovernsMode(page, c.currentMode) {
		c.modeCtx.Init(c.currentMode, c.settings, now)
	}
}

// pageGovernsMode reports whether changing page's setting requires the
// active mode context to be reinitialized.
func pageGovernsMode(p Page, m mode.Mode) bool {
	meta := pageTable[p]
	return !meta.isGlobal && meta.mode == m
}
