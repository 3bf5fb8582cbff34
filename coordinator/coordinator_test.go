package coordinator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcfirmware/gatecore/gesture"
	"github.com/arcfirmware/gatecore/hal"
	"github.com/arcfirmware/gatecore/hal/sim"
	"github.com/arcfirmware/gatecore/mode"
	"github.com/arcfirmware/gatecore/settings"
)

const (
	pinButtonA = hal.Pin(iota)
	pinButtonB
	pinSignalOut
	pinMax
)

func testPins() hal.Pins {
	return hal.Pins{ButtonA: pinButtonA, ButtonB: pinButtonB, SignalOut: pinSignalOut, MaxPin: pinMax}
}

func newTestCoordinator(t *testing.T) (*Coordinator, *sim.HAL) {
	t.Helper()
	h := sim.New(testPins())
	h.ResetTime()
	store := settings.New(h)
	rec := settings.Default()
	c := New(h, store, &rec)
	c.Start(h.Millis())
	return c, h
}

func pressAndTick(t *testing.T, c *Coordinator, h *sim.HAL, pin hal.Pin, ms uint32) {
	t.Helper()
	h.SetButton(pin, true)
	h.AdvanceTime(ms)
	c.Update()
}

func releaseAndTick(t *testing.T, c *Coordinator, h *sim.HAL, pin hal.Pin, ms uint32) {
	t.Helper()
	h.SetButton(pin, false)
	h.AdvanceTime(ms)
	c.Update()
}

// enterMenu drives the compound menu-toggle gesture: A held first, B
// pressed while A is down, then held until B's own hold threshold elapses.
// It leaves both buttons released afterward so the caller starts from a
// clean slate inside MENU.
func enterMenu(t *testing.T, c *Coordinator, h *sim.HAL) {
	t.Helper()
	pressAndTick(t, c, h, pinButtonA, 10)
	require.Equal(t, Perform, c.Top())

	h.SetButton(pinButtonB, true)
	h.AdvanceTime(10)
	c.Update()
	require.Equal(t, Perform, c.Top(), "B pressed while A is held must not itself enter menu")

	h.AdvanceTime(600)
	c.Update()
	require.Equal(t, Menu, c.Top(), "once B's own hold threshold elapses, the compound fires")

	releaseAndTick(t, c, h, pinButtonA, 10)
	releaseAndTick(t, c, h, pinButtonB, 10)
}

func TestStart_DefaultsToPerformAndGate(t *testing.T) {
	c, _ := newTestCoordinator(t)
	assert.Equal(t, Perform, c.Top())
	assert.Equal(t, mode.Gate, c.Mode())
}

func TestAHoldRelease_AdvancesToNextMode(t *testing.T) {
	c, h := newTestCoordinator(t)

	pressAndTick(t, c, h, pinButtonA, 100)
	h.AdvanceTime(500)
	c.Update()
	releaseAndTick(t, c, h, pinButtonA, 10)

	require.Equal(t, Perform, c.Top())
	assert.Equal(t, mode.Trigger, c.Mode())
}

func TestAHoldRelease_WrapsAroundFromLastMode(t *testing.T) {
	c, h := newTestCoordinator(t)
	for i := 0; i < mode.Count; i++ {
		pressAndTick(t, c, h, pinButtonA, 100)
		h.AdvanceTime(500)
		c.Update()
		releaseAndTick(t, c, h, pinButtonA, 10)
	}
	assert.Equal(t, mode.Gate, c.Mode())
}

func TestMenuToggle_EntersMenuAtOwningModesEntryPage(t *testing.T) {
	c, h := newTestCoordinator(t)
	enterMenu(t, c, h)
	assert.Equal(t, PageGateABehavior, c.Page())
}

func TestMenuToggle_SoloATapInPerformDoesNotEnterMenu(t *testing.T) {
	c, h := newTestCoordinator(t)
	pressAndTick(t, c, h, pinButtonA, 10)
	releaseAndTick(t, c, h, pinButtonA, 10)
	require.Equal(t, Perform, c.Top())
}

func TestMenuExit_ViaSoloAHold_ReturnsToPerformAtTheHoldThresholdAndPersists(t *testing.T) {
	c, h := newTestCoordinator(t)
	enterMenu(t, c, h)
	require.Equal(t, Menu, c.Top())

	pressAndTick(t, c, h, pinButtonA, 10)
	require.Equal(t, Menu, c.Top(), "the press alone is not a-hold yet")

	h.AdvanceTime(500)
	c.Update()
	assert.Equal(t, Perform, c.Top(), "a-hold fires at the threshold tick, not on release")

	_, loadResult := c.store.Load()
	assert.Equal(t, settings.ResultOK, loadResult, "exiting the menu persists the settings record")
}

func TestMenuExit_ViaSoloAHold_SubsequentReleaseDoesNotAlsoAdvanceMode(t *testing.T) {
	c, h := newTestCoordinator(t)
	enterMenu(t, c, h)
	require.Equal(t, Menu, c.Top())

	pressAndTick(t, c, h, pinButtonA, 10)
	h.AdvanceTime(500)
	c.Update()
	require.Equal(t, Perform, c.Top())
	require.Equal(t, mode.Gate, c.Mode())

	releaseAndTick(t, c, h, pinButtonA, 10)

	assert.Equal(t, mode.Gate, c.Mode(), "the release's mode-next, tail of the same gesture that exited the menu, must be suppressed")
}

func TestMenuExit_ViaSecondCompoundToggle_ReturnsToPerform(t *testing.T) {
	c, h := newTestCoordinator(t)
	enterMenu(t, c, h)
	require.Equal(t, Menu, c.Top())

	pressAndTick(t, c, h, pinButtonA, 10)
	h.SetButton(pinButtonB, true)
	h.AdvanceTime(10)
	c.Update()
	h.AdvanceTime(600)
	c.Update()

	assert.Equal(t, Perform, c.Top())
}

func TestMenu_BTapCyclesCurrentPageValue(t *testing.T) {
	c, h := newTestCoordinator(t)
	enterMenu(t, c, h)
	require.Equal(t, PageGateABehavior, c.Page())

	pressAndTick(t, c, h, pinButtonB, 10)
	releaseAndTick(t, c, h, pinButtonB, 10)

	assert.Equal(t, settings.GateAManual, c.settings.GateAMode)
}

func TestMenu_ATapAdvancesPageWithinMode(t *testing.T) {
	c, h := newTestCoordinator(t)
	enterMenu(t, c, h)
	require.Equal(t, PageGateABehavior, c.Page())

	pressAndTick(t, c, h, pinButtonA, 10)
	releaseAndTick(t, c, h, pinButtonA, 10)

	assert.Equal(t, PageTriggerEdge, c.Page())
}

func TestMenu_TimesOutBackToPerform(t *testing.T) {
	c, h := newTestCoordinator(t)
	enterMenu(t, c, h)
	require.Equal(t, Menu, c.Top())

	h.AdvanceTime(menuTimeoutDefaultMs + 100)
	c.Update()

	assert.Equal(t, Perform, c.Top())
}

func TestMenu_ExtendedTimeoutOptionLengthensInactivityWindow(t *testing.T) {
	c, h := newTestCoordinator(t)
	enterMenu(t, c, h)
	require.Equal(t, PageGateABehavior, c.Page())

	for i := 0; i < 7; i++ {
		pressAndTick(t, c, h, pinButtonA, 10)
		releaseAndTick(t, c, h, pinButtonA, 10)
	}
	require.Equal(t, PageMenuTimeout, c.Page())

	pressAndTick(t, c, h, pinButtonB, 10)
	releaseAndTick(t, c, h, pinButtonB, 10)
	require.True(t, c.settings.MenuTimeoutOption())

	h.AdvanceTime(menuTimeoutDefaultMs + 100)
	c.Update()
	assert.Equal(t, Menu, c.Top(), "extended timeout must not have elapsed yet")

	h.AdvanceTime(menuTimeoutExtendedMs)
	c.Update()
	assert.Equal(t, Perform, c.Top())
}

func TestGateMode_OutputFollowsCVLevelInPerform(t *testing.T) {
	c, h := newTestCoordinator(t)

	h.SetADC(0, 255)
	h.AdvanceTime(10)
	c.Update()
	assert.True(t, c.Output())

	h.SetADC(0, 0)
	h.AdvanceTime(10)
	c.Update()
	assert.False(t, c.Output())
}

func TestGateAManual_ButtonAAssertsOutputWhenEnabled(t *testing.T) {
	c, h := newTestCoordinator(t)
	c.settings.GateAMode = settings.GateAManual

	h.SetADC(0, 0)
	pressAndTick(t, c, h, pinButtonA, 10)
	assert.True(t, c.Output())
}

func TestGlobalCVOption_WidensHysteresisBandWhenToggled(t *testing.T) {
	c, h := newTestCoordinator(t)
	enterMenu(t, c, h)
	require.Equal(t, PageGateABehavior, c.Page())

	for i := 0; i < 6; i++ {
		pressAndTick(t, c, h, pinButtonA, 10)
		releaseAndTick(t, c, h, pinButtonA, 10)
	}
	require.Equal(t, PageGlobalCV, c.Page())

	pressAndTick(t, c, h, pinButtonB, 10)
	releaseAndTick(t, c, h, pinButtonB, 10)

	low, high := c.hys.Thresholds()
	assert.Equal(t, uint8(50), low)
	assert.Equal(t, uint8(200), high)
}

func TestATap_DuringMenu_DoesNotChangeMode(t *testing.T) {
	c, h := newTestCoordinator(t)
	enterMenu(t, c, h)
	require.Equal(t, Menu, c.Top())

	pressAndTick(t, c, h, pinButtonA, 10)
	releaseAndTick(t, c, h, pinButtonA, 10)

	assert.Equal(t, mode.Gate, c.Mode(), "a-tap in menu must move pages, not modes")
}

func TestUpdate_EmitsAtMostOneEventPerTick(t *testing.T) {
	c, h := newTestCoordinator(t)
	evt := c.events.Update(gesture.Input{APressed: true, BPressed: true, Now: h.Millis()})
	assert.NotEqual(t, gesture.None, evt)
	assert.Equal(t, gesture.APress, evt, "A's press takes priority; B's press in the same tick is not also emitted")
}
