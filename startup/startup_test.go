package startup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcfirmware/gatecore/coordinator"
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

func TestRun_NilHAL_ReturnsError(t *testing.T) {
	_, err := Run(nil)
	assert.Error(t, err)
}

func TestRun_BlankNVRAM_FallsBackToDefaultsAndPersists(t *testing.T) {
	h := sim.New(testPins())
	h.ResetTime()
	h.EraseNVRAM()

	res, err := Run(h)
	require.NoError(t, err)

	assert.Equal(t, settings.ResultOKDefaults, res.LoadResult)
	assert.Equal(t, coordinator.Perform, res.Coordinator.Top())
	assert.Equal(t, mode.Gate, res.Coordinator.Mode())

	rec, loadResult := res.Store.Load()
	assert.Equal(t, settings.ResultOK, loadResult, "defaults must have been persisted by Run")
	assert.Equal(t, settings.Default(), rec)
}

func TestRun_ValidNVRAM_LoadsStoredSettings(t *testing.T) {
	h := sim.New(testPins())
	h.ResetTime()

	store := settings.New(h)
	rec := settings.Default()
	rec.Mode = uint8(mode.Trigger)
	store.Save(rec)

	res, err := Run(h)
	require.NoError(t, err)

	assert.Equal(t, settings.ResultOK, res.LoadResult)
	assert.Equal(t, mode.Trigger, res.Coordinator.Mode())
}
