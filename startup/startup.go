// Package startup runs the firmware's bring-up sequence: initialize the
// HAL, offer the factory-reset window, load settings, and wire the
// coordinator and LED controller ready for the tick loop.
package startup

import (
	"errors"
	"log/slog"

	"github.com/arcfirmware/gatecore/coordinator"
	"github.com/arcfirmware/gatecore/hal"
	"github.com/arcfirmware/gatecore/led"
	"github.com/arcfirmware/gatecore/settings"
)

// Result is everything Run builds: the coordinator and LED controller the
// tick loop drives, plus the settings outcome for logging/diagnostics.
type Result struct {
	Coordinator *coordinator.Coordinator
	LEDs        *led.Controller
	Store       *settings.Store
	LoadResult  settings.LoadResult
}

// Run performs the bring-up sequence in order: init pins and timer, poll
// for the factory-reset gesture, load settings (falling back to defaults
// and persisting them on any validation failure or reset), build the
// coordinator and LED controller, and enable the watchdog. It returns an
// error only for conditions bring-up cannot proceed past, such as a nil
// HAL or a pin-init failure; the settings store's own expected outcomes
// are reported via Result.LoadResult, not an error.
func Run(h hal.HAL) (Result, error) {
	if h == nil {
		return Result{}, errors.New("startup: nil HAL")
	}

	if err := h.InitPins(); err != nil {
		return Result{}, err
	}
	h.InitTimer()

	store := settings.New(h)

	resetResult := store.TryFactoryReset()
	if resetResult == settings.ResultOKFactoryReset {
		slog.Info("startup: factory reset performed")
	}

	rec, loadResult := store.Load()
	switch loadResult {
	case settings.ResultOKDefaults:
		slog.Warn("startup: settings invalid, using and persisting defaults")
		store.Save(rec)
	case settings.ResultOK:
		slog.Info("startup: settings loaded")
	}
	if resetResult == settings.ResultOKFactoryReset {
		loadResult = settings.ResultOKFactoryReset
	}

	coord := coordinator.New(h, store, &rec)
	coord.Start(h.Millis())

	leds := led.New()

	h.WatchdogEnable()

	return Result{
		Coordinator: coord,
		LEDs:        leds,
		Store:       store,
		LoadResult:  loadResult,
	}, nil
}
