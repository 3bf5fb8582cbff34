// Package sim implements an in-memory hal.HAL for running the core
// without real hardware: pins are entries in a map of levels, the non-volatile store
// is a byte slice, and the millisecond clock can either track wall time
// or be driven manually by tests via AdvanceTime.
package sim

import (
	"log/slog"
	"sync"
	"time"

	"github.com/arcfirmware/gatecore/bitflag"
	"github.com/arcfirmware/gatecore/hal"
)

const nvramSize = 0x11

const adcMidScale uint8 = 128

// HAL is a concrete, in-memory hal.HAL. Safe for use by a single tick
// loop goroutine; AdvanceTime/SetButton/SetADC are meant to be called
// from the same goroutine driving Update (or an input-polling goroutine
// feeding a channel the tick loop drains, as hal/sim's terminal front end
// does).
type HAL struct {
	mu sync.Mutex

	pins    hal.Pins
	pinHigh map[hal.Pin]bool

	manualClock bool
	manualNowMs uint32
	bootTime    time.Time

	nvram [nvramSize]byte

	adc [8]uint8

	watchdogEnabled bool
}

// New creates a HAL with the three pins configured and a wall-clock timer
// (AdvanceTime switches it to manual mode on first use).
func New(pins hal.Pins) *HAL {
	h := &HAL{
		pins:    pins,
		pinHigh: make(map[hal.Pin]bool),
	}
	h.pinHigh[pins.ButtonA] = true
	h.pinHigh[pins.ButtonB] = true
	for i := range h.adc {
		h.adc[i] = adcMidScale
	}
	return h
}

func (h *HAL) Pins() hal.Pins { return h.pins }

func (h *HAL) InitPins() error {
	slog.Debug("sim: pins initialized", "buttonA", h.pins.ButtonA, "buttonB", h.pins.ButtonB, "signalOut", h.pins.SignalOut)
	return nil
}

func (h *HAL) SetPin(p hal.Pin) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pinHigh[p] = true
}

func (h *HAL) ClearPin(p hal.Pin) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pinHigh[p] = false
}

func (h *HAL) TogglePin(p hal.Pin) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pinHigh[p] = !h.pinHigh[p]
}

func (h *HAL) ReadPin(p hal.Pin) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pinHigh[p]
}

// SetButton drives a button pin directly: pressed=true pulls the
// active-low pin to electrical low.
func (h *HAL) SetButton(p hal.Pin, pressed bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pinHigh[p] = !pressed
}

func (h *HAL) InitTimer() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bootTime = time.Now()
}

func (h *HAL) Millis() uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.manualClock {
		return h.manualNowMs
	}
	return uint32(time.Since(h.bootTime).Milliseconds())
}

func (h *HAL) DelayMs(ms uint32) {
	h.mu.Lock()
	manual := h.manualClock
	h.mu.Unlock()

	if manual {
		h.AdvanceTime(ms)
		return
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// AdvanceTime switches the HAL into manual-clock mode (if not already)
// and advances the millisecond counter by ms.
func (h *HAL) AdvanceTime(ms uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.manualClock = true
	h.manualNowMs += ms
}

func (h *HAL) ResetTime() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.manualClock = true
	h.manualNowMs = 0
}

func (h *HAL) ReadByte(addr uint16) uint8 {
	h.mu.Lock()
	defer h.mu.Unlock()
	if int(addr) >= len(h.nvram) {
		return 0xFF
	}
	return h.nvram[addr]
}

func (h *HAL) WriteByte(addr uint16, value uint8) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if int(addr) >= len(h.nvram) {
		return
	}
	h.nvram[addr] = value
}

func (h *HAL) ReadWord(addr uint16) uint16 {
	lo := h.ReadByte(addr)
	hi := h.ReadByte(addr + 1)
	return bitflag.Combine(hi, lo)
}

func (h *HAL) WriteWord(addr uint16, value uint16) {
	h.WriteByte(addr, bitflag.Low(value))
	h.WriteByte(addr+1, bitflag.High(value))
}

func (h *HAL) ReadADC(channel uint8) uint8 {
	h.mu.Lock()
	defer h.mu.Unlock()
	if int(channel) >= len(h.adc) {
		return adcMidScale
	}
	return h.adc[channel]
}

// SetADC sets the value a subsequent ReadADC(channel) will return.
func (h *HAL) SetADC(channel uint8, value uint8) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if int(channel) < len(h.adc) {
		h.adc[channel] = value
	}
}

func (h *HAL) WatchdogEnable() {
	h.watchdogEnabled = true
	slog.Debug("sim: watchdog enabled")
}

func (h *HAL) WatchdogReset() {}

func (h *HAL) WatchdogDisable() {
	h.watchdogEnabled = false
}

// EraseNVRAM resets the non-volatile store to all-0xFF, simulating an
// erased/blank chip (used by factory-reset and cold-boot tests).
func (h *HAL) EraseNVRAM() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.nvram {
		h.nvram[i] = 0xFF
	}
}

// LoadNVRAM replaces the non-volatile store's contents with data,
// letting a caller back it with a file loaded at startup. Bytes beyond
// nvramSize are ignored; a short slice leaves the remaining bytes
// untouched.
func (h *HAL) LoadNVRAM(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	copy(h.nvram[:], data)
}

// DumpNVRAM returns a copy of the non-volatile store's contents, for a
// caller to persist to a file between runs.
func (h *HAL) DumpNVRAM() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]byte, len(h.nvram))
	copy(out, h.nvram[:])
	return out
}

var _ hal.HAL = (*HAL)(nil)
