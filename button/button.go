// Package button implements the debounced momentary-button front end.
// Edge-based debouncing avoids treating bounce as content and yields
// deterministic single-tick pulses on press/release.
package button

import (
	"github.com/arcfirmware/gatecore/bitflag"
	"github.com/arcfirmware/gatecore/hal"
)

// debounceMs is the minimum time that must elapse between two edges of the
// same direction before a new one is accepted. It is a per-edge guard, not
// a per-transition one, so a clean release right after a clean press is
// never suppressed by the press's own timer.
const debounceMs = 5

// Flags packs the button's status bits. The two legacy bits are carried
// only for wire-format parity with a retired gesture and are never read
// by the core.
type Flags struct {
	Raw               bool
	DebouncedPressed  bool
	PreviousDebounced bool
	RisingEdge        bool
	FallingEdge       bool
	legacyA           bool
	legacyB           bool
}

// bit positions for Flags.Pack, within the 8-bit flag word.
const (
	bitRaw = iota
	bitDebouncedPressed
	bitPreviousDebounced
	bitRisingEdge
	bitFallingEdge
	bitLegacyA
	bitLegacyB
)

// Pack renders the flags as a single byte, for diagnostics parity with the
// embedded target's packed representation.
func (f Flags) Pack() uint8 {
	var b uint8
	if f.Raw {
		b = bitflag.Set(bitRaw, b)
	}
	if f.DebouncedPressed {
		b = bitflag.Set(bitDebouncedPressed, b)
	}
	if f.PreviousDebounced {
		b = bitflag.Set(bitPreviousDebounced, b)
	}
	if f.RisingEdge {
		b = bitflag.Set(bitRisingEdge, b)
	}
	if f.FallingEdge {
		b = bitflag.Set(bitFallingEdge, b)
	}
	if f.legacyA {
		b = bitflag.Set(bitLegacyA, b)
	}
	if f.legacyB {
		b = bitflag.Set(bitLegacyB, b)
	}
	return b
}

// pinReader is the minimal capability Button needs from a HAL.
type pinReader interface {
	ReadPin(p hal.Pin) bool
}

// Button tracks the debounced state of one momentary button bound to a
// single HAL pin.
type Button struct {
	pin             hal.Pin
	flags           Flags
	lastRisingEdge  uint32
	lastFallingEdge uint32
}

// New creates a button bound to pin, initially released.
func New(pin hal.Pin) *Button {
	return &Button{pin: pin}
}

// Update samples the pin through h and advances debounce state for the
// current tick at time now (milliseconds since boot).
func (b *Button) Update(h pinReader, now uint32) {
	raw := !h.ReadPin(b.pin)

	rising := false
	falling := false

	switch {
	case raw && !b.flags.PreviousDebounced && now-b.lastRisingEdge >= debounceMs:
		b.flags.DebouncedPressed = true
		rising = true
		b.lastRisingEdge = now
	case !raw && b.flags.PreviousDebounced && now-b.lastFallingEdge >= debounceMs:
		b.flags.DebouncedPressed = false
		falling = true
		b.lastFallingEdge = now
	}

	b.flags.Raw = raw
	b.flags.RisingEdge = rising
	b.flags.FallingEdge = falling
	b.flags.PreviousDebounced = b.flags.DebouncedPressed
}

// Pressed reports the current debounced state.
func (b *Button) Pressed() bool { return b.flags.DebouncedPressed }

// RisingEdgeThisTick reports whether a debounced press edge was asserted
// on the tick of the most recent Update call.
func (b *Button) RisingEdgeThisTick() bool { return b.flags.RisingEdge }

// FallingEdgeThisTick reports whether a debounced release edge was
// asserted on the tick of the most recent Update call.
func (b *Button) FallingEdgeThisTick() bool { return b.flags.FallingEdge }

// Flags returns a copy of the button's packed status word, for diagnostics.
func (b *Button) Flags() Flags { return b.flags }
