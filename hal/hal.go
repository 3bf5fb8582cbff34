// Package hal defines the narrow capability set the firmware core consumes
// from hardware (or a stand-in such as hal/sim). The core
// never imports a concrete hardware package; everything it needs to read
// buttons, sample CV, drive the output pin, and persist settings goes
// through this interface.
package hal

// Pin is an opaque small integer identifying a digital I/O line. Only a
// concrete HAL implementation knows what it maps to; the core treats pins
// as values to pass back into the HAL.
type Pin uint8

// Pins bundles the pin identities the core cares about, plus a validated
// upper bound used for init-time sanity checks.
type Pins struct {
	ButtonA   Pin
	ButtonB   Pin
	SignalOut Pin
	// MaxPin is the highest pin number the target supports; callers use it
	// to sanity-check configuration without hardcoding a board-specific
	// constant in the core.
	MaxPin Pin
}

// HAL is the capability set the core consumes from hardware or a mock.
// Buttons are active-low: ReadPin returns the raw electrical level, and
// callers invert it to get "pressed".
type HAL interface {
	// Pins returns the pin identities this HAL was configured with.
	Pins() Pins

	// InitPins configures pin directions and pull-ups.
	InitPins() error

	SetPin(p Pin)
	ClearPin(p Pin)
	TogglePin(p Pin)
	ReadPin(p Pin) bool

	// InitTimer starts the free-running millisecond counter.
	InitTimer()
	// Millis returns milliseconds elapsed since boot, monotonic, wrapping
	// after roughly 49 days.
	Millis() uint32
	// DelayMs blocks for the given duration. The only blocking operation
	// the core performs, used solely by the factory-reset feedback blink.
	DelayMs(ms uint32)

	// AdvanceTime and ResetTime are test-only hooks; a bare-metal HAL may
	// implement them as no-ops.
	AdvanceTime(ms uint32)
	ResetTime()

	// ReadByte/WriteByte/ReadWord/WriteWord address the non-volatile byte
	// store. Multi-byte values are little-endian.
	ReadByte(addr uint16) uint8
	WriteByte(addr uint16, value uint8)
	ReadWord(addr uint16) uint16
	WriteWord(addr uint16, value uint16)

	// ReadADC samples an 8-bit ADC channel. Contract: on timeout, return
	// 128 (mid-scale), which lies inside the default CV hysteresis band.
	ReadADC(channel uint8) uint8

	// WatchdogEnable selects a short timeout (~250ms on reference
	// hardware). WatchdogReset must be called at least once per tick.
	WatchdogEnable()
	WatchdogReset()
	WatchdogDisable()
}
