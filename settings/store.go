package settings

import (
	"log/slog"

	"github.com/arcfirmware/gatecore/hal"
)

// Non-volatile layout offsets: magic, schema version, eight settings
// bytes, one XOR checksum byte. All multi-byte values are little-endian.
const (
	offsetMagic    = 0x00
	offsetSchema   = 0x02
	offsetSettings = 0x03
	offsetChecksum = 0x10

	magic         uint16 = 0x474B // "GK"
	schemaVersion uint8  = 2
)

// LoadResult is the typed outcome of Load, replacing an error return for
// the settings store's three expected, non-exceptional outcomes.
type LoadResult int

const (
	ResultOK LoadResult = iota
	ResultOKDefaults
	ResultOKFactoryReset
)

func (r LoadResult) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultOKDefaults:
		return "ok-defaults"
	case ResultOKFactoryReset:
		return "ok-factory-reset"
	default:
		return "unknown"
	}
}

// Store reads and writes a Record through a HAL's non-volatile byte
// interface, validating the persistent image on load and restoring
// defaults whenever validation fails.
type Store struct {
	h hal.HAL
}

// New creates a Store bound to h.
func New(h hal.HAL) *Store {
	return &Store{h: h}
}

// Load reads and validates the persistent image in four steps (magic,
// schema, checksum, field bounds), short-circuiting on the first
// failure. On any failure it returns ResultOKDefaults and the defaults
// record without touching non-volatile memory; the caller is expected to
// Save the defaults if it wants them persisted.
func (s *Store) Load() (Record, LoadResult) {
	gotMagic := s.h.ReadWord(offsetMagic)
	if gotMagic != magic {
		slog.Warn("settings: bad magic, falling back to defaults", "got", gotMagic)
		return Default(), ResultOKDefaults
	}

	gotSchema := s.h.ReadByte(offsetSchema)
	if gotSchema != schemaVersion {
		slog.Warn("settings: schema mismatch, falling back to defaults", "got", gotSchema, "want", schemaVersion)
		return Default(), ResultOKDefaults
	}

	var raw [8]byte
	for i := range raw {
		raw[i] = s.h.ReadByte(uint16(offsetSettings + i))
	}

	gotChecksum := s.h.ReadByte(offsetChecksum)
	if gotChecksum != checksum(raw) {
		slog.Warn("settings: checksum mismatch, falling back to defaults")
		return Default(), ResultOKDefaults
	}

	record := fromBytes(raw)
	if !record.Valid() {
		slog.Warn("settings: out-of-range field, falling back to defaults")
		return Default(), ResultOKDefaults
	}

	return record, ResultOK
}

// Save writes magic, schema, settings bytes, and checksum. The HAL is
// expected to skip a write when the value would not change, so repeated
// saves of an unchanged record cost no non-volatile wear.
func (s *Store) Save(r Record) {
	s.h.WriteWord(offsetMagic, magic)
	s.h.WriteByte(offsetSchema, schemaVersion)

	raw := r.bytes()
	for i, b := range raw {
		s.h.WriteByte(uint16(offsetSettings+i), b)
	}
	s.h.WriteByte(offsetChecksum, checksum(raw))
}

const (
	factoryResetPollMs     = 50
	factoryResetBlinkMs    = 100
	factoryResetDurationMs = 3000
	factoryResetMaxPolls   = 80
)

// TryFactoryReset polls for both buttons held continuously for three
// seconds, toggling the signal-out pin every 100ms as a progress cue. It
// first checks that the HAL's millisecond timer actually advances across
// a short delay, bailing out (no reset) if not, so a stalled timer cannot
// hang startup. An iteration cap bounds the loop even if the timer never
// advances after that check passes.
func (s *Store) TryFactoryReset() LoadResult {
	if !s.timerAdvances() {
		return ResultOK
	}

	blinkState := false
	start := s.h.Millis()
	lastBlink := start

	for i := 0; i < factoryResetMaxPolls; i++ {
		s.h.DelayMs(factoryResetPollMs)

		// Buttons are active-low: a high pin level means released.
		if s.h.ReadPin(s.h.Pins().ButtonA) || s.h.ReadPin(s.h.Pins().ButtonB) {
			return ResultOK
		}

		now := s.h.Millis()
		if now-lastBlink >= factoryResetBlinkMs {
			blinkState = !blinkState
			lastBlink = now
			if blinkState {
				s.h.SetPin(s.h.Pins().SignalOut)
			} else {
				s.h.ClearPin(s.h.Pins().SignalOut)
			}
		}

		if now-start >= factoryResetDurationMs {
			return s.clearAndConfirm()
		}
	}

	return ResultOK
}

func (s *Store) timerAdvances() bool {
	start := s.h.Millis()
	s.h.DelayMs(10)
	return s.h.Millis() != start
}

func (s *Store) clearAndConfirm() LoadResult {
	s.h.WriteWord(offsetMagic, 0x0000)
	s.Save(Default())

	if s.h.ReadWord(offsetMagic) != magic {
		slog.Error("settings: factory reset write did not read back")
		return ResultOK
	}

	slog.Info("settings: factory reset complete")
	return ResultOKFactoryReset
}
