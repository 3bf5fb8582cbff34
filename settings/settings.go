// Package settings implements the persistent, versioned, checksummed
// configuration record: an eight-byte settings payload embedded in a
// fixed non-volatile layout, validated on load and restored to
// known-good defaults whenever validation fails.
package settings

import "github.com/arcfirmware/gatecore/bitflag"

// Edge selects which input transition arms a trigger or toggle.
type Edge uint8

const (
	EdgeRising Edge = iota
	EdgeFalling
	EdgeBoth
)

// GateAMode selects whether button A contributes to the gate handler's
// input in PERFORM.
type GateAMode uint8

const (
	GateAOff GateAMode = iota
	GateAManual
)

// Record is the eight-byte settings payload, one unsigned index per
// field plus a reserved byte with no validated bound.
type Record struct {
	Mode          uint8
	TriggerPulse  uint8
	TriggerEdge   Edge
	DivideDivisor uint8
	CycleTempo    uint8
	ToggleEdge    Edge
	GateAMode     GateAMode
	Reserved      uint8
}

// fieldBounds are the exclusive upper bounds for each validated field, in
// declaration order; 0 means "no bound" (reserved).
var fieldBounds = [7]uint8{
	5, // mode count
	4, // trigger-pulse count
	3, // trigger-edge count
	4, // divide-divisor count
	5, // cycle-tempo count
	2, // toggle-edge count
	2, // gate-A-mode count
}

// Default returns the all-zero defaults: mode = gate, 10ms trigger pulse,
// rising edge, /2 divide, 60 BPM cycle, rising toggle, gate-A off.
func Default() Record {
	return Record{}
}

// reservedGlobalCVBit and reservedMenuTimeoutBit pack the two global menu
// options into the unbound Reserved byte, since the eight-byte layout
// has no spare field for them.
const (
	reservedGlobalCVBit    = 0
	reservedMenuTimeoutBit = 1
)

// GlobalCVOption reports the global-CV menu option: false selects the
// default CV hysteresis band, true the wider alternate band.
func (r Record) GlobalCVOption() bool {
	return bitflag.IsSet(reservedGlobalCVBit, r.Reserved)
}

// SetGlobalCVOption updates the global-CV menu option bit.
func (r *Record) SetGlobalCVOption(v bool) {
	r.setReservedBit(reservedGlobalCVBit, v)
}

// MenuTimeoutOption reports the menu-timeout option: false selects the
// default 60s timeout, true an extended one.
func (r Record) MenuTimeoutOption() bool {
	return bitflag.IsSet(reservedMenuTimeoutBit, r.Reserved)
}

// SetMenuTimeoutOption updates the menu-timeout option bit.
func (r *Record) SetMenuTimeoutOption(v bool) {
	r.setReservedBit(reservedMenuTimeoutBit, v)
}

func (r *Record) setReservedBit(bit uint8, v bool) {
	if v {
		r.Reserved = bitflag.Set(bit, r.Reserved)
	} else {
		r.Reserved = bitflag.Clear(bit, r.Reserved)
	}
}

// Valid reports whether every bounded field of r is strictly less than
// its per-field upper bound. Reserved is never checked.
func (r Record) Valid() bool {
	values := r.boundedFields()
	for i, v := range values {
		if fieldBounds[i] != 0 && v >= fieldBounds[i] {
			return false
		}
	}
	return true
}

func (r Record) boundedFields() [7]uint8 {
	return [7]uint8{
		r.Mode,
		r.TriggerPulse,
		uint8(r.TriggerEdge),
		r.DivideDivisor,
		r.CycleTempo,
		uint8(r.ToggleEdge),
		uint8(r.GateAMode),
	}
}

// bytes renders the record as the eight on-disk bytes, in field order.
func (r Record) bytes() [8]byte {
	return [8]byte{
		r.Mode,
		r.TriggerPulse,
		uint8(r.TriggerEdge),
		r.DivideDivisor,
		r.CycleTempo,
		uint8(r.ToggleEdge),
		uint8(r.GateAMode),
		r.Reserved,
	}
}

// fromBytes parses the eight on-disk bytes back into a Record. It does
// not validate; callers check Valid() separately.
func fromBytes(b [8]byte) Record {
	return Record{
		Mode:          b[0],
		TriggerPulse:  b[1],
		TriggerEdge:   Edge(b[2]),
		DivideDivisor: b[3],
		CycleTempo:    b[4],
		ToggleEdge:    Edge(b[5]),
		GateAMode:     GateAMode(b[6]),
		Reserved:      b[7],
	}
}

// checksum computes the XOR checksum over the eight on-disk bytes.
func checksum(b [8]byte) byte {
	var c byte
	for _, v := range b {
		c ^= v
	}
	return c
}
