package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault_IsValid(t *testing.T) {
	assert.True(t, Default().Valid())
	assert.Equal(t, Record{}, Default())
}

func TestValid_RejectsOutOfRangeFields(t *testing.T) {
	cases := []Record{
		{Mode: 5},
		{TriggerPulse: 4},
		{TriggerEdge: 3},
		{DivideDivisor: 4},
		{CycleTempo: 5},
		{ToggleEdge: 2},
		{GateAMode: 2},
	}
	for _, r := range cases {
		assert.False(t, r.Valid(), "%+v should be invalid", r)
	}
}

func TestValid_IgnoresReservedField(t *testing.T) {
	r := Record{Reserved: 255}
	assert.True(t, r.Valid())
}

func TestBytesRoundTrip(t *testing.T) {
	r := Record{
		Mode:          3,
		TriggerPulse:  2,
		TriggerEdge:   EdgeBoth,
		DivideDivisor: 3,
		CycleTempo:    4,
		ToggleEdge:    EdgeFalling,
		GateAMode:     GateAManual,
		Reserved:      0x42,
	}
	got := fromBytes(r.bytes())
	assert.Equal(t, r, got)
}

func TestChecksum_XORsAllEightBytes(t *testing.T) {
	var b [8]byte
	assert.Equal(t, byte(0), checksum(b))

	b = [8]byte{1, 2, 3, 4, 5, 6, 7, 8}
	var want byte
	for _, v := range b {
		want ^= v
	}
	assert.Equal(t, want, checksum(b))
}
