package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcfirmware/gatecore/settings"
)

func TestTrigger_RisingEdgeFiresPulseOfConfiguredDuration(t *testing.T) {
	var c Context
	c.Init(Trigger, &settings.Record{TriggerPulse: 0}, 0) // pulseDurationsMs[0] == 10ms

	require.False(t, c.Process(false, 0))
	assert.True(t, c.Process(true, 1), "rising edge arms the pulse")
	assert.True(t, c.Process(true, 5), "pulse still high mid-duration")
	assert.True(t, c.Process(true, 10), "pulse high through duration")
	assert.False(t, c.Process(true, 11), "pulse ends once the duration elapses")
}

func TestTrigger_FallingEdgeNeverArmsAPulseRegardlessOfSetting(t *testing.T) {
	var c Context
	// TriggerEdge is reserved in this implementation: only a rising
	// transition ever arms a pulse, whatever value is stored here.
	c.Init(Trigger, &settings.Record{TriggerEdge: settings.EdgeFalling, TriggerPulse: 0}, 0)

	require.True(t, c.Process(true, 0), "rising edge arms regardless of the edge setting")
	require.False(t, c.Process(true, 15), "pulse duration has elapsed")

	assert.False(t, c.Process(false, 16), "a falling transition never arms a new pulse")
}

func TestTrigger_NoNewPulseWhileOneIsActive(t *testing.T) {
	var c Context
	c.Init(Trigger, &settings.Record{TriggerPulse: 2}, 0) // pulseDurationsMs[2] == 100ms

	require.True(t, c.Process(true, 0))
	require.True(t, c.Process(false, 1), "input going low mid-pulse does not cut the pulse short")
	assert.True(t, c.Process(true, 50), "second rising edge while pulse still active is absorbed")
	assert.True(t, c.Process(true, 99))
	assert.False(t, c.Process(true, 100), "original pulse duration elapses")
}
