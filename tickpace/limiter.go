// Package tickpace paces the main tick loop to the nominal 1ms tick
// rate the coordinator assumes when reasoning about debounce and hold
// durations. It is pacing only: the coordinator itself never looks at wall
// time, only at the HAL-supplied millisecond counter.
package tickpace

import "time"

// TickInterval is the nominal duration of one tick.
const TickInterval = time.Millisecond

// Limiter controls the wall-clock pacing of the tick loop.
type Limiter interface {
	// WaitForNextTick blocks until it is time for the next tick.
	WaitForNextTick()
}

// NewNoOpLimiter returns a limiter that never blocks, for headless/batch
// runs that want to burn through ticks as fast as possible.
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextTick() {}
