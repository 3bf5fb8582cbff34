package tickpace

import "time"

// TickerLimiter paces the simulator's tick loop to TickInterval using
// time.Ticker, mirroring the real firmware's free-running 1ms timer
// interrupt closely enough for interactive runs. Headless runs use
// NewNoOpLimiter instead.
type TickerLimiter struct {
	ticker *time.Ticker
	ch     <-chan time.Time
}

func NewTickerLimiter() *TickerLimiter {
	ticker := time.NewTicker(TickInterval)
	return &TickerLimiter{
		ticker: ticker,
		ch:     ticker.C,
	}
}

func (t *TickerLimiter) WaitForNextTick() {
	<-t.ch
}

func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}
