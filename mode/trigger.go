package mode

// processTrigger arms a fixed-duration pulse on a rising edge of input.
// Retriggering while the pulse is already high does not extend it,
// matching typical clock-trigger hardware.
func (c *Context) processTrigger(input bool, now uint32) bool {
	t := &c.trigger

	risingEdge := input && !t.previous

	if t.output {
		if now-t.pulseStart >= t.pulseDurMs {
			t.output = false
		}
	} else if risingEdge {
		// trigger-edge's falling/both values are reserved in the setting
		// range but unarmed; only rising triggers a pulse.
		t.output = true
		t.pulseStart = now
	}

	t.previous = input
	return t.output
}
