package mode

// processCycle runs a free-running clock that ignores its input: the
// output toggles on each half-period boundary and an 8-bit phase ramps
// linearly across the half-period for a smooth brightness glow on the
// activity LED.
func (c *Context) processCycle(now uint32) bool {
	cy := &c.cycle

	elapsed := now - cy.lastToggle
	if elapsed >= cy.periodMs {
		cy.output = !cy.output
		cy.lastToggle = now
		elapsed = 0
	}

	cy.phase = uint8((uint32(elapsed) * 255) / cy.periodMs)

	return cy.output
}
