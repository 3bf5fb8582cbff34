package coordinator

import (
	"github.com/arcfirmware/gatecore/led"
	"github.com/arcfirmware/gatecore/mode"
)

// Page is the eight-valued ordinal identifying one configurable setting
// while the top state is MENU.
type Page int

const (
	PageGateABehavior Page = iota
	PageTriggerEdge
	PageTriggerPulse
	PageToggleEdge
	PageDivideDivisor
	PageCycleTempo
	PageGlobalCV
	PageMenuTimeout
	pageCount
)

// PageCount is the number of menu pages, for modulo-cycling.
const PageCount = int(pageCount)

func (p Page) String() string {
	switch p {
	case PageGateABehavior:
		return "gate-a-behavior"
	case PageTriggerEdge:
		return "trigger-edge"
	case PageTriggerPulse:
		return "trigger-pulse"
	case PageToggleEdge:
		return "toggle-edge"
	case PageDivideDivisor:
		return "divide-divisor"
	case PageCycleTempo:
		return "cycle-tempo"
	case PageGlobalCV:
		return "global-cv"
	case PageMenuTimeout:
		return "menu-timeout"
	default:
		return "unknown"
	}
}

// pageMeta describes one page's owning mode (for color), value count
// (for B-tap cycling), and blink/glow position within its mode-group.
type pageMeta struct {
	mode      mode.Mode
	isGlobal  bool
	count     uint8
	secondary bool // true = second page of a two-page group (glow, not blink)
}

var pageTable = [pageCount]pageMeta{
	PageGateABehavior: {mode: mode.Gate, count: 2},
	PageTriggerEdge:   {mode: mode.Trigger, count: 3},
	PageTriggerPulse:  {mode: mode.Trigger, count: 4, secondary: true},
	PageToggleEdge:    {mode: mode.Toggle, count: 2},
	PageDivideDivisor: {mode: mode.Divide, count: 4},
	PageCycleTempo:    {mode: mode.Cycle, count: 5},
	PageGlobalCV:      {isGlobal: true, count: 2},
	PageMenuTimeout:   {isGlobal: true, count: 2, secondary: true},
}

// entryPage maps each mode to the menu page shown when menu is entered
// from that mode.
var entryPage = [mode.Count]Page{
	mode.Gate:    PageGateABehavior,
	mode.Trigger: PageTriggerEdge,
	mode.Toggle:  PageToggleEdge,
	mode.Divide:  PageDivideDivisor,
	mode.Cycle:   PageCycleTempo,
}

// color returns the page's mode color, or white for a global page.
func (p Page) color() led.RGB {
	meta := pageTable[p]
	if meta.isGlobal {
		return led.White
	}
	return led.ModeColors[meta.mode]
}

// animation returns the page's mode-LED blink/glow classification.
func (p Page) animation() led.Animation {
	if pageTable[p].secondary {
		return led.Glow
	}
	return led.Blink
}

func (p Page) valueCount() uint8 {
	return pageTable[p].count
}
