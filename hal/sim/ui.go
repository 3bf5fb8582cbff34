package sim

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/arcfirmware/gatecore/coordinator"
	"github.com/arcfirmware/gatecore/led"
)

const (
	minTermWidth  = 60
	minTermHeight = 16
)

// keyHoldTimeout is how long a key press is considered "held" after the
// last matching tcell key event, since terminals deliver discrete key-down
// events rather than a continuous pressed/released state.
const keyHoldTimeout = 120 * time.Millisecond

// cvStepPerArrowKey is how much one up/down key event moves the
// simulated CV knob on ADC channel 0.
const cvStepPerArrowKey = 16

// UI is a tcell-based terminal front end for the simulated HAL: it renders
// the coordinator's mode, page, output, and LED state each tick, and maps
// two keys to the two button pins so a user can drive the gesture set
// interactively.
type UI struct {
	h      *HAL
	coord  *coordinator.Coordinator
	leds   *led.Controller
	screen tcell.Screen

	running     bool
	aLastKeyAt  time.Time
	bLastKeyAt  time.Time
	quitSignals chan os.Signal
}

// NewUI creates a terminal UI bound to h, driving coord and rendering
// through leds. The A button key is 'z', the B button key is 'x'; up/down
// arrows nudge the simulated CV knob (ADC channel 0); Ctrl-C or 'q' quits.
func NewUI(h *HAL, coord *coordinator.Coordinator, leds *led.Controller) (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("sim: failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("sim: failed to init screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	u := &UI{
		h:           h,
		coord:       coord,
		leds:        leds,
		screen:      screen,
		running:     true,
		quitSignals: make(chan os.Signal, 1),
	}
	signal.Notify(u.quitSignals, syscall.SIGINT, syscall.SIGTERM)
	return u, nil
}

// Running reports whether the UI has not yet been asked to quit.
func (u *UI) Running() bool { return u.running }

// Close releases the terminal.
func (u *UI) Close() {
	u.screen.Fini()
}

// PollInput drains pending terminal events, updating the simulated button
// pins. Call once per tick before Coordinator.Update.
func (u *UI) PollInput() {
	select {
	case <-u.quitSignals:
		u.running = false
	default:
	}

	now := time.Now()
	for u.screen.HasPendingEvent() {
		ev := u.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			u.processKey(ev, now)
		case *tcell.EventResize:
			u.screen.Sync()
		}
	}

	u.h.SetButton(u.h.pins.ButtonA, now.Sub(u.aLastKeyAt) < keyHoldTimeout)
	u.h.SetButton(u.h.pins.ButtonB, now.Sub(u.bLastKeyAt) < keyHoldTimeout)
}

func (u *UI) processKey(ev *tcell.EventKey, now time.Time) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		u.running = false
		return
	case tcell.KeyUp:
		u.nudgeCV(cvStepPerArrowKey)
		return
	case tcell.KeyDown:
		u.nudgeCV(-cvStepPerArrowKey)
		return
	}
	switch ev.Rune() {
	case 'z', 'Z':
		u.aLastKeyAt = now
	case 'x', 'X':
		u.bLastKeyAt = now
	case 'q', 'Q':
		u.running = false
	}
}

// nudgeCV moves the simulated CV knob on ADC channel 0 by delta, clamped
// to the 8-bit ADC range.
func (u *UI) nudgeCV(delta int) {
	current := int(u.h.ReadADC(0))
	next := current + delta
	if next < 0 {
		next = 0
	}
	if next > 255 {
		next = 255
	}
	u.h.SetADC(0, uint8(next))
}

// Render draws the current coordinator/LED state to the terminal. Call
// once per tick after Coordinator.Update.
func (u *UI) Render(now uint32) {
	w, h := u.screen.Size()
	u.screen.Clear()

	if w < minTermWidth || h < minTermHeight {
		msg := "terminal too small"
		for i, ch := range msg {
			u.screen.SetContent(i, h/2, ch, nil, tcell.StyleDefault.Foreground(tcell.ColorRed))
		}
		u.screen.Show()
		return
	}

	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	labelStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	u.drawText(0, 0, "gatecore simulator", titleStyle)
	u.drawText(0, 2, fmt.Sprintf("top:    %s", u.coord.Top()), labelStyle)
	u.drawText(0, 3, fmt.Sprintf("mode:   %s", u.coord.Mode()), labelStyle)
	if u.coord.Top() == coordinator.Menu {
		u.drawText(0, 4, fmt.Sprintf("page:   %s", u.coord.Page()), labelStyle)
	}
	u.drawText(0, 5, fmt.Sprintf("cv:     %v", u.coord.CVLevel()), labelStyle)
	u.drawText(0, 6, fmt.Sprintf("output: %v", u.coord.Output()), labelStyle)

	modeRGB, activityRGB := u.leds.Update(u.coord.LEDDescriptor(now))
	u.drawLED(0, 8, "mode LED", modeRGB)
	u.drawLED(0, 9, "activity LED", activityRGB)

	u.drawText(0, h-2, "z = button A, x = button B, q = quit", tcell.StyleDefault.Foreground(tcell.ColorGray))
	u.screen.Show()
}

func (u *UI) drawText(x, y int, s string, style tcell.Style) {
	for i, ch := range s {
		u.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (u *UI) drawLED(x, y int, label string, c led.RGB) {
	u.drawText(x, y, label+": ", tcell.StyleDefault.Foreground(tcell.ColorWhite))
	swatchX := x + len(label) + 2
	style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	u.screen.SetContent(swatchX, y, ' ', nil, style)
	u.screen.SetContent(swatchX+1, y, ' ', nil, style)
	u.screen.SetContent(swatchX+2, y, ' ', nil, style)
	slog.Debug("render led", "label", label, "r", c.R, "g", c.G, "b", c.B)
}
