package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/arcfirmware/gatecore/hal"
	"github.com/arcfirmware/gatecore/hal/sim"
	"github.com/arcfirmware/gatecore/startup"
	"github.com/arcfirmware/gatecore/tickpace"
)

func main() {
	app := cli.NewApp()
	app.Name = "gatecore"
	app.Description = "Eurorack gate/trigger processor firmware core, running against a simulated HAL"
	app.Usage = "gatecore [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "nvram",
			Usage: "Path to a file backing the simulated NVRAM settings store (created if missing)",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
			Value: "info",
		},
		cli.BoolFlag{
			Name:  "factory-reset",
			Usage: "Force a factory reset before bring-up, as if both buttons were held at boot",
		},
		cli.StringFlag{
			Name:  "ui",
			Usage: "Front end: terminal or headless",
			Value: "terminal",
		},
		cli.IntFlag{
			Name:  "ticks",
			Usage: "Number of ticks to run in headless mode (required for headless)",
			Value: 0,
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("gatecore: fatal", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	level, err := parseLogLevel(c.String("log-level"))
	if err != nil {
		return err
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	h := sim.New(hal.Pins{ButtonA: 0, ButtonB: 1, SignalOut: 2, MaxPin: 2})

	nvramPath := c.String("nvram")
	if nvramPath != "" {
		if data, err := os.ReadFile(nvramPath); err == nil {
			h.LoadNVRAM(data)
			slog.Info("gatecore: loaded NVRAM image", "path", nvramPath)
		}
	}

	if c.Bool("factory-reset") {
		h.SetButton(hal.Pin(0), true)
		h.SetButton(hal.Pin(1), true)
	}

	res, err := startup.Run(h)
	if err != nil {
		return err
	}
	if c.Bool("factory-reset") {
		h.SetButton(hal.Pin(0), false)
		h.SetButton(hal.Pin(1), false)
	}
	slog.Info("gatecore: bring-up complete", "settings", res.LoadResult)

	switch c.String("ui") {
	case "terminal":
		return runTerminal(h, res, nvramPath)
	case "headless":
		ticks := c.Int("ticks")
		if ticks <= 0 {
			return errors.New("headless mode requires --ticks option with a positive value")
		}
		return runHeadless(h, res, ticks, nvramPath)
	default:
		return fmt.Errorf("unknown --ui value %q (want terminal or headless)", c.String("ui"))
	}
}

func parseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown --log-level value %q", s)
	}
}

func runTerminal(h *sim.HAL, res startup.Result, nvramPath string) error {
	ui, err := sim.NewUI(h, res.Coordinator, res.LEDs)
	if err != nil {
		return fmt.Errorf("failed to start terminal UI: %w", err)
	}
	defer ui.Close()

	limiter := tickpace.NewTickerLimiter()
	defer limiter.Stop()

	for ui.Running() {
		ui.PollInput()
		res.Coordinator.Update()
		h.WatchdogReset()
		ui.Render(h.Millis())
		limiter.WaitForNextTick()
	}

	slog.Info("gatecore: terminal UI exiting")

	if nvramPath != "" {
		if err := os.WriteFile(nvramPath, h.DumpNVRAM(), 0644); err != nil {
			return fmt.Errorf("failed to persist NVRAM image: %w", err)
		}
		slog.Info("gatecore: persisted NVRAM image", "path", nvramPath)
	}

	return nil
}

func runHeadless(h *sim.HAL, res startup.Result, ticks int, nvramPath string) error {
	limiter := tickpace.NewNoOpLimiter()

	for i := 0; i < ticks; i++ {
		res.Coordinator.Update()
		h.WatchdogReset()
		limiter.WaitForNextTick()
		if i%1000 == 0 {
			slog.Debug("gatecore: headless progress", "tick", i, "total", ticks)
		}
	}

	slog.Info("gatecore: headless run completed", "ticks", ticks, "output", res.Coordinator.Output())

	if nvramPath != "" {
		if err := os.WriteFile(nvramPath, h.DumpNVRAM(), 0644); err != nil {
			return fmt.Errorf("failed to persist NVRAM image: %w", err)
		}
		slog.Info("gatecore: persisted NVRAM image", "path", nvramPath)
	}

	return nil
}
