// Command ls-orrery is an animated 3D model of the solar system for the terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/ui"
	"github.com/litescript/ls-orrery/internal/version"
)

const (
	defaultCols = 100
	defaultRows = 40
)

func main() {
	fs := pflag.NewFlagSet("ls-orrery", pflag.ExitOnError)
	configPath := fs.String("config", "", "Config file (YAML, TOML or JSON)")
	fs.Int("fps", 30, "Frames per second")
	fs.Float64("time-scale", 1, "Simulated seconds per wall second")
	fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	fs.String("log-file", "", "Write logs to this file")

	var h headlessOptions
	fs.BoolVar(&h.summary, "summary", false, "Print body table instead of TUI")
	fs.StringVar(&h.snapshotPath, "snapshot-path", "", "Export JSON snapshot to file (use - for stdout)")
	fs.BoolVar(&h.frame, "frame", false, "Print one rendered frame instead of TUI")
	fs.Float64Var(&h.at, "at", 0, "Simulated seconds to advance before headless output")
	fs.DurationVar(&h.watch, "watch", 0, "Repeat headless output at interval (e.g., 2s)")
	fs.IntVar(&h.cols, "width", 0, "Headless frame width in cells (default: terminal width)")
	fs.IntVar(&h.rows, "height", 0, "Headless frame height in cells (default: terminal height)")
	showVersion := fs.Bool("version", false, "Print version and exit")
	_ = fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("ls-orrery v%s\n", version.Version)
		return
	}

	cfg, err := config.Load(*configPath, fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	h.fps = cfg.FPS
	h.timeScale = cfg.TimeScale
	h.color = term.IsTerminal(int(os.Stdout.Fd()))

	headless := h.summary || h.snapshotPath != "" || h.frame

	logger, closeLog, err := newLogger(cfg, headless)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	if cfg.File != "" {
		logger.Debug("Loaded config from %s", cfg.File)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	opts := scene.Options{
		Bodies:   cfg.Bodies,
		Camera:   cfg.Camera,
		Controls: cfg.Controls,
	}

	if headless {
		h.cols, h.rows = frameSize(h.cols, h.rows)
		h.view = cfg.View
		if err := runHeadless(ctx, os.Stdout, opts, h, logger); err != nil {
			logger.Error("Headless run failed: %v", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// The real size arrives with the first WindowSizeMsg.
	cols, rows := frameSize(0, 0)
	opts.Viewport = scene.Viewport{Width: cols, Height: rows * 2}
	s, err := scene.Build(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("Starting orrery with %d bodies at %d fps", len(s.Bodies), cfg.FPS)
	warnTimeScale(logger, cfg.TimeScale)

	model := ui.New(s, ui.Options{
		FPS:        cfg.FPS,
		TimeScale:  cfg.TimeScale,
		ShowLabels: cfg.View.Labels,
		ShowStars:  cfg.View.Stars,
		ShowRings:  cfg.View.Rings,
		Logger:     logger,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("Orrery stopped")
}

// newLogger writes to the log file when one is configured. Without one, the
// TUI discards logs so they cannot corrupt the screen.
func newLogger(cfg *config.Config, headless bool) (*logging.Logger, func(), error) {
	level := logging.ParseLevel(cfg.LogLevel)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return logging.NewWithWriter(level, f), func() { _ = f.Close() }, nil
	}
	if headless {
		return logging.New(level), func() {}, nil
	}
	return logging.Discard(), func() {}, nil
}

// frameSize fills unset dimensions from the terminal, then from defaults.
func frameSize(cols, rows int) (int, int) {
	if cols > 0 && rows > 0 {
		return cols, rows
	}
	tc, tr, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || tc <= 0 || tr <= 0 {
		tc, tr = defaultCols, defaultRows
	}
	if cols <= 0 {
		cols = tc
	}
	if rows <= 0 {
		rows = tr
	}
	return cols, rows
}

// writeFile writes to path, or stdout for "-".
func writeFile(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return err
	}
	return f.Close()
}

// warnTimeScale reports a configured time scale that the UI will clamp to
// the range reachable with the [ and ] keys.
func warnTimeScale(logger *logging.Logger, scale float64) bool {
	if scale >= ui.MinTimeScale && scale <= ui.MaxTimeScale {
		return false
	}
	logger.Warn("Time scale %g is outside [%g, %g] and will be clamped", scale, ui.MinTimeScale, ui.MaxTimeScale)
	return true
}
