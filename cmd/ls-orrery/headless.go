package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/render"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/ui"
)

// headlessOptions selects the non-interactive outputs.
type headlessOptions struct {
	summary      bool
	snapshotPath string
	frame        bool
	at           float64       // Simulated seconds before the first output
	watch        time.Duration // Repeat interval, 0 for a single run
	cols, rows   int
	color        bool

	fps       int
	timeScale float64
	view      config.ViewConfig
}

// runHeadless builds the scene, advances it to the requested time and
// writes the selected outputs. In watch mode it keeps advancing by the
// interval scaled by the time scale until ctx is cancelled.
func runHeadless(ctx context.Context, w io.Writer, opts scene.Options, h headlessOptions, logger *logging.Logger) error {
	logger = logger.With("mode", "headless")
	opts.Viewport = scene.Viewport{Width: h.cols, Height: h.rows * 2}
	s, err := scene.Build(opts)
	if err != nil {
		return err
	}

	elapsed := advanceTo(s, 0, h.at, h.fps)
	logger.Debug("Advanced to t=%.2fs in %d frames", elapsed, s.Frames())

	outputOnce := func() error {
		if h.snapshotPath != "" {
			if err := writeFile(w, h.snapshotPath, s.Snapshot().WriteJSON); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}
		}
		if h.summary {
			s.Snapshot().WriteSummaryTable(w)
		}
		if h.frame {
			if h.summary {
				fmt.Fprintln(w)
			}
			writeFrame(w, s, h)
		}
		return nil
	}

	// Single run
	if h.watch <= 0 {
		return outputOnce()
	}

	// Watch mode: repeat at interval
	if err := outputOnce(); err != nil {
		return err
	}

	ticker := time.NewTicker(h.watch)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Watch loop shutting down")
			return nil
		case <-ticker.C:
			elapsed = advanceTo(s, elapsed, elapsed+h.watch.Seconds()*h.timeScale, h.fps)
			fmt.Fprintln(w)
			if err := outputOnce(); err != nil {
				return err
			}
		}
	}
}

// advanceTo steps the scene from simulated time "from" to "to" in frames of
// 1/fps seconds, as the interactive loop would, and returns the new time.
func advanceTo(s *scene.Scene, from, to float64, fps int) float64 {
	if fps <= 0 {
		fps = 30
	}
	if to <= from {
		s.Frame(from, 0)
		return from
	}

	step := 1 / float64(fps)
	n := int(math.Ceil((to-from)*float64(fps) - 1e-9))
	if n < 1 {
		n = 1
	}
	t := from
	for i := 1; i <= n; i++ {
		next := from + float64(i)*step
		if i == n {
			next = to
		}
		s.Frame(next, next-t)
		t = next
	}
	return t
}

func writeFrame(w io.Writer, s *scene.Scene, h headlessOptions) {
	canvas := render.Render(s, h.cols, h.rows, render.Options{
		ShowStars:  h.view.Stars,
		ShowRings:  h.view.Rings,
		ShowLabels: h.view.Labels,
		Focus:      -1,
	})
	if h.color {
		fmt.Fprint(w, ui.StyledCanvas(canvas))
		return
	}
	fmt.Fprintln(w, canvas.String())
}
