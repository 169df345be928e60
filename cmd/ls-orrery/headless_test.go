package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/ui"
)

func testHeadless() headlessOptions {
	return headlessOptions{
		cols:      80,
		rows:      24,
		fps:       30,
		timeScale: 1,
		view:      config.ViewConfig{Labels: true, Stars: true, Rings: true},
	}
}

func TestAdvanceTo(t *testing.T) {
	s, err := scene.Build(scene.DefaultOptions())
	require.NoError(t, err)

	got := advanceTo(s, 0, 1, 30)
	assert.Equal(t, 1.0, got)
	assert.Equal(t, uint64(30), s.Frames())
	assert.InDelta(t, 1.0, s.Elapsed(), 1e-12)

	earth := s.Bodies[3]
	assert.InDelta(t, earth.OrbitSpeed, earth.OrbitAngle, 1e-12)
	assert.InDelta(t, earth.RotationSpeed*0.6, earth.Spin, 1e-9)
}

func TestAdvanceTo_ZeroRunsOneFrame(t *testing.T) {
	s, err := scene.Build(scene.DefaultOptions())
	require.NoError(t, err)

	got := advanceTo(s, 0, 0, 30)
	assert.Equal(t, 0.0, got)
	assert.Equal(t, uint64(1), s.Frames())
}

func TestRunHeadless_Summary(t *testing.T) {
	h := testHeadless()
	h.summary = true
	h.at = 10

	var buf bytes.Buffer
	err := runHeadless(context.Background(), &buf, scene.DefaultOptions(), h, logging.Discard())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Orrery @ t=10.0s")
	assert.Contains(t, out, "Neptune")
	assert.Contains(t, out, "Total: 9 bodies")
}

func TestRunHeadless_SnapshotStdout(t *testing.T) {
	h := testHeadless()
	h.snapshotPath = "-"
	h.at = 5

	var buf bytes.Buffer
	err := runHeadless(context.Background(), &buf, scene.DefaultOptions(), h, logging.Discard())
	require.NoError(t, err)

	var snap scene.SnapshotExport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &snap))
	assert.InDelta(t, 5.0, snap.Elapsed, 1e-9)
	assert.Len(t, snap.Bodies, 9)
	assert.Equal(t, 80, snap.Viewport.Width)
	assert.Equal(t, 48, snap.Viewport.Height)
}

func TestRunHeadless_SnapshotFile(t *testing.T) {
	h := testHeadless()
	h.snapshotPath = filepath.Join(t.TempDir(), "snap.json")

	var buf bytes.Buffer
	err := runHeadless(context.Background(), &buf, scene.DefaultOptions(), h, logging.Discard())
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	data, err := os.ReadFile(h.snapshotPath)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestRunHeadless_Frame(t *testing.T) {
	h := testHeadless()
	h.frame = true

	var buf bytes.Buffer
	err := runHeadless(context.Background(), &buf, scene.DefaultOptions(), h, logging.Discard())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, h.rows)
	assert.Contains(t, buf.String(), "Neptune")
}

func TestRunHeadless_InvalidBodies(t *testing.T) {
	opts := scene.DefaultOptions()
	opts.Bodies = append(opts.Bodies, opts.Bodies[1])

	err := runHeadless(context.Background(), &bytes.Buffer{}, opts, testHeadless(), logging.Discard())
	require.Error(t, err)
}

func TestRunHeadless_WatchStopsOnCancel(t *testing.T) {
	h := testHeadless()
	h.summary = true
	h.watch = 10 * time.Millisecond
	h.timeScale = 100

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	err := runHeadless(ctx, &buf, scene.DefaultOptions(), h, logging.Discard())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, strings.Count(buf.String(), "Orrery @"), 2)
}

func TestFrameSize_Explicit(t *testing.T) {
	cols, rows := frameSize(42, 17)
	assert.Equal(t, 42, cols)
	assert.Equal(t, 17, rows)
}

func TestFrameSize_Fallback(t *testing.T) {
	cols, rows := frameSize(0, 0)
	assert.Positive(t, cols)
	assert.Positive(t, rows)
}

func TestRunHeadless_LogsHeadlessMode(t *testing.T) {
	h := testHeadless()
	h.summary = true

	var logs bytes.Buffer
	err := runHeadless(context.Background(), &bytes.Buffer{}, scene.DefaultOptions(), h, logging.NewWithWriter(logging.LevelDebug, &logs))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "Advanced to t=0.00s")
	assert.Contains(t, logs.String(), "mode=headless")
}

func TestWarnTimeScale(t *testing.T) {
	tests := []struct {
		scale float64
		warn  bool
	}{
		{1, false},
		{ui.MinTimeScale, false},
		{ui.MaxTimeScale, false},
		{ui.MaxTimeScale * 2, true},
		{1.0 / 128, true},
	}

	for _, tt := range tests {
		var logs bytes.Buffer
		got := warnTimeScale(logging.NewWithWriter(logging.LevelDebug, &logs), tt.scale)
		assert.Equal(t, tt.warn, got, "scale %g", tt.scale)
		if tt.warn {
			assert.Contains(t, logs.String(), "WRN")
			assert.Contains(t, logs.String(), "clamped")
		} else {
			assert.Empty(t, logs.String())
		}
	}
}
