package scene

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-orrery/internal/bodies"
)

func buildDefault(t *testing.T) *Scene {
	t.Helper()
	s, err := Build(DefaultOptions())
	require.NoError(t, err)
	return s
}

func TestBuild_OneRecordAndLabelPerBody(t *testing.T) {
	s := buildDefault(t)
	cat := bodies.DefaultCatalog()

	require.Len(t, s.Bodies, len(cat))
	require.Len(t, s.Labels, len(cat))

	seen := make(map[string]bool)
	for i, cfg := range cat {
		assert.Equal(t, cfg.Name, s.Bodies[i].Name())
		assert.Equal(t, cfg.Name, s.Labels[i].Text)
		assert.Equal(t, i, s.Labels[i].Body)
		assert.False(t, seen[cfg.Name], "duplicate %s", cfg.Name)
		seen[cfg.Name] = true
	}

	// One ring per orbiting body
	assert.Len(t, s.Rings, len(cat)-1)
}

func TestBuild_RuntimeDerivedFromConfig(t *testing.T) {
	s := buildDefault(t)

	earth := s.Bodies[3]
	require.Equal(t, "Earth", earth.Name())
	assert.Equal(t, 1.0, earth.RotationSpeed)
	assert.InDelta(t, 1/math.Sqrt(160), earth.OrbitSpeed, 1e-12)
	assert.InDelta(t, 160, earth.Position.X(), 1e-9, "planets start on +X")

	sun := s.Sun()
	require.NotNil(t, sun)
	assert.Equal(t, 0.0, sun.OrbitSpeed)
	assert.Equal(t, mgl64.Vec3{}, sun.Position)
	assert.Equal(t, sun.Position, s.Point.Position, "point light sits at the sun")
}

func TestBuild_RejectsInvalidBodies(t *testing.T) {
	opts := DefaultOptions()
	opts.Bodies = append(opts.Bodies, bodies.Config{
		Name: "earth", Kind: bodies.KindPlanet, Radius: 1, OrbitRadius: 600, RotationPeriod: 1, Color: "#FFFFFF",
	})

	_, err := Build(opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, bodies.ErrDuplicateName)
}

func TestFrame_PositionsOnOrbit(t *testing.T) {
	s := buildDefault(t)

	elapsed := 0.0
	for i := 0; i < 240; i++ {
		elapsed += 1.0 / 30
		s.Frame(elapsed, 1.0/30)

		for _, b := range s.Bodies {
			r2 := b.Position.X()*b.Position.X() + b.Position.Z()*b.Position.Z()
			assert.InDelta(t, b.OrbitRadius*b.OrbitRadius, r2, 1e-6, "%s off its orbit", b.Name())
			assert.InDelta(t, elapsed*b.OrbitSpeed, b.OrbitAngle, 1e-9)
		}
	}
	assert.Equal(t, uint64(240), s.Frames())
	assert.InDelta(t, 8.0, s.Elapsed(), 1e-9)
}

func TestFrame_SpinMonotonic(t *testing.T) {
	s := buildDefault(t)
	prev := make([]float64, len(s.Bodies))

	for i := 1; i <= 100; i++ {
		s.Frame(float64(i)*0.1, 0.1)
		for j, b := range s.Bodies {
			assert.Greater(t, b.Spin, prev[j], "%s spin did not increase", b.Name())
			prev[j] = b.Spin
		}
	}
}

func TestFrame_InnerPlanetsFaster(t *testing.T) {
	s := buildDefault(t)
	s.Frame(10, 10)

	for i := 2; i < len(s.Bodies); i++ {
		assert.Less(t, s.Bodies[i].OrbitAngle, s.Bodies[i-1].OrbitAngle,
			"%s should trail %s", s.Bodies[i].Name(), s.Bodies[i-1].Name())
	}
}

func TestFrame_PausedKeepsSpin(t *testing.T) {
	s := buildDefault(t)
	s.Frame(1, 1)
	spin := s.Bodies[3].Spin

	s.Frame(1, 0)
	assert.Equal(t, spin, s.Bodies[3].Spin)
}

func TestResize_UpdatesAspect(t *testing.T) {
	s := buildDefault(t)

	s.Resize(1280, 720)
	assert.Equal(t, 1280.0/720.0, s.Camera.Aspect)
	assert.Equal(t, Viewport{Width: 1280, Height: 720}, s.Viewport())

	s.Resize(120, 80)
	assert.Equal(t, 120.0/80.0, s.Camera.Aspect)

	s.Resize(0, 80)
	assert.Equal(t, 120.0/80.0, s.Camera.Aspect, "empty viewport is ignored")
}

func TestResize_ReprojectsLabels(t *testing.T) {
	s := buildDefault(t)
	sunLabel := s.LabelFor(0)

	s.Resize(1000, 500)
	assert.InDelta(t, 500, sunLabel.X, 1e-6, "sun at the camera target sits mid-screen")
	assert.InDelta(t, 250, sunLabel.Y, 1e-6)

	s.Resize(400, 300)
	assert.InDelta(t, 200, sunLabel.X, 1e-6)
	assert.InDelta(t, 150, sunLabel.Y, 1e-6)
}

func TestNDCToPixel(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600}

	tests := []struct {
		name  string
		ndc   mgl64.Vec3
		wantX float64
		wantY float64
	}{
		{"center", mgl64.Vec3{0, 0, 0}, 400, 300},
		{"bottom left", mgl64.Vec3{-1, -1, 0}, 0, 600},
		{"top right", mgl64.Vec3{1, 1, 0}, 800, 0},
		{"top left", mgl64.Vec3{-1, 1, 0}, 0, 0},
		{"half right", mgl64.Vec3{0.5, 0, 0.9}, 600, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := NDCToPixel(tt.ndc, vp)
			assert.InDelta(t, tt.wantX, x, 1e-9)
			assert.InDelta(t, tt.wantY, y, 1e-9)
		})
	}
}

func TestUpdateLabels_FollowBodies(t *testing.T) {
	s := buildDefault(t)
	s.Frame(3, 3)

	for i, b := range s.Bodies {
		ndc, ok := s.Camera.Project(b.Position)
		require.True(t, ok)
		x, y := NDCToPixel(ndc, s.Viewport())
		assert.InDelta(t, x, s.Labels[i].X, 1e-9)
		assert.InDelta(t, y, s.Labels[i].Y, 1e-9)
		assert.False(t, s.Labels[i].Behind)
	}
}

func TestUpdateLabels_BehindCamera(t *testing.T) {
	opts := DefaultOptions()
	opts.Bodies = []bodies.Config{
		{Name: "Sun", Kind: bodies.KindSun, Radius: 30, RotationPeriod: 25, Color: "#FFFF00"},
		{Name: "Far", Kind: bodies.KindPlanet, Radius: 1, OrbitRadius: 1500, RotationPeriod: 1, Color: "#FFFFFF"},
	}
	s, err := Build(opts)
	require.NoError(t, err)

	// Put the far planet directly behind the camera
	s.Bodies[1].Position = s.Camera.Position.Normalize().Mul(1500)
	s.UpdateLabels()

	assert.True(t, s.Labels[1].Behind)
	assert.False(t, s.Labels[1].InViewport(s.Viewport()))
	assert.True(t, s.Labels[0].InViewport(s.Viewport()))
}

func TestSnapshot(t *testing.T) {
	s := buildDefault(t)
	s.Frame(5, 5)

	snap := s.Snapshot()
	require.Len(t, snap.Bodies, len(s.Bodies))
	assert.Equal(t, 5.0, snap.Elapsed)
	assert.Equal(t, "Sun", snap.Bodies[0].Name)
	assert.Equal(t, "sun", snap.Bodies[0].Kind)
	assert.Equal(t, "#00bfff", snap.Bodies[3].Color)
	assert.Equal(t, "Earth", snap.Bodies[3].Label.Text)

	var buf bytes.Buffer
	require.NoError(t, snap.WriteJSON(&buf))

	var decoded SnapshotExport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Bodies, len(s.Bodies))
	assert.Equal(t, 800, decoded.Viewport.Width)
}

func TestWriteSummaryTable(t *testing.T) {
	s := buildDefault(t)
	s.Frame(1, 1)

	var buf bytes.Buffer
	s.Snapshot().WriteSummaryTable(&buf)
	out := buf.String()

	for _, b := range s.Bodies {
		assert.Contains(t, out, b.Name())
	}
	assert.Contains(t, out, "Total: 9 bodies")
	assert.Equal(t, 1, strings.Count(out, "Neptune"))
}

func TestWriteSummaryTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	(&SnapshotExport{}).WriteSummaryTable(&buf)
	assert.Contains(t, buf.String(), "No bodies")
}

func TestWriteSummaryTable_MultiByteNames(t *testing.T) {
	e := &SnapshotExport{Bodies: []BodyExport{
		{Name: "Plutão-Caronte", Kind: "planet"},
		{Name: "冥王星カロン系", Kind: "planet"},
	}}

	var buf bytes.Buffer
	e.WriteSummaryTable(&buf)
	out := buf.String()

	assert.True(t, utf8.ValidString(out), "summary must stay valid UTF-8")
	assert.Contains(t, out, "Plutão-C..")
	assert.Contains(t, out, "冥王星カ..")
}

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"Earth", 10, "Earth"},
		{"Mercury", 7, "Mercury"},
		{"Proxima Centauri", 10, "Proxima .."},
		{"Plutão-Caronte", 10, "Plutão-C.."},
		{"冥王星カロン系", 10, "冥王星カ.."},
		{"冥王星", 5, "冥.."},
		{"Jupiter", 2, "Ju"},
	}

	for _, tt := range tests {
		got := truncateStr(tt.in, tt.maxLen)
		assert.Equal(t, tt.want, got, "truncateStr(%q, %d)", tt.in, tt.maxLen)
		assert.True(t, utf8.ValidString(got))
	}
}

func TestWriteSummaryTable_WideNamesAligned(t *testing.T) {
	e := &SnapshotExport{Bodies: []BodyExport{
		{Name: "Earth", Kind: "planet"},
		{Name: "冥王星", Kind: "planet"},
	}}

	var buf bytes.Buffer
	e.WriteSummaryTable(&buf)

	var kindCols []int
	for _, line := range strings.Split(buf.String(), "\n") {
		if i := strings.Index(line, "planet"); i >= 0 {
			kindCols = append(kindCols, runewidth.StringWidth(line[:i]))
		}
	}
	require.Len(t, kindCols, 2)
	assert.Equal(t, kindCols[0], kindCols[1])
}
