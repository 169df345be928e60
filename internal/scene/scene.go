// Package scene holds the orrery's scene graph: camera, lights, bodies and
// their labels, and the per-frame update that animates them.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/bodies"
	"github.com/litescript/ls-orrery/internal/camera"
)

// Viewport is the render target size in pixels.
type Viewport struct {
	Width  int
	Height int
}

// Aspect returns width/height, or 1 for an empty viewport.
func (v Viewport) Aspect() float64 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return float64(v.Width) / float64(v.Height)
}

// Light is an ambient or point light source.
type Light struct {
	Color     colorful.Color
	Intensity float64
	Position  mgl64.Vec3 // Point lights only
}

// Body is the runtime state of one configured body.
type Body struct {
	Config        bodies.Config
	Color         colorful.Color
	MeshRadius    float64
	OrbitRadius   float64
	RotationSpeed float64 // 1 / rotation period
	OrbitSpeed    float64 // radians per simulated second

	Position   mgl64.Vec3
	Spin       float64 // Rotation about the body's Y axis, radians
	OrbitAngle float64
}

// Name returns the body's display name.
func (b *Body) Name() string {
	return b.Config.Name
}

// Options configures scene construction.
type Options struct {
	Bodies   []bodies.Config
	Camera   camera.Config
	Controls camera.ControlsConfig
	Viewport Viewport
}

// DefaultOptions returns the default catalog and camera.
func DefaultOptions() Options {
	return Options{
		Bodies:   bodies.DefaultCatalog(),
		Camera:   camera.DefaultConfig(),
		Controls: camera.DefaultControlsConfig(),
		Viewport: Viewport{Width: 800, Height: 600},
	}
}

// Scene is the whole application context shared by the frame callback and
// the resize handler.
type Scene struct {
	Camera   *camera.Perspective
	Controls *camera.OrbitControls
	Ambient  Light
	Point    Light

	Bodies []*Body
	Labels []*Label
	Rings  []float64 // Orbit ring radii, one per orbiting body

	viewport Viewport
	elapsed  float64
	frames   uint64
}

// Build constructs the scene once: camera, controls, lights, one runtime
// record and one label per configured body, and the orbit rings.
func Build(opts Options) (*Scene, error) {
	cfgs := bodies.Normalize(opts.Bodies)
	if err := bodies.Validate(cfgs); err != nil {
		return nil, fmt.Errorf("invalid body configuration: %w", err)
	}

	cam := camera.NewPerspective(opts.Camera, opts.Viewport.Aspect())
	s := &Scene{
		Camera:   cam,
		Controls: camera.NewOrbitControls(cam, opts.Controls),
		Ambient:  Light{Color: colorful.Color{R: 0x40 / 255.0, G: 0x40 / 255.0, B: 0x40 / 255.0}, Intensity: 1},
		Point:    Light{Color: colorful.Color{R: 1, G: 1, B: 1}, Intensity: 2},
		Bodies:   make([]*Body, 0, len(cfgs)),
		Labels:   make([]*Label, 0, len(cfgs)),
		viewport: opts.Viewport,
	}

	for i, cfg := range cfgs {
		col, err := cfg.ParsedColor()
		if err != nil {
			return nil, err
		}

		b := &Body{
			Config:        cfg,
			Color:         col,
			MeshRadius:    cfg.MeshRadius(),
			OrbitRadius:   cfg.OrbitRadius,
			RotationSpeed: astro.RotationSpeed(cfg.RotationPeriod),
			OrbitSpeed:    astro.OrbitAngularSpeed(cfg.OrbitRadius),
			Position:      astro.OrbitPosition(cfg.OrbitRadius, 0),
		}
		s.Bodies = append(s.Bodies, b)
		s.Labels = append(s.Labels, &Label{Text: cfg.Name, Body: i})

		if cfg.OrbitRadius > 0 {
			s.Rings = append(s.Rings, cfg.OrbitRadius)
		}
	}

	if sun := s.Sun(); sun != nil {
		s.Point.Position = sun.Position
	}
	s.UpdateLabels()
	return s, nil
}

// Frame advances the scene to elapsed simulated seconds. dt is the simulated
// time since the previous frame and drives spin. Order: controls, bodies,
// labels.
func (s *Scene) Frame(elapsed, dt float64) {
	s.Controls.Update()

	for _, b := range s.Bodies {
		b.Spin = astro.AdvanceSpin(b.Spin, dt, b.RotationSpeed)
		b.OrbitAngle = astro.OrbitAngle(elapsed, b.OrbitSpeed)
		b.Position = astro.OrbitPosition(b.OrbitRadius, b.OrbitAngle)
	}

	s.UpdateLabels()
	s.elapsed = elapsed
	s.frames++
}

// Resize updates the viewport and the camera aspect ratio. Labels are
// reprojected so they match the new size before the next frame.
func (s *Scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.viewport = Viewport{Width: width, Height: height}
	s.Camera.SetAspect(width, height)
	s.UpdateLabels()
}

// Viewport returns the current viewport.
func (s *Scene) Viewport() Viewport {
	return s.viewport
}

// Elapsed returns the simulated time of the last frame.
func (s *Scene) Elapsed() float64 {
	return s.elapsed
}

// Frames returns the number of frames processed.
func (s *Scene) Frames() uint64 {
	return s.frames
}

// Sun returns the central body, or nil if none is configured.
func (s *Scene) Sun() *Body {
	for _, b := range s.Bodies {
		if b.Config.IsSun() {
			return b
		}
	}
	return nil
}

// LabelFor returns the label bound to body index i.
func (s *Scene) LabelFor(i int) *Label {
	if i < 0 || i >= len(s.Labels) {
		return nil
	}
	return s.Labels[i]
}
