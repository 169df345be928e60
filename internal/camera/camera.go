// Package camera provides a perspective camera and orbit controls.
package camera

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Perspective is a perspective camera looking at a target.
type Perspective struct {
	FOV    float64 // Vertical field of view in degrees
	Aspect float64 // Viewport width / height
	Near   float64
	Far    float64

	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	view       mgl64.Mat4
	projection mgl64.Mat4
}

// Config holds the initial camera parameters.
type Config struct {
	FOV      float64    `mapstructure:"fov"`
	Near     float64    `mapstructure:"near"`
	Far      float64    `mapstructure:"far"`
	Position [3]float64 `mapstructure:"position"`
}

// DefaultConfig returns the camera used for the default catalog.
func DefaultConfig() Config {
	return Config{
		FOV:      75,
		Near:     0.1,
		Far:      3000,
		Position: [3]float64{600, 400, 600},
	}
}

// NewPerspective creates a camera looking at the origin.
func NewPerspective(cfg Config, aspect float64) *Perspective {
	if aspect <= 0 {
		aspect = 1
	}
	c := &Perspective{
		FOV:      cfg.FOV,
		Aspect:   aspect,
		Near:     cfg.Near,
		Far:      cfg.Far,
		Position: mgl64.Vec3(cfg.Position),
		Up:       mgl64.Vec3{0, 1, 0},
	}
	c.UpdateProjectionMatrix()
	c.UpdateViewMatrix()
	return c
}

// SetAspect sets the aspect ratio to width/height and recomputes the
// projection. Non-positive sizes are ignored.
func (c *Perspective) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float64(width) / float64(height)
	c.UpdateProjectionMatrix()
}

// UpdateProjectionMatrix recomputes the projection after FOV, aspect or
// clip plane changes.
func (c *Perspective) UpdateProjectionMatrix() {
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// UpdateViewMatrix recomputes the view after the position or target moves.
func (c *Perspective) UpdateViewMatrix() {
	c.view = mgl64.LookAtV(c.Position, c.Target, c.Up)
}

// Project maps a world-space point to normalized device coordinates.
// ok is false when the point is at or behind the camera plane, where the
// projected coordinates are meaningless.
func (c *Perspective) Project(p mgl64.Vec3) (ndc mgl64.Vec3, ok bool) {
	clip := c.projection.Mul4(c.view).Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return mgl64.Vec3{}, false
	}
	return clip.Vec3().Mul(1 / clip.W()), true
}

// ToView transforms a world-space point into camera space.
func (c *Perspective) ToView(p mgl64.Vec3) mgl64.Vec3 {
	return c.view.Mul4x1(p.Vec4(1)).Vec3()
}

// Depth returns the distance along the view direction to p.
func (c *Perspective) Depth(p mgl64.Vec3) float64 {
	return -c.ToView(p).Z()
}

// Right returns the camera's world-space right vector.
func (c *Perspective) Right() mgl64.Vec3 {
	return c.Forward().Cross(c.Up).Normalize()
}

// Forward returns the unit vector from the camera toward its target.
func (c *Perspective) Forward() mgl64.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// Distance returns the distance from the camera to its target.
func (c *Perspective) Distance() float64 {
	return c.Position.Sub(c.Target).Len()
}
