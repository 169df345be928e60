package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// polarEpsilon keeps the polar angle off the poles so LookAt stays defined.
const polarEpsilon = 1e-6

// ControlsConfig configures orbit controls.
type ControlsConfig struct {
	EnableDamping bool    `mapstructure:"enableDamping"`
	DampingFactor float64 `mapstructure:"dampingFactor"`
	MinDistance   float64 `mapstructure:"minDistance"`
	MaxDistance   float64 `mapstructure:"maxDistance"`
}

// DefaultControlsConfig returns damped controls limited to 100..2000 units.
func DefaultControlsConfig() ControlsConfig {
	return ControlsConfig{
		EnableDamping: true,
		DampingFactor: 0.05,
		MinDistance:   100,
		MaxDistance:   2000,
	}
}

// OrbitControls orbits a camera around its target in spherical coordinates.
// Input accumulates deltas; Update applies them and moves the camera.
type OrbitControls struct {
	camera *Perspective
	cfg    ControlsConfig

	// Current spherical pose about the target
	radius float64
	theta  float64 // azimuth around +Y, from +Z toward +X
	phi    float64 // polar angle from +Y

	// Pending input
	deltaTheta float64
	deltaPhi   float64
	scale      float64

	// Pose captured at construction, restored by Reset
	initRadius float64
	initTheta  float64
	initPhi    float64
}

// NewOrbitControls attaches controls to a camera, starting from its
// current position.
func NewOrbitControls(cam *Perspective, cfg ControlsConfig) *OrbitControls {
	if cfg.MaxDistance < cfg.MinDistance {
		cfg.MaxDistance = cfg.MinDistance
	}
	if cfg.DampingFactor <= 0 || cfg.DampingFactor > 1 {
		cfg.DampingFactor = 1
	}

	oc := &OrbitControls{camera: cam, cfg: cfg, scale: 1}
	oc.radius, oc.theta, oc.phi = toSpherical(cam.Position.Sub(cam.Target))
	oc.initRadius, oc.initTheta, oc.initPhi = oc.radius, oc.theta, oc.phi
	return oc
}

// Rotate queues a rotation: dTheta around the vertical axis and dPhi
// toward or away from the pole, both in radians.
func (oc *OrbitControls) Rotate(dTheta, dPhi float64) {
	oc.deltaTheta += dTheta
	oc.deltaPhi += dPhi
}

// Dolly queues a zoom. Scale > 1 moves the camera away from the target.
func (oc *OrbitControls) Dolly(scale float64) {
	if scale <= 0 {
		return
	}
	oc.scale *= scale
}

// Reset restores the initial camera pose and drops pending input.
func (oc *OrbitControls) Reset() {
	oc.radius, oc.theta, oc.phi = oc.initRadius, oc.initTheta, oc.initPhi
	oc.deltaTheta, oc.deltaPhi, oc.scale = 0, 0, 1
	oc.apply()
}

// Update applies pending input to the camera. With damping enabled only a
// fraction of the pending rotation is applied per call and the rest decays,
// so motion eases out over subsequent frames.
func (oc *OrbitControls) Update() {
	factor := 1.0
	if oc.cfg.EnableDamping {
		factor = oc.cfg.DampingFactor
	}

	oc.theta += oc.deltaTheta * factor
	oc.phi += oc.deltaPhi * factor
	oc.phi = clamp(oc.phi, polarEpsilon, math.Pi-polarEpsilon)

	oc.radius = clamp(oc.radius*oc.scale, oc.cfg.MinDistance, oc.cfg.MaxDistance)
	oc.scale = 1

	if oc.cfg.EnableDamping {
		oc.deltaTheta *= 1 - factor
		oc.deltaPhi *= 1 - factor
		if oc.settled() {
			oc.deltaTheta, oc.deltaPhi = 0, 0
		}
	} else {
		oc.deltaTheta, oc.deltaPhi = 0, 0
	}

	oc.apply()
}

// Distance returns the current camera distance from the target.
func (oc *OrbitControls) Distance() float64 {
	return oc.radius
}

// Angles returns the azimuth and polar angles in radians.
func (oc *OrbitControls) Angles() (theta, phi float64) {
	return oc.theta, oc.phi
}

// settled reports whether no damped motion is pending.
func (oc *OrbitControls) settled() bool {
	return math.Abs(oc.deltaTheta) < 1e-6 && math.Abs(oc.deltaPhi) < 1e-6 && oc.scale == 1
}

func (oc *OrbitControls) apply() {
	oc.camera.Position = oc.camera.Target.Add(fromSpherical(oc.radius, oc.theta, oc.phi))
	oc.camera.UpdateViewMatrix()
}

func toSpherical(v mgl64.Vec3) (radius, theta, phi float64) {
	radius = v.Len()
	if radius == 0 {
		return 0, 0, math.Pi / 2
	}
	theta = math.Atan2(v.X(), v.Z())
	phi = math.Acos(clamp(v.Y()/radius, -1, 1))
	return radius, theta, phi
}

func fromSpherical(radius, theta, phi float64) mgl64.Vec3 {
	sinPhi := math.Sin(phi)
	return mgl64.Vec3{
		radius * sinPhi * math.Sin(theta),
		radius * math.Cos(phi),
		radius * sinPhi * math.Cos(theta),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
