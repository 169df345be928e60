// Package astro provides the orbit math and sky helpers behind the orrery.
package astro

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SpinRate is the spin in radians per simulated second of a body whose
// rotation speed is 1. It matches 0.01 rad per frame at 60 frames per second.
const SpinRate = 0.6

// OrbitPosition returns the point at angle on a circular orbit of the given
// radius. Orbits lie in the XZ plane; Y is up.
func OrbitPosition(radius, angle float64) mgl64.Vec3 {
	return mgl64.Vec3{
		math.Cos(angle) * radius,
		0,
		math.Sin(angle) * radius,
	}
}

// OrbitAngularSpeed returns the orbital angular speed in radians per
// simulated second for a body on an orbit of the given radius.
// Farther bodies move slower (1/sqrt(r)). A body at the origin does not orbit.
func OrbitAngularSpeed(orbitRadius float64) float64 {
	if orbitRadius <= 0 {
		return 0
	}
	return 1 / math.Sqrt(orbitRadius)
}

// RotationSpeed converts a rotation period (in days) to a relative spin speed.
func RotationSpeed(period float64) float64 {
	if period <= 0 {
		return 0
	}
	return 1 / period
}

// OrbitAngle returns the orbit angle after elapsed simulated seconds.
func OrbitAngle(elapsed, angularSpeed float64) float64 {
	return elapsed * angularSpeed
}

// AdvanceSpin returns the spin angle after dt more simulated seconds.
// Negative dt is treated as zero so the angle never runs backwards.
func AdvanceSpin(spin, dt, rotationSpeed float64) float64 {
	if dt <= 0 {
		return spin
	}
	return spin + dt*rotationSpeed*SpinRate
}

// NormalizeAngle wraps an angle in radians to [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
