package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	emissiveIntensity = 0.2  // Planets glow faintly in their own color
	ringOpacity       = 0.4  // Orbit rings are white at 40% over black
	bandDarken        = 0.25 // Meridian band darkening, makes spin visible
	bandSharpness     = 0.8
	bandCount         = 3
)

var (
	black = colorful.Color{}
	white = colorful.Color{R: 1, G: 1, B: 1}

	ringColor  = black.BlendRgb(white, ringOpacity)
	labelFG    = white
	labelBG    = colorful.Color{R: 0.04, G: 0.04, B: 0.04}
	starBright = colorful.Color{R: 0.55, G: 0.55, B: 0.6}
	starDim    = colorful.Color{R: 0.3, G: 0.3, B: 0.33}
)

// lighting describes how a surface point is lit.
type lighting struct {
	ambient   colorful.Color
	intensity float64    // Point light intensity
	lightDir  mgl64.Vec3 // View-space unit vector from surface toward light
	unlit     bool       // Basic material: full color regardless of light
}

// scale multiplies a color's channels by k and clamps.
func scale(c colorful.Color, k float64) colorful.Color {
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}.Clamped()
}

// shadeSurface returns the color of a sphere surface point with view-space
// normal n. Diffuse falloff follows Lambert; the point light's intensity is
// normalized so a surface facing the sun shows its full color.
func shadeSurface(base colorful.Color, n mgl64.Vec3, l lighting) colorful.Color {
	if l.unlit {
		return base
	}

	diffuse := math.Max(0, n.Dot(l.lightDir)) * l.intensity / 2
	r := base.R * (l.ambient.R + emissiveIntensity + diffuse)
	g := base.G * (l.ambient.G + emissiveIntensity + diffuse)
	b := base.B * (l.ambient.B + emissiveIntensity + diffuse)
	return colorful.Color{R: r, G: g, B: b}.Clamped()
}

// bandFactor returns the brightness multiplier of the meridian band pattern
// at surface longitude lon (radians, body frame).
func bandFactor(lon float64) float64 {
	if math.Cos(bandCount*lon) > bandSharpness {
		return 1 - bandDarken
	}
	return 1
}

// starColor picks a star color by magnitude.
func starColor(mag float64) colorful.Color {
	if mag <= 1.5 {
		return starBright
	}
	return starDim
}

// starGlyph returns a subtle glyph for a star, or ' ' to skip dim stars.
func starGlyph(mag float64) rune {
	switch {
	case mag <= 1.0:
		return '∗'
	case mag <= 2.5:
		return '·'
	case mag <= 3.5:
		return '˙'
	default:
		return ' '
	}
}
