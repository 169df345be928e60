// Package bodies defines the celestial bodies the orrery renders.
package bodies

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Kind categorizes bodies for rendering.
type Kind string

const (
	KindSun    Kind = "sun"
	KindPlanet Kind = "planet"
)

// Class distinguishes small rocky planets from giants for glyph selection.
type Class string

const (
	ClassInner Class = "inner" // Mercury, Venus, Earth, Mars
	ClassGiant Class = "giant" // Jupiter, Saturn, Uranus, Neptune
)

// PlanetMeshScale shrinks planet spheres relative to their configured radius.
const PlanetMeshScale = 0.8

var (
	ErrNoBodies       = errors.New("no bodies configured")
	ErrEmptyName      = errors.New("body name is empty")
	ErrDuplicateName  = errors.New("duplicate body name")
	ErrInvalidRadius  = errors.New("radius must be positive")
	ErrInvalidOrbit   = errors.New("orbit radius must not be negative")
	ErrInvalidPeriod  = errors.New("rotation period must be positive")
	ErrInvalidColor   = errors.New("invalid color")
	ErrInvalidKind    = errors.New("invalid body kind")
	ErrMultipleSuns   = errors.New("more than one sun configured")
	ErrSunNotAtOrigin = errors.New("sun must have orbit radius 0")
)

// Config holds the static constants of one body.
type Config struct {
	Name           string  `mapstructure:"name" json:"name"`
	Kind           Kind    `mapstructure:"kind" json:"kind"`
	Class          Class   `mapstructure:"class" json:"class,omitempty"`
	Radius         float64 `mapstructure:"radius" json:"radius"`
	OrbitRadius    float64 `mapstructure:"orbitRadius" json:"orbit_radius"`
	RotationPeriod float64 `mapstructure:"rotationPeriod" json:"rotation_period"` // Earth days
	Color          string  `mapstructure:"color" json:"color"`                    // #RRGGBB
}

// IsSun reports whether the body is the central star.
func (c Config) IsSun() bool {
	return c.Kind == KindSun
}

// MeshRadius returns the radius of the rendered sphere.
func (c Config) MeshRadius() float64 {
	if c.IsSun() {
		return c.Radius
	}
	return c.Radius * PlanetMeshScale
}

// ParsedColor returns the body color.
func (c Config) ParsedColor() (colorful.Color, error) {
	col, err := colorful.Hex(c.Color)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w %q for %s", ErrInvalidColor, c.Color, c.Name)
	}
	return col, nil
}

// DefaultCatalog returns the Sun followed by the eight planets.
// Radii are relative sizes scaled by 10; orbit radii are in scene units.
func DefaultCatalog() []Config {
	return []Config{
		{Name: "Sun", Kind: KindSun, Radius: 30, OrbitRadius: 0, RotationPeriod: 25.38, Color: "#FFFF00"},
		{Name: "Mercury", Kind: KindPlanet, Class: ClassInner, Radius: 0.353, OrbitRadius: 80, RotationPeriod: 58.6, Color: "#FFD700"},
		{Name: "Venus", Kind: KindPlanet, Class: ClassInner, Radius: 0.868, OrbitRadius: 120, RotationPeriod: 243, Color: "#FFA500"},
		{Name: "Earth", Kind: KindPlanet, Class: ClassInner, Radius: 0.916, OrbitRadius: 160, RotationPeriod: 1, Color: "#00BFFF"},
		{Name: "Mars", Kind: KindPlanet, Class: ClassInner, Radius: 0.488, OrbitRadius: 200, RotationPeriod: 1.03, Color: "#FF4500"},
		{Name: "Jupiter", Kind: KindPlanet, Class: ClassGiant, Radius: 10.004, OrbitRadius: 280, RotationPeriod: 0.41, Color: "#FFA07A"},
		{Name: "Saturn", Kind: KindPlanet, Class: ClassGiant, Radius: 8.145, OrbitRadius: 360, RotationPeriod: 0.44, Color: "#FFE4B5"},
		{Name: "Uranus", Kind: KindPlanet, Class: ClassGiant, Radius: 3.560, OrbitRadius: 440, RotationPeriod: 0.72, Color: "#00CED1"},
		{Name: "Neptune", Kind: KindPlanet, Class: ClassGiant, Radius: 3.460, OrbitRadius: 520, RotationPeriod: 0.67, Color: "#1E90FF"},
	}
}

// Normalize fills in defaults for optional fields: a missing kind means
// planet, and a missing class is derived from the radius.
func Normalize(cfgs []Config) []Config {
	out := make([]Config, len(cfgs))
	for i, c := range cfgs {
		c.Kind = Kind(strings.ToLower(string(c.Kind)))
		c.Class = Class(strings.ToLower(string(c.Class)))
		if c.Kind == "" {
			c.Kind = KindPlanet
		}
		if c.Kind == KindPlanet && c.Class == "" {
			c.Class = ClassInner
			if c.Radius >= 2 {
				c.Class = ClassGiant
			}
		}
		out[i] = c
	}
	return out
}

// Validate checks a body list. Names must be unique (case-insensitive).
func Validate(cfgs []Config) error {
	if len(cfgs) == 0 {
		return ErrNoBodies
	}

	seen := make(map[string]bool, len(cfgs))
	suns := 0
	for i, c := range cfgs {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return fmt.Errorf("body %d: %w", i, ErrEmptyName)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
		seen[key] = true

		switch c.Kind {
		case KindSun:
			suns++
			if c.OrbitRadius != 0 {
				return fmt.Errorf("%s: %w", name, ErrSunNotAtOrigin)
			}
		case KindPlanet:
		default:
			return fmt.Errorf("%s: %w %q", name, ErrInvalidKind, c.Kind)
		}

		if c.Radius <= 0 {
			return fmt.Errorf("%s: %w", name, ErrInvalidRadius)
		}
		if c.OrbitRadius < 0 {
			return fmt.Errorf("%s: %w", name, ErrInvalidOrbit)
		}
		if c.RotationPeriod <= 0 {
			return fmt.Errorf("%s: %w", name, ErrInvalidPeriod)
		}
		if _, err := c.ParsedColor(); err != nil {
			return err
		}
	}

	if suns > 1 {
		return ErrMultipleSuns
	}
	return nil
}
