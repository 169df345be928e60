// Package config loads orrery settings from defaults, an optional config
// file, ORRERY_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/litescript/ls-orrery/internal/bodies"
	"github.com/litescript/ls-orrery/internal/camera"
)

// EnvPrefix is prepended to environment variable names, e.g. ORRERY_FPS.
const EnvPrefix = "ORRERY"

// Limits on the frame rate.
const (
	MinFPS = 1
	MaxFPS = 120
)

var (
	ErrInvalidFPS       = errors.New("fps out of range")
	ErrInvalidTimeScale = errors.New("time scale must be positive")
	ErrInvalidFOV       = errors.New("camera fov must be between 0 and 180 degrees")
	ErrInvalidNear      = errors.New("camera near plane must be positive")
	ErrInvalidFar       = errors.New("camera far plane must be beyond the near plane")
	ErrInvalidDistance  = errors.New("invalid controls distance range")
	ErrInvalidDamping   = errors.New("damping factor must be in (0, 1]")
)

// ViewConfig holds the initial view toggles.
type ViewConfig struct {
	Labels bool `mapstructure:"labels"`
	Stars  bool `mapstructure:"stars"`
	Rings  bool `mapstructure:"rings"`
}

// Config is the fully resolved application configuration.
type Config struct {
	FPS       int     `mapstructure:"fps"`
	TimeScale float64 `mapstructure:"timeScale"`
	LogLevel  string  `mapstructure:"logLevel"`
	LogFile   string  `mapstructure:"logFile"`

	View     ViewConfig
	Camera   camera.Config
	Controls camera.ControlsConfig
	Bodies   []bodies.Config

	// File is the config file that was read, empty if none.
	File string
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"fps":        "fps",
	"time-scale": "timeScale",
	"log-level":  "logLevel",
	"log-file":   "logFile",
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("fps", 30)
	v.SetDefault("timeScale", 1.0)
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")

	v.SetDefault("view.labels", true)
	v.SetDefault("view.stars", true)
	v.SetDefault("view.rings", true)

	cam := camera.DefaultConfig()
	v.SetDefault("camera.fov", cam.FOV)
	v.SetDefault("camera.near", cam.Near)
	v.SetDefault("camera.far", cam.Far)
	v.SetDefault("camera.position", cam.Position[:])

	ctl := camera.DefaultControlsConfig()
	v.SetDefault("controls.enableDamping", ctl.EnableDamping)
	v.SetDefault("controls.dampingFactor", ctl.DampingFactor)
	v.SetDefault("controls.minDistance", ctl.MinDistance)
	v.SetDefault("controls.maxDistance", ctl.MaxDistance)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load resolves the configuration. When path is empty, an "orrery" config
// file is searched for in the working directory and the user config
// directory; not finding one is not an error. fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("orrery")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "ls-orrery"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}

	return FromViper(v)
}

// FromViper builds a validated Config from a prepared viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		FPS:       v.GetInt("fps"),
		TimeScale: v.GetFloat64("timeScale"),
		LogLevel:  v.GetString("logLevel"),
		LogFile:   v.GetString("logFile"),
		View: ViewConfig{
			Labels: v.GetBool("view.labels"),
			Stars:  v.GetBool("view.stars"),
			Rings:  v.GetBool("view.rings"),
		},
		Camera: camera.Config{
			FOV:  v.GetFloat64("camera.fov"),
			Near: v.GetFloat64("camera.near"),
			Far:  v.GetFloat64("camera.far"),
		},
		Controls: camera.ControlsConfig{
			EnableDamping: v.GetBool("controls.enableDamping"),
			DampingFactor: v.GetFloat64("controls.dampingFactor"),
			MinDistance:   v.GetFloat64("controls.minDistance"),
			MaxDistance:   v.GetFloat64("controls.maxDistance"),
		},
		File: v.ConfigFileUsed(),
	}

	if err := v.UnmarshalKey("camera.position", &cfg.Camera.Position); err != nil {
		return nil, fmt.Errorf("camera.position: %w", err)
	}
	if err := v.UnmarshalKey("bodies", &cfg.Bodies); err != nil {
		return nil, fmt.Errorf("bodies: %w", err)
	}
	if len(cfg.Bodies) == 0 {
		cfg.Bodies = bodies.DefaultCatalog()
	}
	cfg.Bodies = bodies.Normalize(cfg.Bodies)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges, the camera and controls, and the body catalog.
func (c *Config) Validate() error {
	if c.FPS < MinFPS || c.FPS > MaxFPS {
		return fmt.Errorf("%w: %d (want %d..%d)", ErrInvalidFPS, c.FPS, MinFPS, MaxFPS)
	}
	if c.TimeScale <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidTimeScale, c.TimeScale)
	}
	if err := validateCamera(c.Camera); err != nil {
		return err
	}
	if err := validateControls(c.Controls); err != nil {
		return err
	}
	if err := bodies.Validate(c.Bodies); err != nil {
		return fmt.Errorf("invalid body catalog: %w", err)
	}
	return nil
}

// validateCamera rejects settings that make the projection degenerate.
func validateCamera(cam camera.Config) error {
	if !(cam.FOV > 0 && cam.FOV < 180) {
		return fmt.Errorf("%w: %g", ErrInvalidFOV, cam.FOV)
	}
	if !(cam.Near > 0) {
		return fmt.Errorf("%w: %g", ErrInvalidNear, cam.Near)
	}
	if !(cam.Far > cam.Near) {
		return fmt.Errorf("%w: near %g, far %g", ErrInvalidFar, cam.Near, cam.Far)
	}
	return nil
}

func validateControls(ctl camera.ControlsConfig) error {
	if !(ctl.MinDistance >= 0) || !(ctl.MaxDistance >= ctl.MinDistance) {
		return fmt.Errorf("%w: min %g, max %g", ErrInvalidDistance, ctl.MinDistance, ctl.MaxDistance)
	}
	if ctl.EnableDamping && !(ctl.DampingFactor > 0 && ctl.DampingFactor <= 1) {
		return fmt.Errorf("%w: %g", ErrInvalidDamping, ctl.DampingFactor)
	}
	return nil
}
