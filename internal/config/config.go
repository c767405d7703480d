package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/philipparndt/gomeasure/pkg/measure"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. GOMEASURE_SNAP_THRESHOLD
const EnvPrefix = "GOMEASURE"

// Config holds the resolved settings of a gomeasure run
type Config struct {
	Log     LogConfig     `json:"log" mapstructure:"log"`
	Snap    SnapConfig    `json:"snap" mapstructure:"snap"`
	Measure MeasureConfig `json:"measure" mapstructure:"measure"`
	Label   LabelConfig   `json:"label" mapstructure:"label"`
	Camera  CameraConfig  `json:"camera" mapstructure:"camera"`
	Watch   WatchConfig   `json:"watch" mapstructure:"watch"`
}

type LogConfig struct {
	Level string `json:"level" mapstructure:"level"`
}

type SnapConfig struct {
	Threshold float64 `json:"threshold" mapstructure:"threshold"`
}

// MeasureConfig selects the measure mode. MaxPoints only bounds polylines.
type MeasureConfig struct {
	Mode      string `json:"mode" mapstructure:"mode"`
	MaxPoints int    `json:"maxPoints" mapstructure:"maxPoints"`
	Unit      string `json:"unit" mapstructure:"unit"`
}

type LabelConfig struct {
	MinPixels float64 `json:"minPixels" mapstructure:"minPixels"`
}

// CameraConfig describes the viewport; FOV is in degrees
type CameraConfig struct {
	FOV    float64 `json:"fov" mapstructure:"fov"`
	Width  float64 `json:"width" mapstructure:"width"`
	Height float64 `json:"height" mapstructure:"height"`
}

type WatchConfig struct {
	Debounce time.Duration `json:"debounce" mapstructure:"debounce"`
}

// FOVRadians returns the field of view in radians
func (c CameraConfig) FOVRadians() float64 {
	return c.FOV * math.Pi / 180
}

// SetDefaults registers every key with its default on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("snap.threshold", 0.1)
	v.SetDefault("measure.mode", "two-point")
	v.SetDefault("measure.maxPoints", 0)
	v.SetDefault("measure.unit", "m")
	v.SetDefault("label.minPixels", 40.0)
	v.SetDefault("camera.fov", 45.0)
	v.SetDefault("camera.width", 1280.0)
	v.SetDefault("camera.height", 720.0)
	v.SetDefault("watch.debounce", "300ms")
}

// New returns a viper instance with defaults and environment overrides.
// Flags can be bound to it before Load.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file and decodes the settings. An explicit path must
// exist; without one, gomeasure.{yaml,json,toml} is looked up in the working
// directory and the user config directory and may be absent.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("gomeasure")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/gomeasure")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the measurement pipeline cannot work with
func (c *Config) Validate() error {
	if c.Snap.Threshold < 0 {
		return fmt.Errorf("snap.threshold must not be negative, got %v", c.Snap.Threshold)
	}
	if _, err := measure.ParseMode(c.Measure.Mode); err != nil {
		return fmt.Errorf("measure.mode: %w", err)
	}
	if c.Measure.MaxPoints < 0 {
		return fmt.Errorf("measure.maxPoints must not be negative, got %v", c.Measure.MaxPoints)
	}
	if c.Label.MinPixels < 0 {
		return fmt.Errorf("label.minPixels must not be negative, got %v", c.Label.MinPixels)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera.fov must be between 0 and 180 degrees, got %v", c.Camera.FOV)
	}
	if c.Camera.Width <= 0 || c.Camera.Height <= 0 {
		return fmt.Errorf("camera viewport must be positive, got %vx%v", c.Camera.Width, c.Camera.Height)
	}
	return nil
}
