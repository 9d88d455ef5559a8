package viewer

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/toml"
	"github.com/philipparndt/neurosight/pkg/anatomy"
	"github.com/philipparndt/neurosight/pkg/geometry"
	"github.com/philipparndt/neurosight/pkg/isolate"
)

// Config is the optional TOML configuration shared by the viewers and the exporter
type Config struct {
	Camera  CameraConfig  `toml:"camera"`
	Bounds  BoundsConfig  `toml:"bounds"`
	Buttons ButtonMapping `toml:"buttons"`
	Slice   SliceConfig   `toml:"slice"`
}

// CameraConfig is the initial camera placement, which also becomes the home pose
type CameraConfig struct {
	Position [3]float64 `toml:"position"`
	Target   [3]float64 `toml:"target"`
	FOV      float64    `toml:"fov"`
}

// BoundsConfig limits camera interaction
type BoundsConfig struct {
	MinDistance  float64 `toml:"min_distance"`
	MaxDistance  float64 `toml:"max_distance"`
	EnableRotate bool    `toml:"enable_rotate"`
	EnablePan    bool    `toml:"enable_pan"`
	EnableZoom   bool    `toml:"enable_zoom"`
}

// SliceConfig is the initial cut
type SliceConfig struct {
	Plane     anatomy.Plane `toml:"plane"`
	Offset    float64       `toml:"offset"`
	Heatmap   bool          `toml:"heatmap"`
	Intensity float64       `toml:"intensity"`
}

// DefaultConfig returns the built-in view settings
func DefaultConfig() Config {
	b := DefaultBounds()
	return Config{
		Camera: CameraConfig{
			Position: [3]float64{DefaultHomePosition.X, DefaultHomePosition.Y, DefaultHomePosition.Z},
			Target:   [3]float64{DefaultHomeTarget.X, DefaultHomeTarget.Y, DefaultHomeTarget.Z},
			FOV:      DefaultFOV,
		},
		Bounds: BoundsConfig{
			MinDistance:  b.MinDistance,
			MaxDistance:  b.MaxDistance,
			EnableRotate: b.EnableRotate,
			EnablePan:    b.EnablePan,
			EnableZoom:   b.EnableZoom,
		},
		Buttons: b.Buttons,
		Slice: SliceConfig{
			Plane:     anatomy.Sagittal,
			Offset:    0,
			Intensity: isolate.DefaultHeatmapIntensity,
		},
	}
}

// LoadConfig reads path on top of DefaultConfig. Keys the decoder does not
// know are logged and ignored.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	for _, key := range meta.Undecoded() {
		slog.Warn("ignoring unknown config key", "file", path, "key", key.String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the camera and bounds settings
func (c Config) Validate() error {
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("field of view must be between 0 and 180 degrees, got %.1f", c.Camera.FOV)
	}
	return c.bounds().Validate()
}

// Tint returns the heatmap setting for the isolation cache
func (s SliceConfig) Tint() isolate.Tint {
	if !s.Heatmap {
		return isolate.NoTint
	}
	return isolate.Heat(s.Intensity)
}

func (c Config) bounds() Bounds {
	return Bounds{
		MinDistance:  c.Bounds.MinDistance,
		MaxDistance:  c.Bounds.MaxDistance,
		EnableRotate: c.Bounds.EnableRotate,
		EnablePan:    c.Bounds.EnablePan,
		EnableZoom:   c.Bounds.EnableZoom,
		Buttons:      c.Buttons,
	}
}

func (c CameraConfig) position() geometry.Vector3 {
	return geometry.NewVector3(c.Position[0], c.Position[1], c.Position[2])
}

func (c CameraConfig) target() geometry.Vector3 {
	return geometry.NewVector3(c.Target[0], c.Target[1], c.Target[2])
}
