package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted when no config path is given.
const EnvConfigPath = "MINIVOXEL_CONFIG"

// Config is the root of the YAML configuration file.
type Config struct {
	Seed    int64         `yaml:"seed"`
	World   WorldConfig   `yaml:"world"`
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	Window  WindowConfig  `yaml:"window"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type WorldConfig struct {
	RenderDistance int `yaml:"render_distance"`
	// EvictDistance drops chunks beyond this many chunks; 0 keeps them all.
	EvictDistance int `yaml:"evict_distance"`
	// FlatHeight switches to a flat world of this height when positive.
	FlatHeight  int     `yaml:"flat_height"`
	DesertBelow float64 `yaml:"desert_below"`
	ForestAbove float64 `yaml:"forest_above"`
}

type PhysicsConfig struct {
	SpeedFloor  float32 `yaml:"speed_floor"`
	SpeedAir    float32 `yaml:"speed_air"`
	DragFloor   float32 `yaml:"drag_floor"`
	DragAir     float32 `yaml:"drag_air"`
	Gravity     float32 `yaml:"gravity"`
	JumpSpeed   float32 `yaml:"jump_speed"`
	SprintScale float32 `yaml:"sprint_scale"`
	SneakScale  float32 `yaml:"sneak_scale"`
	EyeHeight   float32 `yaml:"eye_height"`
	Pad         float32 `yaml:"pad"`
}

type PlayerConfig struct {
	Reach       float32 `yaml:"reach"`
	DigSeconds  float64 `yaml:"dig_seconds"`
	Sensitivity float32 `yaml:"sensitivity"`
}

type WindowConfig struct {
	Width    int  `yaml:"width"`
	Height   int  `yaml:"height"`
	FPSLimit int  `yaml:"fps_limit"`
	VSync    bool `yaml:"vsync"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type MetricsConfig struct {
	// Addr serves /metrics when non-empty, e.g. ":2112".
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Seed: 0,
		World: WorldConfig{
			RenderDistance: DefaultRenderDistance,
			DesertBelow:    0.45,
			ForestAbove:    0.55,
		},
		Physics: PhysicsConfig{
			SpeedFloor:  30,
			SpeedAir:    20,
			DragFloor:   0.005,
			DragAir:     0.015,
			Gravity:     25,
			JumpSpeed:   9,
			SprintScale: 1.3,
			SneakScale:  0.5,
			EyeHeight:   1.5,
			Pad:         0.1,
		},
		Player: PlayerConfig{
			Reach:       5,
			DigSeconds:  1,
			Sensitivity: 0.2,
		},
		Window: WindowConfig{
			Width:    1280,
			Height:   720,
			FPSLimit: 144,
			VSync:    true,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML file over the defaults. An empty path falls back to
// $MINIVOXEL_CONFIG and then to Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
		if path == "" {
			return cfg, nil
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports values the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.World.RenderDistance < MinRenderDistance || c.World.RenderDistance > MaxRenderDistance {
		errs = append(errs, fmt.Errorf("world.render_distance %d outside [%d, %d]",
			c.World.RenderDistance, MinRenderDistance, MaxRenderDistance))
	}
	if c.World.EvictDistance < 0 {
		errs = append(errs, errors.New("world.evict_distance must not be negative"))
	}
	if c.World.EvictDistance > 0 && c.World.EvictDistance <= c.World.RenderDistance+hideMargin {
		errs = append(errs, fmt.Errorf("world.evict_distance %d must exceed render_distance+%d",
			c.World.EvictDistance, hideMargin))
	}
	if c.World.FlatHeight < 0 || c.World.FlatHeight > 255 {
		errs = append(errs, fmt.Errorf("world.flat_height %d outside [0, 255]", c.World.FlatHeight))
	}
	if c.World.DesertBelow > c.World.ForestAbove {
		errs = append(errs, fmt.Errorf("world.desert_below %.2f exceeds forest_above %.2f",
			c.World.DesertBelow, c.World.ForestAbove))
	}
	if c.Physics.Gravity < 0 {
		errs = append(errs, errors.New("physics.gravity must not be negative"))
	}
	if c.Physics.DragFloor <= 0 || c.Physics.DragFloor > 1 || c.Physics.DragAir <= 0 || c.Physics.DragAir > 1 {
		errs = append(errs, errors.New("physics drag factors must be in (0, 1]"))
	}
	if c.Player.Reach <= 0 {
		errs = append(errs, errors.New("player.reach must be positive"))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d is not positive", c.Window.Width, c.Window.Height))
	}
	return errors.Join(errs...)
}

// Apply pushes the runtime-adjustable settings into the global render settings.
func (c Config) Apply() {
	SetRenderDistance(c.World.RenderDistance)
	SetEvictDistance(c.World.EvictDistance)
}
