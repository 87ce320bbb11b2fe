// Package config handles controller configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all settings for a space session.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Player    PlayerConfig    `yaml:"player"`
	Input     InputConfig     `yaml:"input"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// Point is a world-space position in YAML form.
type Point struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// Box is an axis-aligned static collider.
type Box struct {
	Min Point `yaml:"min"`
	Max Point `yaml:"max"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"` // vertical, degrees
}

// PlayerConfig holds the player body and movement settings.
type PlayerConfig struct {
	SpawnPosition  Point   `yaml:"spawn_position"`
	SpawnYaw       float32 `yaml:"spawn_yaw"` // radians
	CapsuleRadius  float32 `yaml:"capsule_radius"`
	CapsuleHeight  float32 `yaml:"capsule_height"`
	Mass           float32 `yaml:"mass"`
	VelocityFactor float32 `yaml:"velocity_factor"`
	EyeHeight      float32 `yaml:"eye_height"` // camera offset above the body center
	ShowHitbox     bool    `yaml:"show_hitbox"`
}

// InputConfig holds device settings.
type InputConfig struct {
	Scheme           string  `yaml:"scheme"`            // auto, desktop or mobile
	MouseSensitivity float32 `yaml:"mouse_sensitivity"` // radians per pixel
	TouchSensitivity float32 `yaml:"touch_sensitivity"` // radians per screen width
	JoystickRadius   float32 `yaml:"joystick_radius"`   // fraction of screen width
}

// PhysicsConfig holds settings for the built-in physics engine.
type PhysicsConfig struct {
	Gravity      float32 `yaml:"gravity"`
	StepRate     int     `yaml:"step_rate"` // steps per second
	GroundHeight float32 `yaml:"ground_height"`
	Boxes        []Box   `yaml:"boxes"`
}

// TelemetryConfig holds frame metric export settings.
type TelemetryConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
	Output   string        `yaml:"output"` // file path, empty for stdout
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
			FOV:    75,
		},
		Player: PlayerConfig{
			SpawnPosition:  Point{X: 0, Y: 1, Z: 0},
			SpawnYaw:       0,
			CapsuleRadius:  0.5,
			CapsuleHeight:  1,
			Mass:           1,
			VelocityFactor: 250,
			EyeHeight:      0.5,
		},
		Input: InputConfig{
			Scheme:           "auto",
			MouseSensitivity: 0.002,
			TouchSensitivity: 3.14,
			JoystickRadius:   0.08,
		},
		Physics: PhysicsConfig{
			Gravity:  -9.8,
			StepRate: 60,
		},
		Telemetry: TelemetryConfig{
			Interval: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

var errInvalid = errors.New("invalid config")

// Validate checks values the session cannot start without.
func (c *Config) Validate() error {
	switch c.Input.Scheme {
	case "", "auto", "desktop", "mobile":
	default:
		return fmt.Errorf("%w: input.scheme %q", errInvalid, c.Input.Scheme)
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: graphics size %dx%d", errInvalid, c.Graphics.Width, c.Graphics.Height)
	}
	if c.Player.CapsuleRadius <= 0 || c.Player.CapsuleHeight < 0 {
		return fmt.Errorf("%w: capsule radius %v height %v", errInvalid, c.Player.CapsuleRadius, c.Player.CapsuleHeight)
	}
	if c.Player.Mass <= 0 {
		return fmt.Errorf("%w: player.mass %v", errInvalid, c.Player.Mass)
	}
	if c.Player.VelocityFactor < 0 {
		return fmt.Errorf("%w: player.velocity_factor %v", errInvalid, c.Player.VelocityFactor)
	}
	if c.Physics.StepRate <= 0 {
		return fmt.Errorf("%w: physics.step_rate %d", errInvalid, c.Physics.StepRate)
	}
	for i, b := range c.Physics.Boxes {
		if b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z {
			return fmt.Errorf("%w: physics.boxes[%d] min exceeds max", errInvalid, i)
		}
	}
	return nil
}
