// Package config provides YAML-based configuration for the catch game:
// physics constants, play-volume bounds, the agent, spawning and the level table.
package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// CatchConfig contains all configuration for the catch game.
type CatchConfig struct {
	Physics Physics       `yaml:"physics"`
	World   World         `yaml:"world"`
	Agent   Agent         `yaml:"agent"`
	Spawn   Spawn         `yaml:"spawn"`
	Levels  []LevelConfig `yaml:"levels"`
	Endless LevelConfig   `yaml:"endless"`
}

// Physics defines the simulation clock and forces.
type Physics struct {
	FixedStep    float64 `yaml:"fixed_step"`
	MaxFrameTime float64 `yaml:"max_frame_time"`
	Gravity      float64 `yaml:"gravity"`
	Restitution  float64 `yaml:"restitution"`
}

// World defines the play volume.
type World struct {
	GroundY       float64 `yaml:"ground_y"`
	PlayPlaneZ    float64 `yaml:"play_plane_z"`
	MaxRadius     float64 `yaml:"max_radius"`
	RestingSpeed  float64 `yaml:"resting_speed"`
	RestingHeight float64 `yaml:"resting_height"`
}

// Agent defines the player's basket.
type Agent struct {
	Start      [3]float64 `yaml:"start"`
	Radius     float64    `yaml:"radius"`
	Speed      float64    `yaml:"speed"`
	Boost      float64    `yaml:"boost"`
	BoundX     float64    `yaml:"bound_x"`
	AllowDepth bool       `yaml:"allow_depth"`
}

// Spawn defines where and how new balls appear.
type Spawn struct {
	Height float64 `yaml:"height"`
	Spread float64 `yaml:"spread"`
	Speed  float64 `yaml:"speed"`
	Radius float64 `yaml:"radius"`
}

// LevelConfig is one row of the level table.
type LevelConfig struct {
	Name      string  `yaml:"name"`
	Target    int     `yaml:"target"`     // Balls to catch; 0 means the level never completes
	Lives     int     `yaml:"lives"`      // Lives granted on entry
	TimeScale float64 `yaml:"time_scale"` // Absolute time multiplier while the level runs
	Bodies    int     `yaml:"bodies"`     // Balls kept in the air at once
}

// Validate reports the first setting that would make the simulation
// meaningless. It is meant to run before any game loop starts.
func (c CatchConfig) Validate() error {
	if !positive(c.Physics.FixedStep) {
		return invalid("physics.fixed_step must be positive, got %v", c.Physics.FixedStep)
	}
	if !positive(c.Physics.MaxFrameTime) {
		return invalid("physics.max_frame_time must be positive, got %v", c.Physics.MaxFrameTime)
	}
	if c.Physics.Restitution < 0 || !finite(c.Physics.Restitution) {
		return invalid("physics.restitution must be non-negative, got %v", c.Physics.Restitution)
	}
	if !finite(c.Physics.Gravity) {
		return invalid("physics.gravity must be finite")
	}
	if !positive(c.World.MaxRadius) {
		return invalid("world.max_radius must be positive, got %v", c.World.MaxRadius)
	}
	if c.World.RestingSpeed < 0 {
		return invalid("world.resting_speed must be non-negative, got %v", c.World.RestingSpeed)
	}
	if c.Agent.Radius < 0 || !finite(c.Agent.Radius) {
		return invalid("agent.radius must be non-negative, got %v", c.Agent.Radius)
	}
	if c.Agent.Speed < 0 || c.Agent.Boost < 0 || c.Agent.BoundX < 0 {
		return invalid("agent speed, boost and bound_x must be non-negative")
	}
	if c.Spawn.Radius < 0 || c.Spawn.Spread < 0 || c.Spawn.Speed < 0 {
		return invalid("spawn radius, spread and speed must be non-negative")
	}
	if len(c.Levels) == 0 {
		return invalid("at least one level is required")
	}
	for i, lvl := range c.Levels {
		if err := lvl.validate(); err != nil {
			return fmt.Errorf("levels[%d]: %w", i, err)
		}
	}
	if err := c.Endless.validate(); err != nil {
		return fmt.Errorf("endless: %w", err)
	}
	return nil
}

func (l LevelConfig) validate() error {
	if l.Lives <= 0 {
		return invalid("lives must be positive, got %d", l.Lives)
	}
	if l.Target < 0 {
		return invalid("target must be non-negative, got %d", l.Target)
	}
	if !positive(l.TimeScale) {
		return invalid("time_scale must be positive, got %v", l.TimeScale)
	}
	if l.Bodies < 0 {
		return invalid("bodies must be non-negative, got %d", l.Bodies)
	}
	return nil
}

// TargetBodies returns the number of balls to keep in the air, defaulting to one.
func (l LevelConfig) TargetBodies() int {
	if l.Bodies <= 0 {
		return 1
	}
	return l.Bodies
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func positive(v float64) bool {
	return v > 0 && finite(v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
