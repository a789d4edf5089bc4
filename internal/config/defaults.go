package config

import (
	_ "embed"
)

//go:embed defaults/catch.yaml
var defaultCatchYAML []byte

// DefaultCatchConfig returns the built-in configuration. It mirrors
// defaults/catch.yaml and backs it up when the embedded file cannot be parsed.
func DefaultCatchConfig() CatchConfig {
	return CatchConfig{
		Physics: Physics{
			FixedStep:    0.02,
			MaxFrameTime: 0.1,
			Gravity:      -9.8,
			Restitution:  0.4,
		},
		World: World{
			GroundY:       -8.0,
			PlayPlaneZ:    5.0,
			MaxRadius:     40.0,
			RestingSpeed:  4.0,
			RestingHeight: 0.8,
		},
		Agent: Agent{
			Start:  [3]float64{0, -11, 5},
			Radius: 4.0,
			Speed:  10.0,
			Boost:  3.0,
			BoundX: 25.0,
		},
		Spawn: Spawn{
			Height: 30.0,
			Spread: 30.0,
			Speed:  1.0,
			Radius: 1.0,
		},
		Levels: []LevelConfig{
			{Name: "Level 1", Target: 5, Lives: 5, TimeScale: 1.0, Bodies: 1},
			{Name: "Level 2", Target: 10, Lives: 5, TimeScale: 2.0, Bodies: 1},
			{Name: "Level 3", Target: 10, Lives: 3, TimeScale: 2.2, Bodies: 1},
		},
		Endless: LevelConfig{Name: "Endless", Target: 0, Lives: 5, TimeScale: 1.5, Bodies: 2},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultCatchYAML
}
