package config

import (
	_ "embed"
)

//go:embed defaults/rush.yaml
var defaultRushYAML []byte

// DefaultRushConfig returns the default lane-rush configuration.
func DefaultRushConfig() RushConfig {
	return RushConfig{
		Physics: RushPhysics{
			Gravity:      2000,
			JumpVelocity: 700,
		},
		World: RushWorld{
			Width:        1600,
			GroundOffset: 2,
		},
		Player: RushPlayer{
			X:      120,
			Width:  60,
			Height: 60,
		},
		Bots: []BotSeat{
			{Name: "Ion", ErrorRate: 0.02},
			{Name: "Vex", ErrorRate: 0.035},
			{Name: "Mo", ErrorRate: 0.05},
		},
	}
}

// DefaultYAML returns the embedded default YAML, suitable for writing a
// starter config file.
func DefaultYAML() []byte {
	return defaultRushYAML
}
