// Package config provides YAML-based game configuration loading for the
// lane-rush platform.
package config

// RushConfig contains all configuration for the lane-rush game.
type RushConfig struct {
	Physics RushPhysics `yaml:"physics"`
	World   RushWorld   `yaml:"world"`
	Player  RushPlayer  `yaml:"player"`
	Bots    []BotSeat   `yaml:"bots"`
}

// RushPhysics defines vertical motion parameters shared by every lane.
type RushPhysics struct {
	Gravity      float64 `yaml:"gravity"`       // Downward acceleration, units/s^2
	JumpVelocity float64 `yaml:"jump_velocity"` // Upward launch speed, units/s
}

// RushWorld defines the horizontal extent of the simulated track.
type RushWorld struct {
	Width        float64 `yaml:"width"`         // Track length in world units; obstacles spawn at this X
	GroundOffset int     `yaml:"ground_offset"` // Rows between a lane's ground line and the lane below
}

// RushPlayer defines the runner hitbox shared by every lane.
type RushPlayer struct {
	X      float64 `yaml:"x"`      // Fixed horizontal position of every runner
	Width  float64 `yaml:"width"`  // Hitbox width in world units
	Height float64 `yaml:"height"` // Hitbox height in world units
}

// BotSeat names an autonomous runner and how often it misses a jump.
type BotSeat struct {
	Name      string  `yaml:"name"`
	ErrorRate float64 `yaml:"error_rate"` // 0 never misses, 1 never jumps
}
