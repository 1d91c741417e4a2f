package rush

// Fixed simulation tuning. Physics constants (gravity, jump velocity) and
// world geometry live in the YAML config instead; these values define the
// match itself and are not meant to be edited per install.
const (
	laneCount = 3

	// World scroll ramp: speed multiplies by a fixed factor on a fixed
	// real-time cadence, with no upper bound.
	initialSpeed     = 400.0 // world units/sec
	speedGrowth      = 1.3
	speedStepSeconds = 5.0

	// Spawn pacing. The gap range is divided by the initial speed once at
	// match start to fix the cadence in seconds, so rising speed shrinks
	// the gaps on screen instead of spawning more often.
	minSpawnGap = 300.0 // world units
	maxSpawnGap = 800.0

	startingLives = 3
	invulnSeconds = 0.7

	// Scales the bot reaction threshold: threshold = jumpVelocity/speed * lead.
	botLeadDistance = 200.0

	// Error rate for bots invented on the spot when the config roster
	// runs short.
	fallbackErrorRate = 0.05
)
