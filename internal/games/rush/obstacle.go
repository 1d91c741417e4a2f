package rush

import "math/rand"

// Kind identifies an obstacle archetype.
type Kind int

const (
	KindSnake Kind = iota
	KindRock
	KindHole
	KindSpike

	kindCount = 4
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindSnake:
		return "snake"
	case KindRock:
		return "rock"
	case KindHole:
		return "hole"
	case KindSpike:
		return "spike"
	default:
		return "unknown"
	}
}

// Obstacle is a hazard shared by every lane. Geometry and hue are drawn
// once at creation; only X changes afterwards.
type Obstacle struct {
	Kind   Kind
	X      float64 // Left edge in world units
	Width  float64
	Height float64
	Hue    float64 // Degrees on the color wheel; cosmetic only
}

// Right returns the trailing edge.
func (o Obstacle) Right() float64 {
	return o.X + o.Width
}

// kindRange bounds the per-kind geometry and hue draws.
type kindRange struct {
	minW, maxW     float64
	minH, maxH     float64
	minHue, maxHue float64
}

var kindRanges = [kindCount]kindRange{
	KindSnake: {minW: 50, maxW: 80, minH: 20, maxH: 30, minHue: 90, maxHue: 150},
	KindRock:  {minW: 40, maxW: 70, minH: 30, maxH: 50, minHue: 20, maxHue: 40},
	KindHole:  {minW: 70, maxW: 120, minH: 1, maxH: 1}, // flush with the ground, drawn black
	KindSpike: {minW: 50, maxW: 80, minH: 40, maxH: 60, minHue: 330, maxHue: 360},
}

// newObstacle creates an obstacle of the given kind with its left edge at x.
// Width, height, and hue are drawn independently from the kind's ranges.
func newObstacle(rng *rand.Rand, k Kind, x float64) Obstacle {
	r := kindRanges[k]
	return Obstacle{
		Kind:   k,
		X:      x,
		Width:  r.minW + rng.Float64()*(r.maxW-r.minW),
		Height: r.minH + rng.Float64()*(r.maxH-r.minH),
		Hue:    r.minHue + rng.Float64()*(r.maxHue-r.minHue),
	}
}

// spawner drives time-based obstacle creation. The interval bounds are
// derived once at match start and never change.
type spawner struct {
	timer    float64 // seconds since the last spawn
	next     float64 // seconds until the next spawn
	min, max float64
}

func newSpawner(rng *rand.Rand) spawner {
	s := spawner{
		min: minSpawnGap / initialSpeed,
		max: maxSpawnGap / initialSpeed,
	}
	s.next = s.interval(rng)
	return s
}

// interval draws a fresh spawn delay.
func (s *spawner) interval(rng *rand.Rand) float64 {
	return s.min + rng.Float64()*(s.max-s.min)
}

// advance accrues dt and returns any obstacles now due, each anchored at
// worldRight. A stalled frame can owe several spawns at once; the loop
// keeps them all rather than dropping overdue ones.
func (s *spawner) advance(dt float64, rng *rand.Rand, worldRight float64) []Obstacle {
	s.timer += dt

	var due []Obstacle
	for s.timer >= s.next {
		s.timer -= s.next
		kind := Kind(rng.Intn(kindCount))
		due = append(due, newObstacle(rng, kind, worldRight))
		s.next = s.interval(rng)
	}
	return due
}
