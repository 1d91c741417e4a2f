package rush

// ramp tracks the world scroll speed. Bumps land on a fixed real-time
// cadence regardless of how many have already been applied, and speed has
// no upper bound.
type ramp struct {
	speed      float64
	elapsed    float64 // seconds since match start
	nextBumpAt float64
}

func newRamp() ramp {
	return ramp{
		speed:      initialSpeed,
		nextBumpAt: speedStepSeconds,
	}
}

// advance accrues dt and applies every bump it crosses. A single stalled
// frame can cross several thresholds; each multiplication is applied in
// turn so the ramp never loses a step.
func (r *ramp) advance(dt float64) {
	r.elapsed += dt
	for r.elapsed >= r.nextBumpAt {
		r.speed *= speedGrowth
		r.nextBumpAt += speedStepSeconds
	}
}
