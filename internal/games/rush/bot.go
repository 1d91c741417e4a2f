package rush

// nextObstacle returns the first obstacle in spawn order whose trailing
// edge has not yet passed x. Only this one is ever considered per tick;
// bots never plan for a second obstacle or combo double jumps.
func nextObstacle(obstacles []Obstacle, x float64) (Obstacle, bool) {
	for _, ob := range obstacles {
		if ob.Right() > x {
			return ob, true
		}
	}
	return Obstacle{}, false
}

// shouldJump is the reactive bot policy: jump when the nearest obstacle
// closes within a speed-scaled threshold, unless this is one of the bot's
// unlucky moments. It is a pure function of its inputs; draw supplies a
// uniform sample in [0, 1) and is only consulted when the bot is grounded
// with an obstacle in range, so an ErrorRate of 1 means the bot never
// jumps at all.
func shouldJump(a Agent, ob Obstacle, speed, jumpVelocity float64, draw func() float64) bool {
	if a.Y != 0 {
		return false
	}
	threshold := (jumpVelocity / speed) * botLeadDistance
	if ob.X-a.X >= threshold {
		return false
	}
	return draw() > a.ErrorRate
}
