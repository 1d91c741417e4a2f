package rush

// Agent is one lane-bound runner. Horizontal position is fixed for the
// whole match; only the vertical state changes.
type Agent struct {
	Name      string
	Lane      int // 0 at the top
	IsBot     bool
	ErrorRate float64 // Probability a bot fails to react; 0 for humans

	X      float64 // Fixed horizontal position of the hitbox left edge
	Width  float64
	Height float64

	Y  float64 // Vertical offset: 0 on the ground, negative airborne
	VY float64 // Vertical velocity; jumps launch negative, gravity pulls positive

	Lives        int
	Out          bool // One-way, set when Lives reaches 0
	Invulnerable bool
	InvulnTimer  float64

	Time float64 // Seconds survived; frozen once Out

	DoubleJump bool // A second aerial jump is available
}

// jump launches the agent upward. Grounded jumps always re-arm the double
// jump; a second aerial jump consumes it. Further requests while airborne
// are silently ignored, as is any jump for an eliminated runner.
func (a *Agent) jump(jumpVelocity float64) {
	if a.Out {
		return
	}
	if a.Y == 0 {
		a.VY = -jumpVelocity
		a.DoubleJump = true
		return
	}
	if a.DoubleJump {
		a.VY = -jumpVelocity
		a.DoubleJump = false
	}
}

// integrate advances the agent's vertical state and timers by dt seconds.
// The ground clamp only fires when overshooting downward: y trends positive
// under gravity and jumps apply a negative impulse.
func (a *Agent) integrate(dt, gravity float64) {
	if a.Out {
		return
	}

	a.VY += gravity * dt
	a.Y += a.VY * dt
	if a.Y > 0 {
		a.Y = 0
		a.VY = 0
		a.DoubleJump = true
	}

	if a.Invulnerable {
		a.InvulnTimer -= dt
		if a.InvulnTimer <= 0 {
			a.Invulnerable = false
			a.InvulnTimer = 0
		}
	}

	a.Time += dt
}

// hit applies one collision: lose a life, open the grace window, and
// eliminate the runner when no lives remain.
func (a *Agent) hit() {
	a.Lives--
	a.Invulnerable = true
	a.InvulnTimer = invulnSeconds
	if a.Lives <= 0 {
		a.Out = true
	}
}
