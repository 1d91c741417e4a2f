package rush

import (
	"math"
	"testing"
)

const (
	testGravity = 2000.0
	testJumpVel = 700.0
)

func TestAgentGroundClamp(t *testing.T) {
	a := Agent{Lives: startingLives, DoubleJump: true}

	// With no jump input, gravity must never push the agent below the
	// ground line (positive y).
	for i := 0; i < 120; i++ {
		a.integrate(1.0/60.0, testGravity)
		if a.Y > 0 {
			t.Fatalf("y = %f after tick %d, should never exceed 0", a.Y, i)
		}
		if a.Y == 0 && !a.DoubleJump {
			t.Fatalf("double jump should be armed whenever grounded (tick %d)", i)
		}
	}

	if a.VY != 0 {
		t.Errorf("grounded agent should have zero vertical velocity, got %f", a.VY)
	}
}

func TestAgentJumpArc(t *testing.T) {
	a := Agent{Lives: startingLives, DoubleJump: true}

	a.jump(testJumpVel)
	if a.VY != -testJumpVel {
		t.Fatalf("jump should set vy to %f, got %f", -testJumpVel, a.VY)
	}

	dt := 1.0 / 60.0
	airborneTicks := 0
	for i := 0; i < 300; i++ {
		a.integrate(dt, testGravity)
		if a.Y < 0 {
			airborneTicks++
		}
		if a.Y > 0 {
			t.Fatalf("y = %f, clamp should never leave the agent below ground", a.Y)
		}
	}

	// A full jump lasts 2*vy/g seconds = 0.7s = 42 ticks, give or take
	// integration error.
	if airborneTicks < 35 || airborneTicks > 50 {
		t.Errorf("airborne for %d ticks, expected roughly 42", airborneTicks)
	}
	if a.Y != 0 || a.VY != 0 {
		t.Errorf("agent should have landed cleanly, y=%f vy=%f", a.Y, a.VY)
	}
	if !a.DoubleJump {
		t.Error("landing should re-arm the double jump")
	}
}

func TestAgentDoubleJumpLimit(t *testing.T) {
	a := Agent{Lives: startingLives, DoubleJump: true}

	// First jump from the ground.
	a.jump(testJumpVel)
	a.integrate(1.0/60.0, testGravity)
	if a.Y >= 0 {
		t.Fatal("agent should be airborne after first jump")
	}
	if !a.DoubleJump {
		t.Fatal("grounded jump should grant a double jump")
	}

	// Second jump mid-air consumes the double jump.
	a.jump(testJumpVel)
	if a.VY != -testJumpVel {
		t.Errorf("double jump should reset vy to %f, got %f", -testJumpVel, a.VY)
	}
	if a.DoubleJump {
		t.Error("double jump should be consumed")
	}

	// Third jump mid-air is silently ignored.
	a.integrate(1.0/60.0, testGravity)
	before := a.VY
	a.jump(testJumpVel)
	if a.VY != before {
		t.Errorf("third aerial jump should be ignored, vy changed %f -> %f", before, a.VY)
	}
}

func TestAgentJumpWhenOut(t *testing.T) {
	a := Agent{Lives: 0, Out: true, DoubleJump: true}

	a.jump(testJumpVel)
	if a.VY != 0 {
		t.Errorf("jump on an eliminated runner should be a no-op, vy = %f", a.VY)
	}
}

func TestAgentInvulnerabilityTimer(t *testing.T) {
	a := Agent{Lives: 2, Invulnerable: true, InvulnTimer: invulnSeconds}

	a.integrate(0.3, testGravity)
	if !a.Invulnerable {
		t.Fatal("grace window should still be open after 0.3s")
	}

	a.integrate(0.41, testGravity)
	if a.Invulnerable {
		t.Error("grace window should have closed after 0.71s")
	}
	if a.InvulnTimer != 0 {
		t.Errorf("expired timer should rest at 0, got %f", a.InvulnTimer)
	}
}

func TestAgentHit(t *testing.T) {
	a := Agent{Lives: startingLives}

	a.hit()
	if a.Lives != 2 {
		t.Errorf("lives = %d after first hit, expected 2", a.Lives)
	}
	if !a.Invulnerable || a.InvulnTimer != invulnSeconds {
		t.Errorf("hit should open the grace window, invuln=%v timer=%f", a.Invulnerable, a.InvulnTimer)
	}
	if a.Out {
		t.Error("agent should not be out with lives remaining")
	}

	a.hit()
	a.hit()
	if a.Lives != 0 {
		t.Errorf("lives = %d after three hits, expected 0", a.Lives)
	}
	if !a.Out {
		t.Error("agent should be out once lives reach 0")
	}
}

func TestAgentTimeFrozenWhenOut(t *testing.T) {
	a := Agent{Lives: 1}

	a.integrate(0.5, testGravity)
	if math.Abs(a.Time-0.5) > 1e-9 {
		t.Fatalf("time = %f, expected 0.5", a.Time)
	}

	a.hit() // lives 1 -> 0, out
	for i := 0; i < 60; i++ {
		a.integrate(1.0/60.0, testGravity)
	}
	if math.Abs(a.Time-0.5) > 1e-9 {
		t.Errorf("time advanced after elimination: %f", a.Time)
	}
}
