package rush

import (
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRampInitialState(t *testing.T) {
	r := newRamp()
	if r.speed != initialSpeed {
		t.Errorf("initial speed = %f, expected %f", r.speed, initialSpeed)
	}
	if r.nextBumpAt != speedStepSeconds {
		t.Errorf("first bump at %f, expected %f", r.nextBumpAt, speedStepSeconds)
	}
}

func TestRampHoldsBeforeThreshold(t *testing.T) {
	r := newRamp()
	r.advance(4.9)
	if r.speed != initialSpeed {
		t.Errorf("speed bumped early: %f", r.speed)
	}
}

func TestRampBumpsOnFixedCadence(t *testing.T) {
	r := newRamp()

	r.advance(5.0)
	if !approxEqual(r.speed, initialSpeed*speedGrowth) {
		t.Errorf("speed after first bump = %f, expected %f", r.speed, initialSpeed*speedGrowth)
	}
	if r.nextBumpAt != 10 {
		t.Errorf("next bump at %f, expected 10", r.nextBumpAt)
	}

	r.advance(5.0)
	if !approxEqual(r.speed, initialSpeed*speedGrowth*speedGrowth) {
		t.Errorf("speed after second bump = %f", r.speed)
	}
	if r.nextBumpAt != 15 {
		t.Errorf("next bump at %f, expected 15", r.nextBumpAt)
	}
}

func TestRampCrossesTwoThresholdsInOneTick(t *testing.T) {
	r := newRamp()

	// A stalled frame that lands directly on 12s must apply the 5s and
	// 10s bumps, no more, and leave the cadence intact.
	r.advance(12)

	want := initialSpeed * speedGrowth * speedGrowth
	if !approxEqual(r.speed, want) {
		t.Errorf("speed = %f after a 12s stall, expected exactly two bumps (%f)", r.speed, want)
	}
	if r.nextBumpAt != 15 {
		t.Errorf("next bump at %f, expected 15", r.nextBumpAt)
	}
}

func TestRampHasNoCeiling(t *testing.T) {
	r := newRamp()
	for i := 0; i < 100; i++ {
		before := r.speed
		r.advance(speedStepSeconds)
		if r.speed <= before {
			t.Fatalf("speed stopped growing at bump %d: %f", i, r.speed)
		}
	}
}
