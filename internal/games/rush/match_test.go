package rush

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/lanerush/internal/config"
)

// newHumanMatch builds a match with three keyboard seats so no bot policy
// draws interfere with scripted scenarios.
func newHumanMatch(seed int64) *Match {
	seats := []Seat{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	return NewMatch(config.DefaultRushConfig(), seats, seed)
}

// wideObstacle spans the runner column for several seconds of scrolling.
func wideObstacle() Obstacle {
	return Obstacle{Kind: KindRock, X: 100, Width: 1000, Height: 40, Hue: 30}
}

func TestMatchRejectsMalformedDelta(t *testing.T) {
	m := newHumanMatch(1)

	for _, dt := range []float64{-0.016, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := m.Tick(dt); !errors.Is(err, ErrInvalidDelta) {
			t.Errorf("Tick(%v) = %v, expected ErrInvalidDelta", dt, err)
		}
	}

	// Nothing may have mutated.
	if m.Elapsed() != 0 {
		t.Errorf("elapsed = %f after rejected ticks, expected 0", m.Elapsed())
	}
	for _, a := range m.Agents() {
		if a.Time != 0 {
			t.Errorf("agent %s accrued time %f from rejected ticks", a.Name, a.Time)
		}
	}
	if len(m.Obstacles()) != 0 {
		t.Errorf("%d obstacles spawned from rejected ticks", len(m.Obstacles()))
	}

	// A zero delta is a valid no-op frame.
	if err := m.Tick(0); err != nil {
		t.Errorf("Tick(0) = %v, expected nil", err)
	}
	if m.Elapsed() != 0 {
		t.Errorf("zero delta advanced the clock to %f", m.Elapsed())
	}
}

func TestMatchSeatFilling(t *testing.T) {
	cfg := config.DefaultRushConfig()

	m := NewMatch(cfg, []Seat{{Name: "Solo"}}, 1)
	agents := m.Agents()
	if len(agents) != laneCount {
		t.Fatalf("%d lanes, expected %d", len(agents), laneCount)
	}
	if agents[0].Name != "Solo" || agents[0].IsBot {
		t.Errorf("lane 0 = %+v, expected the human seat", agents[0])
	}
	if agents[1].Name != cfg.Bots[0].Name || !agents[1].IsBot {
		t.Errorf("lane 1 = %+v, expected the first config bot", agents[1])
	}
	if agents[2].Name != cfg.Bots[1].Name || !agents[2].IsBot {
		t.Errorf("lane 2 = %+v, expected the second config bot", agents[2])
	}

	// Extra seats are dropped.
	m = NewMatch(cfg, []Seat{{Name: "1"}, {Name: "2"}, {Name: "3"}, {Name: "4"}}, 1)
	if len(m.Agents()) != laneCount {
		t.Errorf("%d lanes with four seats, expected %d", len(m.Agents()), laneCount)
	}

	// An empty roster falls back to numbered stand-ins.
	cfg.Bots = nil
	m = NewMatch(cfg, nil, 1)
	for i, a := range m.Agents() {
		if !a.IsBot || a.Name == "" {
			t.Errorf("lane %d = %+v, expected a stand-in bot", i, a)
		}
		if a.ErrorRate != fallbackErrorRate {
			t.Errorf("stand-in bot error rate = %f, expected %f", a.ErrorRate, fallbackErrorRate)
		}
	}
}

func TestMatchDeterminism(t *testing.T) {
	run := func() *Match {
		m := NewMatch(config.DefaultRushConfig(), nil, 42)
		for i := 0; i < 600; i++ {
			if i%30 == 0 {
				m.Jump(0)
			}
			if i%50 == 0 {
				m.Jump(1)
			}
			if err := m.Tick(1.0 / 60.0); err != nil {
				t.Fatalf("Tick failed: %v", err)
			}
		}
		return m
	}

	m1 := run()
	m2 := run()

	if m1.Speed() != m2.Speed() || m1.Elapsed() != m2.Elapsed() {
		t.Errorf("world state diverged: speed %f/%f elapsed %f/%f",
			m1.Speed(), m2.Speed(), m1.Elapsed(), m2.Elapsed())
	}
	a1, a2 := m1.Agents(), m2.Agents()
	for i := range a1 {
		if a1[i] != a2[i] {
			t.Errorf("lane %d diverged:\n%+v\n%+v", i, a1[i], a2[i])
		}
	}
	o1, o2 := m1.Obstacles(), m2.Obstacles()
	if len(o1) != len(o2) {
		t.Fatalf("obstacle count diverged: %d vs %d", len(o1), len(o2))
	}
	for i := range o1 {
		if o1[i] != o2[i] {
			t.Errorf("obstacle %d diverged:\n%+v\n%+v", i, o1[i], o2[i])
		}
	}
}

func TestMatchThreeHitsWithGraceWindows(t *testing.T) {
	m := newHumanMatch(1)
	m.obstacles = []Obstacle{wideObstacle()}

	// dt of 0.125 keeps the arithmetic exact: the 0.7s grace window
	// spans five full ticks, so hits land on ticks 1, 7, and 13.
	const dt = 0.125
	tick := func(n int) {
		for i := 0; i < n; i++ {
			if err := m.Tick(dt); err != nil {
				t.Fatalf("Tick failed: %v", err)
			}
		}
	}
	lane0 := func() Agent { return m.Agents()[0] }

	tick(1)
	if lane0().Lives != 2 {
		t.Fatalf("lives = %d after first overlap, expected 2", lane0().Lives)
	}

	tick(5)
	if lane0().Lives != 2 {
		t.Fatalf("lives = %d inside the grace window, expected still 2", lane0().Lives)
	}

	tick(1)
	if lane0().Lives != 1 {
		t.Fatalf("lives = %d after the window expired, expected 1", lane0().Lives)
	}

	tick(5)
	if lane0().Lives != 1 {
		t.Fatalf("lives = %d inside the second grace window, expected still 1", lane0().Lives)
	}

	tick(1)
	if lane0().Lives != 0 {
		t.Fatalf("lives = %d after three hits, expected 0", lane0().Lives)
	}
	if !lane0().Out {
		t.Error("runner should be out after exactly three hits")
	}
}

func TestMatchAllLanesOutSameTick(t *testing.T) {
	m := newHumanMatch(1)
	m.obstacles = []Obstacle{wideObstacle()}

	// All three lanes share the obstacle and the same hitbox, so they
	// are eliminated on the same schedule and drop out together.
	const dt = 0.125
	for i := 0; i < 13; i++ {
		if err := m.Tick(dt); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}

	if !m.GameOver() {
		t.Fatal("match should be over once every lane is out")
	}

	// Equal frozen times: the tie goes to the earliest lane.
	if m.Winner() != 0 {
		t.Errorf("winner = lane %d, expected lane 0 on an all-way tie", m.Winner())
	}

	results := m.Results()
	if len(results) != laneCount {
		t.Fatalf("%d results, expected %d", len(results), laneCount)
	}
	for i, r := range results {
		if r.Time != 13*dt {
			t.Errorf("result %d time = %f, expected %f", i, r.Time, 13*dt)
		}
	}
	if !results[0].Winner || results[0].Lane != 0 {
		t.Errorf("results[0] = %+v, expected lane 0 as winner", results[0])
	}
}

func TestMatchTimeFreezeAndRanking(t *testing.T) {
	m := newHumanMatch(1)
	m.agents[0].Lives = 1
	m.obstacles = []Obstacle{wideObstacle()}

	const dt = 0.125
	tick := func(n int) {
		for i := 0; i < n; i++ {
			if err := m.Tick(dt); err != nil {
				t.Fatalf("Tick failed: %v", err)
			}
		}
	}

	// Lane 0 is out on the first overlap; the other lanes survive two
	// more grace cycles.
	tick(1)
	if !m.agents[0].Out {
		t.Fatal("lane 0 should be out after its single life")
	}
	if m.GameOver() {
		t.Fatal("match must keep running while other lanes live")
	}

	tick(12)
	if !m.GameOver() {
		t.Fatal("match should be over after the remaining lanes are worn down")
	}

	// Lane 0's clock froze at its elimination.
	if m.agents[0].Time != dt {
		t.Errorf("lane 0 time = %f, expected frozen at %f", m.agents[0].Time, dt)
	}

	// Lanes 1 and 2 tie at the longer time; the earlier lane wins.
	if m.Winner() != 1 {
		t.Errorf("winner = lane %d, expected lane 1", m.Winner())
	}

	results := m.Results()
	if results[0].Lane != 1 || !results[0].Winner {
		t.Errorf("results[0] = %+v, expected lane 1 as winner", results[0])
	}
	if results[1].Lane != 2 || results[1].Winner {
		t.Errorf("results[1] = %+v, expected lane 2, not winning", results[1])
	}
	if results[2].Lane != 0 || results[2].Time != dt {
		t.Errorf("results[2] = %+v, expected the early-out lane 0", results[2])
	}

	// A finished match is frozen for good.
	elapsed := m.Elapsed()
	agents := append([]Agent(nil), m.agents...)
	tick(10)
	if m.Elapsed() != elapsed {
		t.Errorf("elapsed advanced after the match ended: %f -> %f", elapsed, m.Elapsed())
	}
	for i := range agents {
		if m.agents[i] != agents[i] {
			t.Errorf("lane %d mutated after the match ended", i)
		}
	}
}

func TestMatchJumpIsForgiving(t *testing.T) {
	m := newHumanMatch(1)

	// Unknown lanes are ignored.
	m.Jump(-1)
	m.Jump(laneCount)

	// Eliminated runners are ignored.
	m.agents[2].Out = true
	m.Jump(2)
	if m.agents[2].VY != 0 {
		t.Errorf("jump on an out lane changed vy to %f", m.agents[2].VY)
	}

	// A valid lane jumps.
	m.Jump(0)
	if m.agents[0].VY != -m.cfg.Physics.JumpVelocity {
		t.Errorf("lane 0 vy = %f, expected %f", m.agents[0].VY, -m.cfg.Physics.JumpVelocity)
	}
}

func TestMatchCullsExpiredObstaclesFromFront(t *testing.T) {
	m := newHumanMatch(1)
	m.obstacles = []Obstacle{
		{Kind: KindSnake, X: -80, Width: 60},  // trailing edge already past the left boundary
		{Kind: KindRock, X: -30, Width: 50},   // sticking out by a sliver
		{Kind: KindSpike, X: 300, Width: 50},
	}

	if err := m.Tick(0.001); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	obs := m.Obstacles()
	if len(obs) != 2 {
		t.Fatalf("%d obstacles left, expected 2", len(obs))
	}
	if obs[0].Kind != KindRock {
		t.Errorf("front obstacle = %v, expected the rock to survive the cull", obs[0].Kind)
	}
}

func TestMatchSpawnsAtRightEdge(t *testing.T) {
	m := newHumanMatch(3)

	const dt = 0.05
	for i := 0; i < 60 && len(m.Obstacles()) == 0; i++ {
		if err := m.Tick(dt); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}

	obs := m.Obstacles()
	if len(obs) == 0 {
		t.Fatal("no obstacle spawned within three seconds")
	}
	// Checked every tick, so the first obstacle has scrolled exactly once.
	if obs[0].X < 1500 || obs[0].X >= 1600 {
		t.Errorf("fresh obstacle at x=%f, expected just inside the right edge", obs[0].X)
	}
}

func TestMatchBotsDodgeThroughFullPipeline(t *testing.T) {
	cfg := config.DefaultRushConfig()
	cfg.Bots = []config.BotSeat{{Name: "P"}, {Name: "Q"}, {Name: "R"}} // flawless

	m := NewMatch(cfg, nil, 5)
	m.draw = func() float64 { return 0.5 }
	m.obstacles = []Obstacle{{Kind: KindRock, X: 480, Width: 50, Height: 40, Hue: 30}}

	// After one tick the obstacle is inside the 350-unit reaction
	// threshold, so every bot launches.
	if err := m.Tick(0.05); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	for i, a := range m.Agents() {
		if a.Y >= 0 {
			t.Errorf("bot in lane %d stayed grounded, y = %f", i, a.Y)
		}
	}

	// Riding the jump (and the re-jump on landing) clears the obstacle
	// without losing a life.
	for i := 0; i < 29; i++ {
		if err := m.Tick(0.05); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}
	for i, a := range m.Agents() {
		if a.Lives != startingLives {
			t.Errorf("bot in lane %d lost lives: %d", i, a.Lives)
		}
		if a.Out {
			t.Errorf("bot in lane %d was eliminated", i)
		}
	}
}

func TestMatchBotsWithFullErrorRateNeverJump(t *testing.T) {
	cfg := config.DefaultRushConfig()
	cfg.Bots = []config.BotSeat{
		{Name: "P", ErrorRate: 1},
		{Name: "Q", ErrorRate: 1},
		{Name: "R", ErrorRate: 1},
	}

	m := NewMatch(cfg, nil, 5)
	m.draw = func() float64 { return 0.999 } // as lucky as a draw gets
	m.obstacles = []Obstacle{{Kind: KindSpike, X: 400, Width: 60, Height: 50, Hue: 340}}

	for i := 0; i < 60; i++ {
		if err := m.Tick(1.0 / 60.0); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
		for lane, a := range m.Agents() {
			if a.Y != 0 {
				t.Fatalf("lane %d went airborne at tick %d despite a full error rate", lane, i)
			}
		}
	}
}

func TestMatchBackfillsPartialConfig(t *testing.T) {
	m := NewMatch(config.RushConfig{}, nil, 1)

	def := config.DefaultRushConfig()
	if m.cfg.Physics.Gravity != def.Physics.Gravity {
		t.Errorf("gravity = %f, expected the default %f", m.cfg.Physics.Gravity, def.Physics.Gravity)
	}
	if m.cfg.Physics.JumpVelocity != def.Physics.JumpVelocity {
		t.Errorf("jump velocity = %f, expected the default %f", m.cfg.Physics.JumpVelocity, def.Physics.JumpVelocity)
	}
	if m.cfg.World.Width != def.World.Width {
		t.Errorf("world width = %f, expected the default %f", m.cfg.World.Width, def.World.Width)
	}
	if a := m.Agents()[0]; a.X != def.Player.X || a.Width != def.Player.Width {
		t.Errorf("agent hitbox %+v, expected defaults", a)
	}
}

func TestMatchResultsNilWhileRunning(t *testing.T) {
	m := newHumanMatch(1)
	if m.Results() != nil {
		t.Error("results should be nil while the match is running")
	}
	if m.GameOver() {
		t.Error("fresh match should not be over")
	}
}
