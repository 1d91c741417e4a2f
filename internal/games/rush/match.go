package rush

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/core"
)

// ErrInvalidDelta reports a tick delta that would corrupt the simulation.
// Negative, NaN, and infinite deltas are rejected before any state changes;
// a zero delta is a valid no-op frame.
var ErrInvalidDelta = errors.New("rush: tick delta must be finite and non-negative")

// Seat describes one lane occupant at match creation.
type Seat struct {
	Name      string
	IsBot     bool
	ErrorRate float64
}

// Match owns all simulation state for one run: the speed ramp, the spawn
// clock, the shared obstacle track, and the three lanes. All mutation
// happens inside Tick and Jump; accessors are read-only views. A Match is
// not safe for concurrent use.
type Match struct {
	cfg config.RushConfig
	rng *rand.Rand

	ramp  ramp
	spawn spawner

	agents    []Agent
	obstacles []Obstacle

	gameOver    bool
	winnerIndex int

	// draw feeds bot fallibility decisions; rng-backed by default,
	// replaceable in tests.
	draw func() float64
}

// NewMatch creates a three-lane match. Seats are assigned to lanes in
// order; missing seats are filled with bots from cfg.Bots, then with
// numbered stand-ins if the roster runs short. Extra seats are dropped.
func NewMatch(cfg config.RushConfig, seats []Seat, seed int64) *Match {
	cfg = withDefaults(cfg)

	rng := rand.New(rand.NewSource(seed))
	m := &Match{
		cfg:   cfg,
		rng:   rng,
		ramp:  newRamp(),
		spawn: newSpawner(rng),
	}
	m.draw = m.rng.Float64

	m.agents = make([]Agent, laneCount)
	for lane := 0; lane < laneCount; lane++ {
		seat := seatForLane(seats, cfg.Bots, lane)
		m.agents[lane] = Agent{
			Name:       seat.Name,
			Lane:       lane,
			IsBot:      seat.IsBot,
			ErrorRate:  seat.ErrorRate,
			X:          cfg.Player.X,
			Width:      cfg.Player.Width,
			Height:     cfg.Player.Height,
			Lives:      startingLives,
			DoubleJump: true,
		}
	}
	return m
}

// seatForLane picks the lane's occupant: the explicit seat if given,
// otherwise the next unused config bot, otherwise a numbered stand-in.
func seatForLane(seats []Seat, bots []config.BotSeat, lane int) Seat {
	if lane < len(seats) {
		return seats[lane]
	}
	botIdx := lane - len(seats)
	if botIdx < len(bots) {
		return Seat{Name: bots[botIdx].Name, IsBot: true, ErrorRate: bots[botIdx].ErrorRate}
	}
	return Seat{Name: fmt.Sprintf("Bot %d", lane+1), IsBot: true, ErrorRate: fallbackErrorRate}
}

// withDefaults backfills zero values left by partial user configs.
func withDefaults(cfg config.RushConfig) config.RushConfig {
	def := config.DefaultRushConfig()
	if cfg.Physics.Gravity <= 0 {
		cfg.Physics.Gravity = def.Physics.Gravity
	}
	if cfg.Physics.JumpVelocity <= 0 {
		cfg.Physics.JumpVelocity = def.Physics.JumpVelocity
	}
	if cfg.World.Width <= 0 {
		cfg.World.Width = def.World.Width
	}
	if cfg.Player.X <= 0 {
		cfg.Player.X = def.Player.X
	}
	if cfg.Player.Width <= 0 {
		cfg.Player.Width = def.Player.Width
	}
	if cfg.Player.Height <= 0 {
		cfg.Player.Height = def.Player.Height
	}
	return cfg
}

// Tick advances the whole simulation by dt seconds of real time: ramp the
// speed, spawn due obstacles at the right edge, scroll and cull the track,
// then per live lane run the bot policy, integrate physics, and resolve
// collisions. Once every lane is out the match freezes permanently and
// further ticks do nothing.
func (m *Match) Tick(dt float64) error {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return ErrInvalidDelta
	}
	if m.gameOver {
		return nil
	}

	m.ramp.advance(dt)

	m.obstacles = append(m.obstacles, m.spawn.advance(dt, m.rng, m.cfg.World.Width)...)

	for i := range m.obstacles {
		m.obstacles[i].X -= m.ramp.speed * dt
	}
	// Obstacles are ordered by spawn time, so expired ones are always at
	// the front. A huge dt can expire several at once.
	for len(m.obstacles) > 0 && m.obstacles[0].Right() < 0 {
		m.obstacles = m.obstacles[1:]
	}

	for i := range m.agents {
		a := &m.agents[i]
		if a.Out {
			continue
		}
		if a.IsBot {
			if ob, ok := nextObstacle(m.obstacles, a.X); ok &&
				shouldJump(*a, ob, m.ramp.speed, m.cfg.Physics.JumpVelocity, m.draw) {
				a.jump(m.cfg.Physics.JumpVelocity)
			}
		}
		a.integrate(dt, m.cfg.Physics.Gravity)
		m.collide(a)
	}

	m.finishIfDone()
	return nil
}

// collide applies at most one hit to the agent this tick. Obstacles are
// scanned oldest first and matched on horizontal overlap alone; any
// airborne agent clears every obstacle regardless of its height.
func (m *Match) collide(a *Agent) {
	if a.Invulnerable {
		return
	}
	for _, ob := range m.obstacles {
		if ob.X < a.X+a.Width && ob.Right() > a.X && a.Y >= 0 {
			a.hit()
			return
		}
	}
}

// finishIfDone transitions to the terminal state once every lane is out.
// The winner is the lane with the largest frozen time; ties go to the
// earliest lane.
func (m *Match) finishIfDone() {
	for i := range m.agents {
		if !m.agents[i].Out {
			return
		}
	}
	m.gameOver = true
	m.winnerIndex = 0
	for i := 1; i < len(m.agents); i++ {
		if m.agents[i].Time > m.agents[m.winnerIndex].Time {
			m.winnerIndex = i
		}
	}
}

// Jump routes a jump command to the given lane. Unknown lanes and
// eliminated runners are silently ignored, never an error.
func (m *Match) Jump(lane int) {
	if lane < 0 || lane >= len(m.agents) {
		return
	}
	m.agents[lane].jump(m.cfg.Physics.JumpVelocity)
}

// Agents returns the lanes in order. The slice is owned by the match;
// callers must not modify it.
func (m *Match) Agents() []Agent {
	return m.agents
}

// Obstacles returns the live obstacles oldest first. The slice is owned
// by the match; callers must not modify it.
func (m *Match) Obstacles() []Obstacle {
	return m.obstacles
}

// Speed returns the current world scroll speed in units per second.
func (m *Match) Speed() float64 {
	return m.ramp.speed
}

// Elapsed returns seconds of simulated time since match start. It stops
// advancing once the match is over.
func (m *Match) Elapsed() float64 {
	return m.ramp.elapsed
}

// GameOver reports whether every lane has been eliminated.
func (m *Match) GameOver() bool {
	return m.gameOver
}

// Winner returns the lane index of the winning runner. Only meaningful
// once the match is over.
func (m *Match) Winner() int {
	return m.winnerIndex
}

// Results returns the final standings ranked by survival time, longest
// first; equal times keep lane order. Returns nil while the match is
// still running.
func (m *Match) Results() []core.LaneResult {
	if !m.gameOver {
		return nil
	}
	results := make([]core.LaneResult, len(m.agents))
	for i, a := range m.agents {
		results[i] = core.LaneResult{
			Name:   a.Name,
			Lane:   a.Lane,
			IsBot:  a.IsBot,
			Time:   a.Time,
			Winner: i == m.winnerIndex,
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Time > results[j].Time
	})
	return results
}
