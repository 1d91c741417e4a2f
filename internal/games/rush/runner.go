package rush

import (
	"fmt"

	"github.com/vovakirdan/lanerush/internal/core"
)

// Simulate drives a match to completion with a fixed timestep and no
// real-time pacing, returning the final standings. It backs the headless
// simulate command. maxSeconds bounds the simulated clock; a match that
// outlives it (three flawless bots can in principle run forever) is
// reported as an error rather than looping without end.
func Simulate(m *Match, tickRate int, maxSeconds float64) ([]core.LaneResult, error) {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	dt := 1.0 / float64(tickRate)

	for m.Elapsed() < maxSeconds {
		if err := m.Tick(dt); err != nil {
			return nil, err
		}
		if m.GameOver() {
			return m.Results(), nil
		}
	}
	return nil, fmt.Errorf("rush: match still running after %.0fs of simulated time", maxSeconds)
}
