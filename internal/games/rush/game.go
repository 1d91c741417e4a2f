// Package rush implements Lane Rush, a three-lane endless runner where
// human and autonomous runners dodge one shared obstacle track until the
// last lane is eliminated. The longest survival time wins.
package rush

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/core"
	"github.com/vovakirdan/lanerush/internal/registry"
)

// Visual characters for rendering
const (
	RunnerBody = '█'
	RunnerHead = '◆'
	RunnerHurt = '░'
	GroundChar = '═'
	SnakeChar  = '▄'
	RockChar   = '▓'
	SpikeChar  = '▲'
	SpikeBase  = '█'
	LifeChar   = '♥'
	OutChar    = '✖'
)

// laneColors styles the runners and their lane labels.
var laneColors = map[int]core.Color{
	0: core.ColorBrightCyan,
	1: core.ColorBrightYellow,
	2: core.ColorBrightMagenta,
}

// Mode selects how many keyboard seats a match has. Remaining lanes are
// filled with bots from the config roster.
type Mode int

const (
	ModeSolo Mode = iota // one keyboard seat, two bots
	ModeDuo              // two keyboard seats, one bot
	ModeBots             // exhibition, bots only
)

// humans returns the number of keyboard-driven lanes, starting at lane 0.
func (md Mode) humans() int {
	switch md {
	case ModeDuo:
		return 2
	case ModeBots:
		return 0
	default:
		return 1
	}
}

// Game adapts a Match to the platform game interface, adding the shell
// concerns the simulation itself stays free of: pause, input routing,
// and drawing.
type Game struct {
	mode    Mode
	match   *Match
	runtime core.RuntimeConfig
	cfg     config.RushConfig
	paused  bool
}

// configPath stores the custom config path set via CLI
var configPath string

// playerNames overrides the default keyboard seat names, lane order
var playerNames []string

// botNames overrides the config roster's display names, roster order
var botNames []string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetPlayerNames sets display names for keyboard seats. Empty entries
// keep the defaults.
func SetPlayerNames(names ...string) {
	playerNames = names
}

// SetBotNames sets display names for the bot lanes, in roster order.
// Empty entries keep the configured roster names.
func SetBotNames(names ...string) {
	botNames = names
}

// New creates a game instance for the given mode.
func New(mode Mode) *Game {
	return &Game{mode: mode}
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	switch g.mode {
	case ModeDuo:
		return "rush_duo"
	case ModeBots:
		return "rush_bots"
	default:
		return "rush"
	}
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	switch g.mode {
	case ModeDuo:
		return "Lane Rush Duo"
	case ModeBots:
		return "Lane Rush Exhibition"
	default:
		return "Lane Rush"
	}
}

// Reset initializes or restarts the match.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadRush(configPath)
	if err != nil {
		cfg = config.DefaultRushConfig()
	}
	for i := range cfg.Bots {
		if i < len(botNames) && botNames[i] != "" {
			cfg.Bots[i].Name = botNames[i]
		}
	}

	g.cfg = cfg
	g.paused = false
	g.match = NewMatch(cfg, g.seats(), runtime.Seed)
}

// seats builds the keyboard seats for this mode; bot lanes are filled by
// the match itself.
func (g *Game) seats() []Seat {
	n := g.mode.humans()
	seats := make([]Seat, 0, n)
	for p := 0; p < n; p++ {
		name := core.PlayerID(p + 1).String()
		if p < len(playerNames) && playerNames[p] != "" {
			name = playerNames[p]
		}
		seats = append(seats, Seat{Name: name})
	}
	return seats
}

// Step advances the game by dt seconds of real time. Keyboard jumps are
// routed to their lanes before the simulation tick so they land ahead of
// physics integration, matching how bot jumps are injected.
func (g *Game) Step(in core.MultiInputFrame, dt float64) core.StepResult {
	if g.match == nil || g.match.GameOver() {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Player1().Has(core.ActionPause) || in.Player2().Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	humans := g.mode.humans()
	if humans >= 1 && in.Player1().Has(core.ActionJump) {
		g.match.Jump(0)
	}
	if humans >= 2 && in.Player2().Has(core.ActionJump) {
		g.match.Jump(1)
	}

	// The platform only ever hands over non-negative wall-clock deltas,
	// so a rejected dt leaves the frame unchanged.
	_ = g.match.Tick(dt)

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.match == nil {
		return core.GameState{}
	}
	return core.GameState{
		Elapsed:  g.match.Elapsed(),
		GameOver: g.match.GameOver(),
		Paused:   g.paused,
	}
}

// Results returns the final standings once the match is over.
func (g *Game) Results() []core.LaneResult {
	if g.match == nil {
		return nil
	}
	return g.match.Results()
}

// Render draws the three lane bands, the shared obstacle track, and the
// per-lane status lines.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.match == nil {
		return
	}

	laneH := (dst.Height() - 1) / laneCount
	if laneH < 4 {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	sx := float64(dst.Width()) / g.cfg.World.Width
	sy := 2.0 / g.cfg.Player.Height // runners stand two rows tall

	groundOffset := core.Clamp(g.cfg.World.GroundOffset, 1, laneH-3)

	for lane, a := range g.match.Agents() {
		laneTop := 1 + lane*laneH
		groundY := laneTop + laneH - groundOffset

		dst.DrawHLine(0, groundY, dst.Width(), GroundChar)

		for _, ob := range g.match.Obstacles() {
			g.drawObstacle(dst, ob, groundY, laneH, sx, sy)
		}

		if !a.Out {
			g.drawRunner(dst, a, groundY, laneTop, sx, sy)
		}
		g.drawLaneStatus(dst, a, laneTop)
	}

	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if results := g.match.Results(); results != nil {
		top := results[0]
		g.drawCenteredMessage(dst, "FINISH",
			fmt.Sprintf("%s wins with %.1fs  |  Press R to restart", top.Name, top.Time))
	}
}

// drawObstacle renders one obstacle inside a single lane band.
func (g *Game) drawObstacle(dst *core.Screen, ob Obstacle, groundY, laneH int, sx, sy float64) {
	cx := int(ob.X * sx)
	cw := max(1, int(ob.Width*sx+0.5))

	if ob.Kind == KindHole {
		// A gap in the ground line
		for dx := 0; dx < cw; dx++ {
			dst.Set(cx+dx, groundY, ' ')
		}
		return
	}

	ch := core.Clamp(int(ob.Height*sy+0.5), 1, laneH-2)
	color := core.ColorForHue(ob.Hue)
	for dy := 0; dy < ch; dy++ {
		y := groundY - 1 - dy
		r := obstacleRune(ob.Kind, dy, ch)
		for dx := 0; dx < cw; dx++ {
			dst.SetCell(cx+dx, y, r, color)
		}
	}
}

// obstacleRune picks the glyph for one obstacle row. dy counts up from
// the ground.
func obstacleRune(k Kind, dy, height int) rune {
	switch k {
	case KindSnake:
		return SnakeChar
	case KindSpike:
		if dy == height-1 {
			return SpikeChar // teeth on top
		}
		return SpikeBase
	default:
		return RockChar
	}
}

// drawRunner renders one runner at its lane's ground, lifted by its
// current jump offset.
func (g *Game) drawRunner(dst *core.Screen, a Agent, groundY, laneTop int, sx, sy float64) {
	rx := int(a.X * sx)
	rw := max(1, int(a.Width*sx+0.5))

	lift := int(-a.Y*sy + 0.5)
	feetY := groundY - 1 - lift
	headY := feetY - 1

	color := laneColors[a.Lane]
	body := RunnerBody
	if a.Invulnerable {
		body = RunnerHurt
		color = core.ColorWhite
	}

	for dx := 0; dx < rw; dx++ {
		if feetY > laneTop {
			dst.SetCell(rx+dx, feetY, body, color)
		}
		if headY > laneTop {
			r := body
			if dx == rw-1 {
				r = RunnerHead
			}
			dst.SetCell(rx+dx, headY, r, color)
		}
	}
}

// drawLaneStatus renders the name, lives, and survival time of one lane.
func (g *Game) drawLaneStatus(dst *core.Screen, a Agent, laneTop int) {
	var status string
	if a.Out {
		status = fmt.Sprintf(" %s %c %.1fs ", a.Name, OutChar, a.Time)
	} else {
		status = fmt.Sprintf(" %s %s %.1fs ", a.Name, strings.Repeat(string(LifeChar), a.Lives), a.Time)
	}
	dst.DrawTextColor(1, laneTop, status, laneColors[a.Lane])
}

// drawHUD renders the top status row.
func (g *Game) drawHUD(dst *core.Screen) {
	dst.DrawText(2, 0, fmt.Sprintf(" %s ", g.Title()))

	right := fmt.Sprintf(" Spd: %.0f  Time: %.1fs ", g.match.Speed(), g.match.Elapsed())
	dst.DrawText(dst.Width()-len(right)-2, 0, right)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// Register the modes with the registry
func init() {
	registry.Register("rush", func() registry.Game {
		return New(ModeSolo)
	})
	registry.Register("rush_duo", func() registry.Game {
		return New(ModeDuo)
	})
	registry.Register("rush_bots", func() registry.Game {
		return New(ModeBots)
	})
}
