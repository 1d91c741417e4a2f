package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lanerush/internal/lobby"
)

// RoomState represents the current step of the waiting-room flow.
type RoomState int

const (
	RoomStateChoose    RoomState = iota // Choose Host or Join
	RoomStateHosting                    // Hosting, watching guests arrive
	RoomStateEnterCode                  // Entering a join code
	RoomStateJoined                     // Joined, lineup locked in
)

// roomEventMsg wraps a lobby event for Bubble Tea.
type roomEventMsg struct {
	evt lobby.Event
}

// roomDoneMsg signals that the watched room was closed or expired.
type roomDoneMsg struct{}

// RoomResult is what the waiting-room flow hands back to the session.
// When Start is true the session launches a local match with the lineup;
// the seat names are the only thing the room ever carried.
type RoomResult struct {
	Lineup     [3]lobby.Seat
	Lane       int // The lane this session's player occupies
	Start      bool
	BackToMenu bool
	Quit       bool
}

// RoomModel drives the cosmetic waiting room: hosting a code, or joining
// one, and assembling the three-seat lineup. No game state crosses
// between sessions; every participant runs their own match afterwards.
type RoomModel struct {
	board      *lobby.Board
	playerName string
	width      int
	height     int
	keyMapper  *KeyMapper

	state   RoomState
	cursor  int // Host / Join chooser
	room    *lobby.Room
	watcher *lobby.Watcher
	lane    int

	codeInput string
	joinError string

	result RoomResult
	done   bool
}

// NewRoomModel creates a waiting-room model for the given player.
func NewRoomModel(board *lobby.Board, playerName string, width, height int) RoomModel {
	return RoomModel{
		board:      board,
		playerName: playerName,
		width:      width,
		height:     height,
		keyMapper:  NewKeyMapper(false),
		state:      RoomStateChoose,
	}
}

// Init initializes the room model.
func (m RoomModel) Init() tea.Cmd {
	return nil
}

// waitForRoomEvent blocks on the watcher until the next event arrives.
func waitForRoomEvent(w *lobby.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt, ok := <-w.Events():
			if !ok {
				return roomDoneMsg{}
			}
			return roomEventMsg{evt: evt}
		case <-w.Done():
			// Drain any event buffered before the close
			select {
			case evt := <-w.Events():
				return roomEventMsg{evt: evt}
			default:
			}
			return roomDoneMsg{}
		}
	}
}

// Update handles messages for the waiting room.
func (m RoomModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case roomEventMsg:
		return m.handleRoomEvent(msg.evt)

	case roomDoneMsg:
		// Room closed under us; back to the menu
		if !m.done {
			m.result = RoomResult{BackToMenu: true}
			m.done = true
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

func (m RoomModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == RoomStateEnterCode {
		return m.handleCodeKey(msg)
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.leaveRoom()
		m.result = RoomResult{Quit: true}
		m.done = true
		return m, tea.Quit

	case MenuActionBack:
		m.leaveRoom()
		m.result = RoomResult{BackToMenu: true}
		m.done = true
		return m, tea.Quit

	case MenuActionUp:
		if m.state == RoomStateChoose && m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.state == RoomStateChoose && m.cursor < 1 {
			m.cursor++
		}

	case MenuActionSelect:
		switch m.state {
		case RoomStateChoose:
			if m.cursor == 0 {
				return m.startHosting()
			}
			m.state = RoomStateEnterCode
			m.codeInput = ""
			m.joinError = ""
			return m, nil

		case RoomStateHosting, RoomStateJoined:
			// Lock the lineup in and start the local match
			m.result = RoomResult{
				Lineup: m.room.Lineup(),
				Lane:   m.lane,
				Start:  true,
			}
			m.watcher.Close()
			if m.state == RoomStateHosting {
				m.board.Close(m.room.Code)
			}
			m.done = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleCodeKey edits the join-code entry field.
func (m RoomModel) handleCodeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.result = RoomResult{Quit: true}
		m.done = true
		return m, tea.Quit

	case "esc":
		m.state = RoomStateChoose
		m.joinError = ""
		return m, nil

	case "enter":
		return m.tryJoin()

	case "backspace":
		if len(m.codeInput) > 0 {
			m.codeInput = m.codeInput[:len(m.codeInput)-1]
		}
		return m, nil
	}

	// Codes are 6 base32 characters
	if len(msg.Runes) == 1 && len(m.codeInput) < 6 {
		r := msg.Runes[0]
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '2' && r <= '7') {
			m.codeInput += strings.ToUpper(string(r))
		}
	}
	return m, nil
}

func (m RoomModel) startHosting() (tea.Model, tea.Cmd) {
	m.room = m.board.Open(m.playerName)
	m.watcher = m.room.Watch()
	m.lane = 0
	m.state = RoomStateHosting
	return m, waitForRoomEvent(m.watcher)
}

func (m RoomModel) tryJoin() (tea.Model, tea.Cmd) {
	if len(m.codeInput) != 6 {
		m.joinError = "Codes are 6 characters"
		return m, nil
	}

	room, lane, err := m.board.Join(m.codeInput, m.playerName)
	if err != nil {
		switch err {
		case lobby.ErrRoomNotFound:
			m.joinError = "Room not found"
		case lobby.ErrRoomFull:
			m.joinError = "Room is full"
		default:
			m.joinError = "Could not join"
		}
		return m, nil
	}

	m.room = room
	m.watcher = room.Watch()
	m.lane = lane
	m.state = RoomStateJoined
	return m, waitForRoomEvent(m.watcher)
}

func (m RoomModel) handleRoomEvent(evt lobby.Event) (tea.Model, tea.Cmd) {
	switch evt.(type) {
	case lobby.GuestJoinedEvent:
		// The lineup view reads the room directly; just keep watching
		return m, waitForRoomEvent(m.watcher)

	case lobby.RoomClosedEvent, lobby.RoomExpiredEvent:
		if m.state == RoomStateJoined {
			// Host locked the lineup in; start our own local match
			m.result = RoomResult{
				Lineup: m.room.Lineup(),
				Lane:   m.lane,
				Start:  true,
			}
			m.done = true
			return m, tea.Quit
		}
		m.result = RoomResult{BackToMenu: true}
		m.done = true
		return m, tea.Quit
	}

	return m, waitForRoomEvent(m.watcher)
}

// leaveRoom tears down any room this model opened or watches.
func (m *RoomModel) leaveRoom() {
	if m.watcher != nil {
		m.watcher.Close()
	}
	if m.state == RoomStateHosting && m.room != nil {
		m.board.Close(m.room.Code)
	}
}

// View renders the waiting room.
func (m RoomModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("  W A I T I N G   R O O M  ", m.width))
	b.WriteString("\n\n")

	switch m.state {
	case RoomStateChoose:
		options := []string{"Host a room", "Join with a code"}
		for i, opt := range options {
			cursor := "  "
			if i == m.cursor {
				cursor = "> "
			}
			b.WriteString(centerText(cursor+opt, m.width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	case RoomStateEnterCode:
		b.WriteString(centerText("Enter the room code:", m.width))
		b.WriteString("\n\n")
		codeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
		display := m.codeInput + strings.Repeat("_", 6-len(m.codeInput))
		b.WriteString(centerText(codeStyle.Render(display), m.width))
		b.WriteString("\n\n")
		if m.joinError != "" {
			errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
			b.WriteString(centerText(errStyle.Render(m.joinError), m.width))
			b.WriteString("\n\n")
		}
		b.WriteString(centerText("Enter: Join  |  Esc: Back", m.width))

	case RoomStateHosting, RoomStateJoined:
		codeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
		b.WriteString(centerText("Room code:  "+codeStyle.Render(m.room.Code), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText("Lineup", m.width))
		b.WriteString("\n")

		for lane, seat := range m.room.Lineup() {
			name := seat.Name
			tag := ""
			if seat.IsBot {
				name = "(bot seat)"
			}
			if lane == m.lane {
				tag = "  <- you"
			}
			b.WriteString(centerText(fmt.Sprintf("Lane %d: %s%s", lane+1, name, tag), m.width))
			b.WriteString("\n")
		}

		b.WriteString("\n")
		if m.state == RoomStateHosting {
			b.WriteString(centerText("Share the code. Empty seats race as bots.", m.width))
			b.WriteString("\n")
			b.WriteString(centerText("Enter: Start  |  Esc: Close room", m.width))
		} else {
			b.WriteString(centerText("Waiting for the host to start...", m.width))
			b.WriteString("\n")
			b.WriteString(centerText("Enter: Start now  |  Esc: Leave", m.width))
		}
	}

	b.WriteString("\n")
	return b.String()
}

// Done reports whether the flow has produced a result.
func (m RoomModel) Done() bool {
	return m.done
}

// Result returns the outcome of the waiting-room flow.
func (m RoomModel) Result() RoomResult {
	return m.result
}

// RunRoom runs the waiting-room flow standalone.
func RunRoom(board *lobby.Board, playerName string, width, height int) (RoomResult, error) {
	model := NewRoomModel(board, playerName, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return RoomResult{Quit: true}, err
	}

	m, ok := finalModel.(RoomModel)
	if !ok {
		return RoomResult{Quit: true}, nil
	}

	return m.Result(), nil
}
