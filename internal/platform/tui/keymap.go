package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lanerush/internal/core"
)

// KeyMapper translates Bubble Tea key messages to per-player game actions.
// This centralizes key bindings and makes them testable. In duo mode the
// keyboard is shared: space/w jump for player 1 and the up arrow jumps for
// player 2; in every other mode all jump keys belong to player 1.
type KeyMapper struct {
	duo bool
}

// NewKeyMapper creates a key mapper with default bindings.
// duo enables the shared-keyboard split.
func NewKeyMapper(duo bool) *KeyMapper {
	return &KeyMapper{duo: duo}
}

// MapKey translates a key message to an action and the player it belongs
// to. Returns ActionNone for unmapped keys and reports quit requests.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (player core.PlayerID, action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.Player1, core.ActionQuit, true
	}

	switch key {
	case " ", "w":
		return core.Player1, core.ActionJump, false
	case "up":
		if km.duo {
			return core.Player2, core.ActionJump, false
		}
		return core.Player1, core.ActionJump, false
	case "enter":
		return core.Player1, core.ActionConfirm, false
	case "b", "esc":
		return core.Player1, core.ActionBack, false
	case "p":
		return core.Player1, core.ActionPause, false
	case "r":
		return core.Player1, core.ActionRestart, false
	}

	return core.Player1, core.ActionNone, false
}

// MapKeyToMultiFrame updates a multi-input frame based on a key message,
// routing the action to whichever player owns the key.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToMultiFrame(msg tea.KeyMsg, frame *core.MultiInputFrame) bool {
	player, action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		f := frame.Player(player)
		f.Set(action)
		frame.SetPlayer(player, f)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionHost
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "h":
		return MenuActionHost
	}

	return MenuActionNone
}
