package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/companion/internal/core"
)

// KeyMap holds the companion screen bindings.
// It doubles as the help.KeyMap for the footer.
type KeyMap struct {
	StartGame key.Binding
	EndGame   key.Binding
	ThrowOrb  key.Binding
	FeedTreat key.Binding
	Tap       key.Binding
	Grow      key.Binding
	Shrink    key.Binding
	TiltLeft  key.Binding
	TiltRight key.Binding
	TiltLevel key.Binding
	Shake     key.Binding
	Drawer    key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		StartGame: key.NewBinding(
			key.WithKeys("g", "enter"),
			key.WithHelp("g", "catch game"),
		),
		EndGame: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "end game"),
		),
		ThrowOrb: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "throw orb"),
		),
		FeedTreat: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "feed"),
		),
		Tap: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "tap (x2 spin)"),
		),
		Grow: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", "resize"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("-", "_"),
		),
		TiltLeft: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/→", "tilt"),
		),
		TiltRight: key.NewBinding(
			key.WithKeys("right", "d"),
		),
		TiltLevel: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓", "level"),
		),
		Shake: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "shake"),
		),
		Drawer: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "wardrobe"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.StartGame, k.Tap, k.ThrowOrb, k.FeedTreat, k.Drawer, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.StartGame, k.EndGame, k.ThrowOrb, k.FeedTreat},
		{k.Tap, k.Grow, k.TiltLeft, k.TiltLevel, k.Shake},
		{k.Drawer, k.Back, k.Help, k.Quit},
	}
}

// Action translates a key message to a companion action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.StartGame):
		return core.ActionStartGame
	case key.Matches(msg, k.EndGame):
		return core.ActionEndGame
	case key.Matches(msg, k.ThrowOrb):
		return core.ActionThrowOrb
	case key.Matches(msg, k.FeedTreat):
		return core.ActionFeedTreat
	case key.Matches(msg, k.Tap):
		return core.ActionTap
	case key.Matches(msg, k.Grow):
		return core.ActionGrow
	case key.Matches(msg, k.Shrink):
		return core.ActionShrink
	case key.Matches(msg, k.TiltLeft):
		return core.ActionTiltLeft
	case key.Matches(msg, k.TiltRight):
		return core.ActionTiltRight
	case key.Matches(msg, k.TiltLevel):
		return core.ActionTiltLevel
	case key.Matches(msg, k.Shake):
		return core.ActionShake
	case key.Matches(msg, k.Drawer):
		return core.ActionDrawer
	case key.Matches(msg, k.Back):
		return core.ActionBack
	}
	return core.ActionNone
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
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
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
	}
	return MenuActionNone
}
