package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/companion/internal/core"
	"github.com/vovakirdan/companion/internal/storage"
)

// Screen identifies a destination picked from the main menu.
type Screen int

const (
	ScreenNone Screen = iota
	ScreenCompanion
	ScreenChallenges
)

// MenuItem is one main menu entry.
type MenuItem struct {
	Screen Screen
	Title  string
}

var menuItems = []MenuItem{
	{Screen: ScreenCompanion, Title: "Hang out"},
	{Screen: ScreenChallenges, Title: "Challenges"},
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	name      string
	highScore int
	config    core.RuntimeConfig
	quitting  bool
	selected  Screen
}

// NewMenuModel creates a new menu model. store may be nil.
func NewMenuModel(store *storage.Store, name string, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		items:  menuItems,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		name:   name,
		config: cfg,
	}
	if store != nil {
		if high, err := store.HighScore(); err == nil {
			m.highScore = high
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		m.selected = m.items[m.cursor].Screen
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  C O M P A N I O N  "), m.width))
	b.WriteString("\n\n")

	greeting := fmt.Sprintf("%s is waiting for you", m.name)
	if m.highScore > 0 {
		greeting += fmt.Sprintf("  ·  best run %d", m.highScore)
	}
	b.WriteString(centerText(greeting, m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the picked screen, or ScreenNone.
func (m MenuModel) Selected() Screen {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers every line of text within width.
func centerText(text string, width int) string {
	if lipgloss.Width(text) >= width {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Screen Screen
	Config core.RuntimeConfig
	Quit   bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, name string, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(store, name, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.IsQuitting() || m.Selected() == ScreenNone {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	return MenuResult{Screen: m.Selected(), Config: m.Config()}, nil
}
