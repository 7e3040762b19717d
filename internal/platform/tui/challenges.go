package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/companion/internal/config"
	"github.com/vovakirdan/companion/internal/storage"
)

// Challenges screen layout constants
const (
	tableMinWidth = 50  // Minimum table width
	maxRuns       = 100 // Max runs to load
)

// challengeTab is one of the pages of the challenges screen.
type challengeTab int

const (
	tabChallenges challengeTab = iota
	tabRuns
)

var tabTitles = []string{"Challenges", "Best runs"}

// ChallengesKeyMap defines the key bindings for the challenges screen.
type ChallengesKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ChallengesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ChallengesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Back, k.Quit},
	}
}

// DefaultChallengesKeyMap returns default key bindings.
func DefaultChallengesKeyMap() ChallengesKeyMap {
	return ChallengesKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next page"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev page"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ChallengeRow is a challenge with its stored progress.
type ChallengeRow struct {
	config.Challenge
	Progress int
}

// Done reports whether the target was reached.
func (r ChallengeRow) Done() bool {
	return r.Target > 0 && r.Progress >= r.Target
}

// ChallengesModel shows challenge progress and run history.
type ChallengesModel struct {
	challenges []config.Challenge
	store      *storage.Store
	rows       []ChallengeRow
	runs       []storage.RunEntry
	tab        challengeTab
	table      table.Model
	help       help.Model
	keys       ChallengesKeyMap
	width      int
	height     int
	loadErr    error
	quitting   bool
	goingBack  bool
}

// NewChallengesModel creates the challenges screen. store may be nil.
func NewChallengesModel(store *storage.Store, challenges []config.Challenge, width, height int) ChallengesModel {
	h := help.New()
	h.ShowAll = false

	m := ChallengesModel{
		challenges: challenges,
		store:      store,
		keys:       DefaultChallengesKeyMap(),
		help:       h,
		width:      width,
		height:     height,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// LoadChallengeRows joins challenge targets with stored progress.
func LoadChallengeRows(store *storage.Store, challenges []config.Challenge) ([]ChallengeRow, error) {
	rows := make([]ChallengeRow, len(challenges))
	for i, c := range challenges {
		rows[i] = ChallengeRow{Challenge: c}
		if store == nil {
			continue
		}
		n, err := store.Progress(c.Key)
		if err != nil {
			return rows, err
		}
		rows[i].Progress = n
	}
	return rows, nil
}

func (m *ChallengesModel) load() {
	m.rows, m.loadErr = LoadChallengeRows(m.store, m.challenges)
	if m.store == nil || m.loadErr != nil {
		m.runs = nil
		return
	}
	m.runs, m.loadErr = m.store.TopRuns(maxRuns)
}

// createTable creates a table with columns for the current tab.
func (m *ChallengesModel) createTable() table.Model {
	tableWidth := max(tableMinWidth, m.width-4)

	var columns []table.Column
	switch m.tab {
	case tabRuns:
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 8},
			{Title: "Caught", Width: 8},
			{Title: "Combo", Width: 7},
			{Title: "End", Width: 11},
			{Title: "Date", Width: min(20, max(12, tableWidth-50))},
		}
	default:
		columns = []table.Column{
			{Title: "Challenge", Width: min(30, max(14, tableWidth-30))},
			{Title: "Progress", Width: 10},
			{Title: "Target", Width: 8},
			{Title: "", Width: 4},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table for the current tab.
func (m *ChallengesModel) updateTableRows() {
	var rows []table.Row
	switch m.tab {
	case tabRuns:
		rows = make([]table.Row, len(m.runs))
		for i, r := range m.runs {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", r.Score),
				fmt.Sprintf("%d", r.Caught),
				fmt.Sprintf("x%d", r.BestCombo),
				r.Reason,
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	default:
		rows = make([]table.Row, len(m.rows))
		for i, r := range m.rows {
			mark := ""
			if r.Done() {
				mark = "✓"
			}
			rows[i] = table.Row{
				r.Title,
				fmt.Sprintf("%d", min(r.Progress, r.Target)),
				fmt.Sprintf("%d", r.Target),
				mark,
			}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ChallengesModel) switchTab(delta int) {
	n := len(tabTitles)
	m.tab = challengeTab((int(m.tab) + delta + n) % n)
	m.table = m.createTable()
	m.updateTableRows()
}

// Init initializes the challenges model.
func (m ChallengesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the challenges screen.
func (m ChallengesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.switchTab(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.switchTab(-1)
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the challenges screen.
func (m ChallengesModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("CHALLENGES", m.width)))
	b.WriteString("\n\n")

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(tabTitles))
	for i, t := range tabTitles {
		if challengeTab(i) == m.tab {
			tabs[i] = activeTabStyle.Render(t)
		} else {
			tabs[i] = tabStyle.Render(t)
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ChallengesModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load progress:\n" + m.loadErr.Error())
	case m.tab == tabRuns && len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nStart a catch game to set a score!")
	case m.tab == tabChallenges && len(m.rows) == 0:
		return emptyStyle.Render("No challenges configured.")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ChallengesModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ChallengesModel) IsQuitting() bool {
	return m.quitting
}

// RunChallenges runs the challenges screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunChallenges(store *storage.Store, challenges []config.Challenge, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewChallengesModel(store, challenges, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ChallengesModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
