package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/companion/internal/avatar"
	"github.com/vovakirdan/companion/internal/capability"
	"github.com/vovakirdan/companion/internal/companion"
	"github.com/vovakirdan/companion/internal/config"
	"github.com/vovakirdan/companion/internal/core"
	"github.com/vovakirdan/companion/internal/gesture"
	"github.com/vovakirdan/companion/internal/registry"
)

const (
	tiltStep    = 10.0 // degrees per tilt key press
	pinchFactor = 1.15 // scale change per grow/shrink press
)

// Options configures a companion screen.
type Options struct {
	Config  config.CompanionConfig
	Runtime core.RuntimeConfig

	Sink     companion.ProgressSink
	Recorder companion.RunRecorder
	Wardrobe Wardrobe // nil hides the drawer

	Haptics capability.Haptics
	Tone    capability.Tone
	Logger  *log.Logger

	// ScreenshotDir receives ctrl+s dumps. Empty disables them.
	ScreenshotDir string

	// Embedded models hand control back to a host model on quit instead
	// of ending the program.
	Embedded bool
}

// Model is the Bubble Tea model for the companion screen.
type Model struct {
	opts    Options
	engine  *companion.Engine
	sched   *companion.FrameScheduler
	motion  *capability.SimulatedMotion
	screen  *core.Screen
	pointer *pointer
	keys    KeyMap
	help    help.Model
	input   core.InputFrame
	drawer  *Drawer
	started time.Time
	chain   uint64

	width, height int
	drawerOpen    bool
	quitting      bool
}

// NewModel builds the engine and its capability set for one screen.
func NewModel(opts Options) Model {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}

	sched := companion.NewFrameScheduler()
	motion := capability.NewSimulatedMotion(sched.Now)

	caps := capability.NewSet(opts.Logger)
	caps.Motion = motion
	caps.Haptics = opts.Haptics
	caps.Tone = opts.Tone

	engine := companion.NewEngine(opts.Config, caps, opts.Sink,
		companion.WithLogger(opts.Logger),
		companion.WithScheduler(sched),
		companion.WithRecorder(opts.Recorder),
		companion.WithSeed(opts.Runtime.Seed),
		companion.WithAccessoryGlyph(registry.Glyph),
	)

	m := Model{
		opts:    opts,
		engine:  engine,
		sched:   sched,
		motion:  motion,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		input:   core.NewInputFrame(),
		started: time.Now(),
		chain:   newChain(),
		width:   opts.Runtime.ScreenW,
		height:  opts.Runtime.ScreenH,
	}
	if opts.Wardrobe != nil {
		m.drawer = NewDrawer(opts.Wardrobe)
	}
	m.screen = core.NewScreen(1, 1)
	m.pointer = newPointer(opts.Config.Playfield, 1, 1)
	m.layout()
	return m
}

// Engine exposes the engine for hosts and tests.
func (m Model) Engine() *companion.Engine { return m.engine }

func (m Model) profile() avatar.Profile {
	if m.opts.Wardrobe != nil {
		return m.opts.Wardrobe.Profile()
	}
	return avatar.DefaultProfile()
}

// Init opens the companion and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.engine.Open(m.profile())
	return tickCmd(m.opts.Runtime.TickRate, m.chain)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case TickMsg:
		if msg.Chain != m.chain {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}
	return m, nil
}

// layout sizes the playfield to the window, keeping roughly the playfield's
// aspect ratio with cells twice as tall as they are wide.
func (m *Model) layout() {
	helpRows := lipgloss.Height(m.help.View(m.keys))
	rows := max(1, m.height-helpRows)
	avail := m.width
	if m.drawerOpen {
		avail -= drawerWidth
	}
	cols := max(1, avail)

	field := m.opts.Config.Playfield
	if field.Height > 0 {
		ideal := int(float64(rows) * field.Width / field.Height * 2)
		if ideal > 0 && ideal < cols {
			cols = ideal
		}
	}
	m.screen.Resize(cols, rows)
	m.pointer.resize(cols, rows)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		m.engine.Close()
		return m, tea.Quit
	}
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.drawerOpen {
		changed, closed := m.drawer.HandleKey(msg)
		if changed {
			m.engine.SetProfile(m.opts.Wardrobe.Profile())
		}
		if closed {
			m.drawerOpen = false
			m.layout()
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	switch a := m.keys.Action(msg); a {
	case core.ActionQuit:
		return m.quit()
	case core.ActionDrawer:
		if m.drawer != nil {
			m.drawerOpen = true
			m.layout()
		}
	case core.ActionBack:
		if m.engine.Session().Phase != companion.PhaseIdle {
			m.input.Set(core.ActionEndGame)
		}
	case core.ActionNone:
	default:
		m.input.Set(a)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.input.Set(core.ActionGrow)
			return m, nil
		case tea.MouseButtonWheelDown:
			m.input.Set(core.ActionShrink)
			return m, nil
		}
	}
	if ev, ok := m.pointer.mouse(msg, m.sched.Now()); ok {
		m.engine.Pointer(ev)
	}
	return m, nil
}

// handleTick applies queued keys, feeds the simulated sensor and fires one frame.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	m.applyInput()
	m.input.Clear()
	m.motion.Hold()
	m.sched.Fire(t.Sub(m.started))
	return m, tickCmd(m.opts.Runtime.TickRate, m.chain)
}

func (m *Model) applyInput() {
	in := m.input
	if in.Has(core.ActionStartGame) {
		m.engine.StartGame()
	}
	if in.Has(core.ActionEndGame) {
		m.engine.EndGame()
	}
	if in.Has(core.ActionThrowOrb) {
		m.engine.ThrowOrb()
	}
	if in.Has(core.ActionFeedTreat) {
		m.engine.FeedTreat()
	}

	// Synthetic gestures would collide with a real mouse drag.
	if !m.pointer.down {
		center := m.engine.Snapshot().Center
		now := m.sched.Now()
		if in.Has(core.ActionTap) {
			m.pointerAll(tapEvents(center, now))
		}
		if in.Has(core.ActionGrow) {
			m.pointerAll(pinchEvents(center, pinchFactor, now))
		}
		if in.Has(core.ActionShrink) {
			m.pointerAll(pinchEvents(center, 1/pinchFactor, now))
		}
	}

	if in.Has(core.ActionTiltLeft) {
		m.motion.Tilt(-tiltStep)
	}
	if in.Has(core.ActionTiltRight) {
		m.motion.Tilt(tiltStep)
	}
	if in.Has(core.ActionTiltLevel) {
		m.motion.Level()
	}
	if in.Has(core.ActionShake) {
		m.motion.Shake()
	}
}

func (m *Model) pointerAll(events []gesture.Event) {
	for _, ev := range events {
		m.engine.Pointer(ev)
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.engine.Close()
	if m.opts.Embedded {
		return m, nil
	}
	return m, tea.Quit
}

// Done reports that the user left the companion screen.
func (m Model) Done() bool { return m.quitting }

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	if m.opts.ScreenshotDir == "" {
		return
	}
	m.engine.Render(m.screen)

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.opts.ScreenshotDir, 0o755)

	name := fmt.Sprintf("companion_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(m.opts.ScreenshotDir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil && m.opts.Logger != nil {
		m.opts.Logger.Warn("screenshot failed", "path", path, "err", err)
	}
}

// View renders the playfield, the drawer when open, and the help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.engine.Render(m.screen)
	view := RenderScreen(m.screen, themeFor(m.engine.Backdrop()))
	if m.drawerOpen {
		view = lipgloss.JoinHorizontal(lipgloss.Top, view, m.drawer.View(m.screen.Height()))
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return view + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the companion screen in the current terminal.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Drag and wheel drive gestures
	)

	_, err := p.Run()
	return err
}
