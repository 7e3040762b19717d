package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/companion/internal/companion"
	"github.com/vovakirdan/companion/internal/config"
	"github.com/vovakirdan/companion/internal/core"
	"github.com/vovakirdan/companion/internal/gesture"
	"github.com/vovakirdan/companion/internal/wardrobe"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, embedded bool) Model {
	t.Helper()
	m := NewModel(Options{
		Config:   config.Default(),
		Runtime:  core.RuntimeConfig{ScreenW: 60, ScreenH: 40, TickRate: 60, Seed: 7},
		Wardrobe: wardrobe.NewStore(nil, nil),
		Embedded: embedded,
	})
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init should start the tick loop")
	}
	return m
}

// step sends msg and returns the updated model.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out, cmd
}

// tick fires n frames 16ms apart starting after the last one.
func tick(t *testing.T, m Model, n int) Model {
	t.Helper()
	for range n {
		at := m.started.Add(m.sched.Now() + 16*time.Millisecond)
		m, _ = step(t, m, TickMsg{Time: at, Chain: m.chain})
	}
	return m
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{runeKey("g"), core.ActionStartGame},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStartGame},
		{runeKey("e"), core.ActionEndGame},
		{runeKey("o"), core.ActionThrowOrb},
		{runeKey("f"), core.ActionFeedTreat},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionTap},
		{runeKey("+"), core.ActionGrow},
		{runeKey("-"), core.ActionShrink},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionTiltLeft},
		{runeKey("d"), core.ActionTiltRight},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionTiltLevel},
		{runeKey("x"), core.ActionShake},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionDrawer},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{runeKey("q"), core.ActionQuit},
		{runeKey("z"), core.ActionNone},
	}
	for _, tt := range tests {
		if got := keys.Action(tt.msg); got != tt.want {
			t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestPointerMapsCellsToPlayfield(t *testing.T) {
	p := newPointer(config.PlayfieldConfig{Width: 360, Height: 640}, 36, 64)

	if got := p.toField(0, 0); got != core.V(5, 5) {
		t.Errorf("toField(0,0) = %v, want (5,5)", got)
	}
	if got := p.toField(35, 63); got != core.V(355, 635) {
		t.Errorf("toField(35,63) = %v, want (355,635)", got)
	}
}

func TestPointerMouseGesture(t *testing.T) {
	p := newPointer(config.PlayfieldConfig{Width: 360, Height: 640}, 36, 64)

	if _, ok := p.mouse(tea.MouseMsg{Action: tea.MouseActionMotion, X: 3, Y: 3}, 0); ok {
		t.Error("motion without a press should be ignored")
	}
	if _, ok := p.mouse(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, 0); ok {
		t.Error("right button should be ignored")
	}

	ev, ok := p.mouse(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: 10, Y: 20}, time.Second)
	if !ok || ev.Phase != gesture.PhaseStart || len(ev.Contacts) != 1 || ev.At != time.Second {
		t.Fatalf("press = %+v, %v", ev, ok)
	}
	ev, ok = p.mouse(tea.MouseMsg{Action: tea.MouseActionMotion, X: 12, Y: 20}, time.Second)
	if !ok || ev.Phase != gesture.PhaseMove {
		t.Fatalf("drag = %+v, %v", ev, ok)
	}
	ev, ok = p.mouse(tea.MouseMsg{Action: tea.MouseActionRelease, X: 12, Y: 20}, time.Second)
	if !ok || ev.Phase != gesture.PhaseEnd || len(ev.Contacts) != 0 {
		t.Fatalf("release = %+v, %v", ev, ok)
	}
	if p.down {
		t.Error("pointer still down after release")
	}
}

func TestStartGameKeyAppliesOnTick(t *testing.T) {
	m := newTestModel(t, false)

	m, _ = step(t, m, runeKey("g"))
	if m.Engine().Session().Phase != companion.PhaseIdle {
		t.Fatal("keys should only apply on the next tick")
	}

	m = tick(t, m, 1)
	if m.Engine().Session().Phase != companion.PhaseActive {
		t.Errorf("phase = %v, want active", m.Engine().Session().Phase)
	}
}

func TestStaleTickIgnored(t *testing.T) {
	m := newTestModel(t, false)
	m, _ = step(t, m, runeKey("g"))

	m, cmd := step(t, m, TickMsg{Time: m.started.Add(time.Second), Chain: m.chain + 1000})
	if cmd != nil {
		t.Error("stale tick should not schedule another")
	}
	if m.Engine().Session().Phase != companion.PhaseIdle {
		t.Error("stale tick fired a frame")
	}
}

func TestTiltKeyNudgesAvatar(t *testing.T) {
	m := newTestModel(t, false)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = tick(t, m, 20)

	if x := m.Engine().Snapshot().Anchor.Offset.X; x >= 0 {
		t.Errorf("offset x = %f after tilting left, want < 0", x)
	}
}

func TestGrowKeyPinchesAvatar(t *testing.T) {
	m := newTestModel(t, false)
	before := m.Engine().Snapshot().Anchor.Scale

	m, _ = step(t, m, runeKey("+"))
	m = tick(t, m, 1)

	if after := m.Engine().Snapshot().Anchor.Scale; after <= before {
		t.Errorf("scale %f -> %f, want growth", before, after)
	}
}

func TestDrawerEquipsAccessory(t *testing.T) {
	m := newTestModel(t, false)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.drawerOpen {
		t.Fatal("tab should open the drawer")
	}

	// First slot is hats; the first unlocked hat is the party hat.
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if id, ok := m.Engine().Profile().Accessory("hat"); !ok || id != "party-hat" {
		t.Errorf("engine hat = %q, %v; want party-hat", id, ok)
	}
	if !strings.Contains(m.View(), "Party Hat") {
		t.Error("drawer view should list the party hat")
	}

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.drawerOpen {
		t.Error("esc should close the drawer")
	}
	if m.Engine().Session().Phase != companion.PhaseIdle {
		t.Error("closing the drawer should not touch the session")
	}
}

func TestDrawerRejectsLockedItem(t *testing.T) {
	m := newTestModel(t, false)
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})

	// party-hat, beanie (L2), crown (L5)
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if _, ok := m.Engine().Profile().Accessory("hat"); ok {
		t.Error("locked beanie should not be equipped at level 1")
	}
	if !strings.Contains(m.drawer.status, "locked") {
		t.Errorf("status = %q, want a locked message", m.drawer.status)
	}
}

func TestQuitClosesEngine(t *testing.T) {
	m := newTestModel(t, false)

	m, cmd := step(t, m, runeKey("q"))
	if cmd == nil {
		t.Error("quit should return tea.Quit")
	}
	if !m.Done() || m.Engine().IsOpen() {
		t.Error("quit should close the engine")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestEmbeddedQuitReturnsToHost(t *testing.T) {
	m := newTestModel(t, true)

	m, cmd := step(t, m, runeKey("q"))
	if cmd != nil {
		t.Error("embedded quit should not end the program")
	}
	if !m.Done() {
		t.Error("embedded model should report done")
	}
}

func TestBackEndsRunningGame(t *testing.T) {
	m := newTestModel(t, false)
	m, _ = step(t, m, runeKey("g"))
	m = tick(t, m, 1)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = tick(t, m, 1)

	if m.Engine().Session().Phase != companion.PhaseIdle {
		t.Errorf("phase = %v, want idle after esc", m.Engine().Session().Phase)
	}
}

func TestViewIncludesHelp(t *testing.T) {
	m := newTestModel(t, false)
	m = tick(t, m, 1)

	view := m.View()
	if !strings.Contains(view, "catch game") {
		t.Error("view should include the help footer")
	}
}
