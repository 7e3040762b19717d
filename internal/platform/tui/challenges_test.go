package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/companion/internal/config"
	"github.com/vovakirdan/companion/internal/core"
	"github.com/vovakirdan/companion/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoadChallengeRows(t *testing.T) {
	store := openStore(t)
	store.AddProgress("catch", 60)
	store.AddProgress("feed", 5)

	challenges := []config.Challenge{
		{Key: "catch", Title: "Catch 50", Target: 50},
		{Key: "feed", Title: "Feed 20", Target: 20},
		{Key: "trick", Title: "Trick 30", Target: 30},
	}
	rows, err := LoadChallengeRows(store, challenges)
	if err != nil {
		t.Fatalf("LoadChallengeRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if !rows[0].Done() || rows[1].Done() || rows[2].Done() {
		t.Errorf("done flags = %v %v %v, want true false false", rows[0].Done(), rows[1].Done(), rows[2].Done())
	}
	if rows[1].Progress != 5 || rows[2].Progress != 0 {
		t.Errorf("progress = %d %d, want 5 0", rows[1].Progress, rows[2].Progress)
	}
}

func TestChallengesWithoutStore(t *testing.T) {
	rows, err := LoadChallengeRows(nil, config.Default().Challenges)
	if err != nil {
		t.Fatalf("LoadChallengeRows(nil): %v", err)
	}
	for _, r := range rows {
		if r.Progress != 0 {
			t.Errorf("%s progress = %d without a store", r.Key, r.Progress)
		}
	}

	m := NewChallengesModel(nil, config.Default().Challenges, 80, 30)
	if !strings.Contains(m.View(), "CHALLENGES") {
		t.Error("view should render a title")
	}
}

func TestChallengesTabsAndBack(t *testing.T) {
	store := openStore(t)
	store.SaveRun(storage.RunEntry{Score: 120, Reason: "timeout"})

	m := NewChallengesModel(store, config.Default().Challenges, 100, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ChallengesModel)
	if m.tab != tabRuns {
		t.Fatalf("tab = %v, want runs", m.tab)
	}
	if !strings.Contains(m.View(), "120") {
		t.Error("runs tab should show the saved score")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ChallengesModel)
	if !m.IsGoingBack() || cmd == nil {
		t.Error("esc should go back")
	}
}

func TestMenuSelection(t *testing.T) {
	m := NewMenuModel(nil, "Pip", core.DefaultConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)

	if m.Selected() != ScreenChallenges {
		t.Errorf("selected = %v, want challenges", m.Selected())
	}
	if cmd == nil {
		t.Error("selecting should exit the menu program")
	}
}

func TestSessionModelFlow(t *testing.T) {
	s := NewSessionModel(nil, Options{
		Config:   config.Default(),
		Runtime:  core.RuntimeConfig{ScreenW: 60, ScreenH: 40, TickRate: 30, Seed: 3},
		Embedded: true,
	})

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	if s.companion == nil {
		t.Fatal("enter on the first item should open the companion")
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	s = next.(SessionModel)
	if s.companion != nil || s.quitting {
		t.Error("q in the companion should return to the menu")
	}

	next, cmd := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	s = next.(SessionModel)
	if !s.quitting || cmd == nil {
		t.Error("q in the menu should end the session")
	}
}
