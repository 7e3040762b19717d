package companion

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/companion/internal/avatar"
	"github.com/vovakirdan/companion/internal/capability"
	"github.com/vovakirdan/companion/internal/config"
	"github.com/vovakirdan/companion/internal/core"
)

func TestRenderDrawsAvatarAndEntities(t *testing.T) {
	clock := NewVirtualClock(testStep)
	e := NewEngine(config.Default(), nil, nil, WithScheduler(clock),
		WithAccessoryGlyph(func(slot, id string) string {
			if slot == "hat" && id == "crown" {
				return "♔"
			}
			return ""
		}))
	e.Open(avatar.Profile{Energy: 50, Level: 1, Customization: map[string]string{"hat": "crown"}})
	defer e.Close()

	e.pools.spawnObjectAt(core.V(90, 100), Heart)
	e.pools.SpawnTreat(core.NewRNG(1), 270)

	scr := core.NewScreen(48, 32)
	e.Render(scr)
	out := scr.String()

	for _, want := range []string{"•ᴗ•", "♔", string(HeartChar), string(TreatChar)} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
	// Greeting bubble is visible right after open.
	if line, _, _ := e.feedback.Line(); !strings.Contains(out, line) {
		t.Errorf("render missing dialogue %q", line)
	}
}

func TestRenderHUDAndResult(t *testing.T) {
	cfg := config.Default()
	cfg.Session.Duration = time.Second
	clock := NewVirtualClock(testStep)
	e := NewEngine(cfg, nil, nil, WithScheduler(clock))
	e.Open(avatar.DefaultProfile())
	defer e.Close()

	e.StartGame()
	clock.Tick()
	scr := core.NewScreen(48, 32)
	e.Render(scr)
	if !strings.Contains(scr.Row(0), "Score 0") {
		t.Errorf("HUD row = %q, want score", scr.Row(0))
	}

	clock.Advance(2 * time.Second)
	e.Render(scr)
	if !strings.Contains(scr.String(), "TIME'S UP!") {
		t.Error("result banner missing after timeout")
	}
}

func TestRenderMarksRefusedMotion(t *testing.T) {
	clock := NewVirtualClock(testStep)
	m := capability.NewSimulatedMotion(clock.Now)
	m.Deny()
	caps := capability.NewSet(nil)
	caps.Motion = m

	e := NewEngine(config.Default(), caps, nil, WithScheduler(clock))
	e.Open(avatar.DefaultProfile())
	defer e.Close()

	s := e.Snapshot()
	if len(s.Unavailable) != 1 || s.Unavailable[0] != capability.KindMotion {
		t.Fatalf("unavailable = %v, want [motion]", s.Unavailable)
	}
	scr := core.NewScreen(48, 32)
	e.Render(scr)
	if row := scr.Row(31); !strings.HasSuffix(row, "no motion") {
		t.Errorf("bottom row = %q, want motion marker", row)
	}
}

func TestRenderEmptyScreen(t *testing.T) {
	e := NewEngine(config.Default(), nil, nil)
	e.Render(core.NewScreen(0, 0))
}

func TestAvatarSpriteSizes(t *testing.T) {
	s := Snapshot{Profile: avatar.Profile{Level: 1}}

	s.Anchor = avatar.NewAnchor(0.5, 2.5)
	if got := len(avatarSprite(s)); got != 3 {
		t.Errorf("normal sprite lines = %d, want 3", got)
	}
	s.Anchor.SetScale(0.5)
	if got := len(avatarSprite(s)); got != 1 {
		t.Errorf("small sprite lines = %d, want 1", got)
	}
	s.Anchor.SetScale(2.5)
	if got := len(avatarSprite(s)); got != 5 {
		t.Errorf("large sprite lines = %d, want 5", got)
	}
}
