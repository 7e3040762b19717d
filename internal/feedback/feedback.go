// Package feedback shows the companion's speech bubble and plays the
// matching tone and vibration for each in-game event.
package feedback

import (
	"time"

	"github.com/vovakirdan/companion/internal/capability"
	"github.com/vovakirdan/companion/internal/config"
)

// Category selects a pool of dialogue lines.
type Category string

const (
	Greeting   Category = "greeting"
	Tap        Category = "tap"
	Spin       Category = "spin"
	CatchOrb   Category = "catch-orb"
	CatchTreat Category = "catch-treat"
	Sparkle    Category = "sparkle"
	LowState   Category = "low-state"
	HighState  Category = "high-state"
	GameStart  Category = "game-start"
	GameWin    Category = "game-win"
)

// Categories lists every dialogue category.
var Categories = []Category{
	Greeting, Tap, Spin, CatchOrb, CatchTreat, Sparkle,
	LowState, HighState, GameStart, GameWin,
}

// Cue keys that have a tone or vibration but no dialogue.
const (
	CueCatchObject = "catch-object"
	CueMiss        = "miss"
)

// Picker chooses an index in [0, n).
type Picker interface {
	Intn(n int) int
}

// Dispatcher owns the visible dialogue line.
// At most one line is visible; new lines are dropped until it clears.
type Dispatcher struct {
	lines    map[string][]string
	tones    map[string]config.ToneSpec
	haptics  map[string][]time.Duration
	duration time.Duration

	pick Picker
	caps *capability.Set

	line     string
	category Category
	expires  time.Duration
	visible  bool
}

// NewDispatcher creates a dispatcher from feedback config.
// caps may be nil, in which case cues are silent.
func NewDispatcher(cfg config.FeedbackConfig, pick Picker, caps *capability.Set) *Dispatcher {
	return &Dispatcher{
		lines:    cfg.Dialogue,
		tones:    cfg.Tones,
		haptics:  cfg.Haptics,
		duration: cfg.DialogueDuration,
		pick:     pick,
		caps:     caps,
	}
}

// Say shows a random line from cat's pool. It is dropped when another line
// is visible, a drag is in progress, or the pool is empty. Returns whether
// the line was shown; the caller clears it after Duration.
func (d *Dispatcher) Say(cat Category, now time.Duration, dragging bool) bool {
	if d.visible || dragging {
		return false
	}
	pool := d.lines[string(cat)]
	if len(pool) == 0 {
		return false
	}
	i := 0
	if d.pick != nil {
		i = d.pick.Intn(len(pool))
	}
	d.line = pool[i]
	d.category = cat
	d.expires = now + d.duration
	d.visible = true
	return true
}

// Cue plays the tone and vibration registered under key, if any.
// Failures never reach the caller.
func (d *Dispatcher) Cue(key string) {
	if d.caps == nil {
		return
	}
	if t, ok := d.tones[key]; ok {
		d.caps.PlayTone(t.Frequency, t.Duration)
	}
	if p, ok := d.haptics[key]; ok {
		d.caps.Vibrate(p)
	}
}

// Emit cues cat and tries to show a line for it.
func (d *Dispatcher) Emit(cat Category, now time.Duration, dragging bool) bool {
	d.Cue(string(cat))
	return d.Say(cat, now, dragging)
}

// Clear hides the current line.
func (d *Dispatcher) Clear() {
	d.line = ""
	d.category = ""
	d.visible = false
	d.expires = 0
}

// Duration is how long a line stays visible.
func (d *Dispatcher) Duration() time.Duration { return d.duration }

// Line returns the visible line and its category.
func (d *Dispatcher) Line() (string, Category, bool) {
	return d.line, d.category, d.visible
}

// Expires returns when the visible line is due to clear.
func (d *Dispatcher) Expires() time.Duration { return d.expires }
