package companion

import (
	"math"
	"time"

	"github.com/vovakirdan/companion/internal/core"
	"github.com/vovakirdan/companion/internal/gesture"
)

// Autopilot plays the catch game by dragging the avatar under the lowest
// falling object, through the same pointer path a player would use.
type Autopilot struct {
	// MaxStep caps how far the pointer moves per frame, in px.
	MaxStep float64

	holding bool
	pointer core.Vec
}

// NewAutopilot creates an autopilot moving at most maxStep px per frame.
func NewAutopilot(maxStep float64) *Autopilot {
	return &Autopilot{MaxStep: maxStep}
}

// Steer issues at most one pointer event for the current frame.
func (a *Autopilot) Steer(e *Engine) {
	s := e.Snapshot()
	if s.Session.Phase != PhaseActive {
		a.Release(e)
		return
	}

	target, ok := lowestObject(s)
	if !ok {
		return
	}
	if !a.holding {
		a.pointer = s.Center
		a.holding = true
		e.Pointer(gesture.Event{Phase: gesture.PhaseStart, Contacts: []core.Vec{a.pointer}, At: s.Now})
		return
	}

	// Avatar offset moves 1/damping px per pointer px.
	want := (target.X - s.Center.X) * e.cfg.Gesture.DragDamping
	step := core.ClampF(want, -a.MaxStep, a.MaxStep)
	if math.Abs(step) < 0.5 {
		return
	}
	a.pointer.X += step
	e.Pointer(gesture.Event{Phase: gesture.PhaseMove, Contacts: []core.Vec{a.pointer}, At: s.Now})
}

// Release lifts the pointer if it is down.
func (a *Autopilot) Release(e *Engine) {
	if !a.holding {
		return
	}
	a.holding = false
	e.Pointer(gesture.Event{Phase: gesture.PhaseEnd, At: e.now})
}

func lowestObject(s Snapshot) (core.Vec, bool) {
	best, found := core.Vec{}, false
	for _, o := range s.Objects {
		// Ignore anything already below the catch zone.
		if o.Pos.Y > s.Center.Y+s.HitRadius {
			continue
		}
		if !found || o.Pos.Y > best.Y {
			best, found = o.Pos, true
		}
	}
	return best, found
}

// Play runs one whole session on clock: start, steer every frame until the
// session ends or limit elapses, then lift the pointer. Reports whether the
// session ended within limit.
func (a *Autopilot) Play(e *Engine, clock *VirtualClock, limit time.Duration) (SessionState, bool) {
	e.StartGame()
	clock.Tick()

	ended := clock.AdvanceUntil(limit, func() bool {
		if e.Session().Phase == PhaseEnded {
			return true
		}
		a.Steer(e)
		return false
	})
	a.Release(e)
	return e.Session(), ended
}
