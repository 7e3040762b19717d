package companion

import (
	"github.com/vovakirdan/companion/internal/avatar"
	"github.com/vovakirdan/companion/internal/gesture"
	"github.com/vovakirdan/companion/internal/orientation"
)

// Pointer feeds one raw pointer event to the gesture recognizer.
// Drag and pinch move the avatar immediately; taps queue a trick.
func (e *Engine) Pointer(ev gesture.Event) {
	if !e.open {
		return
	}
	out := e.gestures.Handle(ev, e.anchor.Offset, e.anchor.Scale)
	if out.Kind.Releases() {
		e.anchor.Release()
	}
	switch out.Kind {
	case gesture.KindDrag:
		e.anchor.Drag(out.Offset)
	case gesture.KindPinch:
		e.anchor.SetScale(out.Scale)
	case gesture.KindTap:
		e.enqueue(trickIntent{trick: avatar.TrickHop})
	case gesture.KindDoubleTap:
		e.enqueue(trickIntent{trick: avatar.TrickSpin})
	}
}

// Orientation feeds one tilt sample. A shake queues a sparkle even during a
// game; the tilt nudge only applies while the avatar is free and no game is
// running.
func (e *Engine) Orientation(s orientation.Sample) {
	if !e.open {
		return
	}
	free := !e.gestures.Active() && !e.session.Active() && !e.anchor.Returning()
	r := e.orient.Observe(s, free)
	if r.Shake {
		e.enqueue(sparkleIntent{})
	}
	if r.Nudging {
		e.anchor.Nudge(r.Nudge)
	}
}

// StartGame begins a game on the next tick. Ignored while one is running.
func (e *Engine) StartGame() { e.enqueue(startGameIntent{}) }

// EndGame stops a running game, or dismisses a finished one, on the next tick.
func (e *Engine) EndGame() { e.enqueue(endGameIntent{}) }

// ThrowOrb throws an energy orb at the avatar on the next tick.
func (e *Engine) ThrowOrb() { e.enqueue(throwOrbIntent{}) }

// FeedTreat drops a treat above the avatar on the next tick.
func (e *Engine) FeedTreat() { e.enqueue(feedTreatIntent{}) }
