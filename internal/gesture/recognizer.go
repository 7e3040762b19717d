package gesture

import (
	"time"

	"github.com/vovakirdan/companion/internal/core"
)

// state is the per-gesture bookkeeping. Everything except the last tap
// is cleared when the final contact lifts.
type state struct {
	mode Mode

	// drag
	origin  core.Vec // point that maps to zero offset
	start   core.Vec // first contact, for tap slop
	dragged bool     // moved beyond the tap slop
	multi   bool     // a second finger joined at some point

	// pinch
	pinchDist  float64
	pinchScale float64
}

// Recognizer classifies pointer events. Not safe for concurrent use.
type Recognizer struct {
	cfg Config
	st  state

	lastTap time.Duration
	hasTap  bool
}

// NewRecognizer creates a recognizer. Non-positive damping is treated as 1.
func NewRecognizer(cfg Config) *Recognizer {
	if cfg.DragDamping <= 0 {
		cfg.DragDamping = 1
	}
	return &Recognizer{cfg: cfg}
}

// Mode returns the manipulation in progress.
func (r *Recognizer) Mode() Mode { return r.st.mode }

// Active reports whether a drag or pinch is in progress.
func (r *Recognizer) Active() bool { return r.st.mode != ModeNone }

// Reset abandons any gesture in progress and forgets the last tap.
func (r *Recognizer) Reset() {
	r.st = state{}
	r.hasTap = false
}

// Handle processes one event. offset and scale are the avatar's current
// transform, used as the baseline when a drag or pinch begins.
func (r *Recognizer) Handle(ev Event, offset core.Vec, scale float64) Outcome {
	n := len(ev.Contacts)

	switch ev.Phase {
	case PhaseStart, PhaseMove:
		switch {
		case n == 0:
			// Stray event with nothing touching.
			return r.abandon()
		case n == 1:
			if r.st.mode != ModeDrag {
				r.beginDrag(ev.Contacts[0], offset)
				if ev.Phase == PhaseStart {
					return Outcome{}
				}
			}
			return r.moveDrag(ev.Contacts[0])
		default:
			if r.st.mode != ModePinch {
				r.beginPinch(ev.Contacts[0], ev.Contacts[1], scale)
				return Outcome{}
			}
			return r.movePinch(ev.Contacts[0], ev.Contacts[1])
		}

	case PhaseEnd:
		switch {
		case n == 0:
			return r.finish(ev.At)
		case n == 1:
			// Pinch down to one finger: continue as a fresh drag.
			r.beginDrag(ev.Contacts[0], offset)
			r.st.multi = true
			return Outcome{}
		default:
			r.beginPinch(ev.Contacts[0], ev.Contacts[1], scale)
			return Outcome{}
		}

	case PhaseCancel:
		return r.abandon()
	}

	return r.abandon()
}

func (r *Recognizer) beginDrag(p, offset core.Vec) {
	multi := r.st.multi || r.st.mode == ModePinch
	r.st = state{
		mode:   ModeDrag,
		origin: p.Sub(offset.Scale(r.cfg.DragDamping)),
		start:  p,
		multi:  multi,
	}
}

func (r *Recognizer) moveDrag(p core.Vec) Outcome {
	if p.Dist(r.st.start) > r.cfg.TapSlop {
		r.st.dragged = true
	}
	return Outcome{
		Kind:   KindDrag,
		Offset: p.Sub(r.st.origin).Scale(1 / r.cfg.DragDamping),
	}
}

func (r *Recognizer) beginPinch(a, b core.Vec, scale float64) {
	r.st = state{
		mode:       ModePinch,
		pinchDist:  a.Dist(b),
		pinchScale: scale,
		multi:      true,
	}
}

func (r *Recognizer) movePinch(a, b core.Vec) Outcome {
	if r.st.pinchDist <= 0 {
		// Fingers started on the same point; rebase on this move.
		r.st.pinchDist = a.Dist(b)
		return Outcome{}
	}
	s := r.st.pinchScale * a.Dist(b) / r.st.pinchDist
	return Outcome{
		Kind:  KindPinch,
		Scale: core.ClampF(s, r.cfg.MinScale, r.cfg.MaxScale),
	}
}

// finish handles the last contact lifting.
func (r *Recognizer) finish(at time.Duration) Outcome {
	prev := r.st
	r.st = state{}

	switch prev.mode {
	case ModeNone:
		return Outcome{}
	case ModePinch:
		r.hasTap = false
		return Outcome{Kind: KindRelease}
	}

	if prev.dragged || prev.multi {
		r.hasTap = false
		return Outcome{Kind: KindRelease}
	}

	if r.hasTap && at-r.lastTap <= r.cfg.DoubleTapWindow {
		r.hasTap = false
		return Outcome{Kind: KindDoubleTap}
	}
	r.lastTap = at
	r.hasTap = true
	return Outcome{Kind: KindTap}
}

// abandon drops the current gesture without classifying it.
func (r *Recognizer) abandon() Outcome {
	wasActive := r.st.mode != ModeNone
	r.st = state{}
	if wasActive {
		return Outcome{Kind: KindRelease}
	}
	return Outcome{}
}
