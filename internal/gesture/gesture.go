// Package gesture turns raw pointer events into avatar manipulations:
// one-finger drag, two-finger pinch, tap and double-tap.
package gesture

import (
	"time"

	"github.com/vovakirdan/companion/internal/core"
)

// Phase is the lifecycle stage of a pointer event.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
	PhaseCancel
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	case PhaseCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Event is one pointer update. Contacts lists every point still touching
// the surface after the event, so an End that lifts the last finger has none.
type Event struct {
	Phase    Phase
	Contacts []core.Vec
	At       time.Duration
}

// Mode is the manipulation currently in progress.
type Mode int

const (
	ModeNone Mode = iota
	ModeDrag
	ModePinch
)

func (m Mode) String() string {
	switch m {
	case ModeDrag:
		return "drag"
	case ModePinch:
		return "pinch"
	default:
		return "none"
	}
}

// Kind classifies what an event did to the avatar.
type Kind int

const (
	KindNone Kind = iota
	KindDrag
	KindPinch
	KindRelease
	KindTap
	KindDoubleTap
)

func (k Kind) String() string {
	switch k {
	case KindDrag:
		return "drag"
	case KindPinch:
		return "pinch"
	case KindRelease:
		return "release"
	case KindTap:
		return "tap"
	case KindDoubleTap:
		return "double-tap"
	default:
		return "none"
	}
}

// Releases reports whether the outcome ends a manipulation.
func (k Kind) Releases() bool {
	return k == KindRelease || k == KindTap || k == KindDoubleTap
}

// Outcome is the result of handling one event.
// Offset is set for KindDrag, Scale for KindPinch.
type Outcome struct {
	Kind   Kind
	Offset core.Vec
	Scale  float64
}

// Config tunes recognition thresholds.
type Config struct {
	DragDamping     float64
	TapSlop         float64
	DoubleTapWindow time.Duration
	MinScale        float64
	MaxScale        float64
}
