// Package avatar holds the companion's on-screen transform and the read-only
// profile it is opened with.
package avatar

import (
	"math"

	"github.com/vovakirdan/companion/internal/core"
)

// Anchor is the avatar's transform relative to its base position.
// Collision uses Offset; Hop and Rotation are visual only.
type Anchor struct {
	Offset   core.Vec
	Scale    float64
	Rotation float64 // degrees
	Hop      float64 // upward lift in px

	minScale float64
	maxScale float64

	returning bool
	trick     trickState
}

// NewAnchor creates an anchor at rest with scale 1 clamped to [minScale, maxScale].
func NewAnchor(minScale, maxScale float64) Anchor {
	a := Anchor{minScale: minScale, maxScale: maxScale}
	a.Scale = a.ClampScale(1)
	return a
}

// ClampScale limits s to the anchor's scale range.
func (a *Anchor) ClampScale(s float64) float64 {
	return core.ClampF(s, a.minScale, a.maxScale)
}

// SetScale stores s clamped to the scale range.
func (a *Anchor) SetScale(s float64) {
	a.Scale = a.ClampScale(s)
}

// Drag moves the avatar to a new offset and stops any spring-back.
func (a *Anchor) Drag(offset core.Vec) {
	a.Offset = offset
	a.returning = false
}

// Nudge sets the horizontal offset from device tilt.
func (a *Anchor) Nudge(x float64) {
	a.Offset.X = x
}

// Release starts springing the offset back to zero.
func (a *Anchor) Release() {
	a.returning = a.Offset != core.Vec{}
}

// Returning reports whether a spring-back is in progress.
func (a Anchor) Returning() bool { return a.returning }

// Settle advances the spring-back one tick: the offset shrinks by decay
// and snaps to zero once its length drops below snap.
func (a *Anchor) Settle(decay, snap float64) {
	if !a.returning {
		return
	}
	a.Offset = a.Offset.Scale(decay)
	if a.Offset.Len() < snap {
		a.Offset = core.Vec{}
		a.returning = false
	}
}

// Reset puts the anchor back at rest with scale 1.
func (a *Anchor) Reset() {
	a.Offset = core.Vec{}
	a.Scale = a.ClampScale(1)
	a.Rotation = 0
	a.Hop = 0
	a.returning = false
	a.trick = trickState{}
}

// Center returns the avatar's collision center for the given base position.
func (a *Anchor) Center(base core.Vec) core.Vec {
	return base.Add(a.Offset)
}

// Trick animations.

// Trick identifies a one-shot avatar animation.
type Trick int

const (
	TrickNone Trick = iota
	TrickHop
	TrickSpin
)

func (t Trick) String() string {
	switch t {
	case TrickHop:
		return "hop"
	case TrickSpin:
		return "spin"
	default:
		return "none"
	}
}

const (
	hopTicks    = 24
	hopHeight   = 28.0
	spinTicks   = 36
	spinDegrees = 360.0
)

type trickState struct {
	kind Trick
	tick int
}

// StartTrick begins an animation, replacing any in progress.
func (a *Anchor) StartTrick(t Trick) {
	a.trick = trickState{kind: t}
	a.Hop = 0
	a.Rotation = 0
}

// ActiveTrick returns the animation currently playing.
func (a Anchor) ActiveTrick() Trick { return a.trick.kind }

// Animate advances the current trick one tick.
func (a *Anchor) Animate() {
	switch a.trick.kind {
	case TrickHop:
		a.trick.tick++
		p := float64(a.trick.tick) / hopTicks
		a.Hop = hopHeight * math.Sin(math.Pi*p)
		if a.trick.tick >= hopTicks {
			a.Hop = 0
			a.trick = trickState{}
		}
	case TrickSpin:
		a.trick.tick++
		a.Rotation = spinDegrees * float64(a.trick.tick) / spinTicks
		if a.trick.tick >= spinTicks {
			a.Rotation = 0
			a.trick = trickState{}
		}
	}
}
