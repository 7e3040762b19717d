package companion

import (
	"time"

	"github.com/vovakirdan/companion/internal/avatar"
	"github.com/vovakirdan/companion/internal/capability"
	"github.com/vovakirdan/companion/internal/config"
	"github.com/vovakirdan/companion/internal/core"
	"github.com/vovakirdan/companion/internal/feedback"
	"github.com/vovakirdan/companion/internal/gesture"
)

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Open bool
	Now  time.Duration
	Tick uint64

	Field     config.PlayfieldConfig
	HitRadius float64
	Base      core.Vec
	Center    core.Vec
	Anchor    avatar.Anchor
	Profile   avatar.Profile
	Mood      avatar.Mood
	Gesture   gesture.Mode

	Orbs      []MovingEntity
	Treats    []MovingEntity
	Objects   []MovingEntity
	Particles []Particle

	Session SessionState

	Dialogue         string
	DialogueCategory feedback.Category
	DialogueVisible  bool

	Backdrop Backdrop
	Motion   bool
	// Unavailable lists capabilities that failed or were refused.
	Unavailable []capability.Kind
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	line, cat, visible := e.feedback.Line()
	return Snapshot{
		Open:             e.open,
		Now:              e.now,
		Tick:             e.tick,
		Field:            e.cfg.Playfield,
		HitRadius:        e.cfg.Avatar.HitRadius,
		Base:             e.base,
		Center:           e.center(),
		Anchor:           e.anchor,
		Profile:          e.profile,
		Mood:             e.profile.Mood(e.cfg.Feedback.MoodLow, e.cfg.Feedback.MoodHigh),
		Gesture:          e.gestures.Mode(),
		Orbs:             copyEntities(e.pools.Orbs),
		Treats:           copyEntities(e.pools.Treats),
		Objects:          copyEntities(e.pools.Objects),
		Particles:        copyParticles(e.pools.Particles),
		Session:          e.session.State(),
		Dialogue:         line,
		DialogueCategory: cat,
		DialogueVisible:  visible,
		Backdrop:         e.backdrop,
		Motion:           e.open && !e.orient.Disabled(),
		Unavailable:      e.unavailable(),
	}
}

func (e *Engine) unavailable() []capability.Kind {
	status := e.caps.Status()
	var out []capability.Kind
	for _, k := range capability.Kinds {
		if _, off := status[k]; off {
			out = append(out, k)
		}
	}
	return out
}

// Entities returns orbs, treats and falling objects together.
func (s Snapshot) Entities() []MovingEntity {
	out := make([]MovingEntity, 0, len(s.Orbs)+len(s.Treats)+len(s.Objects))
	out = append(out, s.Orbs...)
	out = append(out, s.Treats...)
	return append(out, s.Objects...)
}

func copyEntities(list []*MovingEntity) []MovingEntity {
	out := make([]MovingEntity, len(list))
	for i, e := range list {
		out[i] = *e
	}
	return out
}

func copyParticles(list []*Particle) []Particle {
	out := make([]Particle, len(list))
	for i, p := range list {
		out[i] = *p
	}
	return out
}
