// Package orientation interprets device-tilt samples as shake gestures and
// a smoothed horizontal nudge.
package orientation

import (
	"math"
	"time"

	"github.com/vovakirdan/companion/internal/core"
)

// Config tunes shake and nudge detection.
type Config struct {
	ShakeThreshold float64       // degrees of change between samples
	ShakeDebounce  time.Duration // window for the change and between shakes
	NudgeThreshold float64       // degrees of gamma tilt before nudging
	NudgeGain      float64       // px per degree of tilt
	NudgeClamp     float64       // max |nudge| in px
	NudgeSmoothing float64       // fraction of the gap closed per sample
}

// Reading is what one sample produced.
type Reading struct {
	Shake bool
	// Nudge is the smoothed horizontal offset. Only meaningful when Nudging.
	Nudge   float64
	Nudging bool
}

// Monitor tracks orientation history. Not safe for concurrent use.
type Monitor struct {
	cfg Config

	prev    Sample
	hasPrev bool

	lastShake time.Duration
	hasShaken bool

	nudge    float64
	disabled bool
}

// NewMonitor creates a monitor with the given thresholds.
func NewMonitor(cfg Config) *Monitor {
	return &Monitor{cfg: cfg}
}

// Disable stops all interpretation, for when the sensor is absent or denied.
func (m *Monitor) Disable() {
	m.disabled = true
	m.Reset()
}

// Enable turns interpretation back on.
func (m *Monitor) Enable() { m.disabled = false }

// Disabled reports whether the monitor ignores samples.
func (m *Monitor) Disabled() bool { return m.disabled }

// Reset forgets sample history and the current nudge.
func (m *Monitor) Reset() {
	m.prev = Sample{}
	m.hasPrev = false
	m.hasShaken = false
	m.lastShake = 0
	m.nudge = 0
}

// Nudge returns the current smoothed nudge.
func (m *Monitor) Nudge() float64 { return m.nudge }

// Observe processes a sample. nudgeAllowed is false while the avatar is
// being dragged or pinched, or a session is running; the nudge then decays
// to zero instead of following the tilt.
func (m *Monitor) Observe(s Sample, nudgeAllowed bool) Reading {
	if m.disabled {
		return Reading{}
	}

	var r Reading
	if m.hasPrev && s.At-m.prev.At <= m.cfg.ShakeDebounce {
		jolt := math.Max(math.Abs(s.Beta-m.prev.Beta), math.Abs(s.Gamma-m.prev.Gamma))
		if jolt > m.cfg.ShakeThreshold && m.shakeReady(s.At) {
			r.Shake = true
			m.lastShake = s.At
			m.hasShaken = true
		}
	}
	m.prev = s
	m.hasPrev = true

	target := 0.0
	if nudgeAllowed && math.Abs(s.Gamma) > m.cfg.NudgeThreshold {
		target = core.ClampF(s.Gamma*m.cfg.NudgeGain, -m.cfg.NudgeClamp, m.cfg.NudgeClamp)
	}
	if !nudgeAllowed {
		m.nudge = 0
		return r
	}
	prev := m.nudge
	m.nudge += (target - m.nudge) * m.cfg.NudgeSmoothing
	if math.Abs(m.nudge) < 0.01 && target == 0 {
		m.nudge = 0
	}
	// Inside the dead zone with nothing left to decay, leave the offset alone.
	if target == 0 && prev == 0 {
		return r
	}
	r.Nudge = m.nudge
	r.Nudging = true
	return r
}

func (m *Monitor) shakeReady(at time.Duration) bool {
	return !m.hasShaken || at-m.lastShake >= m.cfg.ShakeDebounce
}
