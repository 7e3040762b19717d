package capability

import (
	"sync"
	"time"

	"github.com/vovakirdan/companion/internal/orientation"
)

// SimulatedMotion is a motion source driven by keyboard input.
// It keeps a current tilt and pushes a sample on every change.
type SimulatedMotion struct {
	mu    sync.Mutex
	sink  func(orientation.Sample)
	now   func() time.Duration
	beta  float64
	gamma float64
	deny  bool
}

// NewSimulatedMotion creates a simulated sensor. now stamps each sample.
func NewSimulatedMotion(now func() time.Duration) *SimulatedMotion {
	return &SimulatedMotion{now: now}
}

// Deny makes the next Start fail as if the user refused permission.
func (m *SimulatedMotion) Deny() {
	m.mu.Lock()
	m.deny = true
	m.mu.Unlock()
}

func (m *SimulatedMotion) Start(sink func(orientation.Sample)) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deny {
		return nil, ErrPermissionDenied
	}
	m.sink = sink
	return func() {
		m.mu.Lock()
		m.sink = nil
		m.mu.Unlock()
	}, nil
}

// Tilt adds delta degrees of left/right tilt, clamped to ±90.
func (m *SimulatedMotion) Tilt(delta float64) {
	m.mu.Lock()
	m.gamma = clampDeg(m.gamma + delta)
	m.mu.Unlock()
	m.emit()
}

// Level returns the device to flat.
func (m *SimulatedMotion) Level() {
	m.mu.Lock()
	m.beta, m.gamma = 0, 0
	m.mu.Unlock()
	m.emit()
}

// Shake jolts the device forward and back again.
func (m *SimulatedMotion) Shake() {
	m.mu.Lock()
	base := m.beta
	m.beta = clampDeg(base + 40)
	m.mu.Unlock()
	m.emit()

	m.mu.Lock()
	m.beta = base
	m.mu.Unlock()
	m.emit()
}

// Hold re-sends the current attitude. Frontends call it once per frame so
// the stream looks like a real sensor's.
func (m *SimulatedMotion) Hold() {
	m.emit()
}

// Gamma returns the current left/right tilt.
func (m *SimulatedMotion) Gamma() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamma
}

func (m *SimulatedMotion) emit() {
	m.mu.Lock()
	sink := m.sink
	s := orientation.Sample{Beta: m.beta, Gamma: m.gamma}
	if m.now != nil {
		s.At = m.now()
	}
	m.mu.Unlock()
	if sink != nil {
		sink(s)
	}
}

func clampDeg(v float64) float64 {
	if v > 90 {
		return 90
	}
	if v < -90 {
		return -90
	}
	return v
}
