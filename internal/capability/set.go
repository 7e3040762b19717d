package capability

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/companion/internal/orientation"
)

// Set bundles the capabilities available to one engine instance.
// Nil fields behave like the No* adapters. The first failure of a capability
// disables it and is logged once; later calls are silent no-ops.
type Set struct {
	Motion  Motion
	Haptics Haptics
	Tone    Tone
	Camera  Camera

	logger *log.Logger

	mu         sync.Mutex
	disabled   map[Kind]error
	stopMotion func()
	cameraOpen bool
}

// NewSet creates a capability set. A nil logger discards warnings.
func NewSet(logger *log.Logger) *Set {
	return &Set{
		logger:   logger,
		disabled: make(map[Kind]error),
	}
}

// Enabled reports whether a capability is present and has not failed.
func (s *Set) Enabled(k Kind) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, off := s.disabled[k]; off {
		return false
	}
	switch k {
	case KindMotion:
		return s.Motion != nil
	case KindHaptics:
		return s.Haptics != nil
	case KindTone:
		return s.Tone != nil
	case KindCamera:
		return s.Camera != nil
	}
	return false
}

// Status returns the reason each disabled capability was switched off.
func (s *Set) Status() map[Kind]error {
	out := make(map[Kind]error)
	if s == nil {
		return out
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, err := range s.disabled {
		out[k] = err
	}
	return out
}

// disable records the failure and logs it the first time.
// Caller must hold s.mu.
func (s *Set) disable(k Kind, err error) {
	if _, seen := s.disabled[k]; seen {
		return
	}
	if s.disabled == nil {
		s.disabled = make(map[Kind]error)
	}
	s.disabled[k] = err
	if s.logger != nil {
		s.logger.Warn("capability disabled", "capability", string(k), "err", err)
	}
}

// StartMotion subscribes sink to the motion sensor.
// Returns false if motion is absent, denied, or already failed.
func (s *Set) StartMotion(sink func(orientation.Sample)) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	m := s.Motion
	_, off := s.disabled[KindMotion]
	running := s.stopMotion != nil
	s.mu.Unlock()
	if off || m == nil {
		return false
	}
	if running {
		return true
	}

	// Start may deliver a first sample synchronously; the lock is not held.
	stop, err := m.Start(sink)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.disable(KindMotion, err)
		return false
	}
	if stop == nil {
		stop = func() {}
	}
	s.stopMotion = stop
	return true
}

// StopMotion ends the motion subscription, if any.
func (s *Set) StopMotion() {
	if s == nil {
		return
	}
	s.mu.Lock()
	stop := s.stopMotion
	s.stopMotion = nil
	s.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// Vibrate plays a haptic pattern. Failures are swallowed.
func (s *Set) Vibrate(pattern []time.Duration) {
	if s == nil || len(pattern) == 0 {
		return
	}
	s.mu.Lock()
	h := s.Haptics
	_, off := s.disabled[KindHaptics]
	s.mu.Unlock()
	if off || h == nil {
		return
	}
	if err := h.Vibrate(pattern); err != nil {
		s.mu.Lock()
		s.disable(KindHaptics, err)
		s.mu.Unlock()
	}
}

// PlayTone plays a short tone. Failures are swallowed.
func (s *Set) PlayTone(frequency float64, d time.Duration) {
	if s == nil || frequency <= 0 || d <= 0 {
		return
	}
	s.mu.Lock()
	t := s.Tone
	_, off := s.disabled[KindTone]
	s.mu.Unlock()
	if off || t == nil {
		return
	}
	if err := t.Play(frequency, d); err != nil {
		s.mu.Lock()
		s.disable(KindTone, err)
		s.mu.Unlock()
	}
}

// OpenCamera tries to start the camera backdrop.
// Returns false when the frontend should fall back to the fantasy backdrop.
func (s *Set) OpenCamera() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, off := s.disabled[KindCamera]; off || s.Camera == nil {
		return false
	}
	if s.cameraOpen {
		return true
	}
	if err := s.Camera.Open(); err != nil {
		s.disable(KindCamera, err)
		return false
	}
	s.cameraOpen = true
	return true
}

// Close releases motion and camera. Safe to call more than once.
func (s *Set) Close() {
	if s == nil {
		return
	}
	s.StopMotion()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cameraOpen && s.Camera != nil {
		if err := s.Camera.Close(); err != nil && s.logger != nil {
			s.logger.Warn("camera close failed", "err", err)
		}
	}
	s.cameraOpen = false
}
