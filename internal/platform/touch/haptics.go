package touch

import (
	"sort"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// hapticMagnitude is the strength of every pulse, 0-1.
const hapticMagnitude = 0.7

type pulse struct {
	due time.Duration
	on  time.Duration
}

// Haptics plays vibration patterns with ebiten.Vibrate. Ebitengine takes
// one pulse at a time, so patterns are queued and released by Pump on the
// game loop. Vibrate may be called from any goroutine.
type Haptics struct {
	mu      sync.Mutex
	now     func() time.Duration
	queue   []pulse
	vibrate func(d time.Duration)
}

// NewHaptics creates a vibrator stamping patterns with now.
func NewHaptics(now func() time.Duration) *Haptics {
	return &Haptics{
		now: now,
		vibrate: func(d time.Duration) {
			ebiten.Vibrate(&ebiten.VibrateOptions{Duration: d, Magnitude: hapticMagnitude})
		},
	}
}

// Vibrate queues pattern: alternating on and off durations, starting on.
func (h *Haptics) Vibrate(pattern []time.Duration) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	at := h.now()
	for i, d := range pattern {
		if i%2 == 0 && d > 0 {
			h.queue = append(h.queue, pulse{due: at, on: d})
		}
		at += d
	}
	sort.SliceStable(h.queue, func(i, j int) bool { return h.queue[i].due < h.queue[j].due })
	return nil
}

// Pump starts every pulse that is due by now.
func (h *Haptics) Pump(now time.Duration) {
	h.mu.Lock()
	n := 0
	for n < len(h.queue) && h.queue[n].due <= now {
		n++
	}
	due := append([]pulse(nil), h.queue[:n]...)
	h.queue = h.queue[n:]
	h.mu.Unlock()

	for _, p := range due {
		h.vibrate(p.on)
	}
}

// Pending returns the number of queued pulses.
func (h *Haptics) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queue)
}
