package capability

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const toneSampleRate = beep.SampleRate(44100)

// BeepTone plays sine tones through the system speaker.
// The speaker is initialized lazily on the first Play.
type BeepTone struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	failed      error
	volume      float64
}

// NewBeepTone creates a tone adapter. volume is in beep's log2 scale,
// 0 is unchanged and negative values are quieter.
func NewBeepTone(volume float64) *BeepTone {
	return &BeepTone{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

func (b *BeepTone) init() error {
	if b.initialized {
		return nil
	}
	if b.failed != nil {
		return b.failed
	}
	if err := speaker.Init(toneSampleRate, toneSampleRate.N(100*time.Millisecond)); err != nil {
		b.failed = fmt.Errorf("%w: speaker: %v", ErrUnavailable, err)
		return b.failed
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Play queues a tone on the mixer and returns immediately.
func (b *BeepTone) Play(frequency float64, d time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.init(); err != nil {
		return err
	}

	s := beep.Take(toneSampleRate.N(d), newSine(toneSampleRate, frequency, d))
	speaker.Lock()
	b.mixer.Add(&effects.Volume{Streamer: s, Base: 2, Volume: b.volume})
	speaker.Unlock()
	return nil
}

// Close silences anything still queued.
func (b *BeepTone) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
}

// sine is a fixed-length sine wave with a short linear fade at both ends
// so tones don't click.
type sine struct {
	rate  beep.SampleRate
	freq  float64
	phase float64
	pos   int
	total int
	fade  int
}

func newSine(rate beep.SampleRate, freq float64, d time.Duration) *sine {
	total := rate.N(d)
	fade := rate.N(5 * time.Millisecond)
	if fade*2 > total {
		fade = total / 2
	}
	return &sine{rate: rate, freq: freq, total: total, fade: fade}
}

func (s *sine) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		v := 0.3 * math.Sin(2*math.Pi*s.phase) * s.envelope()
		samples[i][0] = v
		samples[i][1] = v

		s.phase += s.freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sine) envelope() float64 {
	if s.fade == 0 {
		return 1
	}
	if s.pos < s.fade {
		return float64(s.pos) / float64(s.fade)
	}
	if rem := s.total - s.pos; rem < s.fade {
		return float64(rem) / float64(s.fade)
	}
	return 1
}

func (s *sine) Err() error { return nil }
