package capability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/companion/internal/orientation"
)

type failingHaptics struct{ calls int }

func (f *failingHaptics) Vibrate([]time.Duration) error {
	f.calls++
	return ErrPermissionDenied
}

type recordingTone struct{ played []float64 }

func (r *recordingTone) Play(freq float64, _ time.Duration) error {
	r.played = append(r.played, freq)
	return nil
}

func TestSetDisablesFailingCapabilityOnce(t *testing.T) {
	var buf bytes.Buffer
	s := NewSet(log.New(&buf))
	h := &failingHaptics{}
	s.Haptics = h

	s.Vibrate([]time.Duration{10 * time.Millisecond})
	s.Vibrate([]time.Duration{10 * time.Millisecond})
	s.Vibrate([]time.Duration{10 * time.Millisecond})

	if h.calls != 1 {
		t.Errorf("adapter called %d times after failing, want 1", h.calls)
	}
	if s.Enabled(KindHaptics) {
		t.Error("haptics should be disabled after a failure")
	}
	if !errors.Is(s.Status()[KindHaptics], ErrPermissionDenied) {
		t.Errorf("status = %v, want permission denied", s.Status()[KindHaptics])
	}
	if n := strings.Count(buf.String(), "capability disabled"); n != 1 {
		t.Errorf("logged %d warnings, want 1", n)
	}
}

func TestSetTonePassesThrough(t *testing.T) {
	s := NewSet(nil)
	tone := &recordingTone{}
	s.Tone = tone

	s.PlayTone(660, 80*time.Millisecond)
	s.PlayTone(0, 80*time.Millisecond) // ignored

	if len(tone.played) != 1 || tone.played[0] != 660 {
		t.Errorf("played = %v, want [660]", tone.played)
	}
	if !s.Enabled(KindTone) {
		t.Error("tone should stay enabled")
	}
}

func TestNilSetIsSafe(t *testing.T) {
	var s *Set
	s.Vibrate([]time.Duration{time.Millisecond})
	s.PlayTone(440, time.Millisecond)
	if s.StartMotion(func(orientation.Sample) {}) {
		t.Error("nil set should not start motion")
	}
	if s.OpenCamera() {
		t.Error("nil set should not open camera")
	}
	s.Close()
}

func TestMissingCapabilitiesFallBack(t *testing.T) {
	s := NewSet(nil)
	s.Motion = NoMotion{}
	s.Camera = NoCamera{}

	if s.StartMotion(func(orientation.Sample) {}) {
		t.Error("NoMotion should not start")
	}
	if s.OpenCamera() {
		t.Error("NoCamera should not open")
	}
	if !errors.Is(s.Status()[KindCamera], ErrUnavailable) {
		t.Errorf("camera status = %v, want unavailable", s.Status()[KindCamera])
	}
	if s.Enabled(KindHaptics) {
		t.Error("unset haptics should report disabled")
	}
}

func TestSimulatedMotion(t *testing.T) {
	now := 5 * time.Second
	m := NewSimulatedMotion(func() time.Duration { return now })
	s := NewSet(nil)
	s.Motion = m

	var got []orientation.Sample
	if !s.StartMotion(func(o orientation.Sample) { got = append(got, o) }) {
		t.Fatal("simulated motion should start")
	}

	m.Tilt(10)
	m.Tilt(100)
	if len(got) != 2 {
		t.Fatalf("got %d samples, want 2", len(got))
	}
	if got[1].Gamma != 90 {
		t.Errorf("gamma = %f, want clamp at 90", got[1].Gamma)
	}
	if got[0].At != now {
		t.Errorf("sample time = %v, want %v", got[0].At, now)
	}

	m.Shake()
	if len(got) != 4 {
		t.Fatalf("shake should emit two samples, got %d total", len(got))
	}
	if d := got[2].Beta - got[1].Beta; d <= 25 {
		t.Errorf("shake jolt = %f degrees, want > 25", d)
	}

	m.Hold()
	if len(got) != 5 || got[4].Gamma != 90 || got[4].Beta != 0 {
		t.Errorf("hold should repeat the current attitude, got %+v", got[len(got)-1])
	}

	s.Close()
	m.Level()
	if len(got) != 4 {
		t.Error("samples delivered after stop")
	}
}

func TestSimulatedMotionDenied(t *testing.T) {
	m := NewSimulatedMotion(nil)
	m.Deny()
	s := NewSet(nil)
	s.Motion = m

	if s.StartMotion(func(orientation.Sample) {}) {
		t.Fatal("denied motion should not start")
	}
	if !errors.Is(s.Status()[KindMotion], ErrPermissionDenied) {
		t.Errorf("status = %v, want permission denied", s.Status()[KindMotion])
	}
}

func TestBellHaptics(t *testing.T) {
	var buf bytes.Buffer
	b := NewBellHaptics(&buf)

	if err := b.Vibrate([]time.Duration{20, 40, 20}); err != nil {
		t.Fatalf("Vibrate: %v", err)
	}
	if buf.String() != "\a\a" {
		t.Errorf("wrote %q, want two bells", buf.String())
	}

	buf.Reset()
	long := make([]time.Duration, 20)
	_ = b.Vibrate(long)
	if buf.Len() != maxRings {
		t.Errorf("long pattern rang %d times, want %d", buf.Len(), maxRings)
	}

	if err := NewBellHaptics(nil).Vibrate(long); !errors.Is(err, ErrUnavailable) {
		t.Errorf("nil writer err = %v, want unavailable", err)
	}
}

func TestSineLength(t *testing.T) {
	s := newSine(toneSampleRate, 440, 10*time.Millisecond)
	want := toneSampleRate.N(10 * time.Millisecond)

	buf := make([][2]float64, 128)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		for i := 0; i < n; i++ {
			if buf[i][0] > 0.3 || buf[i][0] < -0.3 {
				t.Fatalf("sample %f exceeds amplitude", buf[i][0])
			}
		}
		if !ok {
			break
		}
	}
	if total != want {
		t.Errorf("streamed %d samples, want %d", total, want)
	}
}
