package touch

import (
	"testing"
	"time"

	"github.com/vovakirdan/companion/internal/core"
	"github.com/vovakirdan/companion/internal/gesture"
)

func TestTrackerPhases(t *testing.T) {
	var tr tracker
	a, b := core.V(10, 10), core.V(60, 10)

	if evs := tr.update(nil, 0); len(evs) != 0 {
		t.Fatalf("idle frame produced %v", evs)
	}

	steps := []struct {
		contacts []core.Vec
		want     gesture.Phase
		n        int
	}{
		{[]core.Vec{a}, gesture.PhaseStart, 1},
		{[]core.Vec{a.Add(core.V(5, 0))}, gesture.PhaseMove, 1},
		{[]core.Vec{a.Add(core.V(5, 0)), b}, gesture.PhaseStart, 2},
		{[]core.Vec{a, b.Add(core.V(20, 0))}, gesture.PhaseMove, 2},
		{[]core.Vec{a}, gesture.PhaseEnd, 1},
		{nil, gesture.PhaseEnd, 0},
	}
	for i, st := range steps {
		evs := tr.update(st.contacts, time.Duration(i)*time.Millisecond)
		if len(evs) != 1 {
			t.Fatalf("step %d: got %d events, want 1", i, len(evs))
		}
		if evs[0].Phase != st.want || len(evs[0].Contacts) != st.n {
			t.Errorf("step %d: phase %v with %d contacts, want %v with %d",
				i, evs[0].Phase, len(evs[0].Contacts), st.want, st.n)
		}
	}
}

func TestTrackerStillContactIsQuiet(t *testing.T) {
	var tr tracker
	p := []core.Vec{core.V(1, 2)}
	tr.update(p, 0)
	if evs := tr.update([]core.Vec{core.V(1, 2)}, time.Millisecond); len(evs) != 0 {
		t.Errorf("unchanged contact produced %v", evs)
	}
}

func TestTrackerCopiesContacts(t *testing.T) {
	var tr tracker
	buf := []core.Vec{core.V(1, 1)}
	tr.update(buf, 0)
	buf[0] = core.V(50, 50)

	evs := tr.update(buf, time.Millisecond)
	if len(evs) != 1 || evs[0].Phase != gesture.PhaseMove {
		t.Errorf("reused buffer hid a move: %v", evs)
	}
}

func TestTrackerCancel(t *testing.T) {
	var tr tracker
	if evs := tr.cancel(0); len(evs) != 0 {
		t.Error("cancel with nothing down should be silent")
	}
	tr.update([]core.Vec{core.V(1, 1)}, 0)
	evs := tr.cancel(time.Millisecond)
	if len(evs) != 1 || evs[0].Phase != gesture.PhaseCancel {
		t.Fatalf("cancel = %v", evs)
	}
	if evs := tr.update([]core.Vec{core.V(1, 1)}, 2*time.Millisecond); len(evs) != 1 || evs[0].Phase != gesture.PhaseStart {
		t.Errorf("contact after cancel should start fresh, got %v", evs)
	}
}

func TestHapticsPattern(t *testing.T) {
	now := 100 * time.Millisecond
	h := NewHaptics(func() time.Duration { return now })
	var played []time.Duration
	h.vibrate = func(d time.Duration) { played = append(played, d) }

	h.Vibrate([]time.Duration{30 * time.Millisecond, 50 * time.Millisecond, 40 * time.Millisecond})
	if h.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", h.Pending())
	}

	h.Pump(now)
	if len(played) != 1 || played[0] != 30*time.Millisecond {
		t.Fatalf("first pump played %v", played)
	}

	h.Pump(now + 79*time.Millisecond)
	if len(played) != 1 {
		t.Errorf("second pulse fired early: %v", played)
	}
	h.Pump(now + 80*time.Millisecond)
	if len(played) != 2 || played[1] != 40*time.Millisecond {
		t.Errorf("second pump played %v", played)
	}
	if h.Pending() != 0 {
		t.Errorf("pending = %d after pattern", h.Pending())
	}
}

func TestFadeScalesAlpha(t *testing.T) {
	c := fade(rgba(core.ColorWhite), 0.5)
	if c.A != 127 {
		t.Errorf("alpha = %d, want 127", c.A)
	}
	if c := fade(rgba(core.ColorWhite), 2); c.A != 255 {
		t.Errorf("alpha = %d, want clamp at 255", c.A)
	}
}
