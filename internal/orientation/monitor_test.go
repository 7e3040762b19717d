package orientation

import (
	"math"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		ShakeThreshold: 25,
		ShakeDebounce:  time.Second,
		NudgeThreshold: 6,
		NudgeGain:      2.5,
		NudgeClamp:     60,
		NudgeSmoothing: 0.25,
	}
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func TestShakeDetection(t *testing.T) {
	m := NewMonitor(testConfig())

	m.Observe(Sample{At: 0}, true)
	if r := m.Observe(Sample{Beta: 20, At: ms(50)}, true); r.Shake {
		t.Error("20 degree change should not shake")
	}
	if r := m.Observe(Sample{Beta: 50, At: ms(100)}, true); !r.Shake {
		t.Error("30 degree change should shake")
	}
}

func TestShakeEitherAxis(t *testing.T) {
	m := NewMonitor(testConfig())

	m.Observe(Sample{At: 0}, false)
	if r := m.Observe(Sample{Gamma: -26, At: ms(20)}, false); !r.Shake {
		t.Error("gamma jolt should shake")
	}
}

func TestShakeRateLimited(t *testing.T) {
	m := NewMonitor(testConfig())

	m.Observe(Sample{At: 0}, true)
	shakes := 0
	// Violent shaking every 50ms for 2.5 seconds.
	for i := 1; i <= 50; i++ {
		beta := 0.0
		if i%2 == 1 {
			beta = 60
		}
		if m.Observe(Sample{Beta: beta, At: ms(i * 50)}, true).Shake {
			shakes++
		}
	}
	// Shakes at 50ms, 1050ms, 2050ms.
	if shakes != 3 {
		t.Errorf("got %d shakes in 2.5s, want 3", shakes)
	}
}

func TestSlowTiltIsNotShake(t *testing.T) {
	m := NewMonitor(testConfig())

	m.Observe(Sample{At: 0}, true)
	if r := m.Observe(Sample{Beta: 80, At: ms(1500)}, true); r.Shake {
		t.Error("change spread over longer than the window should not shake")
	}
}

func TestNudgeFollowsLatestTilt(t *testing.T) {
	m := NewMonitor(testConfig())

	// A steady 20 degree tilt converges on 50px and stays there.
	var r Reading
	for i := 0; i < 200; i++ {
		r = m.Observe(Sample{Gamma: 20, At: ms(i * 16)}, true)
	}
	if !r.Nudging || math.Abs(r.Nudge-50) > 0.01 {
		t.Errorf("steady nudge = %f, want 50", r.Nudge)
	}

	// Extreme tilt is clamped.
	for i := 0; i < 200; i++ {
		r = m.Observe(Sample{Gamma: -80, At: ms(4000 + i*16)}, true)
	}
	if math.Abs(r.Nudge+60) > 0.01 {
		t.Errorf("clamped nudge = %f, want -60", r.Nudge)
	}
}

func TestNudgeSmoothingStep(t *testing.T) {
	m := NewMonitor(testConfig())

	r := m.Observe(Sample{Gamma: 10}, true)
	// target 25, one step of 0.25
	if math.Abs(r.Nudge-6.25) > 1e-9 {
		t.Errorf("first nudge = %f, want 6.25", r.Nudge)
	}
}

func TestNudgeDeadZone(t *testing.T) {
	m := NewMonitor(testConfig())

	for i := 0; i < 50; i++ {
		if r := m.Observe(Sample{Gamma: 5.9, At: ms(i * 16)}, true); r.Nudge != 0 {
			t.Fatalf("tilt inside dead zone nudged %f", r.Nudge)
		}
	}
}

func TestNudgeReportsOnlyWhileMoving(t *testing.T) {
	m := NewMonitor(testConfig())

	if r := m.Observe(Sample{Gamma: 3}, true); r.Nudging {
		t.Error("level device reported a nudge")
	}

	m.Observe(Sample{Gamma: 20, At: ms(16)}, true)
	var r Reading
	for i := 2; i < 200 && m.Nudge() != 0; i++ {
		r = m.Observe(Sample{At: ms(i * 16)}, true)
		if !r.Nudging {
			t.Fatalf("decaying nudge %f not reported", m.Nudge())
		}
	}
	if r.Nudge != 0 {
		t.Fatalf("nudge settled at %f, want 0", r.Nudge)
	}
	if r := m.Observe(Sample{At: ms(4000)}, true); r.Nudging {
		t.Error("settled nudge still reported")
	}
}

func TestNudgeSuppressed(t *testing.T) {
	m := NewMonitor(testConfig())

	m.Observe(Sample{Gamma: 30}, true)
	r := m.Observe(Sample{Gamma: 30, At: ms(16)}, false)
	if r.Nudging || m.Nudge() != 0 {
		t.Errorf("suppressed nudge = %v / %f, want none", r.Nudging, m.Nudge())
	}
}

func TestDisabledMonitorIgnoresSamples(t *testing.T) {
	m := NewMonitor(testConfig())
	m.Disable()

	m.Observe(Sample{}, true)
	r := m.Observe(Sample{Beta: 90, Gamma: 40, At: ms(10)}, true)
	if r != (Reading{}) {
		t.Errorf("disabled monitor produced %+v", r)
	}
	if !m.Disabled() {
		t.Error("Disabled() should report true")
	}
}
