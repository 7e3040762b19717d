package companion

import "time"

// FrameID identifies a pending tick request.
type FrameID uint64

// TickFunc runs once per display frame with the frame's timestamp.
type TickFunc func(now time.Duration)

// Scheduler is the port the engine uses to get called once per frame.
// Frontends bind it to their refresh signal; tests use a VirtualClock.
type Scheduler interface {
	// Now returns the timestamp of the most recent frame.
	Now() time.Duration
	// RequestTick runs fn on the next frame, once.
	RequestTick(fn TickFunc) FrameID
	// Cancel drops a pending request. Unknown IDs are ignored.
	Cancel(id FrameID)
}

// FrameScheduler queues tick requests until the frontend calls Fire.
// It is not safe for concurrent use; call it from the UI goroutine.
type FrameScheduler struct {
	next    FrameID
	pending map[FrameID]TickFunc
	order   []FrameID
	now     time.Duration
}

// NewFrameScheduler creates an empty scheduler.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{pending: make(map[FrameID]TickFunc)}
}

func (s *FrameScheduler) Now() time.Duration { return s.now }

func (s *FrameScheduler) RequestTick(fn TickFunc) FrameID {
	s.next++
	s.pending[s.next] = fn
	s.order = append(s.order, s.next)
	return s.next
}

func (s *FrameScheduler) Cancel(id FrameID) {
	delete(s.pending, id)
}

// Pending returns the number of queued requests.
func (s *FrameScheduler) Pending() int { return len(s.pending) }

// Fire runs every request queued before this call, in request order.
// Requests made by the callbacks wait for the next Fire.
// Returns the number of callbacks run.
func (s *FrameScheduler) Fire(now time.Duration) int {
	if now > s.now {
		s.now = now
	}
	order := s.order
	s.order = nil

	ran := 0
	for _, id := range order {
		fn, ok := s.pending[id]
		if !ok {
			continue
		}
		delete(s.pending, id)
		fn(s.now)
		ran++
	}
	return ran
}

// VirtualClock is a FrameScheduler advanced by hand at a fixed frame step.
type VirtualClock struct {
	*FrameScheduler
	step time.Duration
}

// NewVirtualClock creates a clock producing a frame every step.
func NewVirtualClock(step time.Duration) *VirtualClock {
	if step <= 0 {
		step = time.Second / 60
	}
	return &VirtualClock{FrameScheduler: NewFrameScheduler(), step: step}
}

// Step returns the frame interval.
func (c *VirtualClock) Step() time.Duration { return c.step }

// Tick advances one frame.
func (c *VirtualClock) Tick() {
	c.Fire(c.now + c.step)
}

// Advance runs every frame that falls within the next d.
func (c *VirtualClock) Advance(d time.Duration) {
	end := c.now + d
	for c.now+c.step <= end {
		c.Tick()
	}
}

// AdvanceUntil runs frames until cond holds or limit has elapsed.
// Reports whether cond was met.
func (c *VirtualClock) AdvanceUntil(limit time.Duration, cond func() bool) bool {
	end := c.now + limit
	for !cond() {
		if c.now+c.step > end {
			return false
		}
		c.Tick()
	}
	return true
}
