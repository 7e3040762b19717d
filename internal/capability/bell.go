package capability

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// BellHaptics stands in for vibration on terminals: each "on" segment of a
// pattern rings the bell once. Long patterns are capped at a few rings.
type BellHaptics struct {
	mu  sync.Mutex
	out io.Writer
}

const maxRings = 3

// NewBellHaptics writes BEL characters to out.
func NewBellHaptics(out io.Writer) *BellHaptics {
	return &BellHaptics{out: out}
}

func (b *BellHaptics) Vibrate(pattern []time.Duration) error {
	if b.out == nil {
		return ErrUnavailable
	}
	rings := (len(pattern) + 1) / 2
	if rings > maxRings {
		rings = maxRings
	}
	if rings == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	buf := make([]byte, rings)
	for i := range buf {
		buf[i] = '\a'
	}
	if _, err := b.out.Write(buf); err != nil {
		return fmt.Errorf("%w: bell: %v", ErrUnavailable, err)
	}
	return nil
}
