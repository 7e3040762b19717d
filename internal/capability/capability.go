// Package capability defines the optional device capabilities the companion
// can use (motion sensing, haptics, tones, camera) and the adapters that back
// them on each frontend.
//
// Every capability is best-effort: an adapter that reports ErrUnavailable or
// ErrPermissionDenied is switched off for the rest of the session and the
// engine keeps running without it.
package capability

import (
	"errors"
	"time"

	"github.com/vovakirdan/companion/internal/orientation"
)

var (
	// ErrUnavailable means the device or frontend has no such capability.
	ErrUnavailable = errors.New("capability: unavailable")
	// ErrPermissionDenied means the user refused access.
	ErrPermissionDenied = errors.New("capability: permission denied")
)

// Kind names a capability for logging and status display.
type Kind string

const (
	KindMotion  Kind = "motion"
	KindHaptics Kind = "haptics"
	KindTone    Kind = "tone"
	KindCamera  Kind = "camera"
)

// Kinds lists every capability in display order.
var Kinds = []Kind{KindMotion, KindHaptics, KindTone, KindCamera}

// Motion streams orientation samples to sink until stop is called.
type Motion interface {
	Start(sink func(orientation.Sample)) (stop func(), err error)
}

// Haptics plays a vibration pattern (alternating on/off durations).
type Haptics interface {
	Vibrate(pattern []time.Duration) error
}

// Tone plays a short sine tone without blocking.
type Tone interface {
	Play(frequency float64, d time.Duration) error
}

// Camera provides a live backdrop. Only availability matters to the engine.
type Camera interface {
	Open() error
	Close() error
}
