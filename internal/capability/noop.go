package capability

import (
	"time"

	"github.com/vovakirdan/companion/internal/orientation"
)

// NoMotion reports that no motion sensor is present.
type NoMotion struct{}

func (NoMotion) Start(func(orientation.Sample)) (func(), error) { return nil, ErrUnavailable }

// NoHaptics reports that vibration is not supported.
type NoHaptics struct{}

func (NoHaptics) Vibrate([]time.Duration) error { return ErrUnavailable }

// NoTone reports that audio output is not available.
type NoTone struct{}

func (NoTone) Play(float64, time.Duration) error { return ErrUnavailable }

// NoCamera reports that no camera is attached.
type NoCamera struct{}

func (NoCamera) Open() error  { return ErrUnavailable }
func (NoCamera) Close() error { return nil }
