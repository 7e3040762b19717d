package orientation

import "time"

// Sample is one device-orientation reading in degrees.
// Beta is front/back tilt, Gamma is left/right tilt.
type Sample struct {
	Beta  float64
	Gamma float64
	At    time.Duration
}
