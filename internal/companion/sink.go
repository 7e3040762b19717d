package companion

import "time"

// ProgressSink receives challenge-progress increments.
// Implementations handle their own failures.
type ProgressSink interface {
	AddProgress(category string, amount int)
}

// RunResult summarizes a finished game session.
type RunResult struct {
	Score     int
	Caught    int
	Misses    int
	BestCombo int
	Reason    EndReason
	Duration  time.Duration
}

// RunRecorder receives every finished session.
type RunRecorder interface {
	RecordRun(RunResult)
}

type discardSink struct{}

func (discardSink) AddProgress(string, int) {}
func (discardSink) RecordRun(RunResult)     {}

// Backdrop is what is drawn behind the avatar.
type Backdrop int

const (
	BackdropFantasy Backdrop = iota
	BackdropCamera
)

func (b Backdrop) String() string {
	if b == BackdropCamera {
		return "camera"
	}
	return "fantasy"
}
