package storage

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/companion/internal/companion"
)

// Sink adapts a Store to the engine's progress and run ports.
// Write failures are logged and never reach the engine.
type Sink struct {
	store  *Store
	logger *log.Logger
}

// NewSink wraps store. A nil store makes every call a no-op.
func NewSink(store *Store, logger *log.Logger) *Sink {
	return &Sink{store: store, logger: logger}
}

// AddProgress implements companion.ProgressSink.
func (s *Sink) AddProgress(category string, amount int) {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.AddProgress(category, amount); err != nil && s.logger != nil {
		s.logger.Warn("progress not saved", "category", category, "err", err)
	}
}

// RecordRun implements companion.RunRecorder.
func (s *Sink) RecordRun(r companion.RunResult) {
	if s == nil || s.store == nil {
		return
	}
	id, err := s.store.SaveRun(RunEntry{
		Score:     r.Score,
		Caught:    r.Caught,
		Misses:    r.Misses,
		BestCombo: r.BestCombo,
		Reason:    r.Reason.String(),
		Duration:  r.Duration,
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("run not saved", "score", r.Score, "err", err)
		}
		return
	}
	if s.logger != nil {
		s.logger.Debug("run saved", "run_id", id, "score", r.Score)
	}
}
