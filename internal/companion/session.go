package companion

import (
	"time"

	"github.com/vovakirdan/companion/internal/config"
)

// Phase is the state of the catch mini-game.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// EndReason records why a session ended.
type EndReason int

const (
	ReasonNone EndReason = iota
	ReasonTimeout
	ReasonMissLimit
	ReasonQuit
)

func (r EndReason) String() string {
	switch r {
	case ReasonTimeout:
		return "timeout"
	case ReasonMissLimit:
		return "miss-limit"
	case ReasonQuit:
		return "quit"
	default:
		return "none"
	}
}

// SessionState is the scoreboard of one play-through.
type SessionState struct {
	Phase         Phase
	Score         int
	Combo         int
	BestCombo     int
	Caught        int
	MissCount     int
	TimeRemaining time.Duration
	StartedAt     time.Duration
	EndedAt       time.Duration
	Reason        EndReason
}

// Elapsed returns how long the session has run, or ran.
func (s SessionState) Elapsed(now time.Duration) time.Duration {
	switch s.Phase {
	case PhaseActive:
		return now - s.StartedAt
	case PhaseEnded:
		return s.EndedAt - s.StartedAt
	default:
		return 0
	}
}

// Session is the state machine Idle -> Active -> Ended -> Idle.
// SessionState changes only through these methods.
type Session struct {
	cfg   config.SessionConfig
	state SessionState
}

// NewSession creates an idle session.
func NewSession(cfg config.SessionConfig) Session {
	return Session{cfg: cfg}
}

// State returns a copy of the current state.
func (s *Session) State() SessionState { return s.state }

// Active reports whether a game is running.
func (s *Session) Active() bool { return s.state.Phase == PhaseActive }

// Start begins a fresh game from Idle or Ended. Returns false if a game is
// already running.
func (s *Session) Start(now time.Duration) bool {
	if s.state.Phase == PhaseActive {
		return false
	}
	s.state = SessionState{
		Phase:         PhaseActive,
		TimeRemaining: s.cfg.Duration,
		StartedAt:     now,
	}
	return true
}

// Catch credits points and extends the combo.
func (s *Session) Catch(points int) {
	if s.state.Phase != PhaseActive {
		return
	}
	s.state.Score += points
	s.state.Combo++
	s.state.Caught++
	if s.state.Combo > s.state.BestCombo {
		s.state.BestCombo = s.state.Combo
	}
}

// Miss breaks the combo and counts toward the miss limit.
// Returns true if this miss ended the session.
func (s *Session) Miss(now time.Duration) bool {
	if s.state.Phase != PhaseActive {
		return false
	}
	s.state.MissCount++
	s.state.Combo = 0
	if s.state.MissCount >= s.cfg.MissLimit {
		s.end(now, ReasonMissLimit)
		return true
	}
	return false
}

// Countdown takes one step off the timer.
// Returns true if time ran out.
func (s *Session) Countdown(now time.Duration) bool {
	if s.state.Phase != PhaseActive {
		return false
	}
	s.state.TimeRemaining -= s.cfg.CountdownStep
	if s.state.TimeRemaining <= 0 {
		s.state.TimeRemaining = 0
		s.end(now, ReasonTimeout)
		return true
	}
	return false
}

// Quit ends a running game early.
func (s *Session) Quit(now time.Duration) bool {
	if s.state.Phase != PhaseActive {
		return false
	}
	s.end(now, ReasonQuit)
	return true
}

// Dismiss discards the state and returns to Idle.
func (s *Session) Dismiss() {
	s.state = SessionState{}
}

func (s *Session) end(now time.Duration, reason EndReason) {
	s.state.Phase = PhaseEnded
	s.state.EndedAt = now
	s.state.Reason = reason
}
