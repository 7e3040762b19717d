package companion

import "github.com/vovakirdan/companion/internal/avatar"

// intent is a deferred state change applied at the start of the next tick.
// Timer firings and user actions only ever enqueue intents.
type intent interface {
	isIntent()
}

type (
	startGameIntent     struct{}
	endGameIntent       struct{}
	countdownIntent     struct{}
	spawnIntent         struct{}
	clearDialogueIntent struct{}
	throwOrbIntent      struct{}
	feedTreatIntent     struct{}
	sparkleIntent       struct{}
	trickIntent         struct{ trick avatar.Trick }
)

func (startGameIntent) isIntent()     {}
func (endGameIntent) isIntent()       {}
func (countdownIntent) isIntent()     {}
func (spawnIntent) isIntent()         {}
func (clearDialogueIntent) isIntent() {}
func (throwOrbIntent) isIntent()      {}
func (feedTreatIntent) isIntent()     {}
func (sparkleIntent) isIntent()       {}
func (trickIntent) isIntent()         {}
