// Package touch is the graphical frontend built on Ebitengine. It reads
// touches (or the left mouse button on desktop) every frame, turns changes
// in the contact set into gesture events for the engine, and draws the
// engine snapshot with vector shapes.
package touch

import (
	"time"

	"github.com/vovakirdan/companion/internal/core"
	"github.com/vovakirdan/companion/internal/gesture"
)

// tracker diffs successive contact sets into gesture events.
// Ebitengine reports touches by polling, so phases are inferred from how
// the set changed since the previous frame.
type tracker struct {
	prev []core.Vec
}

// update returns the events describing the move from the previous set to
// contacts, which must be in a stable order (touch ID order).
func (t *tracker) update(contacts []core.Vec, at time.Duration) []gesture.Event {
	prev := t.prev
	t.prev = append(t.prev[:0:0], contacts...)

	switch {
	case len(contacts) == 0 && len(prev) == 0:
		return nil
	case len(contacts) > len(prev):
		return []gesture.Event{{Phase: gesture.PhaseStart, Contacts: contacts, At: at}}
	case len(contacts) < len(prev):
		return []gesture.Event{{Phase: gesture.PhaseEnd, Contacts: contacts, At: at}}
	case !sameContacts(prev, contacts):
		return []gesture.Event{{Phase: gesture.PhaseMove, Contacts: contacts, At: at}}
	}
	return nil
}

// cancel abandons any gesture in progress, e.g. when the window loses focus.
func (t *tracker) cancel(at time.Duration) []gesture.Event {
	if len(t.prev) == 0 {
		return nil
	}
	t.prev = nil
	return []gesture.Event{{Phase: gesture.PhaseCancel, At: at}}
}

func sameContacts(a, b []core.Vec) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
