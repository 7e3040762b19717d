package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/companion/internal/config"
	"github.com/vovakirdan/companion/internal/core"
	"github.com/vovakirdan/companion/internal/gesture"
)

// pinchSpan is the half-distance between the two synthetic fingers.
const pinchSpan = 40.0

// pointer turns terminal mouse events into single-contact gesture events.
// Cells map linearly onto the playfield.
type pointer struct {
	field      config.PlayfieldConfig
	cols, rows int
	down       bool
}

func newPointer(field config.PlayfieldConfig, cols, rows int) *pointer {
	return &pointer{field: field, cols: cols, rows: rows}
}

func (p *pointer) resize(cols, rows int) {
	p.cols, p.rows = cols, rows
}

// toField maps the middle of cell (x, y) to playfield px.
func (p *pointer) toField(x, y int) core.Vec {
	if p.cols <= 0 || p.rows <= 0 {
		return core.Vec{}
	}
	return core.V(
		(float64(x)+0.5)/float64(p.cols)*p.field.Width,
		(float64(y)+0.5)/float64(p.rows)*p.field.Height,
	)
}

// mouse converts msg. The bool is false for events that are not part of a
// left-button gesture.
func (p *pointer) mouse(msg tea.MouseMsg, at time.Duration) (gesture.Event, bool) {
	pos := p.toField(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return gesture.Event{}, false
		}
		p.down = true
		return gesture.Event{Phase: gesture.PhaseStart, Contacts: []core.Vec{pos}, At: at}, true

	case tea.MouseActionMotion:
		if !p.down {
			return gesture.Event{}, false
		}
		return gesture.Event{Phase: gesture.PhaseMove, Contacts: []core.Vec{pos}, At: at}, true

	case tea.MouseActionRelease:
		if !p.down {
			return gesture.Event{}, false
		}
		p.down = false
		return gesture.Event{Phase: gesture.PhaseEnd, At: at}, true
	}
	return gesture.Event{}, false
}

// tapEvents is a press and lift on the same spot.
func tapEvents(at core.Vec, now time.Duration) []gesture.Event {
	return []gesture.Event{
		{Phase: gesture.PhaseStart, Contacts: []core.Vec{at}, At: now},
		{Phase: gesture.PhaseEnd, At: now},
	}
}

// pinchEvents spreads two fingers around center by factor and lifts them.
func pinchEvents(center core.Vec, factor float64, now time.Duration) []gesture.Event {
	spread := func(d float64) []core.Vec {
		return []core.Vec{center.Sub(core.V(d, 0)), center.Add(core.V(d, 0))}
	}
	return []gesture.Event{
		{Phase: gesture.PhaseStart, Contacts: spread(pinchSpan), At: now},
		{Phase: gesture.PhaseMove, Contacts: spread(pinchSpan * factor), At: now},
		{Phase: gesture.PhaseEnd, At: now},
	}
}
