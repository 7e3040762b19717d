// Package tui is the terminal frontend: a Bubble Tea loop that drives the
// companion engine's frame scheduler, maps keys and the mouse to engine
// input, and serves the same experience over SSH.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to fire one engine frame.
// Chain identifies the model that scheduled it.
type TickMsg struct {
	Time  time.Time
	Chain uint64
}

var chains atomic.Uint64

// newChain returns an id no other model uses.
func newChain() uint64 {
	return chains.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the given rate.
func tickCmd(fps int, chain uint64) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Chain: chain}
	})
}
