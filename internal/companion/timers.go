package companion

import (
	"sort"
	"time"
)

type timerID int

const (
	timerCountdown timerID = iota
	timerSpawn
	timerDialogue
)

// timer fires intent at due, then every interval if it repeats.
type timer struct {
	id       timerID
	due      time.Duration
	interval time.Duration
	intent   intent
}

// timers is the engine's set of domain timers. Timers never call back into
// the engine; firing only yields intents for the tick to apply.
type timers struct {
	list []timer
}

// after arms a one-shot timer, replacing any timer with the same id.
func (t *timers) after(id timerID, now, d time.Duration, in intent) {
	t.cancel(id)
	t.list = append(t.list, timer{id: id, due: now + d, intent: in})
}

// every arms a repeating timer whose first firing is one interval from now.
func (t *timers) every(id timerID, now, interval time.Duration, in intent) {
	t.cancel(id)
	t.list = append(t.list, timer{id: id, due: now + interval, interval: interval, intent: in})
}

func (t *timers) cancel(id timerID) {
	kept := t.list[:0]
	for _, tm := range t.list {
		if tm.id != id {
			kept = append(kept, tm)
		}
	}
	t.list = kept
}

func (t *timers) cancelAll() {
	t.list = nil
}

func (t *timers) armed(id timerID) bool {
	for _, tm := range t.list {
		if tm.id == id {
			return true
		}
	}
	return false
}

func (t *timers) len() int { return len(t.list) }

type firing struct {
	at  time.Duration
	seq int
	in  intent
}

// fire collects the intents of every timer due at or before now, in due
// order. A repeating timer that fell behind fires once per missed interval.
func (t *timers) fire(now time.Duration) []intent {
	var due []firing
	kept := t.list[:0]
	for i, tm := range t.list {
		for tm.due <= now {
			due = append(due, firing{at: tm.due, seq: i, in: tm.intent})
			if tm.interval <= 0 {
				break
			}
			tm.due += tm.interval
		}
		if tm.interval > 0 || tm.due > now {
			kept = append(kept, tm)
		}
	}
	t.list = kept

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	out := make([]intent, len(due))
	for i, f := range due {
		out[i] = f.in
	}
	return out
}
