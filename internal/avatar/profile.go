package avatar

// Mood is the companion's disposition derived from its stats.
type Mood int

const (
	MoodNeutral Mood = iota
	MoodLow
	MoodHigh
)

func (m Mood) String() string {
	switch m {
	case MoodLow:
		return "low"
	case MoodHigh:
		return "high"
	default:
		return "neutral"
	}
}

// Profile is the companion state supplied by the host. The engine reads it
// but never writes it back.
type Profile struct {
	Name          string
	Energy        int // 0-100
	Level         int
	Customization map[string]string // slot -> accessory id
}

// DefaultProfile is used when the host supplies nothing.
func DefaultProfile() Profile {
	return Profile{Name: "Pip", Energy: 60, Level: 1}
}

// Mood classifies energy against the low/high thresholds.
// Below low is MoodLow, at or above high is MoodHigh.
func (p Profile) Mood(low, high int) Mood {
	switch {
	case p.Energy < low:
		return MoodLow
	case p.Energy >= high:
		return MoodHigh
	default:
		return MoodNeutral
	}
}

// SizeMultiplier grows the avatar slightly with level, capped at level 10.
func (p Profile) SizeMultiplier() float64 {
	lvl := p.Level
	if lvl < 1 {
		lvl = 1
	}
	if lvl > 10 {
		lvl = 10
	}
	return 1 + 0.05*float64(lvl-1)
}

// Accessory returns the item equipped in slot, if any.
func (p Profile) Accessory(slot string) (string, bool) {
	id, ok := p.Customization[slot]
	return id, ok && id != ""
}
