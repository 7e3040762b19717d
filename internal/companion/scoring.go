package companion

import (
	"fmt"

	"github.com/vovakirdan/companion/internal/config"
	"github.com/vovakirdan/companion/internal/core"
	"github.com/vovakirdan/companion/internal/feedback"
)

// Challenge-progress categories.
const (
	CategoryCatch = "catch"
	CategoryFeed  = "feed"
	CategoryTrick = "trick"
	CategoryGame  = "game"
)

// Points returns the score value of catching an entity of kind k.
func Points(s config.ScoringConfig, k Kind) int {
	switch k := k.(type) {
	case Orb:
		return s.OrbPoints
	case Treat:
		return s.TreatPoints
	case FallingObject:
		switch k.Variant {
		case Heart:
			return s.HeartPoints
		case Coin:
			return s.CoinPoints
		default:
			return s.StarPoints
		}
	default:
		panic(fmt.Sprintf("companion: unhandled entity kind %T", k))
	}
}

// ProgressCategory returns the challenge category credited for catching k.
func ProgressCategory(k Kind) string {
	switch k.(type) {
	case Orb, FallingObject:
		return CategoryCatch
	case Treat:
		return CategoryFeed
	default:
		panic(fmt.Sprintf("companion: unhandled entity kind %T", k))
	}
}

// catchFeedback returns the dialogue category and cue for catching k.
// Falling objects only cue; they have no dialogue pool.
func catchFeedback(k Kind) (cat feedback.Category, cue string) {
	switch k.(type) {
	case Orb:
		return feedback.CatchOrb, string(feedback.CatchOrb)
	case Treat:
		return feedback.CatchTreat, string(feedback.CatchTreat)
	case FallingObject:
		return "", feedback.CueCatchObject
	default:
		panic(fmt.Sprintf("companion: unhandled entity kind %T", k))
	}
}

// RollVariant picks a falling-object variant by spawn weight.
func RollVariant(rng *core.RNG, s config.ScoringConfig) Variant {
	weights := []struct {
		v Variant
		w int
	}{
		{Star, s.StarWeight},
		{Heart, s.HeartWeight},
		{Coin, s.CoinWeight},
	}

	total := 0
	for _, w := range weights {
		total += max(w.w, 0)
	}
	if total <= 0 {
		return Star
	}

	roll := rng.Intn(total)
	cumulative := 0
	for _, w := range weights {
		cumulative += max(w.w, 0)
		if roll < cumulative {
			return w.v
		}
	}
	return Star
}
