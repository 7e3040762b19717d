package companion

import (
	"fmt"

	"github.com/vovakirdan/companion/internal/core"
)

// EntityID identifies an entity for its whole life. IDs are never reused.
type EntityID uint64

// Kind is the closed set of moving entity kinds: Orb, Treat or FallingObject.
// Every switch over a Kind handles all three and panics on anything else.
type Kind interface {
	isKind()
}

// Orb is an energy orb thrown at the avatar.
type Orb struct{}

// Treat is a snack dropped above the avatar; it falls under gravity.
type Treat struct{}

// FallingObject is a collectible spawned during a game session.
type FallingObject struct {
	Variant Variant
}

func (Orb) isKind()           {}
func (Treat) isKind()         {}
func (FallingObject) isKind() {}

// Variant is the reward tier of a falling object.
type Variant int

const (
	Star Variant = iota
	Heart
	Coin
)

// Variants lists every variant in spawn-weight order.
var Variants = []Variant{Star, Heart, Coin}

func (v Variant) String() string {
	switch v {
	case Star:
		return "star"
	case Heart:
		return "heart"
	case Coin:
		return "coin"
	default:
		return "unknown"
	}
}

// KindName returns a short lowercase label for k.
func KindName(k Kind) string {
	switch k := k.(type) {
	case Orb:
		return "orb"
	case Treat:
		return "treat"
	case FallingObject:
		return k.Variant.String()
	default:
		panic(fmt.Sprintf("companion: unhandled entity kind %T", k))
	}
}

// MovingEntity is an orb, treat or falling object in flight.
type MovingEntity struct {
	ID    EntityID
	Pos   core.Vec
	Vel   core.Vec
	Kind  Kind
	Color core.Color
}

// Particle is a short-lived visual spark. Life runs from 1 down to 0.
type Particle struct {
	ID    EntityID
	Pos   core.Vec
	Vel   core.Vec
	Color core.Color
	Life  float64
}
