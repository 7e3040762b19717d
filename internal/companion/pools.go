package companion

import (
	"fmt"
	"math"

	"github.com/vovakirdan/companion/internal/config"
	"github.com/vovakirdan/companion/internal/core"
)

// Pools owns every live entity. Orbs, treats, falling objects and particles
// are kept in separate slices with the same lifecycle: spawned with a fresh
// ID, advanced each tick, then removed for good when consumed or out of
// bounds.
type Pools struct {
	Orbs      []*MovingEntity
	Treats    []*MovingEntity
	Objects   []*MovingEntity
	Particles []*Particle

	field    config.PlayfieldConfig
	physics  config.PhysicsConfig
	particle config.ParticleConfig

	nextID EntityID
}

// NewPools creates empty pools.
func NewPools(field config.PlayfieldConfig, physics config.PhysicsConfig, particle config.ParticleConfig) Pools {
	return Pools{field: field, physics: physics, particle: particle}
}

func (p *Pools) newID() EntityID {
	p.nextID++
	return p.nextID
}

// Len returns the number of live moving entities (particles excluded).
func (p *Pools) Len() int {
	return len(p.Orbs) + len(p.Treats) + len(p.Objects)
}

// Clear empties every pool. IDs keep counting so none is ever reissued.
func (p *Pools) Clear() {
	p.Orbs = nil
	p.Treats = nil
	p.Objects = nil
	p.Particles = nil
}

// ClearObjects removes live falling objects only.
func (p *Pools) ClearObjects() {
	p.Objects = nil
}

// SpawnOrb throws an orb from a random point on the bottom edge toward target.
func (p *Pools) SpawnOrb(rng *core.RNG, target core.Vec) *MovingEntity {
	m := p.field.Margin
	from := core.V(rng.Range(m, p.field.Width-m), p.field.Height)
	dir := target.Sub(from).Norm()
	if dir == (core.Vec{}) {
		dir = core.V(0, -1)
	}
	e := &MovingEntity{
		ID:    p.newID(),
		Pos:   from,
		Vel:   dir.Scale(p.physics.OrbSpeed),
		Kind:  Orb{},
		Color: core.ColorBrightCyan,
	}
	p.Orbs = append(p.Orbs, e)
	return e
}

// SpawnTreat drops a treat from the top edge near x.
func (p *Pools) SpawnTreat(rng *core.RNG, x float64) *MovingEntity {
	j := p.physics.TreatJitter
	e := &MovingEntity{
		ID:    p.newID(),
		Pos:   core.V(core.ClampF(x+rng.Range(-j, j), 0, p.field.Width), 0),
		Vel:   core.V(0, p.physics.TreatInitialVY),
		Kind:  Treat{},
		Color: core.ColorOrange,
	}
	p.Treats = append(p.Treats, e)
	return e
}

// SpawnObject drops a falling object of the given variant at a random x.
func (p *Pools) SpawnObject(rng *core.RNG, v Variant) *MovingEntity {
	m := p.field.Margin
	return p.spawnObjectAt(core.V(rng.Range(m, p.field.Width-m), 0), v)
}

func (p *Pools) spawnObjectAt(pos core.Vec, v Variant) *MovingEntity {
	e := &MovingEntity{
		ID:    p.newID(),
		Pos:   pos,
		Vel:   core.V(0, p.physics.FallSpeed),
		Kind:  FallingObject{Variant: v},
		Color: variantColor(v),
	}
	p.Objects = append(p.Objects, e)
	return e
}

// Burst scatters n particles outward from center.
func (p *Pools) Burst(rng *core.RNG, center core.Vec, n int, colors ...core.Color) {
	if len(colors) == 0 {
		colors = []core.Color{core.ColorWhite}
	}
	for i := 0; i < n; i++ {
		angle := 2*math.Pi*float64(i)/float64(n) + rng.Range(-0.3, 0.3)
		speed := p.particle.Speed * rng.Range(0.5, 1.5)
		p.Particles = append(p.Particles, &Particle{
			ID:    p.newID(),
			Pos:   center,
			Vel:   core.V(math.Cos(angle)*speed, math.Sin(angle)*speed),
			Color: colors[i%len(colors)],
			Life:  1,
		})
	}
}

// Advance moves every entity one tick. Gravity applies to treats, falling
// objects and particles; particles also lose life.
func (p *Pools) Advance() {
	for _, e := range p.Orbs {
		e.Pos = e.Pos.Add(e.Vel)
	}
	for _, e := range p.Treats {
		e.Vel.Y += p.physics.TreatGravity
		e.Pos = e.Pos.Add(e.Vel)
	}
	for _, e := range p.Objects {
		e.Vel.Y += p.physics.FallGravity
		e.Pos = e.Pos.Add(e.Vel)
	}
	for _, pt := range p.Particles {
		pt.Vel.Y += p.particle.Gravity
		pt.Pos = pt.Pos.Add(pt.Vel)
		pt.Life -= p.particle.Decay
	}
}

// Collide removes every entity within radius of center and returns them.
func (p *Pools) Collide(center core.Vec, radius float64) []MovingEntity {
	var caught []MovingEntity
	keep := func(list []*MovingEntity) []*MovingEntity {
		kept := list[:0]
		for _, e := range list {
			if e.Pos.Dist(center) < radius {
				caught = append(caught, *e)
				continue
			}
			kept = append(kept, e)
		}
		return kept
	}
	p.Orbs = keep(p.Orbs)
	p.Treats = keep(p.Treats)
	p.Objects = keep(p.Objects)
	return caught
}

// Prune drops entities that have left the play area and dead particles.
// It returns the falling objects that left through the bottom edge.
func (p *Pools) Prune() []MovingEntity {
	var missed []MovingEntity
	filter := func(list []*MovingEntity) []*MovingEntity {
		kept := list[:0]
		for _, e := range list {
			if !p.outOfBounds(e) {
				kept = append(kept, e)
				continue
			}
			if _, ok := e.Kind.(FallingObject); ok && p.belowField(e.Pos) {
				missed = append(missed, *e)
			}
		}
		return kept
	}
	p.Orbs = filter(p.Orbs)
	p.Treats = filter(p.Treats)
	p.Objects = filter(p.Objects)

	alive := p.Particles[:0]
	for _, pt := range p.Particles {
		if pt.Life > 0 && !p.outside(pt.Pos) {
			alive = append(alive, pt)
		}
	}
	p.Particles = alive
	return missed
}

func (p *Pools) outOfBounds(e *MovingEntity) bool {
	switch e.Kind.(type) {
	case Orb:
		// Orbs fly upward, so they also leave through the top.
		return p.outside(e.Pos) || e.Pos.Y < -2*p.field.Margin
	case Treat, FallingObject:
		return p.outside(e.Pos)
	default:
		panic(fmt.Sprintf("companion: unhandled entity kind %T", e.Kind))
	}
}

func (p *Pools) outside(pos core.Vec) bool {
	m := p.field.Margin
	return pos.X < -m || pos.X > p.field.Width+m || p.belowField(pos)
}

func (p *Pools) belowField(pos core.Vec) bool {
	return pos.Y > p.field.Height+p.field.Margin
}

func variantColor(v Variant) core.Color {
	switch v {
	case Heart:
		return core.ColorPink
	case Coin:
		return core.ColorYellow
	default:
		return core.ColorBrightYellow
	}
}
