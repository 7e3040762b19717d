package companion

import (
	"testing"

	"github.com/vovakirdan/companion/internal/config"
	"github.com/vovakirdan/companion/internal/core"
)

func testPools() Pools {
	cfg := config.Default()
	return NewPools(cfg.Playfield, cfg.Physics, cfg.Particles)
}

func TestPoolsIDsNeverRepeat(t *testing.T) {
	p := testPools()
	rng := core.NewRNG(1)

	seen := make(map[EntityID]bool)
	record := func(id EntityID) {
		if seen[id] {
			t.Fatalf("id %d issued twice", id)
		}
		seen[id] = true
	}
	for round := 0; round < 3; round++ {
		record(p.SpawnOrb(rng, core.V(180, 400)).ID)
		record(p.SpawnTreat(rng, 180).ID)
		record(p.SpawnObject(rng, Heart).ID)
		p.Burst(rng, core.V(10, 10), 5)
		for _, pt := range p.Particles {
			if !seen[pt.ID] {
				record(pt.ID)
			}
		}
		p.Clear()
	}
	if len(seen) != 3*8 {
		t.Errorf("issued %d ids, want %d", len(seen), 3*8)
	}
}

func TestPoolsAdvance(t *testing.T) {
	cfg := config.Default()
	p := testPools()
	rng := core.NewRNG(1)

	treat := p.SpawnTreat(rng, 180)
	obj := p.SpawnObject(rng, Star)
	orb := p.SpawnOrb(rng, core.V(180, 400))
	p.Burst(rng, core.V(100, 100), 1)
	orbVel := orb.Vel

	p.Advance()
	p.Advance()

	if want := cfg.Physics.TreatInitialVY + 2*cfg.Physics.TreatGravity; !near(treat.Vel.Y, want) {
		t.Errorf("treat vy = %f, want %f", treat.Vel.Y, want)
	}
	if obj.Vel.Y != cfg.Physics.FallSpeed || obj.Pos.Y != 2*cfg.Physics.FallSpeed {
		t.Errorf("falling object moved to %v with v %v, want fixed fall", obj.Pos, obj.Vel)
	}
	if orb.Vel != orbVel {
		t.Errorf("orb velocity changed: %v -> %v", orbVel, orb.Vel)
	}
	if l := p.Particles[0].Life; !near(l, 1-2*cfg.Particles.Decay) {
		t.Errorf("particle life = %f, want %f", l, 1-2*cfg.Particles.Decay)
	}
}

func TestOrbHeadsForTarget(t *testing.T) {
	cfg := config.Default()
	p := testPools()
	target := core.V(180, 400)

	orb := p.SpawnOrb(core.NewRNG(5), target)
	if orb.Pos.Y != cfg.Playfield.Height {
		t.Errorf("orb starts at y=%f, want bottom edge", orb.Pos.Y)
	}
	if s := orb.Vel.Len(); s < cfg.Physics.OrbSpeed-1e-9 || s > cfg.Physics.OrbSpeed+1e-9 {
		t.Errorf("orb speed = %f, want %f", s, cfg.Physics.OrbSpeed)
	}
	before := orb.Pos.Dist(target)
	p.Advance()
	if orb.Pos.Dist(target) >= before {
		t.Error("orb did not move toward its target")
	}
}

func TestCollideTakesOnlyInRange(t *testing.T) {
	p := testPools()
	center := core.V(180, 400)

	near := p.spawnObjectAt(core.V(180, 350), Coin)
	p.spawnObjectAt(core.V(180, 344), Star) // exactly 56 away, not strictly inside

	caught := p.Collide(center, 56)
	if len(caught) != 1 || caught[0].ID != near.ID {
		t.Fatalf("caught %+v, want only the near object", caught)
	}
	if len(p.Objects) != 1 {
		t.Errorf("objects left = %d, want 1", len(p.Objects))
	}
}

func TestPruneReportsBottomExitsOnly(t *testing.T) {
	cfg := config.Default()
	p := testPools()
	h, w, m := cfg.Playfield.Height, cfg.Playfield.Width, cfg.Playfield.Margin

	bottom := p.spawnObjectAt(core.V(100, h+m+1), Star)
	p.spawnObjectAt(core.V(-m-1, 100), Heart) // off the side: pruned, no miss
	p.spawnObjectAt(core.V(100, h), Coin)     // still inside the margin
	p.Orbs = append(p.Orbs, &MovingEntity{ID: 900, Pos: core.V(w/2, -2*m-1), Kind: Orb{}})
	p.Treats = append(p.Treats, &MovingEntity{ID: 901, Pos: core.V(w/2, h+m+5), Kind: Treat{}})
	p.Particles = append(p.Particles, &Particle{ID: 902, Pos: core.V(10, 10), Life: 0})

	missed := p.Prune()
	if len(missed) != 1 || missed[0].ID != bottom.ID {
		t.Errorf("missed = %+v, want only the bottom exit", missed)
	}
	if len(p.Objects) != 1 || len(p.Orbs) != 0 || len(p.Treats) != 0 || len(p.Particles) != 0 {
		t.Errorf("left: objects=%d orbs=%d treats=%d particles=%d",
			len(p.Objects), len(p.Orbs), len(p.Treats), len(p.Particles))
	}
}

func TestBurst(t *testing.T) {
	p := testPools()
	p.Burst(core.NewRNG(3), core.V(50, 50), 10, core.ColorRed, core.ColorBlue)

	if len(p.Particles) != 10 {
		t.Fatalf("particles = %d, want 10", len(p.Particles))
	}
	for i, pt := range p.Particles {
		if pt.Life != 1 {
			t.Errorf("particle %d life = %f, want 1", i, pt.Life)
		}
		if pt.Vel.Len() == 0 {
			t.Errorf("particle %d is not moving", i)
		}
	}
	if p.Particles[0].Color != core.ColorRed || p.Particles[1].Color != core.ColorBlue {
		t.Error("burst should cycle through the given colors")
	}
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
