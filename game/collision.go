package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warlord/components"
	"github.com/pthm-cable/warlord/events"
)

// overlapKey identifies an (initiator, target) overlap pair. Initiators
// are slugs, the ship hull, and the shield sensor; targets are rocks
// and collectibles.
type overlapKey struct {
	a, b ecs.Entity
}

// detectCollisions rebuilds the spatial hash over rocks and
// collectibles, then tests slugs, the hull, and the shield against it.
// A collision event fires only on the tick an overlap begins; pairs
// still overlapping from the previous tick stay silent.
func (g *Game) detectCollisions() {
	cfg := g.config()

	g.hash.Clear()
	query := g.rockFilter.Query()
	for query.Next() {
		pos, _, _, _, _ := query.Get()
		g.hash.Insert(query.Entity(), pos.X, pos.Y)
	}
	cquery := g.collectibleFilter.Query()
	for cquery.Next() {
		pos, _, _, _, _ := cquery.Get()
		g.hash.Insert(cquery.Entity(), pos.X, pos.Y)
	}

	g.overlaps, g.prevOverlaps = g.prevOverlaps, g.overlaps
	clear(g.overlaps)

	rockR := float32(cfg.Collision.RockRadius)
	collR := float32(cfg.Collision.CollectibleRadius)
	maxTargetR := rockR
	if collR > maxTargetR {
		maxTargetR = collR
	}

	// Slugs hit rocks only; they pass through collectibles
	slugR := float32(cfg.Collision.SlugRadius)
	squery := g.slugFilter.Query()
	for squery.Next() {
		pos, _, _ := squery.Get()
		g.testAgainst(squery.Entity(), pos.X, pos.Y, slugR, maxTargetR, true, false)
	}

	if g.hasPlayer && g.world.Alive(g.player) {
		pos, _, pl, _, _, _ := g.playerMapper.Get(g.player)

		// Hull touches both rocks and collectibles
		g.testAgainst(g.player, pos.X, pos.Y, pl.Radius, maxTargetR, true, true)

		if g.hasShield {
			spos, sh := g.shieldMapper.Get(g.shield)
			g.testAgainst(g.shield, spos.X, spos.Y, sh.Radius, maxTargetR, true, true)
		}
	}
}

// testAgainst queries the hash around an initiator and pushes a
// collision event for every overlap that was not present last tick.
func (g *Game) testAgainst(src ecs.Entity, x, y, srcRadius, maxTargetR float32, hitRocks, hitCollectibles bool) {
	cfg := g.config()
	rockR := float32(cfg.Collision.RockRadius)
	collR := float32(cfg.Collision.CollectibleRadius)

	g.neighborBuf = g.neighborBuf[:0]
	g.neighborBuf = g.hash.QueryRadiusInto(g.neighborBuf, x, y, srcRadius+maxTargetR, g.posMap)

	for _, n := range g.neighborBuf {
		var targetR float32
		switch {
		case g.rockMap.Get(n.E) != nil:
			if !hitRocks {
				continue
			}
			targetR = rockR
		case g.collMap.Get(n.E) != nil:
			if !hitCollectibles {
				continue
			}
			targetR = collR
		default:
			continue
		}

		sum := srcRadius + targetR
		if n.DistSq > sum*sum {
			continue
		}

		key := overlapKey{a: src, b: n.E}
		g.overlaps[key] = struct{}{}
		if _, seen := g.prevOverlaps[key]; seen {
			continue
		}
		g.collisionQ.Push(events.Collision{A: src, B: n.E})
	}
}

// routeCollisions drains the collision queue and dispatches each pair
// by the tags on both entities. Routing only raises follow-up events
// and despawns; pool mutation happens when those events are applied.
func (g *Game) routeCollisions() {
	for _, ev := range g.collisionQ.Drain() {
		if !g.world.Alive(ev.B) {
			continue
		}
		switch {
		case g.slugMap.Get(ev.A) != nil:
			g.routeSlugHit(ev.A, ev.B)
		case g.shieldMap.Get(ev.A) != nil:
			g.routeShieldHit(ev.B)
		case g.playerMap.Get(ev.A) != nil:
			g.routeHullHit(ev.B)
		}
	}
}

// routeSlugHit destroys the rock and the slug.
func (g *Game) routeSlugHit(slug, target ecs.Entity) {
	if g.rockMap.Get(target) == nil {
		return
	}
	pos := g.posMap.Get(target)
	g.destroyedQ.Push(events.RockDestroyed{Entity: target, X: pos.X, Y: pos.Y})
	g.pushSoundAt(events.SoundRockDestroyed, pos.X, pos.Y)

	if g.world.Alive(slug) && g.slugMap.Get(slug) != nil {
		g.slugMapper.Remove(slug)
	}
}

// routeHullHit picks up collectibles; rocks just clang.
func (g *Game) routeHullHit(target ecs.Entity) {
	if coll := g.collMap.Get(target); coll != nil {
		pos := g.posMap.Get(target)
		g.collectionQ.Push(events.Collection{Reagent: coll.Reagent, Amount: coll.Amount})
		g.pushSoundAt(events.SoundCollected, pos.X, pos.Y)
		g.releaseReservation(target)
		g.collectibleMapper.Remove(target)
		return
	}
	if g.rockMap.Get(target) != nil {
		pos := g.posMap.Get(target)
		g.pushSoundAt(events.SoundRockCollision, pos.X, pos.Y)
	}
}

// routeShieldHit destroys rocks and transmutes collectibles: Exotic
// becomes Strange, Strange passes through untouched, anything else is
// vaporized.
func (g *Game) routeShieldHit(target ecs.Entity) {
	if g.rockMap.Get(target) != nil {
		pos := g.posMap.Get(target)
		g.destroyedQ.Push(events.RockDestroyed{Entity: target, X: pos.X, Y: pos.Y})
		g.pushSoundAt(events.SoundRockDestroyed, pos.X, pos.Y)
		return
	}

	coll := g.collMap.Get(target)
	if coll == nil {
		return
	}
	pos := g.posMap.Get(target)

	switch coll.Reagent {
	case components.Strange:
		// Already transmuted; let it through to the hull
	case components.Exotic:
		amount := coll.Amount
		g.releaseReservation(target)
		g.collectibleMapper.Remove(target)
		g.spawnFragment(pos.X, pos.Y, components.Strange, amount)
		g.pushSoundAt(events.SoundShieldTransmute, pos.X, pos.Y)
		g.collector.RecordTransmutation()
	default:
		g.releaseReservation(target)
		g.collectibleMapper.Remove(target)
	}
}

// pushSoundAt emits a positional sound relative to the player.
func (g *Game) pushSoundAt(kind events.Sound, x, y float32) {
	ev := events.SoundEvent{Kind: kind}
	if g.hasPlayer && g.world.Alive(g.player) {
		pos, _, _, _, _, _ := g.playerMapper.Get(g.player)
		ev.RelX = x - pos.X
		ev.RelY = y - pos.Y
	}
	g.soundQ.Push(ev)
}
