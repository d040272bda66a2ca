package game

import (
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warlord/components"
	"github.com/pthm-cable/warlord/events"
	"github.com/pthm-cable/warlord/systems"
)

// simulationStep runs a single tick. The order is fixed: every system
// drains its input queues at the same point each tick, so a run is
// fully determined by the seed and the control inputs.
func (g *Game) simulationStep() {
	dt := g.config().Derived.DT32

	// 1. Spawn timer, centered on the camera
	g.spawner.Tick(dt, g.cam.X, g.cam.Y, g.rng, &g.spawnQ)

	// 2. Apply spawn requests against the population cap
	g.applySpawnRequests()

	// 3. Heat decay and refire timers, then reactions on the fresh heat
	g.updateHeatAndReactions(dt)

	// 4. Player control: steering, weapon, shield, cargo dump
	g.updatePlayer(dt)

	// 5. Integrate movement, spin, and projectile lifetimes
	g.integrate(dt)

	// 6. Collision detection and routing
	g.detectCollisions()
	g.routeCollisions()

	// 7. Apply pickups to the inventory
	g.applyCollections()

	// 8. Destruction-splitting
	g.applyDestructions()

	// 9. Progression gates, after this tick's pools are settled
	g.updateProgression()

	// 10. Cull objects that drifted out of range
	g.cullFarEntities()

	// 11. Camera follow and telemetry
	g.updateCamera(dt)
	g.flushOutputs()

	g.tick++
}

// applySpawnRequests drains the spawn queue. Each cluster is accepted
// or rejected whole against the population cap.
func (g *Game) applySpawnRequests() {
	cfg := g.config()

	for _, req := range g.spawnQ.Drain() {
		if !g.population.TryReserve(req.Count) {
			slog.Debug("cluster rejected by population cap",
				"count", req.Count,
				"population", g.population.Current(),
				"cap", g.population.Cap(),
			)
			g.collector.RecordSpawnRejected()
			continue
		}
		specs := systems.BuildCluster(g.rng, req,
			float32(cfg.Spawner.MineralAmount),
			float32(cfg.Spawner.ExoticAmount),
		)
		for _, spec := range specs {
			g.spawnFromSpec(spec)
		}
		g.collector.RecordSpawnAccepted(req.Count)
	}
}

// updateHeatAndReactions advances the player's heat and gun timers and
// then runs the reaction rules. Reactions see post-decay heat, so a
// shot fired later this tick cannot enable a reaction until next tick.
func (g *Game) updateHeatAndReactions(dt float32) {
	if !g.hasPlayer || !g.world.Alive(g.player) {
		return
	}
	_, _, _, gun, inv, heat := g.playerMapper.Get(g.player)

	if heat.Enabled {
		heat.Tick(dt)
	}
	gun.Tick(dt)

	g.reactions.Tick(inv, heat, dt, func(ev events.ReagentDelta) {
		g.reagentQ.Push(ev)
		if ev.Delta > 0 {
			g.collector.RecordReaction(ev.Reagent, ev.Delta)
		}
	})

	g.collector.SampleHeat(heat.Fraction())
}

// updatePlayer applies the control state to the ship: rotation toward
// the aim point, thrust, drag, firing, shield, and cargo dumping.
func (g *Game) updatePlayer(dt float32) {
	if !g.hasPlayer || !g.world.Alive(g.player) {
		slog.Debug("no player, skipping control update")
		return
	}
	cfg := g.config()
	pos, vel, pl, gun, inv, heat := g.playerMapper.Get(g.player)

	// Rotate toward the aim point. The turn is proportional to the
	// remaining angle, giving an exponential ease onto the target.
	if g.actions.HasAim {
		target := float32(math.Atan2(
			float64(g.actions.AimY-pos.Y),
			float64(g.actions.AimX-pos.X),
		))
		diff := normalizeAngle(target - pl.Facing)
		pl.Facing = normalizeAngle(pl.Facing + diff*pl.RotationSpeed*dt)
	}

	dirX := float32(math.Cos(float64(pl.Facing)))
	dirY := float32(math.Sin(float64(pl.Facing)))

	// Thrust toward the desired velocity
	if g.actions.Thrust != 0 {
		wantX := dirX * g.actions.Thrust * pl.MaxSpeed
		wantY := dirY * g.actions.Thrust * pl.MaxSpeed
		dx := wantX - vel.X
		dy := wantY - vel.Y
		if lenSq := dx*dx + dy*dy; lenSq > 0 {
			invLen := 1 / float32(math.Sqrt(float64(lenSq)))
			vel.X += dx * invLen * pl.Acceleration * dt
			vel.Y += dy * invLen * pl.Acceleration * dt
		}
	} else {
		// Coasting: bleed speed at the deceleration limit
		speed := float32(math.Sqrt(float64(vel.X*vel.X + vel.Y*vel.Y)))
		if speed > 0 {
			decel := float32(cfg.Player.MaxDeceleration)
			if speed < decel {
				decel = speed
			}
			vel.X -= vel.X / speed * decel * dt
			vel.Y -= vel.Y / speed * decel * dt
		}
	}

	// Main gun
	if g.actions.Fire && pl.WeaponEnabled && gun.Ready() {
		g.spawnSlug(pos.X, pos.Y, dirX, dirY, gun)
		gun.Fired()
		vel.X -= dirX * gun.Recoil
		vel.Y -= dirY * gun.Recoil
		if heat.Enabled {
			heat.Add(gun.HeatPerShot)
		}
		g.soundQ.Push(events.SoundEvent{Kind: events.SoundCannonFire})
		g.collector.RecordShot()
	}

	// Shield sensor entity follows the raise/lower state
	pl.ShieldRaised = g.actions.Shield && pl.ShieldEnabled
	if pl.ShieldRaised {
		g.raiseShield(pos.X, pos.Y, pl.ShieldRadius)
	} else {
		g.lowerShield()
	}
	if g.hasShield {
		spos, _ := g.shieldMapper.Get(g.shield)
		spos.X = pos.X
		spos.Y = pos.Y
	}

	// Cargo dump drains every pool at a fixed rate. Dump deltas carry
	// the applied amount, like reaction deltas; a near-empty pool
	// emits only what it held.
	if g.actions.Dump && pl.CargoDumpEnabled {
		for _, r := range components.AllReagents() {
			pool := inv.Pool(r)
			if pool.Current <= 0 {
				continue
			}
			amount := float32(cfg.Cargo.DumpRate) * dt
			if pool.Current < amount {
				amount = pool.Current
			}
			pool.Add(-amount)
			g.reagentQ.Push(events.ReagentDelta{Reagent: r, Delta: -amount})
		}
	}
}

// integrate advances positions, spins, and slug lifetimes. Expired
// slugs are collected first and removed after iteration.
func (g *Game) integrate(dt float32) {
	query := g.rockFilter.Query()
	for query.Next() {
		pos, vel, spin, _, _ := query.Get()
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
		advanceSpin(spin, dt)
	}

	cquery := g.collectibleFilter.Query()
	for cquery.Next() {
		pos, vel, spin, _, _ := cquery.Get()
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
		advanceSpin(spin, dt)
	}

	var expired []ecs.Entity
	squery := g.slugFilter.Query()
	for squery.Next() {
		pos, vel, slug := squery.Get()
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
		slug.TTL -= dt
		if slug.TTL <= 0 {
			expired = append(expired, squery.Entity())
		}
	}
	for _, e := range expired {
		g.slugMapper.Remove(e)
	}

	if g.hasPlayer && g.world.Alive(g.player) {
		pos, vel, _, _, _, _ := g.playerMapper.Get(g.player)
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
	}
}

func advanceSpin(spin *components.Spin, dt float32) {
	spin.AngleX += spin.AngVelX * dt
	spin.AngleY += spin.AngVelY * dt
	spin.AngleZ += spin.AngVelZ * dt
}

// applyCollections drains pickup events into the player's inventory.
// The delta event carries the raw requested amount; the pool clamps.
func (g *Game) applyCollections() {
	if !g.hasPlayer || !g.world.Alive(g.player) {
		g.collectionQ.Clear()
		return
	}
	_, _, _, _, inv, _ := g.playerMapper.Get(g.player)

	for _, ev := range g.collectionQ.Drain() {
		inv.Pool(ev.Reagent).Add(ev.Amount)
		g.reagentQ.Push(events.ReagentDelta{Reagent: ev.Reagent, Delta: ev.Amount})
		g.collector.RecordCollection(ev.Reagent, ev.Amount)
	}
}

// applyDestructions replaces each destroyed rock with mineral
// fragments. A rock can be reported twice in one tick (slug and shield);
// the liveness check makes the second report a no-op.
func (g *Game) applyDestructions() {
	cfg := g.config()

	for _, ev := range g.destroyedQ.Drain() {
		if !g.world.Alive(ev.Entity) || g.rockMap.Get(ev.Entity) == nil {
			continue
		}
		g.releaseReservation(ev.Entity)
		g.rockMapper.Remove(ev.Entity)

		for i := 0; i < cfg.Splitting.Fragments; i++ {
			g.spawnFragment(ev.X, ev.Y, components.Minerals, float32(cfg.Splitting.FragmentAmount))
		}
		g.collector.RecordRockDestroyed(cfg.Splitting.Fragments)
	}
}

// updateProgression runs the stage machine against the player state.
func (g *Game) updateProgression() {
	ctx := g.stageContext()
	if ctx == nil {
		return
	}
	before := g.progression.Current()
	g.progression.Update(ctx)
	if g.progression.Current() != before {
		g.collector.RecordStageAdvance()
	}
}

// updateCamera eases the viewport onto the ship.
func (g *Game) updateCamera(dt float32) {
	if !g.hasPlayer || !g.world.Alive(g.player) {
		return
	}
	pos, _, _, _, _, _ := g.playerMapper.Get(g.player)
	g.cam.Follow(pos.X, pos.Y, dt)
}

// flushOutputs drains the per-tick notification queues and flushes the
// telemetry window when due. Reagent deltas and sounds are counted and
// handed off; playback belongs to the audio layer, not the simulation.
func (g *Game) flushOutputs() {
	for range g.reagentQ.Drain() {
		g.collector.RecordReagentEvent()
	}
	for range g.soundQ.Drain() {
		g.collector.RecordSound()
	}

	if !g.collector.ShouldFlush(g.tick) {
		return
	}
	stats := g.collector.Flush(g.tick)
	stats.Stage = g.progression.Current().String()
	stats.Population = g.population.Current()
	stats.Cap = g.population.Cap()
	if g.hasPlayer && g.world.Alive(g.player) {
		_, _, _, _, inv, heat := g.playerMapper.Get(g.player)
		stats.Minerals = float64(inv.Pool(components.Minerals).Current)
		stats.Exotic = float64(inv.Pool(components.Exotic).Current)
		stats.Strange = float64(inv.Pool(components.Strange).Current)
		stats.Continuum = float64(inv.Pool(components.Continuum).Current)
		stats.Heat = float64(heat.Current)
	}
	if g.logStats {
		stats.Log()
	}
	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Warn("failed to write telemetry", "error", err)
	}
}
