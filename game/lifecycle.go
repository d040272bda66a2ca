package game

import (
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warlord/components"
	"github.com/pthm-cable/warlord/config"
	"github.com/pthm-cable/warlord/events"
	"github.com/pthm-cable/warlord/systems"
)

// spawnPlayer creates the ship at the origin with pools and heat built
// from config. Capability flags start false; progression flips them.
func (g *Game) spawnPlayer() {
	cfg := g.config()

	pos := components.Position{}
	vel := components.Velocity{}
	pl := components.Player{
		Facing:        float32(math.Pi / 2),
		MaxSpeed:      float32(cfg.Player.MaxSpeed),
		Acceleration:  float32(cfg.Player.Acceleration),
		RotationSpeed: float32(cfg.Player.RotationSpeed) * math.Pi / 180,
		Radius:        float32(cfg.Player.Radius),
		ShieldRadius:  float32(cfg.Shield.Radius),
	}
	gun := components.MainGun{
		FireDelay:             float32(cfg.Weapon.FireDelay),
		ProjectileSpeed:       float32(cfg.Weapon.ProjectileSpeed),
		MaxProjectileDistance: float32(cfg.Weapon.MaxProjectileDistance),
		OriginDistance:        float32(cfg.Weapon.OriginDistance),
		Recoil:                float32(cfg.Weapon.Recoil),
		HeatPerShot:           float32(cfg.Weapon.HeatPerShot),
	}
	inv := components.NewInventory(poolDefaults(cfg.Inventory))
	heat := components.NewHeat(
		float32(cfg.Heat.Limit),
		float32(cfg.Heat.ReactionThreshold),
		float32(cfg.Heat.DecayRate),
		float32(cfg.Heat.DecayDelay),
	)

	g.player = g.playerMapper.NewEntity(&pos, &vel, &pl, &gun, &inv, &heat)
	g.hasPlayer = true
}

// poolDefaults maps the config's per-kind pool sections onto the
// Reagent-indexed array.
func poolDefaults(cfg config.InventoryConfig) [components.NumReagents]components.ReagentPool {
	mk := func(pc config.PoolConfig) components.ReagentPool {
		return components.ReagentPool{
			Current: float32(pc.Start),
			Limit:   float32(pc.Limit),
			Visible: pc.Visible,
		}
	}
	var pools [components.NumReagents]components.ReagentPool
	pools[components.Minerals] = mk(cfg.Minerals)
	pools[components.Exotic] = mk(cfg.Exotic)
	pools[components.Strange] = mk(cfg.Strange)
	pools[components.Continuum] = mk(cfg.Continuum)
	return pools
}

// spawnFromSpec creates one cluster object. Cluster objects count
// against the population cap; their reservation was taken when the
// cluster was accepted and is released on cull or destruction.
func (g *Game) spawnFromSpec(spec systems.ObjectSpec) {
	cfg := g.config()

	pos := components.Position{X: spec.X, Y: spec.Y}
	vel := components.Velocity{X: spec.VelX, Y: spec.VelY}
	spin := components.Spin{
		AngVelX: spec.AngVelX,
		AngVelY: spec.AngVelY,
		AngVelZ: spec.AngVelZ,
	}
	cull := components.Cull{
		MaxDistance: float32(cfg.Spawner.CullDistance),
		Counted:     true,
	}

	switch spec.Kind {
	case systems.SpawnRock:
		rock := components.Rock{}
		g.rockMapper.NewEntity(&pos, &vel, &spin, &rock, &cull)
	case systems.SpawnMineral:
		coll := components.Collectible{Reagent: components.Minerals, Amount: spec.Amount}
		g.collectibleMapper.NewEntity(&pos, &vel, &spin, &coll, &cull)
	case systems.SpawnExotic:
		coll := components.Collectible{Reagent: components.Exotic, Amount: spec.Amount}
		g.collectibleMapper.NewEntity(&pos, &vel, &spin, &coll, &cull)
	}
}

// spawnFragment creates one uncounted collectible, used for rock
// fragments and shield transmutation output. Fragments bypass the
// population cap; they are short-lived and the cap guards cluster
// spawning, not debris.
func (g *Game) spawnFragment(x, y float32, reagent components.Reagent, amount float32) {
	cfg := g.config()

	dirX, dirY := g.rng.Direction()
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{X: dirX, Y: dirY}
	spin := components.Spin{
		AngVelX: g.rng.Range(-math.Pi, math.Pi),
		AngVelY: g.rng.Range(-math.Pi, math.Pi),
		AngVelZ: g.rng.Range(-math.Pi, math.Pi),
	}
	coll := components.Collectible{Reagent: reagent, Amount: amount}
	cull := components.Cull{MaxDistance: float32(cfg.Spawner.CullDistance)}

	g.collectibleMapper.NewEntity(&pos, &vel, &spin, &coll, &cull)
}

// spawnSlug fires a projectile from the muzzle position along the
// facing direction. TTL is derived from range and speed.
func (g *Game) spawnSlug(x, y, dirX, dirY float32, gun *components.MainGun) {
	pos := components.Position{
		X: x + dirX*gun.OriginDistance,
		Y: y + dirY*gun.OriginDistance,
	}
	vel := components.Velocity{
		X: dirX * gun.ProjectileSpeed,
		Y: dirY * gun.ProjectileSpeed,
	}
	slug := components.Slug{TTL: gun.MaxProjectileDistance / gun.ProjectileSpeed}

	g.slugMapper.NewEntity(&pos, &vel, &slug)
}

// raiseShield creates the shield sensor entity around the player.
func (g *Game) raiseShield(x, y, radius float32) {
	if g.hasShield {
		return
	}
	pos := components.Position{X: x, Y: y}
	sh := components.Shield{Radius: radius, Parent: g.player}
	g.shield = g.shieldMapper.NewEntity(&pos, &sh)
	g.hasShield = true
}

// lowerShield removes the shield sensor entity.
func (g *Game) lowerShield() {
	if !g.hasShield {
		return
	}
	if g.world.Alive(g.shield) {
		g.shieldMapper.Remove(g.shield)
	}
	g.hasShield = false
}

// releaseReservation returns the entity's population slot, if it holds
// one, without despawning it.
func (g *Game) releaseReservation(e ecs.Entity) {
	if cull := g.cullMap.Get(e); cull != nil && cull.Counted {
		g.population.Release(1)
	}
}

// cullFarEntities removes rocks and collectibles that drifted too far
// from the camera. Two passes: queries must finish before the world is
// modified.
func (g *Game) cullFarEntities() {
	type cullInfo struct {
		entity  ecs.Entity
		rock    bool
		counted bool
	}
	var toRemove []cullInfo

	query := g.rockFilter.Query()
	for query.Next() {
		pos, _, _, _, cull := query.Get()
		if systems.Culled(pos.X, pos.Y, g.cam.X, g.cam.Y, cull.MaxDistance) {
			toRemove = append(toRemove, cullInfo{entity: query.Entity(), rock: true, counted: cull.Counted})
		}
	}
	cquery := g.collectibleFilter.Query()
	for cquery.Next() {
		pos, _, _, _, cull := cquery.Get()
		if systems.Culled(pos.X, pos.Y, g.cam.X, g.cam.Y, cull.MaxDistance) {
			toRemove = append(toRemove, cullInfo{entity: cquery.Entity(), counted: cull.Counted})
		}
	}

	for _, c := range toRemove {
		if c.counted {
			g.population.Release(1)
		}
		if c.rock {
			g.rockMapper.Remove(c.entity)
		} else {
			g.collectibleMapper.Remove(c.entity)
		}
		g.collector.RecordCull()
	}

	if len(toRemove) > 0 {
		slog.Debug("culled far objects", "count", len(toRemove), "population", g.population.Current())
	}
}

// restart tears down the run and rebuilds the initial world state,
// keeping telemetry output open across runs.
func (g *Game) restart() {
	slog.Info("restarting run", "tick", g.tick)

	g.lowerShield()

	var toRemove []ecs.Entity
	query := g.rockFilter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	cquery := g.collectibleFilter.Query()
	for cquery.Next() {
		toRemove = append(toRemove, cquery.Entity())
	}
	squery := g.slugFilter.Query()
	for squery.Next() {
		toRemove = append(toRemove, squery.Entity())
	}
	for _, e := range toRemove {
		switch {
		case g.rockMap.Get(e) != nil:
			g.rockMapper.Remove(e)
		case g.collMap.Get(e) != nil:
			g.collectibleMapper.Remove(e)
		default:
			g.slugMapper.Remove(e)
		}
	}
	if g.hasPlayer && g.world.Alive(g.player) {
		g.playerMapper.Remove(g.player)
	}
	g.hasPlayer = false

	cfg := g.config()
	g.population = systems.NewPopulation(cfg.Spawner.PopulationCap)
	g.spawner = systems.NewSpawner(&cfg.Spawner)
	g.reactions = &systems.ReactionEngine{}

	g.spawnQ.Clear()
	g.collisionQ.Clear()
	g.collectionQ.Clear()
	g.reagentQ.Clear()
	g.destroyedQ.Clear()
	g.soundQ.Clear()
	clear(g.overlaps)
	clear(g.prevOverlaps)

	g.cam.X = 0
	g.cam.Y = 0
	g.tick = 0

	g.spawnPlayer()
	g.spawnQ.Push(events.SpawnRequest{
		Count:           cfg.Spawner.InitialCluster,
		ChanceOfMineral: float32(cfg.Spawner.ChanceOfMineral),
	})
	if ctx := g.stageContext(); ctx != nil {
		g.progression.Reset(ctx)
	}
}
