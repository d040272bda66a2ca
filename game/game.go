// Package game wires the simulation together: world setup, the fixed
// per-tick pipeline, event routing, rendering, and input.
package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warlord/camera"
	"github.com/pthm-cable/warlord/components"
	"github.com/pthm-cable/warlord/config"
	"github.com/pthm-cable/warlord/events"
	"github.com/pthm-cable/warlord/renderer"
	"github.com/pthm-cable/warlord/systems"
	"github.com/pthm-cable/warlord/telemetry"
)

// Camera follow tuning. The leash is tight relative to the 30-unit view
// so the ship stays near screen center.
const (
	cameraFocusRadius    = 2.0
	cameraFocusCentering = 0.5
)

// Options configures game creation.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// Game holds the complete game state.
type Game struct {
	world *ecs.World
	rng   *systems.Rand

	// Archetype mappers and filters
	rockMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Spin,
		components.Rock,
		components.Cull,
	]
	rockFilter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Spin,
		components.Rock,
		components.Cull,
	]
	collectibleMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Spin,
		components.Collectible,
		components.Cull,
	]
	collectibleFilter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Spin,
		components.Collectible,
		components.Cull,
	]
	slugMapper *ecs.Map3[
		components.Position,
		components.Velocity,
		components.Slug,
	]
	slugFilter *ecs.Filter3[
		components.Position,
		components.Velocity,
		components.Slug,
	]
	playerMapper *ecs.Map6[
		components.Position,
		components.Velocity,
		components.Player,
		components.MainGun,
		components.Inventory,
		components.Heat,
	]
	shieldMapper *ecs.Map2[
		components.Position,
		components.Shield,
	]

	// Individual component mappers for lookups
	posMap    *ecs.Map1[components.Position]
	rockMap   *ecs.Map1[components.Rock]
	collMap   *ecs.Map1[components.Collectible]
	slugMap   *ecs.Map1[components.Slug]
	cullMap   *ecs.Map1[components.Cull]
	playerMap *ecs.Map1[components.Player]
	shieldMap *ecs.Map1[components.Shield]

	// Simulation collaborators
	population  *systems.Population
	spawner     *systems.Spawner
	reactions   *systems.ReactionEngine
	progression *systems.Machine
	cam         *camera.Camera
	hash        *systems.SpatialHash

	// Event queues, drained at fixed points in the pipeline
	spawnQ      events.Queue[events.SpawnRequest]
	collisionQ  events.Queue[events.Collision]
	collectionQ events.Queue[events.Collection]
	reagentQ    events.Queue[events.ReagentDelta]
	destroyedQ  events.Queue[events.RockDestroyed]
	soundQ      events.Queue[events.SoundEvent]

	// Overlap tracking: collision events fire on overlap begin only
	overlaps     map[overlapKey]struct{}
	prevOverlaps map[overlapKey]struct{}
	neighborBuf  []systems.Neighbor

	// Telemetry
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool

	// Rendering
	starfield *renderer.Starfield

	// Player entity handle; the shield entity exists only while raised
	player    ecs.Entity
	hasPlayer bool
	shield    ecs.Entity
	hasShield bool

	actions Actions

	// State
	tick           int32
	paused         bool
	speed          int // simulation ticks per update in graphical mode
	stepsPerUpdate int
	headless       bool

	width, height float32
}

// NewGame creates a game with default options and a fixed seed.
func NewGame() *Game {
	return NewGameWithOptions(Options{Seed: 42})
}

// NewGameWithOptions creates a new game instance.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	g := &Game{
		world:    world,
		rng:      systems.NewRand(opts.Seed),
		width:    cfg.Derived.ScreenW32,
		height:   cfg.Derived.ScreenH32,
		speed:    1,
		headless: opts.Headless,

		rockMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Spin,
			components.Rock,
			components.Cull,
		](world),
		rockFilter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Spin,
			components.Rock,
			components.Cull,
		](world),
		collectibleMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Spin,
			components.Collectible,
			components.Cull,
		](world),
		collectibleFilter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Spin,
			components.Collectible,
			components.Cull,
		](world),
		slugMapper: ecs.NewMap3[
			components.Position,
			components.Velocity,
			components.Slug,
		](world),
		slugFilter: ecs.NewFilter3[
			components.Position,
			components.Velocity,
			components.Slug,
		](world),
		playerMapper: ecs.NewMap6[
			components.Position,
			components.Velocity,
			components.Player,
			components.MainGun,
			components.Inventory,
			components.Heat,
		](world),
		shieldMapper: ecs.NewMap2[
			components.Position,
			components.Shield,
		](world),

		posMap:    ecs.NewMap1[components.Position](world),
		rockMap:   ecs.NewMap1[components.Rock](world),
		collMap:   ecs.NewMap1[components.Collectible](world),
		slugMap:   ecs.NewMap1[components.Slug](world),
		cullMap:   ecs.NewMap1[components.Cull](world),
		playerMap: ecs.NewMap1[components.Player](world),
		shieldMap: ecs.NewMap1[components.Shield](world),

		overlaps:     make(map[overlapKey]struct{}),
		prevOverlaps: make(map[overlapKey]struct{}),
	}

	g.stepsPerUpdate = opts.StepsPerUpdate
	if g.stepsPerUpdate < 1 {
		g.stepsPerUpdate = 1
	}

	g.population = systems.NewPopulation(cfg.Spawner.PopulationCap)
	g.spawner = systems.NewSpawner(&cfg.Spawner)
	g.reactions = &systems.ReactionEngine{}
	g.progression = systems.NewMachine(&cfg.Stages)
	g.cam = camera.New(0, 0, cameraFocusRadius, cameraFocusCentering, float32(cfg.Screen.WorldView))
	g.hash = systems.NewSpatialHash(float32(cfg.Collision.GridCellSize))

	// Telemetry
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindow, cfg.Derived.DT32)
	g.logStats = opts.LogStats

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	} else {
		g.output = output
		if err := g.output.WriteConfig(cfg); err != nil {
			slog.Warn("failed to write config snapshot", "error", err)
		}
	}

	if !g.headless {
		g.starfield = renderer.NewStarfield(opts.Seed, int32(cfg.Screen.Width), int32(cfg.Screen.Height))
	}

	g.setupWorld()

	return g
}

// config returns the global config.
func (g *Game) config() *config.Config {
	return config.Cfg()
}

// setupWorld spawns the player and the initial rock cluster and starts
// the progression machine.
func (g *Game) setupWorld() {
	cfg := g.config()

	g.spawnPlayer()

	g.spawnQ.Push(events.SpawnRequest{
		Count:           cfg.Spawner.InitialCluster,
		CenterX:         0,
		CenterY:         0,
		ChanceOfMineral: float32(cfg.Spawner.ChanceOfMineral),
	})

	ctx := g.stageContext()
	if ctx != nil {
		g.progression.Start(ctx)
	}
}

// stageContext assembles the mutable state the progression hooks act on.
// Returns nil if there is no player.
func (g *Game) stageContext() *systems.StageContext {
	if !g.hasPlayer || !g.world.Alive(g.player) {
		return nil
	}
	_, _, pl, _, inv, heat := g.playerMapper.Get(g.player)
	return &systems.StageContext{
		Inventory: inv,
		Heat:      heat,
		Player:    pl,
		Rules:     g.reactions,
		Spawner:   g.spawner,
		Sounds:    &g.soundQ,
	}
}

// Update runs input handling and one or more simulation steps based on
// the speed setting.
func (g *Game) Update() {
	g.handleInput()

	if g.actions.Restart {
		g.restart()
	}

	if g.paused {
		return
	}

	for i := 0; i < g.speed; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs simulation steps without input handling. Actions
// can still be injected with SetActions for scripted runs.
func (g *Game) UpdateHeadless() {
	if g.actions.Restart {
		g.restart()
		g.actions.Restart = false
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// SetActions injects the control state for subsequent ticks. Used in
// headless mode and tests; graphical mode overwrites it from raylib
// input every frame.
func (g *Game) SetActions(a Actions) {
	g.actions = a
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Volume returns the configured volume settings for the audio layer.
func (g *Game) Volume() config.SoundConfig {
	return g.config().Sound
}

// Stage returns the active progression stage.
func (g *Game) Stage() systems.Stage {
	return g.progression.Current()
}

// Population returns the live spawned-object count and the cap.
func (g *Game) Population() (int, int) {
	return g.population.Current(), g.population.Cap()
}

// PlayerState returns the player's components for inspection. ok is
// false if the player entity is gone.
func (g *Game) PlayerState() (pos *components.Position, pl *components.Player, inv *components.Inventory, heat *components.Heat, ok bool) {
	if !g.hasPlayer || !g.world.Alive(g.player) {
		return nil, nil, nil, nil, false
	}
	pos, _, pl, _, inv, heat = g.playerMapper.Get(g.player)
	return pos, pl, inv, heat, true
}

// Unload releases rendering resources and closes output files.
func (g *Game) Unload() {
	if g.starfield != nil {
		g.starfield.Unload()
	}
	if err := g.output.Close(); err != nil {
		slog.Warn("failed to close output", "error", err)
	}
}
