package game

import (
	"math"
	"os"
	"testing"

	"github.com/pthm-cable/warlord/components"
	"github.com/pthm-cable/warlord/config"
	"github.com/pthm-cable/warlord/events"
	"github.com/pthm-cable/warlord/systems"
)

func TestMain(m *testing.M) {
	config.MustInit("")
	os.Exit(m.Run())
}

func headlessGame(seed int64) *Game {
	return NewGameWithOptions(Options{Seed: seed, Headless: true})
}

func TestInitialWorldState(t *testing.T) {
	g := headlessGame(1)
	defer g.Unload()

	if g.Stage() != systems.StageExploration {
		t.Errorf("Stage = %v, want Exploration", g.Stage())
	}

	_, pl, inv, heat, ok := g.PlayerState()
	if !ok {
		t.Fatal("no player after setup")
	}
	if pl.WeaponEnabled || pl.ShieldEnabled || pl.CargoDumpEnabled {
		t.Error("capability flags set before progression unlocked them")
	}
	if heat.Enabled {
		t.Error("heat enabled before GunAndHeat")
	}
	if !inv.Pool(components.Minerals).Visible {
		t.Error("Minerals pool hidden at start")
	}
	if inv.Pool(components.Exotic).Visible {
		t.Error("Exotic pool visible before GunAndHeat")
	}

	// Initial cluster applies on the first tick
	g.UpdateHeadless()
	current, cap := g.Population()
	if current != config.Cfg().Spawner.InitialCluster {
		t.Errorf("population = %d, want %d", current, config.Cfg().Spawner.InitialCluster)
	}
	if cap != config.Cfg().Spawner.PopulationCap {
		t.Errorf("cap = %d, want %d", cap, config.Cfg().Spawner.PopulationCap)
	}
}

func TestPopulationNeverExceedsCap(t *testing.T) {
	g := headlessGame(2)
	defer g.Unload()

	// 60 sim-seconds: a dozen spawner firings on top of the initial
	// cluster
	for i := 0; i < 3600; i++ {
		g.UpdateHeadless()
		current, cap := g.Population()
		if current > cap {
			t.Fatalf("tick %d: population %d exceeds cap %d", i, current, cap)
		}
	}
}

func TestIdlePlayerStaysInExploration(t *testing.T) {
	g := headlessGame(3)
	defer g.Unload()

	for i := 0; i < 1200; i++ {
		g.UpdateHeadless()
	}
	if g.Stage() != systems.StageExploration {
		t.Errorf("idle run advanced to %v", g.Stage())
	}
	_, _, inv, _, ok := g.PlayerState()
	if !ok {
		t.Fatal("player lost during idle run")
	}
	// A few minerals may drift onto the stationary ship, but nowhere
	// near the Exploration gate
	if inv.Fraction(components.Minerals) >= 0.9 {
		t.Errorf("idle player filled the mineral hold: %v", inv.Pool(components.Minerals).Current)
	}
}

func TestSameSeedSameRun(t *testing.T) {
	a := headlessGame(7)
	defer a.Unload()
	b := headlessGame(7)
	defer b.Unload()

	actions := Actions{Thrust: 1, AimX: 40, AimY: 10, HasAim: true}
	a.SetActions(actions)
	b.SetActions(actions)

	for i := 0; i < 600; i++ {
		a.UpdateHeadless()
		b.UpdateHeadless()
	}

	popA, _ := a.Population()
	popB, _ := b.Population()
	if popA != popB {
		t.Errorf("population diverged: %d vs %d", popA, popB)
	}

	posA, _, _, _, _ := a.PlayerState()
	posB, _, _, _, _ := b.PlayerState()
	if posA.X != posB.X || posA.Y != posB.Y {
		t.Errorf("player position diverged: (%v, %v) vs (%v, %v)", posA.X, posA.Y, posB.X, posB.Y)
	}
}

func TestThrustMovesPlayer(t *testing.T) {
	g := headlessGame(4)
	defer g.Unload()

	// Aim along +X and burn for two seconds
	g.SetActions(Actions{Thrust: 1, AimX: 1000, AimY: 0, HasAim: true})
	for i := 0; i < 120; i++ {
		g.UpdateHeadless()
	}

	pos, _, _, _, ok := g.PlayerState()
	if !ok {
		t.Fatal("player lost")
	}
	if pos.X < 5 {
		t.Errorf("player barely moved: X = %v", pos.X)
	}
}

func TestRestartRebuildsRun(t *testing.T) {
	g := headlessGame(5)
	defer g.Unload()

	g.SetActions(Actions{Thrust: 1, AimX: 1000, AimY: 0, HasAim: true})
	for i := 0; i < 600; i++ {
		g.UpdateHeadless()
	}

	g.SetActions(Actions{Restart: true})
	g.UpdateHeadless()

	if g.Tick() != 1 {
		t.Errorf("Tick = %d after restart update, want 1", g.Tick())
	}
	if g.Stage() != systems.StageExploration {
		t.Errorf("Stage = %v after restart, want Exploration", g.Stage())
	}
	pos, pl, inv, _, ok := g.PlayerState()
	if !ok {
		t.Fatal("no player after restart")
	}
	if pos.X != 0 || pos.Y != 0 {
		t.Errorf("player at (%v, %v) after restart, want origin", pos.X, pos.Y)
	}
	if pl.WeaponEnabled {
		t.Error("weapon still enabled after restart")
	}
	if inv.Pool(components.Minerals).Current != 0 {
		t.Error("inventory survived restart")
	}

	current, _ := g.Population()
	if current != config.Cfg().Spawner.InitialCluster {
		t.Errorf("population = %d after restart, want %d", current, config.Cfg().Spawner.InitialCluster)
	}
}

func TestCollectionDeltaIsPreClamp(t *testing.T) {
	g := headlessGame(8)
	defer g.Unload()

	// 9/10 Minerals; a 5-unit pickup saturates the pool but the
	// outbound delta carries the full requested amount
	_, _, inv, _, ok := g.PlayerState()
	if !ok {
		t.Fatal("no player")
	}
	inv.Pool(components.Minerals).Add(9)

	g.collectionQ.Push(events.Collection{Reagent: components.Minerals, Amount: 5})
	g.applyCollections()

	if inv.Pool(components.Minerals).Current != 10 {
		t.Errorf("Minerals = %v, want clamped to 10", inv.Pool(components.Minerals).Current)
	}

	deltas := g.reagentQ.Drain()
	if len(deltas) != 1 {
		t.Fatalf("deltas = %d, want 1", len(deltas))
	}
	if deltas[0].Reagent != components.Minerals || deltas[0].Delta != 5 {
		t.Errorf("delta = %+v, want {Minerals, +5}", deltas[0])
	}
}

func TestCargoDumpDeltaIsAppliedAmount(t *testing.T) {
	g := headlessGame(9)
	defer g.Unload()

	_, pl, inv, _, ok := g.PlayerState()
	if !ok {
		t.Fatal("no player")
	}
	pl.CargoDumpEnabled = true

	// Far less than one tick's dump rate: the debit and its delta
	// both stop at what the pool held
	inv.Pool(components.Exotic).Add(0.01)
	g.SetActions(Actions{Dump: true})

	dt := config.Cfg().Derived.DT32
	g.updatePlayer(dt)

	if inv.Pool(components.Exotic).Current != 0 {
		t.Errorf("Exotic = %v, want 0", inv.Pool(components.Exotic).Current)
	}
	deltas := g.reagentQ.Drain()
	if len(deltas) != 1 {
		t.Fatalf("deltas = %d, want 1", len(deltas))
	}
	if deltas[0].Reagent != components.Exotic || math.Abs(float64(deltas[0].Delta+0.01)) > 1e-6 {
		t.Errorf("delta = %+v, want {Exotic, -0.01}", deltas[0])
	}

	// A well-stocked pool emits the full per-tick debit
	inv.Pool(components.Minerals).Add(10)
	g.updatePlayer(dt)
	deltas = g.reagentQ.Drain()
	if len(deltas) != 1 {
		t.Fatalf("deltas = %d, want 1", len(deltas))
	}
	want := float64(config.Cfg().Cargo.DumpRate) * float64(dt)
	if math.Abs(float64(-deltas[0].Delta)-want) > 1e-6 {
		t.Errorf("delta = %v, want %v", deltas[0].Delta, -want)
	}
}

func TestScriptedGunAndHeatProgression(t *testing.T) {
	g := headlessGame(6)
	defer g.Unload()

	// Hand the player a full mineral hold; the next update crosses
	// the Exploration gate.
	_, _, inv, heat, _ := g.PlayerState()
	inv.Pool(components.Minerals).Add(10)
	g.UpdateHeadless()

	if g.Stage() != systems.StageGunAndHeat {
		t.Fatalf("Stage = %v, want GunAndHeat", g.Stage())
	}
	_, pl, inv, heat, _ := g.PlayerState()
	if !pl.WeaponEnabled || !heat.Enabled {
		t.Error("GunAndHeat unlocks missing")
	}
	if inv.Pool(components.Minerals).Current != 0 {
		t.Errorf("Minerals = %v, want 0 after Exploration exit", inv.Pool(components.Minerals).Current)
	}

	// Heat above the reaction threshold converts Minerals to Exotic
	inv.Pool(components.Minerals).Add(10)
	heat.Add(80)
	before := inv.Pool(components.Exotic).Current
	g.UpdateHeadless()
	if inv.Pool(components.Exotic).Current <= before {
		t.Error("hot reaction produced no Exotic")
	}
}
