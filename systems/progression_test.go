package systems

import (
	"testing"

	"github.com/pthm-cable/warlord/components"
	"github.com/pthm-cable/warlord/config"
	"github.com/pthm-cable/warlord/events"
)

func testStagesConfig() *config.StagesConfig {
	return &config.StagesConfig{
		ExplorationThreshold:   0.9,
		GunExoticThreshold:     0.2,
		CollectExoticThreshold: 0.9,
		StrangeThreshold:       0.5,
		ContinuumThreshold:     0.9,
		MineralReactionRate:    0.5,
		ContinuumReactionRate:  0.25,
		ExoticSpawnChance:      0.05,
	}
}

func testStageContext() (*StageContext, *components.Inventory, *components.Heat, *components.Player) {
	inv := components.NewInventory([components.NumReagents]components.ReagentPool{
		components.Minerals:  {Limit: 10, Visible: true},
		components.Exotic:    {Limit: 25},
		components.Strange:   {Limit: 25},
		components.Continuum: {Limit: 10},
	})
	heat := components.NewHeat(100, 0.75, 25, 1.5)
	pl := components.Player{}
	spawner := &Spawner{Interval: 5}

	ctx := &StageContext{
		Inventory: &inv,
		Heat:      &heat,
		Player:    &pl,
		Rules:     &ReactionEngine{},
		Spawner:   spawner,
		Sounds:    &events.Queue[events.SoundEvent]{},
	}
	return ctx, &inv, &heat, &pl
}

func TestMachineStartsInExploration(t *testing.T) {
	m := NewMachine(testStagesConfig())
	ctx, inv, _, _ := testStageContext()
	m.Start(ctx)

	if m.Current() != StageExploration {
		t.Fatalf("Current = %v, want Exploration", m.Current())
	}
	threshold, ok := inv.Pool(components.Minerals).Threshold()
	if !ok || threshold != 0.9 {
		t.Errorf("Minerals threshold = %v, %v, want 0.9, true", threshold, ok)
	}
}

func TestMachineHoldsBelowThreshold(t *testing.T) {
	m := NewMachine(testStagesConfig())
	ctx, inv, _, _ := testStageContext()
	m.Start(ctx)

	inv.Pool(components.Minerals).Add(8.9) // 0.89 < 0.9
	m.Update(ctx)
	if m.Current() != StageExploration {
		t.Errorf("advanced below threshold: %v", m.Current())
	}
}

func TestMachineAdvancesAtThreshold(t *testing.T) {
	m := NewMachine(testStagesConfig())
	ctx, inv, heat, pl := testStageContext()
	m.Start(ctx)

	inv.Pool(components.Minerals).Add(9) // exactly 0.9
	m.Update(ctx)

	if m.Current() != StageGunAndHeat {
		t.Fatalf("Current = %v, want GunAndHeat", m.Current())
	}

	// Exploration's exit drains the pool and clears its threshold
	if inv.Pool(components.Minerals).Current != 0 {
		t.Errorf("Minerals = %v, want 0 after exit", inv.Pool(components.Minerals).Current)
	}
	if _, ok := inv.Pool(components.Minerals).Threshold(); ok {
		t.Error("Minerals threshold not cleared on exit")
	}

	// GunAndHeat's enter unlocks the weapon, heat, and the first rule
	if !pl.WeaponEnabled {
		t.Error("WeaponEnabled = false after GunAndHeat enter")
	}
	if !heat.Enabled || !heat.ThresholdVisible {
		t.Error("heat not enabled after GunAndHeat enter")
	}
	if len(ctx.Rules.Rules()) != 1 {
		t.Fatalf("rules = %d, want 1", len(ctx.Rules.Rules()))
	}
	rule := ctx.Rules.Rules()[0]
	if rule.Reagent1 != components.Minerals || rule.Result != components.Exotic || !rule.NeedsHeat {
		t.Errorf("unexpected rule appended: %+v", rule)
	}
	if !inv.Pool(components.Exotic).Visible {
		t.Error("Exotic pool not revealed")
	}
}

func TestMachineAtMostOneTransitionPerUpdate(t *testing.T) {
	m := NewMachine(testStagesConfig())
	ctx, inv, _, _ := testStageContext()
	m.Start(ctx)

	// Enough to clear both the Exploration and GunAndHeat gates
	inv.Pool(components.Minerals).Add(10)
	inv.Pool(components.Exotic).Add(25)

	m.Update(ctx)
	if m.Current() != StageGunAndHeat {
		t.Fatalf("first update: %v, want GunAndHeat", m.Current())
	}
	m.Update(ctx)
	if m.Current() != StageCollectExotic {
		t.Fatalf("second update: %v, want CollectExotic", m.Current())
	}
}

func TestMachineFullSequence(t *testing.T) {
	m := NewMachine(testStagesConfig())
	ctx, inv, _, pl := testStageContext()
	m.Start(ctx)

	fill := func(r components.Reagent) {
		pool := inv.Pool(r)
		pool.Add(pool.Limit)
	}

	fill(components.Minerals)
	m.Update(ctx) // -> GunAndHeat

	fill(components.Exotic)
	m.Update(ctx) // -> CollectExotic
	if !pl.CargoDumpEnabled {
		t.Error("CargoDumpEnabled = false after CollectExotic enter")
	}
	if ctx.Spawner.ChanceOfExotic != 0.05 {
		t.Errorf("ChanceOfExotic = %v, want 0.05", ctx.Spawner.ChanceOfExotic)
	}

	m.Update(ctx) // Exotic still full -> ShieldAndStrange
	if m.Current() != StageShieldAndStrange {
		t.Fatalf("Current = %v, want ShieldAndStrange", m.Current())
	}
	if !pl.ShieldEnabled {
		t.Error("ShieldEnabled = false after ShieldAndStrange enter")
	}

	fill(components.Strange)
	m.Update(ctx) // -> Continuum
	if m.Current() != StageContinuum {
		t.Fatalf("Current = %v, want Continuum", m.Current())
	}
	if len(ctx.Rules.Rules()) != 2 {
		t.Errorf("rules = %d, want 2", len(ctx.Rules.Rules()))
	}

	fill(components.Continuum)
	m.Update(ctx) // -> End
	if m.Current() != StageEnd {
		t.Fatalf("Current = %v, want End", m.Current())
	}

	// End is terminal
	m.Update(ctx)
	if m.Current() != StageEnd {
		t.Errorf("machine left the terminal stage: %v", m.Current())
	}
}

func TestMachineEmitsStageSound(t *testing.T) {
	m := NewMachine(testStagesConfig())
	ctx, inv, _, _ := testStageContext()
	m.Start(ctx)

	inv.Pool(components.Minerals).Add(10)
	m.Update(ctx)

	sounds := ctx.Sounds.Drain()
	if len(sounds) != 1 || sounds[0].Kind != events.SoundNextStage {
		t.Errorf("sounds = %+v, want one NextStage", sounds)
	}
}

func TestMachineResetReturnsToExploration(t *testing.T) {
	m := NewMachine(testStagesConfig())
	ctx, inv, _, _ := testStageContext()
	m.Start(ctx)

	inv.Pool(components.Minerals).Add(10)
	m.Update(ctx)

	ctx2, inv2, _, _ := testStageContext()
	m.Reset(ctx2)
	if m.Current() != StageExploration {
		t.Fatalf("Current = %v, want Exploration", m.Current())
	}
	if _, ok := inv2.Pool(components.Minerals).Threshold(); !ok {
		t.Error("Reset did not rerun the enter hook")
	}
}

func TestMachinePanicsWithoutThreshold(t *testing.T) {
	m := NewMachine(testStagesConfig())
	ctx, inv, _, _ := testStageContext()
	m.Start(ctx)

	// Simulate a broken enter/exit pairing
	inv.Pool(components.Minerals).ClearThreshold()

	defer func() {
		if recover() == nil {
			t.Error("Update without a gating threshold did not panic")
		}
	}()
	m.Update(ctx)
}
