package systems

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/warlord/components"
	"github.com/pthm-cable/warlord/config"
	"github.com/pthm-cable/warlord/events"
)

// Stage is one phase of the fixed, forward-only gameplay sequence.
type Stage uint8

const (
	StageExploration Stage = iota
	StageGunAndHeat
	StageCollectExotic
	StageShieldAndStrange
	StageContinuum
	StageEnd
)

// String returns the stage's display name.
func (s Stage) String() string {
	switch s {
	case StageExploration:
		return "Exploration"
	case StageGunAndHeat:
		return "GunAndHeat"
	case StageCollectExotic:
		return "CollectExotic"
	case StageShieldAndStrange:
		return "ShieldAndStrange"
	case StageContinuum:
		return "Continuum"
	case StageEnd:
		return "End"
	}
	return "Unknown"
}

// StageContext is the mutable world state the stage hooks operate on:
// the player's inventory and heat, the capability flags, the global rule
// list, and the spawner.
type StageContext struct {
	Inventory *components.Inventory
	Heat      *components.Heat
	Player    *components.Player
	Rules     *ReactionEngine
	Spawner   *Spawner
	Sounds    *events.Queue[events.SoundEvent]
}

// Machine sequences the gameplay stages. Transitions only move forward;
// at most one transition is applied per Update, and the exit hook of the
// old stage and the enter hook of the new one both run before Update
// returns, so no other system ever observes a stage whose enter hook has
// not run.
type Machine struct {
	cfg        *config.StagesConfig
	current    Stage
	pending    Stage
	hasPending bool
}

// NewMachine creates a machine positioned at the first stage. Call Start
// to run its enter hook.
func NewMachine(cfg *config.StagesConfig) *Machine {
	return &Machine{cfg: cfg, current: StageExploration}
}

// Current returns the active stage.
func (m *Machine) Current() Stage {
	return m.current
}

// Start runs the enter hook of the initial stage.
func (m *Machine) Start(ctx *StageContext) {
	m.enter(ctx)
}

// Reset returns the machine to the initial stage for a fresh run. The
// caller is expected to have rebuilt the world state; Reset only
// repositions the machine and runs the enter hook.
func (m *Machine) Reset(ctx *StageContext) {
	m.current = StageExploration
	m.hasPending = false
	m.enter(ctx)
}

// Update runs the active stage's update hook and applies the requested
// transition, if any: exit of the old stage, then enter of the new one.
func (m *Machine) Update(ctx *StageContext) {
	m.update(ctx)
	if !m.hasPending {
		return
	}
	from := m.current
	m.exit(ctx)
	m.current = m.pending
	m.hasPending = false
	m.enter(ctx)
	if ctx.Sounds != nil {
		ctx.Sounds.Push(events.SoundEvent{Kind: events.SoundNextStage})
	}
	slog.Info("stage advanced", "from", from.String(), "to", m.current.String())
}

func (m *Machine) request(next Stage) {
	m.pending = next
	m.hasPending = true
}

// gate checks the stage's gating pool against its threshold and requests
// the transition to the next stage when met or exceeded. The threshold
// must have been set by this stage's enter hook; a missing threshold
// means the enter/update pairing was broken during maintenance.
func (m *Machine) gate(ctx *StageContext, r components.Reagent) {
	pool := ctx.Inventory.Pool(r)
	threshold, ok := pool.Threshold()
	if !ok {
		panic(fmt.Sprintf("progression: stage %v updated without a gating threshold on %v", m.current, r))
	}
	if pool.Fraction() >= threshold {
		m.request(m.current + 1)
	}
}

func (m *Machine) enter(ctx *StageContext) {
	switch m.current {
	case StageExploration:
		pool := ctx.Inventory.Pool(components.Minerals)
		pool.Visible = true
		pool.SetThreshold(float32(m.cfg.ExplorationThreshold))

	case StageGunAndHeat:
		ctx.Player.WeaponEnabled = true
		ctx.Heat.Enabled = true
		ctx.Heat.ThresholdVisible = true
		ctx.Rules.Append(Rule{
			Reagent1:  components.Minerals,
			NeedsHeat: true,
			Rate:      float32(m.cfg.MineralReactionRate),
			Result:    components.Exotic,
			HasResult: true,
		})
		pool := ctx.Inventory.Pool(components.Exotic)
		pool.Visible = true
		pool.SetThreshold(float32(m.cfg.GunExoticThreshold))

	case StageCollectExotic:
		ctx.Player.CargoDumpEnabled = true
		ctx.Spawner.ChanceOfExotic = float32(m.cfg.ExoticSpawnChance)
		ctx.Inventory.Pool(components.Exotic).SetThreshold(float32(m.cfg.CollectExoticThreshold))

	case StageShieldAndStrange:
		ctx.Player.ShieldEnabled = true
		pool := ctx.Inventory.Pool(components.Strange)
		pool.Visible = true
		pool.SetThreshold(float32(m.cfg.StrangeThreshold))

	case StageContinuum:
		ctx.Rules.Append(Rule{
			Reagent1:  components.Exotic,
			Reagent2:  components.Strange,
			HasSecond: true,
			NeedsHeat: true,
			Rate:      float32(m.cfg.ContinuumReactionRate),
			Result:    components.Continuum,
			HasResult: true,
		})
		pool := ctx.Inventory.Pool(components.Continuum)
		pool.Visible = true
		pool.SetThreshold(float32(m.cfg.ContinuumThreshold))

	case StageEnd:
		slog.Info("run complete")
	}
}

func (m *Machine) update(ctx *StageContext) {
	switch m.current {
	case StageExploration:
		m.gate(ctx, components.Minerals)
	case StageGunAndHeat:
		m.gate(ctx, components.Exotic)
	case StageCollectExotic:
		m.gate(ctx, components.Exotic)
	case StageShieldAndStrange:
		m.gate(ctx, components.Strange)
	case StageContinuum:
		m.gate(ctx, components.Continuum)
	case StageEnd:
		// terminal
	}
}

// exit clears the threshold the stage set on entry. Exploration also
// debits its gating pool back to zero so the next phase starts clean.
func (m *Machine) exit(ctx *StageContext) {
	switch m.current {
	case StageExploration:
		pool := ctx.Inventory.Pool(components.Minerals)
		pool.ClearThreshold()
		pool.Add(-pool.Limit)
	case StageGunAndHeat, StageCollectExotic:
		ctx.Inventory.Pool(components.Exotic).ClearThreshold()
	case StageShieldAndStrange:
		ctx.Inventory.Pool(components.Strange).ClearThreshold()
	case StageContinuum:
		ctx.Inventory.Pool(components.Continuum).ClearThreshold()
	case StageEnd:
	}
}
