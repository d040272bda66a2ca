package systems

import (
	"github.com/pthm-cable/warlord/components"
	"github.com/pthm-cable/warlord/events"
)

// Rule converts one or two input reagent pools into a result pool at a
// bounded rate, optionally gated on heat. Rules are immutable once
// constructed; the progression machine appends new ones at runtime but
// never removes or mutates existing ones.
type Rule struct {
	Reagent1  components.Reagent
	Reagent2  components.Reagent
	HasSecond bool
	NeedsHeat bool
	Rate      float32 // units per second
	Result    components.Reagent
	HasResult bool
}

// Tick applies the rule to one inventory/heat pair for a step of dt
// seconds. The reacted amount is computed once, from the pool states
// before any mutation, then applied to all touched pools; events are
// emitted in the order result, reagent1, reagent2.
func (r *Rule) Tick(inv *components.Inventory, heat *components.Heat, dt float32, emit func(events.ReagentDelta)) {
	if r.NeedsHeat && !heat.CanReact() {
		// The reaction needs heat, but we don't have enough
		return
	}

	amount := inv.Pool(r.Reagent1).Current
	if r.HasSecond {
		if c := inv.Pool(r.Reagent2).Current; c < amount {
			amount = c
		}
	}
	if lim := dt * r.Rate; lim < amount {
		amount = lim
	}

	if r.HasResult {
		// Reacts only as long as there's space in the result pool
		result := inv.Pool(r.Result)
		if h := result.Headroom(); h < amount {
			amount = h
		}
		result.Add(amount)
		emit(events.ReagentDelta{Reagent: r.Result, Delta: amount})
	}

	inv.Pool(r.Reagent1).Add(-amount)
	emit(events.ReagentDelta{Reagent: r.Reagent1, Delta: -amount})

	if r.HasSecond {
		inv.Pool(r.Reagent2).Add(-amount)
		emit(events.ReagentDelta{Reagent: r.Reagent2, Delta: -amount})
	}
}

// ReactionEngine holds the global ordered rule list. List order is part
// of the contract: a later rule sees the pool states already modified by
// earlier rules in the same tick.
type ReactionEngine struct {
	rules []Rule
}

// Append adds a rule to the end of the list.
func (e *ReactionEngine) Append(r Rule) {
	e.rules = append(e.rules, r)
}

// Rules returns the rule list in evaluation order.
func (e *ReactionEngine) Rules() []Rule {
	return e.rules
}

// Tick evaluates every rule, in list order, against one inventory/heat
// pair.
func (e *ReactionEngine) Tick(inv *components.Inventory, heat *components.Heat, dt float32, emit func(events.ReagentDelta)) {
	for i := range e.rules {
		e.rules[i].Tick(inv, heat, dt, emit)
	}
}
