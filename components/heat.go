package components

// Heat is a bounded accumulator that gates reactions and weapon fire.
// It rises on weapon use and decays after a quiet delay: every positive
// addition restarts the delay timer, and decay only runs once the timer
// has expired with no further additions.
type Heat struct {
	Current float32
	Limit   float32

	// ReactionThreshold is a fraction of Limit; heat-gated reactions are
	// permitted while Fraction() exceeds it.
	ReactionThreshold float32

	DecayRate  float32 // units per second once decaying
	DecayDelay float32 // quiet time before decay resumes

	Enabled          bool // gameplay gate, flipped by progression
	ThresholdVisible bool // HUD marker gate

	decayRemaining float32
}

// NewHeat returns a Heat with a fresh decay timer. Limit must be > 0.
func NewHeat(limit, reactionThreshold, decayRate, decayDelay float32) Heat {
	return Heat{
		Limit:             limit,
		ReactionThreshold: reactionThreshold,
		DecayRate:         decayRate,
		DecayDelay:        decayDelay,
		decayRemaining:    decayDelay,
	}
}

// Fraction returns Current/Limit.
func (h *Heat) Fraction() float32 {
	return h.Current / h.Limit
}

// CanReact reports whether heat-gated reactions are permitted.
func (h *Heat) CanReact() bool {
	return h.Fraction() > h.ReactionThreshold
}

// Add clamps Current into [0, Limit]. A positive delta restarts the
// decay timer; negative deltas (decay itself) leave it alone.
func (h *Heat) Add(delta float32) {
	h.Current += delta
	if h.Current < 0 {
		h.Current = 0
	}
	if h.Current > h.Limit {
		h.Current = h.Limit
	}
	if delta > 0 {
		h.decayRemaining = h.DecayDelay
	}
}

// Tick advances the decay timer by dt. If the timer finishes within this
// step, the portion of dt beyond what the timer needed decays heat at
// DecayRate. Ticking in pieces is equivalent to one combined tick as long
// as no heat is added in between.
func (h *Heat) Tick(dt float32) {
	leftover := dt - h.decayRemaining
	h.decayRemaining -= dt
	if h.decayRemaining < 0 {
		h.decayRemaining = 0
	}
	if leftover > 0 && h.decayRemaining == 0 {
		h.Add(-h.DecayRate * leftover)
	}
}
