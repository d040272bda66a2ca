package components

// ReagentPool tracks one reagent's capacity-bounded quantity.
// Current always stays within [0, Limit]; Add clamps in both directions.
type ReagentPool struct {
	Current float32
	Limit   float32
	Visible bool

	// Threshold is a target fraction of Limit. It is owned by whichever
	// progression stage set it and must be cleared on that stage's exit.
	threshold    float32
	hasThreshold bool
}

// Fraction returns Current/Limit. Limit must stay > 0.
func (p *ReagentPool) Fraction() float32 {
	return p.Current / p.Limit
}

// Add adjusts Current by amount (negative amounts debit the pool) and
// clamps the result to [0, Limit]. Over-draw and over-fill saturate
// silently; there is no error path.
func (p *ReagentPool) Add(amount float32) {
	p.Current += amount
	if p.Current < 0 {
		p.Current = 0
	}
	if p.Current > p.Limit {
		p.Current = p.Limit
	}
}

// Headroom returns the remaining capacity of the pool.
func (p *ReagentPool) Headroom() float32 {
	return p.Limit - p.Current
}

// SetThreshold sets the target fraction of Limit used by progression
// gating and the HUD marker.
func (p *ReagentPool) SetThreshold(fraction float32) {
	p.threshold = fraction
	p.hasThreshold = true
}

// ClearThreshold removes the threshold.
func (p *ReagentPool) ClearThreshold() {
	p.threshold = 0
	p.hasThreshold = false
}

// Threshold returns the target fraction and whether one is set.
func (p *ReagentPool) Threshold() (float32, bool) {
	return p.threshold, p.hasThreshold
}

// Inventory holds exactly one pool per reagent kind, indexed by Reagent.
// An object carries at most one Inventory; it is created and destroyed
// with its owner.
type Inventory struct {
	reagents [NumReagents]ReagentPool
}

// NewInventory builds an inventory from per-kind defaults. The array is
// indexed by Reagent, so the kind enumeration and the pool array can
// never disagree in size.
func NewInventory(defaults [NumReagents]ReagentPool) Inventory {
	return Inventory{reagents: defaults}
}

// Pool returns the mutable pool for the given reagent.
func (inv *Inventory) Pool(r Reagent) *ReagentPool {
	return &inv.reagents[r]
}

// Fraction returns the fill fraction of the given reagent's pool.
func (inv *Inventory) Fraction(r Reagent) float32 {
	return inv.reagents[r].Fraction()
}
