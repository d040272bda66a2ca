package components

// Reagent identifies a resource kind tracked per inventory.
// The set is closed; Inventory's pool array is indexed by Reagent.
type Reagent uint8

const (
	Minerals Reagent = iota
	Exotic
	Strange
	Continuum

	// NumReagents is the size of the closed reagent set.
	// Keep this in sync with the constants above; Inventory construction
	// relies on it.
	NumReagents = 4
)

// String returns the reagent's display name.
func (r Reagent) String() string {
	switch r {
	case Minerals:
		return "Minerals"
	case Exotic:
		return "Exotic"
	case Strange:
		return "Strange"
	case Continuum:
		return "Continuum"
	}
	return "Unknown"
}

// AllReagents lists every reagent kind in index order.
func AllReagents() [NumReagents]Reagent {
	return [NumReagents]Reagent{Minerals, Exotic, Strange, Continuum}
}
