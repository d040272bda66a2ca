package components

import (
	"math/rand"
	"testing"
)

func testInventory() Inventory {
	return NewInventory([NumReagents]ReagentPool{
		Minerals:  {Limit: 10, Visible: true},
		Exotic:    {Limit: 25},
		Strange:   {Limit: 25},
		Continuum: {Limit: 10},
	})
}

func TestPoolAddClamps(t *testing.T) {
	tests := []struct {
		name  string
		start float32
		delta float32
		want  float32
	}{
		{"credit", 2, 3, 5},
		{"overfill saturates", 8, 100, 10},
		{"debit", 5, -2, 3},
		{"overdraw saturates", 1, -100, 0},
		{"exact fill", 0, 10, 10},
		{"exact drain", 10, -10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ReagentPool{Current: tt.start, Limit: 10}
			p.Add(tt.delta)
			if p.Current != tt.want {
				t.Errorf("Current = %v, want %v", p.Current, tt.want)
			}
		})
	}
}

func TestPoolStaysBoundedUnderRandomDeltas(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := ReagentPool{Limit: 10}

	for i := 0; i < 10000; i++ {
		p.Add(rng.Float32()*40 - 20)
		if p.Current < 0 || p.Current > p.Limit {
			t.Fatalf("pool escaped bounds at step %d: %v", i, p.Current)
		}
	}
}

func TestPoolThresholdLifecycle(t *testing.T) {
	p := ReagentPool{Limit: 10}

	if _, ok := p.Threshold(); ok {
		t.Error("fresh pool has a threshold")
	}

	p.SetThreshold(0.9)
	got, ok := p.Threshold()
	if !ok || got != 0.9 {
		t.Errorf("Threshold() = %v, %v, want 0.9, true", got, ok)
	}

	p.ClearThreshold()
	if _, ok := p.Threshold(); ok {
		t.Error("threshold survived ClearThreshold")
	}
}

func TestPoolFractionAndHeadroom(t *testing.T) {
	p := ReagentPool{Current: 4, Limit: 10}
	if p.Fraction() != 0.4 {
		t.Errorf("Fraction = %v, want 0.4", p.Fraction())
	}
	if p.Headroom() != 6 {
		t.Errorf("Headroom = %v, want 6", p.Headroom())
	}
}

func TestInventoryPoolsAreIndependent(t *testing.T) {
	inv := testInventory()

	inv.Pool(Minerals).Add(5)
	inv.Pool(Exotic).Add(3)

	if inv.Pool(Minerals).Current != 5 {
		t.Errorf("Minerals = %v, want 5", inv.Pool(Minerals).Current)
	}
	if inv.Pool(Exotic).Current != 3 {
		t.Errorf("Exotic = %v, want 3", inv.Pool(Exotic).Current)
	}
	if inv.Pool(Strange).Current != 0 || inv.Pool(Continuum).Current != 0 {
		t.Error("untouched pools changed")
	}
}

func TestInventoryPoolReturnsMutableReference(t *testing.T) {
	inv := testInventory()
	inv.Pool(Minerals).Add(5)
	if inv.Fraction(Minerals) != 0.5 {
		t.Errorf("Fraction(Minerals) = %v, want 0.5", inv.Fraction(Minerals))
	}
}
