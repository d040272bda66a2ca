package components

import (
	"math"
	"testing"
)

func approxEq(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestHeatAddClamps(t *testing.T) {
	tests := []struct {
		name  string
		start float32
		delta float32
		want  float32
	}{
		{"normal add", 10, 20, 30},
		{"clamp at limit", 90, 50, 100},
		{"normal subtract", 50, -20, 30},
		{"clamp at zero", 10, -50, 0},
		{"exact limit", 0, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHeat(100, 0.75, 25, 1.5)
			h.Current = tt.start
			h.Add(tt.delta)
			if !approxEq(h.Current, tt.want) {
				t.Errorf("Current = %v, want %v", h.Current, tt.want)
			}
		})
	}
}

func TestHeatNoDecayDuringDelay(t *testing.T) {
	h := NewHeat(100, 0.75, 25, 1.5)
	h.Current = 50

	// 1.4s of quiet: still inside the delay window
	for i := 0; i < 14; i++ {
		h.Tick(0.1)
	}
	if !approxEq(h.Current, 50) {
		t.Errorf("heat decayed during delay: Current = %v, want 50", h.Current)
	}
}

func TestHeatDecaysAfterDelay(t *testing.T) {
	h := NewHeat(100, 0.75, 25, 1.5)
	h.Current = 50

	// 1.5s eats the delay, then 1s decays at 25/s
	h.Tick(1.5)
	h.Tick(1.0)
	if !approxEq(h.Current, 25) {
		t.Errorf("Current = %v, want 25", h.Current)
	}

	// Decay stops at zero
	h.Tick(10)
	if h.Current != 0 {
		t.Errorf("Current = %v, want 0", h.Current)
	}
}

func TestHeatPartialTickDecay(t *testing.T) {
	// A tick that straddles the delay boundary only decays the
	// portion past the boundary.
	h := NewHeat(100, 0.75, 25, 1.5)
	h.Current = 50

	h.Tick(2.0) // 1.5s delay + 0.5s decay
	if !approxEq(h.Current, 50-25*0.5) {
		t.Errorf("Current = %v, want %v", h.Current, 50-25*0.5)
	}
}

func TestHeatSplitTickEquivalence(t *testing.T) {
	// Ticking in small pieces must match one combined tick when no
	// heat is added in between.
	a := NewHeat(100, 0.75, 25, 1.5)
	a.Current = 80
	b := a

	a.Tick(3.0)
	for i := 0; i < 30; i++ {
		b.Tick(0.1)
	}
	if !approxEq(a.Current, b.Current) {
		t.Errorf("split ticks diverge: %v vs %v", a.Current, b.Current)
	}
}

func TestHeatAddResetsDecayTimer(t *testing.T) {
	h := NewHeat(100, 0.75, 25, 1.5)
	h.Current = 50

	// Burn through the delay and start decaying
	h.Tick(2.0)
	decayed := h.Current

	// A positive add restarts the quiet period
	h.Add(10)
	h.Tick(1.0)
	if !approxEq(h.Current, decayed+10) {
		t.Errorf("decay ran inside restarted delay: Current = %v, want %v", h.Current, decayed+10)
	}

	// A negative add must not restart it
	h.Tick(0.5) // finishes the 1.5s delay
	h.Add(-5)
	h.Tick(1.0)
	want := decayed + 10 - 5 - 25*1.0
	if !approxEq(h.Current, want) {
		t.Errorf("Current = %v, want %v", h.Current, want)
	}
}

func TestHeatCanReact(t *testing.T) {
	h := NewHeat(100, 0.75, 25, 1.5)

	h.Current = 75
	if h.CanReact() {
		t.Error("CanReact at exactly the threshold, want false")
	}
	h.Current = 75.1
	if !h.CanReact() {
		t.Error("CanReact just above the threshold, want true")
	}
	h.Current = 0
	if h.CanReact() {
		t.Error("CanReact when cold, want false")
	}
}
