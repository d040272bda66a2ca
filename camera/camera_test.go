package camera

import (
	"math"
	"testing"
)

func TestFollowSnapsWithoutLeash(t *testing.T) {
	c := New(0, 0, 0, 0.5, 30)
	c.Follow(10, -5, 1.0/60.0)
	if c.X != 10 || c.Y != -5 {
		t.Errorf("camera = (%v, %v), want (10, -5)", c.X, c.Y)
	}
}

func TestFollowClampsToLeashRadius(t *testing.T) {
	c := New(0, 0, 2, 0.5, 30)
	c.Follow(100, 0, 1.0/60.0)

	dist := math.Sqrt(float64((c.X-100)*(c.X-100) + c.Y*c.Y))
	if dist > 2+1e-3 {
		t.Errorf("camera %v units from focus, want <= leash 2", dist)
	}
}

func TestFollowEasesTowardFocus(t *testing.T) {
	c := New(1, 0, 2, 0.5, 30)

	before := c.X
	c.Follow(0, 0, 1.0/60.0)
	if c.X >= before || c.X < 0 {
		t.Errorf("camera did not ease toward focus: %v -> %v", before, c.X)
	}

	// Repeated follows converge
	for i := 0; i < 600; i++ {
		c.Follow(0, 0, 1.0/60.0)
	}
	if math.Abs(float64(c.X)) > 0.05 {
		t.Errorf("camera did not converge: X = %v", c.X)
	}
}

func TestFollowStaysPutOnFocus(t *testing.T) {
	c := New(0, 0, 2, 0.5, 30)
	c.Follow(0, 0, 1.0/60.0)
	if c.X != 0 || c.Y != 0 {
		t.Errorf("camera moved off a centered focus: (%v, %v)", c.X, c.Y)
	}
}

func TestWorldScreenRoundTrip(t *testing.T) {
	c := New(12, -7, 2, 0.5, 30)
	const w, h = 1280, 720

	wx, wy := float32(15.5), float32(-3.25)
	sx, sy := c.WorldToScreen(wx, wy, w, h)
	gx, gy := c.ScreenToWorld(sx, sy, w, h)

	if math.Abs(float64(gx-wx)) > 1e-3 || math.Abs(float64(gy-wy)) > 1e-3 {
		t.Errorf("round trip = (%v, %v), want (%v, %v)", gx, gy, wx, wy)
	}
}

func TestWorldToScreenOrientation(t *testing.T) {
	c := New(0, 0, 2, 0.5, 30)
	const w, h = 1280, 720

	// Camera center maps to screen center
	sx, sy := c.WorldToScreen(0, 0, w, h)
	if sx != w/2 || sy != h/2 {
		t.Errorf("center = (%v, %v), want (%v, %v)", sx, sy, w/2, h/2)
	}

	// World up is screen up (smaller Y)
	_, upY := c.WorldToScreen(0, 5, w, h)
	if upY >= h/2 {
		t.Errorf("world +Y mapped downward: sy = %v", upY)
	}
}

func TestScaleDerivesFromWorldView(t *testing.T) {
	c := New(0, 0, 2, 0.5, 30)
	if got := c.Scale(720); got != 24 {
		t.Errorf("Scale = %v, want 24", got)
	}
}

func TestIsVisible(t *testing.T) {
	c := New(0, 0, 2, 0.5, 30)
	const w, h = 1280, 720

	if !c.IsVisible(0, 0, 1, w, h) {
		t.Error("center not visible")
	}
	if c.IsVisible(1000, 0, 1, w, h) {
		t.Error("far object reported visible")
	}
	// Just off the right edge but radius pokes in
	halfW := float32(w) / (2 * c.Scale(h))
	if !c.IsVisible(halfW+0.5, 0, 1, w, h) {
		t.Error("edge object with overlapping radius not visible")
	}
}
