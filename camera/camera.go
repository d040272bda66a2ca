// Package camera provides a 2D follow camera for viewport control.
package camera

import "math"

// Camera is the viewport into the unbounded play field. It smoothly
// follows a focus point (the player) and doubles as the reference point
// for population spawning and culling.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// FocusRadius is the leash: the focus point may wander this far
	// from the camera center before the camera is dragged along.
	FocusRadius float32

	// FocusCentering in (0, 1] is the per-second fraction of the
	// remaining offset the camera closes while the focus is inside
	// the leash. Zero snaps instantly.
	FocusCentering float32

	// Zoom in world units visible vertically; screen mapping derives
	// pixels-per-unit from it.
	WorldView float32
}

// New creates a camera centered on the focus point.
func New(x, y, focusRadius, focusCentering, worldView float32) *Camera {
	return &Camera{
		X:              x,
		Y:              y,
		FocusRadius:    focusRadius,
		FocusCentering: focusCentering,
		WorldView:      worldView,
	}
}

// Follow moves the camera toward the focus point for a step of dt
// seconds. Inside the leash radius the camera eases toward the focus;
// beyond it the camera is pulled just enough to keep the focus on the
// leash boundary.
func (c *Camera) Follow(focusX, focusY, dt float32) {
	if c.FocusRadius <= 0 {
		c.X = focusX
		c.Y = focusY
		return
	}

	dx := c.X - focusX
	dy := c.Y - focusY
	dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))

	t := float32(1.0)
	if dist > 0.01 && c.FocusCentering > 0 {
		t = float32(math.Pow(float64(1-c.FocusCentering), float64(dt)))
	}
	if dist > c.FocusRadius {
		scale := c.FocusRadius / dist
		c.X = focusX + dx*scale
		c.Y = focusY + dy*scale
		if scale < t {
			t = scale
		}
		dx = c.X - focusX
		dy = c.Y - focusY
	}
	c.X = focusX + dx*t
	c.Y = focusY + dy*t
}

// WorldToScreen converts world coordinates to screen coordinates for a
// viewport of the given pixel size.
func (c *Camera) WorldToScreen(wx, wy, viewportW, viewportH float32) (sx, sy float32) {
	scale := viewportH / c.WorldView
	sx = viewportW/2 + (wx-c.X)*scale
	// Screen Y grows downward
	sy = viewportH/2 - (wy-c.Y)*scale
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy, viewportW, viewportH float32) (wx, wy float32) {
	scale := viewportH / c.WorldView
	wx = c.X + (sx-viewportW/2)/scale
	wy = c.Y - (sy-viewportH/2)/scale
	return wx, wy
}

// Scale returns pixels per world unit for a viewport height.
func (c *Camera) Scale(viewportH float32) float32 {
	return viewportH / c.WorldView
}

// IsVisible reports whether a circle at (wx, wy) with the given radius
// could be visible (conservative check for draw culling).
func (c *Camera) IsVisible(wx, wy, radius, viewportW, viewportH float32) bool {
	scale := viewportH / c.WorldView
	halfW := viewportW/(2*scale) + radius
	halfH := viewportH/(2*scale) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
