package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Actions is the per-tick control state the simulation consumes. It is
// the only channel from input to the world, so scripted and interactive
// runs drive the same code.
type Actions struct {
	Thrust     float32 // -1..1, along the facing direction
	AimX, AimY float32 // world-space aim point
	HasAim     bool
	Fire       bool
	Shield     bool
	Dump       bool
	Restart    bool
}

// handleInput reads raylib input into the action state and the
// meta controls (pause, speed, restart). Graphical mode only.
func (g *Game) handleInput() {
	var a Actions

	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		a.Thrust = 1
	} else if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		a.Thrust = -0.5
	}

	mouse := rl.GetMousePosition()
	a.AimX, a.AimY = g.cam.ScreenToWorld(mouse.X, mouse.Y, g.width, g.height)
	a.HasAim = true

	a.Fire = rl.IsMouseButtonDown(rl.MouseButtonLeft) || rl.IsKeyDown(rl.KeySpace)
	a.Shield = rl.IsMouseButtonDown(rl.MouseButtonRight) || rl.IsKeyDown(rl.KeyLeftShift)
	a.Dump = rl.IsKeyDown(rl.KeyF)
	a.Restart = rl.IsKeyPressed(rl.KeyR)

	if rl.IsKeyPressed(rl.KeyP) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyComma) && g.speed > 1 {
		g.speed--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.speed < 10 {
		g.speed++
	}

	g.actions = a
}
