// Package ui renders the heads-up display: reagent pool bars, the heat
// gauge, and the end-of-run overlay.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warlord/components"
)

// HUDState is the read-only snapshot the HUD draws from.
type HUDState struct {
	Heat      *components.Heat
	Inventory *components.Inventory

	Stage      string
	Population int
	Cap        int
	Paused     bool
	Speed      int
}

const (
	barWidth  = 220
	barHeight = 18
	barGap    = 6
	hudMargin = 10
)

// DrawHUD renders the pool bars, the heat gauge, and the status line.
// Pools and the heat threshold only appear once progression reveals
// them.
func DrawHUD(s HUDState, screenW, screenH float32) {
	y := float32(hudMargin)

	for _, r := range components.AllReagents() {
		pool := s.Inventory.Pool(r)
		if !pool.Visible {
			continue
		}
		drawPoolBar(hudMargin, y, r.String(), pool)
		y += barHeight + barGap
	}

	if s.Heat.Enabled {
		y += barGap
		drawHeatBar(hudMargin, y, s.Heat)
		y += barHeight + barGap
	}

	status := fmt.Sprintf("%s | pop %d/%d | %dx", s.Stage, s.Population, s.Cap, s.Speed)
	if s.Paused {
		status += " | PAUSED"
	}
	rl.DrawText(status, hudMargin, int32(screenH)-25, 16, rl.LightGray)
}

// drawPoolBar renders one reagent bar with its threshold marker.
func drawPoolBar(x, y float32, label string, pool *components.ReagentPool) {
	bounds := rl.Rectangle{X: x, Y: y, Width: barWidth, Height: barHeight}
	gui.ProgressBar(bounds, "", label, pool.Current, 0, pool.Limit)

	if threshold, ok := pool.Threshold(); ok {
		markerX := int32(x + barWidth*threshold)
		rl.DrawRectangle(markerX, int32(y)-2, 2, barHeight+4, rl.Yellow)
	}
}

// drawHeatBar renders the heat gauge with the reaction threshold marker.
func drawHeatBar(x, y float32, heat *components.Heat) {
	bounds := rl.Rectangle{X: x, Y: y, Width: barWidth, Height: barHeight}
	gui.ProgressBar(bounds, "", "Heat", heat.Current, 0, heat.Limit)

	if heat.ThresholdVisible {
		markerX := int32(x + barWidth*heat.ReactionThreshold)
		rl.DrawRectangle(markerX, int32(y)-2, 2, barHeight+4, rl.Red)
	}
}

// DrawEndOverlay renders the run-complete overlay. Returns true when
// the restart button is clicked.
func DrawEndOverlay(screenW, screenH float32) bool {
	rl.DrawRectangle(0, 0, int32(screenW), int32(screenH), rl.NewColor(0, 0, 0, 160))

	msg := "RUN COMPLETE"
	fontSize := int32(40)
	textW := rl.MeasureText(msg, fontSize)
	rl.DrawText(msg, int32(screenW)/2-textW/2, int32(screenH)/2-60, fontSize, rl.Gold)

	button := rl.Rectangle{
		X:      screenW/2 - 80,
		Y:      screenH/2 + 10,
		Width:  160,
		Height: 36,
	}
	return gui.Button(button, "Restart")
}
