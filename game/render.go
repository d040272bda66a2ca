package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warlord/components"
	"github.com/pthm-cable/warlord/events"
	"github.com/pthm-cable/warlord/systems"
	"github.com/pthm-cable/warlord/ui"
)

// Draw renders the world and the HUD. Simulation state is read-only
// here except for the end-of-run restart button.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	scale := g.cam.Scale(g.height)

	if g.starfield != nil {
		g.starfield.Draw(g.cam.X, g.cam.Y, scale)
	}

	g.drawRocks(scale)
	g.drawCollectibles(scale)
	g.drawSlugs(scale)
	g.drawPlayer(scale)

	g.drawHUD()

	rl.EndDrawing()
}

func (g *Game) drawRocks(scale float32) {
	cfg := g.config()
	radius := float32(cfg.Collision.RockRadius) * scale

	query := g.rockFilter.Query()
	for query.Next() {
		pos, _, spin, _, _ := query.Get()
		if !g.cam.IsVisible(pos.X, pos.Y, 2, g.width, g.height) {
			continue
		}
		sx, sy := g.cam.WorldToScreen(pos.X, pos.Y, g.width, g.height)
		center := rl.Vector2{X: sx, Y: sy}

		// Tumble: the in-plane angle rotates the square, the other two
		// axes squash its apparent size
		rot := -spin.AngleZ * 180 / math.Pi
		wobble := 0.85 + 0.15*float32(math.Cos(float64(spin.AngleX)))*float32(math.Cos(float64(spin.AngleY)))

		rl.DrawPoly(center, 4, radius*wobble, rot, rl.DarkGray)
		rl.DrawPolyLines(center, 4, radius*wobble, rot, rl.Gray)
	}
}

func reagentColor(r components.Reagent) rl.Color {
	switch r {
	case components.Minerals:
		return rl.SkyBlue
	case components.Exotic:
		return rl.Purple
	case components.Strange:
		return rl.Pink
	case components.Continuum:
		return rl.Gold
	}
	return rl.White
}

func (g *Game) drawCollectibles(scale float32) {
	cfg := g.config()
	radius := float32(cfg.Collision.CollectibleRadius) * scale

	query := g.collectibleFilter.Query()
	for query.Next() {
		pos, _, spin, coll, _ := query.Get()
		if !g.cam.IsVisible(pos.X, pos.Y, 1, g.width, g.height) {
			continue
		}
		sx, sy := g.cam.WorldToScreen(pos.X, pos.Y, g.width, g.height)
		center := rl.Vector2{X: sx, Y: sy}
		rot := -spin.AngleZ * 180 / math.Pi

		rl.DrawPoly(center, 3, radius, rot, reagentColor(coll.Reagent))
	}
}

func (g *Game) drawSlugs(scale float32) {
	cfg := g.config()
	radius := float32(cfg.Collision.SlugRadius) * scale

	query := g.slugFilter.Query()
	for query.Next() {
		pos, _, _ := query.Get()
		sx, sy := g.cam.WorldToScreen(pos.X, pos.Y, g.width, g.height)
		rl.DrawCircle(int32(sx), int32(sy), radius, rl.Orange)
	}
}

func (g *Game) drawPlayer(scale float32) {
	if !g.hasPlayer || !g.world.Alive(g.player) {
		return
	}
	pos, _, pl, _, _, _ := g.playerMapper.Get(g.player)
	sx, sy := g.cam.WorldToScreen(pos.X, pos.Y, g.width, g.height)
	center := rl.Vector2{X: sx, Y: sy}

	// DrawPoly's zero rotation points right; facing is already
	// measured from +X, so only the screen Y flip needs compensating
	rot := -pl.Facing * 180 / math.Pi
	rl.DrawPoly(center, 3, pl.Radius*scale*1.4, rot, rl.RayWhite)

	if pl.ShieldRaised {
		rl.DrawCircleLines(int32(sx), int32(sy), pl.ShieldRadius*scale, rl.SkyBlue)
	}
}

func (g *Game) drawHUD() {
	if !g.hasPlayer || !g.world.Alive(g.player) {
		return
	}
	_, _, _, _, inv, heat := g.playerMapper.Get(g.player)

	ui.DrawHUD(ui.HUDState{
		Heat:       heat,
		Inventory:  inv,
		Stage:      g.progression.Current().String(),
		Population: g.population.Current(),
		Cap:        g.population.Cap(),
		Paused:     g.paused,
		Speed:      g.speed,
	}, g.width, g.height)

	if g.progression.Current() == systems.StageEnd {
		if ui.DrawEndOverlay(g.width, g.height) {
			g.soundQ.Push(events.SoundEvent{Kind: events.SoundButtonClick})
			g.restart()
		}
	}
}
