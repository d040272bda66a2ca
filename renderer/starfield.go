// Package renderer provides the drawing layers that sit behind the
// world: currently a two-layer parallax starfield.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// starfieldLayer is one tiling star texture with a parallax factor.
type starfieldLayer struct {
	tex      rl.Texture2D
	parallax float32
}

// Starfield renders a seeded star background. Star placement comes from
// simplex noise thresholds so the field is stable for a given seed and
// free of visible grid artifacts.
type Starfield struct {
	layers []starfieldLayer
	w, h   int32
}

// NewStarfield generates the star textures. Must be called after the
// raylib window exists.
func NewStarfield(seed int64, w, h int32) *Starfield {
	s := &Starfield{w: w, h: h}

	// Far layer: many dim stars, barely moving. Near layer: fewer,
	// brighter, faster.
	s.layers = append(s.layers,
		starfieldLayer{tex: genStarTexture(seed, w, h, 0.78, 120), parallax: 0.1},
		starfieldLayer{tex: genStarTexture(seed+1, w, h, 0.84, 220), parallax: 0.3},
	)
	return s
}

// genStarTexture renders stars onto a black transparent image. One
// noise sample per candidate cell keeps generation fast; the cell jitter
// comes from a second noise channel.
func genStarTexture(seed int64, w, h int32, threshold float64, maxBright uint8) rl.Texture2D {
	noise := opensimplex.NewNormalized(seed)
	jitter := opensimplex.NewNormalized(seed + 7)

	img := rl.GenImageColor(int(w), int(h), rl.Blank)

	const cell = 12
	for cy := int32(0); cy < h; cy += cell {
		for cx := int32(0); cx < w; cx += cell {
			v := noise.Eval2(float64(cx)*0.37, float64(cy)*0.37)
			if v < threshold {
				continue
			}
			jx := jitter.Eval2(float64(cx), float64(cy))
			jy := jitter.Eval2(float64(cy), float64(cx))
			px := cx + int32(jx*float64(cell-1))
			py := cy + int32(jy*float64(cell-1))
			if px >= w || py >= h {
				continue
			}

			// Brightness scales with how far the sample clears the
			// threshold
			t := (v - threshold) / (1 - threshold)
			bright := uint8(float64(maxBright) * (0.4 + 0.6*t))
			rl.ImageDrawPixel(img, px, py, rl.NewColor(bright, bright, bright, 255))
		}
	}

	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	return tex
}

// Draw tiles each layer with an offset derived from the camera, so
// distant stars drift slower than the world.
func (s *Starfield) Draw(camX, camY, scale float32) {
	for _, layer := range s.layers {
		ox := wrap(-camX*scale*layer.parallax, float32(s.w))
		oy := wrap(camY*scale*layer.parallax, float32(s.h))

		// Four tiles cover the viewport for any offset
		for _, dx := range [2]float32{ox - float32(s.w), ox} {
			for _, dy := range [2]float32{oy - float32(s.h), oy} {
				rl.DrawTexture(layer.tex, int32(dx), int32(dy), rl.White)
			}
		}
	}
}

// Unload frees the star textures.
func (s *Starfield) Unload() {
	for _, layer := range s.layers {
		rl.UnloadTexture(layer.tex)
	}
	s.layers = nil
}

// wrap maps v into [0, size).
func wrap(v, size float32) float32 {
	for v < 0 {
		v += size
	}
	for v >= size {
		v -= size
	}
	return v
}
