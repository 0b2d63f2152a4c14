package game

import (
	"image/color"
	"math"
	"math/rand"
)

const texSize = 64

// texture is a small square procedural texture sampled by the renderer.
type texture struct {
	pix [texSize * texSize]color.RGBA
}

// At samples the texture at normalized coordinates, wrapping out-of-range
// values.
func (t *texture) At(u, v float64) color.RGBA {
	x := int(u*texSize) & (texSize - 1)
	y := int(v*texSize) & (texSize - 1)
	return t.pix[y*texSize+x]
}

// newStoneTexture synthesizes a stone-block wall texture: a mortar grid over
// noisy grey blocks.
func newStoneTexture(rng *rand.Rand) *texture {
	t := &texture{}
	for y := 0; y < texSize; y++ {
		for x := 0; x < texSize; x++ {
			gx := x % 16
			gy := y % 16
			if gx < 1 || gy < 1 || gx > 14 || gy > 14 {
				t.pix[y*texSize+x] = color.RGBA{R: 50, G: 50, B: 55, A: 255}
				continue
			}
			noise := rng.Float64() * 0.3
			t.pix[y*texSize+x] = color.RGBA{
				R: uint8(80 + noise*40),
				G: uint8(80 + noise*30),
				B: uint8(85 + noise*25),
				A: 255,
			}
		}
	}
	return t
}

// newWoodTexture synthesizes a plank floor texture with grain lines.
func newWoodTexture(rng *rand.Rand) *texture {
	t := &texture{}
	const plank = 16
	for y := 0; y < texSize; y++ {
		for x := 0; x < texSize; x++ {
			grain := math.Sin(float64(x)*0.4+float64(y/plank)*0.5) * 0.1
			variation := rng.Float64() * 0.2
			r := 120 + (grain+variation)*40
			g := 90 + (grain+variation)*30
			b := 60 + (grain+variation)*20
			if y%plank < 1 {
				r *= 0.7
				g *= 0.7
				b *= 0.7
			}
			t.pix[y*texSize+x] = color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
		}
	}
	return t
}
