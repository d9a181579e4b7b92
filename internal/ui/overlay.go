//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"crystal-ca/internal/sims/crystal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional debugging visuals on top of the crystal image:
// the seed density mask (key 1) and seed markers (key 2).
type Overlay struct {
	scale       int
	showDensity bool
	showSeeds   bool

	w, h    int
	mask    []float32
	maskImg *ebiten.Image
	maskBuf []byte
	seeds   []crystal.SeedCell

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// SetRun replaces the mask and seed markers with those of a new run.
func (o *Overlay) SetRun(mask []float32, w, h int, seeds []crystal.SeedCell) {
	o.seeds = seeds
	if len(mask) != w*h || w <= 0 || h <= 0 {
		o.mask = nil
		return
	}
	if o.maskImg == nil || o.w != w || o.h != h {
		o.maskImg = ebiten.NewImage(w, h)
		o.maskBuf = make([]byte, 4*w*h)
	}
	o.w, o.h = w, h
	o.mask = mask
	o.fillMask(color.RGBA{R: 64, G: 164, B: 223})
}

// Update toggles the overlays.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showDensity = !o.showDensity
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showSeeds = !o.showSeeds
	}
}

// Draw renders the enabled overlays onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showDensity && o.mask != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(o.scale), float64(o.scale))
		screen.DrawImage(o.maskImg, op)
	}
	if o.showSeeds {
		size := math.Max(3, float64(o.scale)*1.5)
		for _, s := range o.seeds {
			cx := (float64(s.X) + 0.5) * float64(o.scale)
			cy := (float64(s.Y) + 0.5) * float64(o.scale)
			o.drawPoint(screen, cx, cy, size, color.RGBA{R: 255, G: 120, B: 40, A: 230})
		}
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) fillMask(tint color.RGBA) {
	const (
		maxAlpha      = 140.0
		glowBase      = 0.35
		glowRange     = 0.65
		intensityBias = 0.75
	)
	for i, v := range o.mask {
		base := i * 4
		intensity := clamp01(float64(v))
		alpha := math.Round(maxAlpha * math.Pow(intensity, intensityBias))
		glow := glowBase + glowRange*math.Sqrt(intensity)
		// Premultiplied alpha.
		a := alpha / 255
		o.maskBuf[base+0] = uint8(float64(tint.R) * glow * a)
		o.maskBuf[base+1] = uint8(float64(tint.G) * glow * a)
		o.maskBuf[base+2] = uint8(float64(tint.B) * glow * a)
		o.maskBuf[base+3] = uint8(alpha)
	}
	o.maskImg.WritePixels(o.maskBuf)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
