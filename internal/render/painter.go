//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"crystal-ca/internal/core"
)

// RasterPainter uploads a brightness raster into a single ebiten image.
type RasterPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewRasterPainter allocates a painter for a raster of size w*h.
func NewRasterPainter(w, h int) *RasterPainter {
	rp := &RasterPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	rp.img = ebiten.NewImage(w, h)
	return rp
}

// Upload copies the raster into the painter image. Mismatched sizes are ignored.
func (rp *RasterPainter) Upload(r *core.Raster) {
	if r == nil || r.W != rp.w || r.H != rp.h {
		return
	}
	fillGrayRGBA(rp.buf, r.Cells())
	rp.img.WritePixels(rp.buf)
}

// Draw renders the uploaded image scaled onto dst.
func (rp *RasterPainter) Draw(dst *ebiten.Image, scale float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(rp.img, op)
}

// Size returns the dimensions of the underlying image.
func (rp *RasterPainter) Size() (int, int) { return rp.w, rp.h }
