package core

import "image"

// Raster stores a 2D single-channel brightness image in row-major order.
type Raster struct {
	W, H int
	data []uint8
}

// NewRaster allocates a raster with the given dimensions.
func NewRaster(w, h int) *Raster {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Raster{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (r *Raster) Cells() []uint8 { return r.data }

// Index returns the linear slice index for coordinates (x, y).
func (r *Raster) Index(x, y int) int { return y*r.W + x }

// At returns the brightness stored at (x, y).
func (r *Raster) At(x, y int) uint8 { return r.data[r.Index(x, y)] }

// Size reports the raster dimensions.
func (r *Raster) Size() Size { return Size{W: r.W, H: r.H} }

// Gray wraps the raster in an image.Gray sharing the same pixel buffer.
func (r *Raster) Gray() *image.Gray {
	return &image.Gray{
		Pix:    r.data,
		Stride: r.W,
		Rect:   image.Rect(0, 0, r.W, r.H),
	}
}
