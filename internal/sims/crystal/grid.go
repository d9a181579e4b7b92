package crystal

import (
	"errors"
	"fmt"

	"crystal-ca/internal/core"
)

// ErrUnsaturated reports a grid that still has empty cells at rasterization.
// It signals a configuration or algorithm bug, never a partial result.
var ErrUnsaturated = errors.New("grid not saturated")

// UnsaturatedError locates the empty cells of an unsaturated grid.
type UnsaturatedError struct {
	X, Y  int // first empty cell in row-major order
	Empty int
}

func (e *UnsaturatedError) Error() string {
	return fmt.Sprintf("%v: %d empty cells, first at (%d,%d)", ErrUnsaturated, e.Empty, e.X, e.Y)
}

func (e *UnsaturatedError) Unwrap() error { return ErrUnsaturated }

// Grid is the occupancy matrix. A cell goes from empty to occupied at most once.
type Grid struct {
	size   core.Size
	cells  []*Crystal
	filled int
}

// NewGrid allocates an empty grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{size: core.Size{W: w, H: h}, cells: make([]*Crystal, w*h)}
}

// Size returns the grid dimensions.
func (g *Grid) Size() core.Size { return g.size }

// Contains reports whether (x, y) is on the grid.
func (g *Grid) Contains(x, y int) bool { return g.size.Contains(x, y) }

// At returns the crystal at (x, y), or nil when the cell is empty. The
// coordinates must be on the grid.
func (g *Grid) At(x, y int) *Crystal { return g.cells[y*g.size.W+x] }

// Occupied reports whether (x, y) already holds a crystal.
func (g *Grid) Occupied(x, y int) bool { return g.At(x, y) != nil }

// Place claims an empty cell for c. Placing onto an occupied cell panics.
func (g *Grid) Place(x, y int, c *Crystal) {
	if c == nil {
		panic("crystal: placing nil crystal")
	}
	idx := y*g.size.W + x
	if g.cells[idx] != nil {
		panic(fmt.Sprintf("crystal: cell (%d,%d) already occupied", x, y))
	}
	g.cells[idx] = c
	g.filled++
}

// Filled returns the number of occupied cells.
func (g *Grid) Filled() int { return g.filled }

// Saturated reports whether every cell is occupied.
func (g *Grid) Saturated() bool { return g.filled == len(g.cells) }

// Raster converts a saturated grid into one brightness byte per cell. Any empty
// cell yields an *UnsaturatedError and no raster.
func (g *Grid) Raster() (*core.Raster, error) {
	if !g.Saturated() {
		first := 0
		for i, c := range g.cells {
			if c == nil {
				first = i
				break
			}
		}
		return nil, &UnsaturatedError{
			X:     first % g.size.W,
			Y:     first / g.size.W,
			Empty: len(g.cells) - g.filled,
		}
	}
	r := core.NewRaster(g.size.W, g.size.H)
	px := r.Cells()
	for i, c := range g.cells {
		px[i] = c.brightness
	}
	return r, nil
}

// MustRaster is like Raster but panics on an unsaturated grid.
func (g *Grid) MustRaster() *core.Raster {
	r, err := g.Raster()
	if err != nil {
		panic(err)
	}
	return r
}
