package crystal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridPlaceIsAppendOnly(t *testing.T) {
	g := NewGrid(3, 2)
	a := &Crystal{brightness: 70}
	b := &Crystal{brightness: 90}

	assert.True(t, g.Contains(2, 1))
	assert.False(t, g.Contains(3, 1))
	assert.False(t, g.Contains(-1, 0))

	g.Place(1, 1, a)
	assert.True(t, g.Occupied(1, 1))
	assert.Same(t, a, g.At(1, 1))
	assert.Equal(t, 1, g.Filled())

	assert.Panics(t, func() { g.Place(1, 1, b) })
	assert.Same(t, a, g.At(1, 1))
	assert.Panics(t, func() { g.Place(0, 0, nil) })
}

func TestGridRasterRequiresSaturation(t *testing.T) {
	g := NewGrid(3, 2)
	c := &Crystal{brightness: 120}
	g.Place(0, 0, c)
	g.Place(1, 0, c)

	r, err := g.Raster()
	require.Error(t, err)
	assert.Nil(t, r)
	assert.True(t, errors.Is(err, ErrUnsaturated))

	var ue *UnsaturatedError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 2, ue.X)
	assert.Equal(t, 0, ue.Y)
	assert.Equal(t, 4, ue.Empty)
	assert.Panics(t, func() { g.MustRaster() })
}

func TestGridRasterCopiesBrightness(t *testing.T) {
	g := NewGrid(2, 2)
	g.Place(0, 0, &Crystal{brightness: 50})
	g.Place(1, 0, &Crystal{brightness: 60})
	g.Place(0, 1, &Crystal{brightness: 70})
	g.Place(1, 1, &Crystal{brightness: 250})

	require.True(t, g.Saturated())
	r := g.MustRaster()
	assert.Equal(t, []uint8{50, 60, 70, 250}, r.Cells())
	assert.Equal(t, uint8(70), r.At(0, 1))
}
