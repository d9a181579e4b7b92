// Package crystal grows anisotropic crystals across a grid from noise-biased
// seeds and rasterizes the result into a grayscale image.
//
// Growth is event driven: each occupied cell schedules one placement attempt
// per direction into a circular delay ring, and the engine drains the ring
// tick by tick until a full round finds every bucket empty. The first event
// to reach an empty cell claims it.
package crystal

import "math"

// Source is the uniform random source shared by a whole run.
type Source interface {
	Float64() float64
	Float64Range(lo, hi float64) float64
	IntN(n int) int
	IntRange(lo, hi int) int
}

// Direction indexes the four growth directions.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists the growth directions in scheduling order.
var Directions = [4]Direction{Up, Right, Down, Left}

var offsets = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// Offset returns the cell step for d.
func (d Direction) Offset() (dx, dy int) {
	o := offsets[d]
	return o[0], o[1]
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return "unknown"
}

// Crystal is an immutable set of growth parameters shared by every cell and
// pending event it reaches.
type Crystal struct {
	brightness uint8
	delays     [4]int
}

// NewCrystal draws a crystal whose velocity vector has a random angle and a
// magnitude just under maxSpeed. Each direction's delay is maxSpeed divided by
// the projected rate, with an independent random floor on the rate so that
// directions pointing away from the vector still grow.
func NewCrystal(maxSpeed float64, cfg Config, rng Source) *Crystal {
	brightness := rng.IntRange(cfg.BrightMin, cfg.BrightMax)
	mag := rng.Float64Range(maxSpeed/1.1, maxSpeed)
	angle := rng.Float64Range(0, 2*math.Pi)
	sin, cos := math.Sincos(angle)
	rates := [4]float64{sin * mag, cos * mag, -sin * mag, -cos * mag}

	c := &Crystal{brightness: uint8(clampInt(brightness, cfg.BrightMin, cfg.BrightMax))}
	for i, rate := range rates {
		guard := rng.Float64Range(cfg.MinSpeed.Min, cfg.MinSpeed.Max)
		c.delays[i] = clampInt(int(maxSpeed/math.Max(rate, guard)), 1, cfg.LatencyMax)
	}
	return c
}

// Mutate returns a new crystal with perturbed brightness and delays. The
// receiver is left untouched.
func (c *Crystal) Mutate(cfg Config, rng Source) *Crystal {
	b := int(c.brightness) + rng.IntRange(cfg.BrightMut.Min, cfg.BrightMut.Max)
	m := &Crystal{brightness: uint8(clampInt(b, cfg.BrightMin, cfg.BrightMax))}
	for i, d := range c.delays {
		m.delays[i] = clampInt(d+rng.IntRange(cfg.LatencyMut.Min, cfg.LatencyMut.Max), 1, cfg.LatencyMax)
	}
	return m
}

// Brightness returns the gray level painted by the crystal.
func (c *Crystal) Brightness() uint8 { return c.brightness }

// Delay returns the number of ticks the crystal needs to grow one cell in d.
func (c *Crystal) Delay(d Direction) int { return c.delays[d] }

// Delays returns a copy of the delays in up, right, down, left order.
func (c *Crystal) Delays() [4]int { return c.delays }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
