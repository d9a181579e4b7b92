// Package noise provides the seeded coherent-noise field that biases crystal
// seed placement.
package noise

import opensimplex "github.com/ojrac/opensimplex-go"

// SeedRange bounds noise seeds drawn from a random source: [0, SeedRange).
const SeedRange = 10000

// Field evaluates deterministic 2D coherent noise in [-1, 1].
type Field interface {
	Eval(x, y float64) float64
}

// Simplex is an OpenSimplex-backed Field.
type Simplex struct {
	seed int64
	n    opensimplex.Noise
}

// New returns an OpenSimplex field for the given seed.
func New(seed int64) *Simplex {
	return &Simplex{seed: seed, n: opensimplex.New(seed)}
}

// Seed reports the seed the field was built with.
func (s *Simplex) Seed() int64 { return s.seed }

// Eval returns the noise value at (x, y), clamped to [-1, 1].
func (s *Simplex) Eval(x, y float64) float64 {
	return clamp(s.n.Eval2(x, y), -1, 1)
}

// Density remaps a field value from [-1, 1] into [0, 1].
func Density(v float64) float64 {
	return (v + 1) / 2
}

// Constant is a Field returning the same value everywhere. Useful for tests and
// for disabling placement bias.
type Constant float64

// Eval returns the constant value.
func (c Constant) Eval(float64, float64) float64 { return float64(c) }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
