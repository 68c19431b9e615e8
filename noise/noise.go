// Package noise provides the seeded coherent noise used by terrain generation: fractal Perlin and OpenSimplex
// sources, an axis scaling wrapper and a bulk sampler that interpolates a coarse lattice up to voxel resolution.
package noise

import (
	"errors"
	"fmt"
)

var ErrUnknownBackend = errors.New("noise: unknown backend")

const (
	BackendPerlin  = "perlin"
	BackendSimplex = "simplex"
)

// Source is a continuous 3D scalar function. Implementations in this package return values in [-1, 1].
type Source interface {
	Eval3(x, y, z float64) float64
}

// Field is a Source that can be reseeded in place. A Field is not safe for concurrent use while being reseeded.
type Field interface {
	Source
	Reseed(seed int64)
	Seed() int64
}

// Params configures a fractal noise field.
type Params struct {
	Backend     string
	Frequency   float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
}

func (p Params) Validate() error {
	switch p.Backend {
	case "", BackendPerlin, BackendSimplex:
	default:
		return fmt.Errorf("%w %q", ErrUnknownBackend, p.Backend)
	}
	if p.Frequency <= 0 {
		return errors.New("noise: frequency must be positive")
	}
	if p.Octaves <= 0 {
		return errors.New("noise: octaves must be positive")
	}
	if p.Persistence <= 0 || p.Persistence > 1 {
		return errors.New("noise: persistence must be in (0, 1]")
	}
	if p.Lacunarity < 1 {
		return errors.New("noise: lacunarity must be >= 1")
	}
	return nil
}

// New builds a field for the configured backend. An empty backend selects Perlin.
func New(p Params, seed int64) (Field, error) {
	factory, err := Factory(p)
	if err != nil {
		return nil, err
	}
	return factory(seed), nil
}

// Factory validates p once and returns a constructor for independently owned fields of that configuration.
func Factory(p Params) (func(seed int64) Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Backend == BackendSimplex {
		return func(seed int64) Field { return NewSimplex(p, seed) }, nil
	}
	return func(seed int64) Field { return NewPerlin(p, seed) }, nil
}

// Observed peaks of each backend relative to its amplitude sum are about 1/3 for go-perlin and 1/2 for
// opensimplex-go. The gains stretch those back out to [-1, 1]; the rare overshoot is clamped.
const (
	perlinGain  = 3
	simplexGain = 1.5
)

// amplitudeSum is the largest magnitude a sum of octaves with unit-range layers can reach.
func amplitudeSum(octaves int, persistence float64) float64 {
	sum, amp := 0.0, 1.0
	for i := 0; i < octaves; i++ {
		sum += amp
		amp *= persistence
	}
	return sum
}

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
