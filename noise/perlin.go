package noise

import (
	"github.com/aquilax/go-perlin"
)

// Perlin is fractal gradient noise backed by go-perlin. go-perlin divides each successive octave by alpha and
// multiplies its coordinates by beta, so alpha is the reciprocal of the persistence and beta the lacunarity.
type Perlin struct {
	params Params
	seed   int64
	norm   float64
	gen    *perlin.Perlin
}

func NewPerlin(p Params, seed int64) *Perlin {
	n := &Perlin{params: p, norm: amplitudeSum(p.Octaves, p.Persistence) / perlinGain}
	n.Reseed(seed)
	return n
}

func (n *Perlin) Reseed(seed int64) {
	n.seed = seed
	n.gen = perlin.NewPerlin(1/n.params.Persistence, n.params.Lacunarity, int32(n.params.Octaves), seed)
}

func (n *Perlin) Seed() int64 {
	return n.seed
}

func (n *Perlin) Eval3(x, y, z float64) float64 {
	f := n.params.Frequency
	return clamp(n.gen.Noise3D(x*f, y*f, z*f) / n.norm)
}
