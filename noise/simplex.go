package noise

import (
	"github.com/ojrac/opensimplex-go"
)

// Simplex is fractal OpenSimplex noise. opensimplex-go only evaluates a single layer, so octaves are summed here.
type Simplex struct {
	params Params
	seed   int64
	norm   float64
	gen    opensimplex.Noise
}

func NewSimplex(p Params, seed int64) *Simplex {
	n := &Simplex{params: p, norm: amplitudeSum(p.Octaves, p.Persistence) / simplexGain}
	n.Reseed(seed)
	return n
}

func (n *Simplex) Reseed(seed int64) {
	n.seed = seed
	n.gen = opensimplex.New(seed)
}

func (n *Simplex) Seed() int64 {
	return n.seed
}

func (n *Simplex) Eval3(x, y, z float64) float64 {
	var sum float64
	freq, amp := n.params.Frequency, 1.0
	for i := 0; i < n.params.Octaves; i++ {
		sum += n.gen.Eval3(x*freq, y*freq, z*freq) * amp
		freq *= n.params.Lacunarity
		amp *= n.params.Persistence
	}
	return clamp(sum / n.norm)
}
