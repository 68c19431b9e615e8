package generator

import (
	"errors"
	"math"
	"math/rand"

	"github.com/astei/endgen/material"
	"github.com/astei/endgen/noise"
)

// Island geometry of the end dimension. The island is an ellipsoid centred on the world origin whose vertical
// axis is squashed by IslandHeightScale, with its surface roughened by noise.
const (
	SeaLevel          = 62
	IslandHeight      = 56
	IslandOffset      = 8
	IslandRadius      = 144
	IslandTotalOffset = IslandOffset + IslandHeight/2.0
	IslandHeightScale = float64(IslandRadius) / float64(IslandHeight) * 2

	// Height bounds every fill: nothing is generated at or above it.
	Height = ((IslandHeight+IslandOffset+1)/4)*4 + 4

	// Oversample is the lattice spacing at which noise is evaluated before interpolation.
	Oversample = 4
)

// Options tunes the noise field. Island geometry is fixed.
type Options struct {
	Noise  noise.Params
	XScale float64
	YScale float64
	ZScale float64
	// LegacySeed truncates the world seed to 32 bits before mixing, reproducing worlds made by older servers.
	LegacySeed bool
}

func DefaultOptions() Options {
	return Options{
		Noise: noise.Params{
			Backend:     noise.BackendPerlin,
			Frequency:   0.01,
			Octaves:     16,
			Persistence: 0.5,
			Lacunarity:  2,
		},
		XScale: 0.7,
		YScale: 1,
		ZScale: 0.7,
	}
}

// EndGenerator builds floating end stone islands. It is safe for concurrent use: every Fill owns its noise field.
type EndGenerator struct {
	opts     Options
	newField func(seed int64) noise.Field
	intn     func(n int) int
}

var _ TerrainGenerator = (*EndGenerator)(nil)

func NewEndGenerator(opts Options) (*EndGenerator, error) {
	if opts.XScale <= 0 || opts.YScale <= 0 || opts.ZScale <= 0 {
		return nil, errors.New("generator: noise axis scales must be positive")
	}
	factory, err := noise.Factory(opts.Noise)
	if err != nil {
		return nil, err
	}
	return &EndGenerator{opts: opts, newField: factory, intn: rand.Intn}, nil
}

func (g *EndGenerator) Name() string {
	return "the_end"
}

func (g *EndGenerator) Biomes() BiomeManager {
	return SingleBiome{Biome: Sky}
}

// Fill writes end stone into buf for every voxel of the region at (x, y, z) whose density reaches 1. Voxels
// that stay below the threshold are never touched. The biome manager is accepted for interface compatibility
// and does not influence the shape.
func (g *EndGenerator) Fill(buf Buffer, x, y, z int, biomes BiomeManager, seed int64) {
	field := noise.ScalePoint{
		Source: g.newField(NoiseSeed(seed, g.opts.LegacySeed)),
		XScale: g.opts.XScale,
		YScale: g.opts.YScale,
		ZScale: g.opts.ZScale,
	}

	sizeX, sizeY, sizeZ := buf.Size()
	sizeY = clampInt(sizeY, 0, Height)
	samples := noise.Sample(field, sizeX, sizeY, sizeZ, Oversample, x, y, z)

	for xx := 0; xx < sizeX; xx++ {
		for yy := 0; yy < sizeY; yy++ {
			for zz := 0; zz < sizeZ; zz++ {
				wx, wy, wz := x+xx, y+yy, z+zz
				if Solid(Distance(wx, wy, wz), samples[xx][yy][zz]) {
					buf.Set(wx, wy, wz, material.EndStone)
				}
			}
		}
	}
}

// Distance is the distance of a block from the island centre, with the vertical axis stretched.
func Distance(x, y, z int) float64 {
	dy := (float64(y) - IslandTotalOffset) * IslandHeightScale
	fx, fz := float64(x), float64(z)
	return math.Sqrt(fx*fx + dy*dy + fz*fz)
}

// Density maps a noise sample in [-1, 1] to [0, 1] and scales it by the radial falloff.
func Density(distance, sample float64) float64 {
	return IslandRadius / distance * (sample*0.5 + 0.5)
}

// Solid reports whether a block at the given distance becomes end stone. The island centre is always solid.
func Solid(distance, sample float64) bool {
	if distance == 0 {
		return true
	}
	return Density(distance, sample) >= 1
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
