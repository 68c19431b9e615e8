// Package generator synthesises terrain for a voxel world from seeded noise.
//
// A TerrainGenerator fills caller-owned buffers and answers the two queries a world loader needs before any
// player arrives: where to spawn and how high the surface is. Generators keep no per-call state, so a single
// instance may fill disjoint regions from several goroutines at once.
package generator

import (
	"github.com/astei/endgen/material"
)

// ChunkSize is the horizontal edge length of a chunk column.
const ChunkSize = 16

// Buffer is a fixed-size region of voxels addressed by world coordinates. The caller sizes the buffer and
// positions it at the origin passed to Fill.
type Buffer interface {
	Size() (x, y, z int)
	Set(x, y, z int, m material.Material)
}

// World is a read-only view of stored blocks.
type World interface {
	HeightLimit() int
	BlockMaterialAt(x, y, z int) material.Material
}

type Point struct {
	X, Y, Z float64
}

// TerrainGenerator is the capability set a world loader needs from a dimension generator.
type TerrainGenerator interface {
	Name() string
	Biomes() BiomeManager
	Fill(buf Buffer, x, y, z int, biomes BiomeManager, seed int64)
	SafeSpawn(w World) Point
	SurfaceHeights(w World, chunkX, chunkZ int) [][]int
}
