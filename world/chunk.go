package world

import (
	"github.com/astei/endgen/generator"
	"github.com/astei/endgen/material"
)

const (
	sectionCount  = 16
	sectionHeight = 16
	// Height is the build limit of a chunk column.
	Height = sectionCount * sectionHeight

	sectionVolume = generator.ChunkSize * generator.ChunkSize * sectionHeight
	columnCount   = generator.ChunkSize * generator.ChunkSize
	fullSkyLight  = 15
)

type ChunkCoord struct {
	X int
	Z int
}

// ChunkAt returns the chunk holding the block column (x, z).
func ChunkAt(x, z int) ChunkCoord {
	return ChunkCoord{X: x >> 4, Z: z >> 4}
}

// Chunk is a 16x256x16 column of blocks split into 16-block tall sections. Sections that contain only air are
// nil and are not stored.
type Chunk struct {
	X, Z      int
	Sections  [sectionCount]*Section
	Biomes    [columnCount]byte
	HeightMap [columnCount]int32
}

// Section stores block ids and nibble arrays in the Anvil y, z, x order.
type Section struct {
	Blocks     [sectionVolume]byte
	Data       [sectionVolume / 2]byte
	BlockLight [sectionVolume / 2]byte
	SkyLight   [sectionVolume / 2]byte
}

func NewChunk(coord ChunkCoord) *Chunk {
	return &Chunk{X: coord.X, Z: coord.Z}
}

func (c *Chunk) Coord() ChunkCoord {
	return ChunkCoord{X: c.X, Z: c.Z}
}

func sectionIndex(x, y, z int) int {
	return (y&0xf)<<8 | z<<4 | x
}

// Material returns the block at chunk-local coordinates. Out of range positions read as air.
func (c *Chunk) Material(x, y, z int) material.Material {
	if !inChunk(x, y, z) {
		return material.Air
	}
	section := c.Sections[y>>4]
	if section == nil {
		return material.Air
	}
	return material.Material(section.Blocks[sectionIndex(x, y, z)])
}

// SetMaterial stores m at chunk-local coordinates, allocating the section on the first non-air block.
func (c *Chunk) SetMaterial(x, y, z int, m material.Material) {
	if !inChunk(x, y, z) {
		return
	}
	section := c.Sections[y>>4]
	if section == nil {
		if m.IsAir() {
			return
		}
		section = &Section{}
		c.Sections[y>>4] = section
	}
	section.Blocks[sectionIndex(x, y, z)] = byte(m)
}

// Empty reports whether the chunk holds no blocks at all.
func (c *Chunk) Empty() bool {
	for _, section := range c.Sections {
		if section != nil {
			return false
		}
	}
	return true
}

// Finish fills the biome array and derives the height map and sky light from the blocks. It must run after the
// last block change and before the chunk is written out.
func (c *Chunk) Finish(biomes generator.BiomeManager) {
	baseX, baseZ := c.X*generator.ChunkSize, c.Z*generator.ChunkSize
	for z := 0; z < generator.ChunkSize; z++ {
		for x := 0; x < generator.ChunkSize; x++ {
			column := z*generator.ChunkSize + x
			if biomes != nil {
				c.Biomes[column] = biomes.BiomeAt(baseX+x, baseZ+z).ID
			}
			top := 0
			for y := Height - 1; y >= 0; y-- {
				if !c.Material(x, y, z).IsAir() {
					top = y + 1
					break
				}
			}
			c.HeightMap[column] = int32(top)
			for sy, section := range c.Sections {
				if section == nil {
					continue
				}
				for ly := 0; ly < sectionHeight; ly++ {
					var light byte
					if sy*sectionHeight+ly >= top {
						light = fullSkyLight
					}
					setNibble(section.SkyLight[:], sectionIndex(x, ly, z), light)
				}
			}
		}
	}
}

func setNibble(arr []byte, idx int, value byte) {
	if idx&1 == 0 {
		arr[idx>>1] = arr[idx>>1]&0xf0 | value&0x0f
	} else {
		arr[idx>>1] = arr[idx>>1]&0x0f | value<<4
	}
}

func nibble(arr []byte, idx int) byte {
	if idx&1 == 0 {
		return arr[idx>>1] & 0x0f
	}
	return arr[idx>>1] >> 4
}

func inChunk(x, y, z int) bool {
	return x >= 0 && x < generator.ChunkSize && z >= 0 && z < generator.ChunkSize && y >= 0 && y < Height
}
