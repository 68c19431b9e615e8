package generator

import (
	"github.com/willf/bitset"

	"github.com/astei/endgen/material"
)

// CuboidBuffer is a dense box of materials anchored at a world position. Besides the materials it records which
// voxels were written, so callers can tell an explicit air block from one that was never touched. Exports fill
// chunks through world.ChunkBuffer instead; CuboidBuffer is the reference Buffer for arbitrary extents.
type CuboidBuffer struct {
	baseX, baseY, baseZ int
	sizeX, sizeY, sizeZ int
	blocks              []material.Material
	written             *bitset.BitSet
}

func NewCuboidBuffer(baseX, baseY, baseZ, sizeX, sizeY, sizeZ int) *CuboidBuffer {
	volume := sizeX * sizeY * sizeZ
	if sizeX <= 0 || sizeY <= 0 || sizeZ <= 0 {
		volume = 0
	}
	return &CuboidBuffer{
		baseX: baseX, baseY: baseY, baseZ: baseZ,
		sizeX: sizeX, sizeY: sizeY, sizeZ: sizeZ,
		blocks:  make([]material.Material, volume),
		written: bitset.New(uint(volume)),
	}
}

func (b *CuboidBuffer) Size() (int, int, int) {
	return b.sizeX, b.sizeY, b.sizeZ
}

// Set stores m at world position (x, y, z). Positions outside the buffer are ignored.
func (b *CuboidBuffer) Set(x, y, z int, m material.Material) {
	idx, ok := b.index(x, y, z)
	if !ok {
		return
	}
	b.blocks[idx] = m
	b.written.Set(uint(idx))
}

// Get returns the material at world position (x, y, z), or air outside the buffer.
func (b *CuboidBuffer) Get(x, y, z int) material.Material {
	idx, ok := b.index(x, y, z)
	if !ok {
		return material.Air
	}
	return b.blocks[idx]
}

func (b *CuboidBuffer) IsSet(x, y, z int) bool {
	idx, ok := b.index(x, y, z)
	return ok && b.written.Test(uint(idx))
}

// Written counts the voxels that have been set at least once.
func (b *CuboidBuffer) Written() int {
	return int(b.written.Count())
}

// Blocks returns a copy of the materials in x-major, then y, then z order.
func (b *CuboidBuffer) Blocks() []material.Material {
	return append([]material.Material(nil), b.blocks...)
}

func (b *CuboidBuffer) index(x, y, z int) (int, bool) {
	lx, ly, lz := x-b.baseX, y-b.baseY, z-b.baseZ
	if lx < 0 || ly < 0 || lz < 0 || lx >= b.sizeX || ly >= b.sizeY || lz >= b.sizeZ {
		return 0, false
	}
	return (lx*b.sizeY+ly)*b.sizeZ + lz, true
}
