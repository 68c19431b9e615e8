package world

import (
	"github.com/astei/endgen/generator"
	"github.com/astei/endgen/material"
)

// ChunkBuffer exposes one chunk column to a generator. Coordinates passed to Set are world coordinates; the
// buffer origin is the chunk's lowest north-west corner.
type ChunkBuffer struct {
	chunk *Chunk
}

var _ generator.Buffer = ChunkBuffer{}

func NewChunkBuffer(chunk *Chunk) ChunkBuffer {
	return ChunkBuffer{chunk: chunk}
}

// Origin returns the world position of the buffer's first voxel.
func (b ChunkBuffer) Origin() (x, y, z int) {
	return b.chunk.X * generator.ChunkSize, 0, b.chunk.Z * generator.ChunkSize
}

func (b ChunkBuffer) Size() (int, int, int) {
	return generator.ChunkSize, Height, generator.ChunkSize
}

func (b ChunkBuffer) Set(x, y, z int, m material.Material) {
	ox, _, oz := b.Origin()
	b.chunk.SetMaterial(x-ox, y, z-oz, m)
}
