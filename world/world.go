package world

import (
	"errors"
	"sort"
	"sync"

	"github.com/astei/endgen/generator"
	"github.com/astei/endgen/material"
)

var ErrEmptyWorld = errors.New("world: no chunks")

// World is an in-memory set of chunk columns. It is safe for concurrent use. Blocks in chunks that were never
// stored read as air.
type World struct {
	mu     sync.RWMutex
	chunks map[ChunkCoord]*Chunk
}

var _ generator.World = (*World)(nil)

func New() *World {
	return &World{chunks: make(map[ChunkCoord]*Chunk)}
}

func (w *World) Put(chunk *Chunk) {
	w.mu.Lock()
	w.chunks[chunk.Coord()] = chunk
	w.mu.Unlock()
}

func (w *World) Chunk(coord ChunkCoord) (*Chunk, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	chunk, ok := w.chunks[coord]
	return chunk, ok
}

func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// Coords lists the stored chunks ordered by X, then Z.
func (w *World) Coords() []ChunkCoord {
	w.mu.RLock()
	keys := make([]ChunkCoord, 0, len(w.chunks))
	for coord := range w.chunks {
		keys = append(keys, coord)
	}
	w.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].X != keys[j].X {
			return keys[i].X < keys[j].X
		}
		return keys[i].Z < keys[j].Z
	})
	return keys
}

// Bounds returns the smallest chunk rectangle covering every stored chunk.
func (w *World) Bounds() (origin ChunkCoord, width, depth int, err error) {
	keys := w.Coords()
	if len(keys) == 0 {
		err = ErrEmptyWorld
		return
	}
	minX, maxX := keys[0].X, keys[len(keys)-1].X
	minZ, maxZ := keys[0].Z, keys[0].Z
	for _, k := range keys {
		if k.Z < minZ {
			minZ = k.Z
		}
		if k.Z > maxZ {
			maxZ = k.Z
		}
	}
	return ChunkCoord{X: minX, Z: minZ}, maxX - minX + 1, maxZ - minZ + 1, nil
}

func (w *World) HeightLimit() int {
	return Height
}

func (w *World) BlockMaterialAt(x, y, z int) material.Material {
	chunk, ok := w.Chunk(ChunkAt(x, z))
	if !ok {
		return material.Air
	}
	return chunk.Material(x&0xf, y, z&0xf)
}
