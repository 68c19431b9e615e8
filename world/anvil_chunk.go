package world

import (
	"fmt"
	"io"

	"github.com/astei/endgen/nbt"
)

// dataVersion marks chunks as written by 1.12.2, the last release using numeric block ids.
const dataVersion = 1343

type anvilChunkRoot struct {
	DataVersion int32           `nbt:"DataVersion"`
	Level       anvilChunkLevel `nbt:"Level"`
}

type anvilChunkLevel struct {
	X                int32               `nbt:"xPos"`
	Z                int32               `nbt:"zPos"`
	LastUpdate       int64               `nbt:"LastUpdate"`
	InhabitedTime    int64               `nbt:"InhabitedTime"`
	TerrainPopulated int8                `nbt:"TerrainPopulated"`
	LightPopulated   int8                `nbt:"LightPopulated"`
	Biomes           []byte              `nbt:"Biomes"`
	HeightMap        []int32             `nbt:"HeightMap"`
	Sections         []anvilChunkSection `nbt:"Sections"`
	Entities         []interface{}       `nbt:"Entities"`
	TileEntities     []interface{}       `nbt:"TileEntities"`
}

type anvilChunkSection struct {
	Y          int8   `nbt:"Y"`
	Blocks     []byte `nbt:"Blocks"`
	Data       []byte `nbt:"Data"`
	BlockLight []byte `nbt:"BlockLight"`
	SkyLight   []byte `nbt:"SkyLight"`
}

// storedChunkRoot mirrors anvilChunkRoot for decoding. Entity lists are not kept; the decoder skips them.
type storedChunkRoot struct {
	Level struct {
		X         int32               `nbt:"xPos"`
		Z         int32               `nbt:"zPos"`
		Biomes    []byte              `nbt:"Biomes"`
		HeightMap []int32             `nbt:"HeightMap"`
		Sections  []anvilChunkSection `nbt:"Sections"`
	} `nbt:"Level"`
}

func encodeAnvilChunk(w io.Writer, c *Chunk) error {
	root := anvilChunkRoot{
		DataVersion: dataVersion,
		Level: anvilChunkLevel{
			X:                int32(c.X),
			Z:                int32(c.Z),
			TerrainPopulated: 1,
			LightPopulated:   1,
			Biomes:           c.Biomes[:],
			HeightMap:        c.HeightMap[:],
			Sections:         []anvilChunkSection{},
			Entities:         []interface{}{},
			TileEntities:     []interface{}{},
		},
	}
	for y, section := range c.Sections {
		if section == nil {
			continue
		}
		root.Level.Sections = append(root.Level.Sections, anvilChunkSection{
			Y:          int8(y),
			Blocks:     section.Blocks[:],
			Data:       section.Data[:],
			BlockLight: section.BlockLight[:],
			SkyLight:   section.SkyLight[:],
		})
	}
	return nbt.NewEncoder(w).Encode(root)
}

func decodeAnvilChunk(r io.Reader) (*Chunk, error) {
	var root storedChunkRoot
	if err := nbt.Unmarshal(r, &root); err != nil {
		return nil, err
	}
	level := root.Level
	if len(level.Biomes) != columnCount {
		return nil, fmt.Errorf("invalid biome array size %d", len(level.Biomes))
	}
	if len(level.HeightMap) != columnCount {
		return nil, fmt.Errorf("invalid height map size %d", len(level.HeightMap))
	}

	chunk := NewChunk(ChunkCoord{X: int(level.X), Z: int(level.Z)})
	copy(chunk.Biomes[:], level.Biomes)
	copy(chunk.HeightMap[:], level.HeightMap)
	for _, s := range level.Sections {
		if s.Y < 0 || int(s.Y) >= sectionCount {
			return nil, fmt.Errorf("section %d out of range", s.Y)
		}
		if len(s.Blocks) != sectionVolume {
			return nil, fmt.Errorf("section %d: invalid block array size %d", s.Y, len(s.Blocks))
		}
		section := &Section{}
		copy(section.Blocks[:], s.Blocks)
		copy(section.Data[:], s.Data)
		copy(section.BlockLight[:], s.BlockLight)
		copy(section.SkyLight[:], s.SkyLight)
		chunk.Sections[s.Y] = section
	}
	return chunk, nil
}
