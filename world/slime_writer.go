package world

import (
	"bytes"
	"encoding/binary"
	"io"
	"log"
	"sort"

	"github.com/klauspost/compress/zstd"
	"github.com/willf/bitset"

	"github.com/astei/endgen/nbt"
)

const slimeHeader = 0xB10B
const slimeLatestVersion = 3

// WriteAsSlime writes the world as a single Slime file.
func (w *World) WriteAsSlime(writer io.Writer) error {
	origin, width, depth, err := w.Bounds()
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	sw := &slimeWriter{writer: writer, world: w, enc: enc, origin: origin, width: width, depth: depth}
	return sw.writeWorld()
}

type slimeWriter struct {
	writer io.Writer
	world  *World
	enc    *zstd.Encoder

	origin       ChunkCoord
	width, depth int
}

func (w *slimeWriter) writeWorld() (err error) {
	if err = w.writeHeader(); err != nil {
		return
	}
	if err = w.writeChunks(); err != nil {
		return
	}
	if err = w.writeTileEntities(); err != nil {
		return
	}
	if err = w.writeEntities(); err != nil {
		return
	}
	return w.writeExtra()
}

// slimeIndex orders chunks row by row, Z major.
func (w *slimeWriter) slimeIndex(c ChunkCoord) int {
	return (c.Z-w.origin.Z)*w.width + (c.X - w.origin.X)
}

func (w *slimeWriter) writeHeader() (err error) {
	var header struct {
		Magic   uint16
		Version uint8
		MinX    int16
		MinZ    int16
		Width   uint16
		Depth   uint16
	}
	header.Magic = slimeHeader
	header.Version = slimeLatestVersion
	header.MinX = int16(w.origin.X)
	header.MinZ = int16(w.origin.Z)
	header.Width = uint16(w.width)
	header.Depth = uint16(w.depth)

	if err = binary.Write(w.writer, binary.BigEndian, header); err != nil {
		return
	}
	_, err = w.writer.Write(w.populatedChunks())
	return
}

// populatedChunks encodes the chunk mask the way java.util.BitSet#toByteArray does, padded to the full area.
func (w *slimeWriter) populatedChunks() []byte {
	area := uint(w.width * w.depth)
	used := bitset.New(area)
	for _, coord := range w.world.Coords() {
		used.Set(uint(w.slimeIndex(coord)))
	}

	out := make([]byte, 0, len(used.Bytes())*8)
	var word [8]byte
	for _, bits := range used.Bytes() {
		binary.LittleEndian.PutUint64(word[:], bits)
		out = append(out, word[:]...)
	}
	size := int((area + 7) / 8)
	if len(out) < size {
		out = append(out, make([]byte, size-len(out))...)
	}
	return out[:size]
}

func (w *slimeWriter) writeChunks() (err error) {
	coords := w.world.Coords()
	sort.Slice(coords, func(i, j int) bool {
		return w.slimeIndex(coords[i]) < w.slimeIndex(coords[j])
	})

	var out bytes.Buffer
	for _, coord := range coords {
		chunk, _ := w.world.Chunk(coord)
		if err = writeSlimeChunkHeader(chunk, &out); err != nil {
			return
		}
		for _, section := range chunk.Sections {
			if section == nil {
				continue
			}
			if err = writeSlimeSection(section, &out); err != nil {
				return
			}
		}
	}
	return w.writeZstdCompressed(out.Bytes())
}

func writeSlimeChunkHeader(chunk *Chunk, out *bytes.Buffer) (err error) {
	if err = binary.Write(out, binary.BigEndian, chunk.HeightMap); err != nil {
		return
	}
	if _, err = out.Write(chunk.Biomes[:]); err != nil {
		return
	}

	var populated uint16
	for y, section := range chunk.Sections {
		if section != nil {
			populated |= 1 << y
		}
	}
	return binary.Write(out, binary.BigEndian, populated)
}

func writeSlimeSection(section *Section, out *bytes.Buffer) (err error) {
	if _, err = out.Write(section.BlockLight[:]); err != nil {
		return
	}
	if _, err = out.Write(section.Blocks[:]); err != nil {
		return
	}
	if _, err = out.Write(section.Data[:]); err != nil {
		return
	}
	if _, err = out.Write(section.SkyLight[:]); err != nil {
		return
	}
	// No extended block data.
	return binary.Write(out, binary.BigEndian, uint16(0))
}

func (w *slimeWriter) writeZstdCompressed(raw []byte) (err error) {
	compressed := w.enc.EncodeAll(raw, nil)
	log.Printf("slime: compressed %d bytes to %d", len(raw), len(compressed))

	if err = binary.Write(w.writer, binary.BigEndian, uint32(len(compressed))); err != nil {
		return
	}
	if err = binary.Write(w.writer, binary.BigEndian, uint32(len(raw))); err != nil {
		return
	}
	_, err = w.writer.Write(compressed)
	return
}

func (w *slimeWriter) writeTileEntities() (err error) {
	compound := struct {
		Tiles []interface{} `nbt:"tiles"`
	}{Tiles: []interface{}{}}

	var buf bytes.Buffer
	if err = nbt.NewEncoder(&buf).Encode(compound); err != nil {
		return
	}
	return w.writeZstdCompressed(buf.Bytes())
}

func (w *slimeWriter) writeEntities() (err error) {
	compound := struct {
		Entities []interface{} `nbt:"entities"`
	}{Entities: []interface{}{}}

	var buf bytes.Buffer
	if err = nbt.NewEncoder(&buf).Encode(compound); err != nil {
		return
	}
	if _, err = w.writer.Write([]byte{1}); err != nil {
		return
	}
	return w.writeZstdCompressed(buf.Bytes())
}

// writeExtra writes an empty extra-data block.
func (w *slimeWriter) writeExtra() error {
	return w.writeZstdCompressed(nil)
}
