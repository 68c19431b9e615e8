package world

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zstd"

	"github.com/astei/endgen/generator"
	"github.com/astei/endgen/material"
)

func newEndGenerator(t *testing.T) *generator.EndGenerator {
	t.Helper()
	gen, err := generator.NewEndGenerator(generator.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return gen
}

func TestChunkSetMaterial(t *testing.T) {
	c := NewChunk(ChunkCoord{X: 1, Z: -1})
	c.SetMaterial(3, 0, 4, material.Air)
	if !c.Empty() {
		t.Fatal("setting air must not allocate a section")
	}

	c.SetMaterial(3, 70, 4, material.EndStone)
	if got := c.Material(3, 70, 4); got != material.EndStone {
		t.Fatalf("expected end stone, got %s", got)
	}
	if c.Sections[4] == nil || c.Sections[4].Blocks[6<<8|4<<4|3] != byte(material.EndStone) {
		t.Fatal("block stored at the wrong section index")
	}
	c.SetMaterial(16, 0, 0, material.EndStone)
	c.SetMaterial(0, Height, 0, material.EndStone)
	if got := c.Material(0, -1, 0); got != material.Air {
		t.Fatalf("out of range reads must be air, got %s", got)
	}
}

func TestChunkFinish(t *testing.T) {
	c := NewChunk(ChunkCoord{})
	c.SetMaterial(0, 20, 0, material.EndStone)
	c.SetMaterial(0, 3, 0, material.EndStone)
	c.Finish(generator.SingleBiome{Biome: generator.Sky})

	if got := c.HeightMap[0]; got != 21 {
		t.Fatalf("expected height 21, got %d", got)
	}
	if got := c.HeightMap[1]; got != 0 {
		t.Fatalf("expected empty column height 0, got %d", got)
	}
	if c.Biomes[255] != generator.Sky.ID {
		t.Fatalf("expected sky biome, got %d", c.Biomes[255])
	}
	section := c.Sections[1]
	if got := nibble(section.SkyLight[:], sectionIndex(0, 4, 0)); got != 0 {
		t.Fatalf("expected no sky light under the surface, got %d", got)
	}
	if got := nibble(section.SkyLight[:], sectionIndex(0, 5, 0)); got != fullSkyLight {
		t.Fatalf("expected full sky light above the surface, got %d", got)
	}
	if got := nibble(section.SkyLight[:], sectionIndex(1, 0, 0)); got != fullSkyLight {
		t.Fatalf("expected full sky light in an open column, got %d", got)
	}
}

func TestChunkBufferTranslatesCoordinates(t *testing.T) {
	c := NewChunk(ChunkCoord{X: -2, Z: 3})
	buf := NewChunkBuffer(c)
	x, y, z := buf.Origin()
	if x != -32 || y != 0 || z != 48 {
		t.Fatalf("unexpected origin %d,%d,%d", x, y, z)
	}
	buf.Set(-31, 10, 50, material.Obsidian)
	if got := c.Material(1, 10, 2); got != material.Obsidian {
		t.Fatalf("expected obsidian, got %s", got)
	}
	buf.Set(0, 10, 50, material.Obsidian)
	if got := c.Material(0, 10, 2); got != material.Air {
		t.Fatalf("write outside the chunk leaked in: %s", got)
	}
}

func TestWorldBlockMaterialAt(t *testing.T) {
	w := New()
	c := NewChunk(ChunkCoord{X: -1, Z: -1})
	c.SetMaterial(15, 40, 15, material.EndStone)
	w.Put(c)

	if got := w.BlockMaterialAt(-1, 40, -1); got != material.EndStone {
		t.Fatalf("expected end stone, got %s", got)
	}
	if got := w.BlockMaterialAt(100, 40, 100); got != material.Air {
		t.Fatalf("missing chunks must read as air, got %s", got)
	}
	if got := generator.HighestSolidBlock(w, -1, -1); got != 41 {
		t.Fatalf("expected surface 41, got %d", got)
	}
}

func TestWorldBounds(t *testing.T) {
	if _, _, _, err := New().Bounds(); !errors.Is(err, ErrEmptyWorld) {
		t.Fatalf("expected ErrEmptyWorld, got %v", err)
	}
	w := New()
	for _, coord := range []ChunkCoord{{X: 2, Z: -1}, {X: -3, Z: 4}, {X: 0, Z: 0}} {
		w.Put(NewChunk(coord))
	}
	origin, width, depth, err := w.Bounds()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if origin != (ChunkCoord{X: -3, Z: -1}) || width != 6 || depth != 6 {
		t.Fatalf("unexpected bounds %+v %dx%d", origin, width, depth)
	}
}

func TestGenerateMatchesDirectFill(t *testing.T) {
	gen := newEndGenerator(t)
	w, err := Generate(context.Background(), gen, GenerateOptions{Seed: 42, Radius: 1, Workers: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Len() != 9 {
		t.Fatalf("expected 9 chunks around the island centre, got %d", w.Len())
	}

	buf := generator.NewCuboidBuffer(-16, 0, -16, 48, generator.Height, 48)
	gen.Fill(buf, -16, 0, -16, gen.Biomes(), 42)
	for x := -16; x < 32; x += 5 {
		for y := 0; y < generator.Height; y += 3 {
			for z := -16; z < 32; z += 7 {
				if got, want := w.BlockMaterialAt(x, y, z), buf.Get(x, y, z); got != want {
					t.Fatalf("block %d,%d,%d: world has %s, direct fill has %s", x, y, z, got, want)
				}
			}
		}
	}
	if got := w.BlockMaterialAt(0, 36, 0); got != material.EndStone {
		t.Fatalf("expected the island centre to be end stone, got %s", got)
	}
	if y := generator.HighestSolidBlock(w, 0, 0); y == generator.NotFound || y > generator.Height {
		t.Fatalf("unexpected surface %d at the origin", y)
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Generate(ctx, newEndGenerator(t), GenerateOptions{Radius: 2, Workers: 1}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGenerateRejectsNegativeRadius(t *testing.T) {
	if _, err := Generate(context.Background(), newEndGenerator(t), GenerateOptions{Radius: -1}); err == nil {
		t.Fatal("expected an error for a negative radius")
	}
}

func TestAnvilRoundTrip(t *testing.T) {
	w := New()
	a := NewChunk(ChunkCoord{X: 0, Z: 0})
	a.SetMaterial(1, 36, 2, material.EndStone)
	a.SetMaterial(1, 37, 2, material.Water)
	a.Finish(generator.SingleBiome{Biome: generator.Sky})
	b := NewChunk(ChunkCoord{X: -33, Z: 5})
	b.SetMaterial(15, 0, 15, material.Bedrock)
	b.Finish(generator.SingleBiome{Biome: generator.Sky})
	w.Put(a)
	w.Put(b)

	dir := t.TempDir()
	if err := w.WriteAnvil(dir); err != nil {
		t.Fatalf("write: %v", err)
	}
	// Writing twice replaces the existing regions.
	if err := w.WriteAnvil(dir); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	loaded, err := OpenAnvil(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if diff := cmp.Diff(w.Coords(), loaded.Coords()); diff != "" {
		t.Fatalf("chunk set differs:\n%s", diff)
	}
	for _, coord := range w.Coords() {
		want, _ := w.Chunk(coord)
		got, _ := loaded.Chunk(coord)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("chunk %v differs:\n%s", coord, diff)
		}
	}
}

func TestWriteAsSlime(t *testing.T) {
	w := New()
	c := NewChunk(ChunkCoord{X: -1, Z: 2})
	c.SetMaterial(0, 36, 0, material.EndStone)
	c.Finish(generator.SingleBiome{Biome: generator.Sky})
	w.Put(c)
	w.Put(func() *Chunk {
		other := NewChunk(ChunkCoord{X: 1, Z: 2})
		other.SetMaterial(0, 0, 0, material.EndStone)
		return other
	}())

	var out bytes.Buffer
	if err := w.WriteAsSlime(&out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var header struct {
		Magic   uint16
		Version uint8
		MinX    int16
		MinZ    int16
		Width   uint16
		Depth   uint16
	}
	if err := binary.Read(&out, binary.BigEndian, &header); err != nil {
		t.Fatalf("read header: %v", err)
	}
	if header.Magic != slimeHeader || header.Version != slimeLatestVersion {
		t.Fatalf("unexpected magic/version %x/%d", header.Magic, header.Version)
	}
	if header.MinX != -1 || header.MinZ != 2 || header.Width != 3 || header.Depth != 1 {
		t.Fatalf("unexpected bounds %+v", header)
	}
	mask := make([]byte, 1)
	if _, err := io.ReadFull(&out, mask); err != nil {
		t.Fatalf("read mask: %v", err)
	}
	if mask[0] != 0b101 {
		t.Fatalf("expected chunks 0 and 2 populated, got %08b", mask[0])
	}

	var sizes struct {
		Compressed   uint32
		Uncompressed uint32
	}
	if err := binary.Read(&out, binary.BigEndian, &sizes); err != nil {
		t.Fatalf("read sizes: %v", err)
	}
	compressed := make([]byte, sizes.Compressed)
	if _, err := io.ReadFull(&out, compressed); err != nil {
		t.Fatalf("read chunks: %v", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		t.Fatalf("zstd: %v", err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}

	const chunkHeader = columnCount*4 + columnCount + 2
	const section = 3*(sectionVolume/2) + sectionVolume + 2
	if len(raw) != int(sizes.Uncompressed) || len(raw) != 2*(chunkHeader+section) {
		t.Fatalf("unexpected chunk block size %d (declared %d)", len(raw), sizes.Uncompressed)
	}
	if got := binary.BigEndian.Uint16(raw[columnCount*5:]); got != 1<<2 {
		t.Fatalf("expected section 2 populated in the first chunk, got %016b", got)
	}
}
