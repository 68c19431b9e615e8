package generator

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/astei/endgen/material"
	"github.com/astei/endgen/noise"
)

func newTestGenerator(t *testing.T, opts Options) *EndGenerator {
	t.Helper()
	gen, err := NewEndGenerator(opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return gen
}

func TestGeometryConstants(t *testing.T) {
	if Height != 68 {
		t.Fatalf("expected height 68, got %d", Height)
	}
	if IslandTotalOffset != 36 {
		t.Fatalf("expected total offset 36, got %v", IslandTotalOffset)
	}
	if math.Abs(IslandHeightScale-144.0/56.0*2) > 1e-12 {
		t.Fatalf("unexpected height scale %v", IslandHeightScale)
	}
}

func TestNewEndGeneratorRejectsBadOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.XScale = 0
	if _, err := NewEndGenerator(opts); err == nil {
		t.Fatal("expected error for zero axis scale")
	}

	opts = DefaultOptions()
	opts.Noise.Backend = "worley"
	if _, err := NewEndGenerator(opts); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestFillIsDeterministic(t *testing.T) {
	for _, backend := range []string{noise.BackendPerlin, noise.BackendSimplex} {
		opts := DefaultOptions()
		opts.Noise.Backend = backend
		gen := newTestGenerator(t, opts)

		first := NewCuboidBuffer(-8, 0, 40, 16, Height, 16)
		second := NewCuboidBuffer(-8, 0, 40, 16, Height, 16)
		gen.Fill(first, -8, 0, 40, gen.Biomes(), 1234)
		gen.Fill(second, -8, 0, 40, gen.Biomes(), 1234)

		if diff := cmp.Diff(first.Blocks(), second.Blocks()); diff != "" {
			t.Fatalf("%s: fills differ (-first +second):\n%s", backend, diff)
		}
		if first.Written() == 0 {
			t.Fatalf("%s: expected solid blocks near the island centre", backend)
		}
	}
}

func TestFillOriginChunk(t *testing.T) {
	gen := newTestGenerator(t, DefaultOptions())
	buf := NewCuboidBuffer(0, 0, 0, 16, Height, 16)
	gen.Fill(buf, 0, 0, 0, gen.Biomes(), 42)

	centreY := int(math.Floor(IslandTotalOffset))
	if got := buf.Get(0, centreY, 0); got != material.EndStone {
		t.Fatalf("expected end stone at island centre, got %s", got)
	}
	if buf.IsSet(15, 0, 15) {
		t.Fatalf("expected far corner to stay air, got %s", buf.Get(15, 0, 15))
	}
}

func TestFillClampsHeight(t *testing.T) {
	gen := newTestGenerator(t, DefaultOptions())
	buf := NewCuboidBuffer(0, 0, 0, 4, 200, 4)
	gen.Fill(buf, 0, 0, 0, gen.Biomes(), 7)

	for x := 0; x < 4; x++ {
		for y := Height; y < 200; y++ {
			for z := 0; z < 4; z++ {
				if buf.IsSet(x, y, z) {
					t.Fatalf("voxel (%d,%d,%d) written above the height bound", x, y, z)
				}
			}
		}
	}
	if !buf.IsSet(0, 36, 0) {
		t.Fatal("expected the island centre inside the clamped range to be written")
	}
}

func TestFillNeverClearsExistingBlocks(t *testing.T) {
	gen := newTestGenerator(t, DefaultOptions())
	buf := NewCuboidBuffer(-40, 0, -40, 8, Height, 8)
	for x := -40; x < -32; x++ {
		for y := 0; y < Height; y++ {
			for z := -40; z < -32; z++ {
				buf.Set(x, y, z, material.Obsidian)
			}
		}
	}
	gen.Fill(buf, -40, 0, -40, gen.Biomes(), 99)

	for _, m := range buf.Blocks() {
		if m != material.Obsidian && m != material.EndStone {
			t.Fatalf("unexpected material %s after fill", m)
		}
	}
}

func TestFillEmptyBuffer(t *testing.T) {
	gen := newTestGenerator(t, DefaultOptions())
	buf := NewCuboidBuffer(0, 0, 0, 0, Height, 16)
	gen.Fill(buf, 0, 0, 0, nil, 1)
	if buf.Written() != 0 {
		t.Fatal("empty buffer should stay empty")
	}
}

func TestLegacySeedIgnoresHighBits(t *testing.T) {
	opts := DefaultOptions()
	opts.LegacySeed = true
	gen := newTestGenerator(t, opts)

	low := NewCuboidBuffer(60, 20, 0, 16, 32, 16)
	high := NewCuboidBuffer(60, 20, 0, 16, 32, 16)
	gen.Fill(low, 60, 20, 0, nil, 5)
	gen.Fill(high, 60, 20, 0, nil, 5+1<<32)
	if diff := cmp.Diff(low.Blocks(), high.Blocks()); diff != "" {
		t.Fatalf("legacy seeds sharing the low word should match:\n%s", diff)
	}
}

func TestNoiseSeed(t *testing.T) {
	if got := NoiseSeed(2, false); got != 46 {
		t.Fatalf("expected 46, got %d", got)
	}
	if NoiseSeed(5, false) == NoiseSeed(5+1<<32, false) {
		t.Fatal("full width seeds should keep the high word")
	}
	if got := NoiseSeed(5+1<<32, true); got != 115 {
		t.Fatalf("expected legacy seed 115, got %d", got)
	}
	got := NoiseSeed(math.MaxInt64, true)
	if got < math.MinInt32 || got > math.MaxInt32 {
		t.Fatalf("legacy seed %d escapes 32 bits", got)
	}
}

func TestSolidAtIslandCentre(t *testing.T) {
	for _, sample := range []float64{-1, -0.5, 0, 0.5, 1} {
		if !Solid(0, sample) {
			t.Fatalf("centre must be solid for sample %v", sample)
		}
	}
	if d := Distance(0, 36, 0); d != 0 {
		t.Fatalf("expected zero distance at centre, got %v", d)
	}
}

func TestDensityFallsWithDistance(t *testing.T) {
	for _, sample := range []float64{-1, -0.3, 0, 0.4, 1} {
		prev := math.Inf(1)
		for d := 0.25; d < 600; d += 0.75 {
			density := Density(d, sample)
			if density > prev {
				t.Fatalf("density rose from %v to %v at distance %v (sample %v)", prev, density, d, sample)
			}
			prev = density
		}
	}
}

func TestDistanceStretchesVertically(t *testing.T) {
	horizontal := Distance(10, 36, 0)
	vertical := Distance(0, 46, 0)
	if horizontal != 10 {
		t.Fatalf("expected horizontal distance 10, got %v", horizontal)
	}
	if math.Abs(vertical-10*IslandHeightScale) > 1e-9 {
		t.Fatalf("expected vertical distance %v, got %v", 10*IslandHeightScale, vertical)
	}
}

func TestSurfaceHeights(t *testing.T) {
	gen := newTestGenerator(t, DefaultOptions())
	want := make([][]int, ChunkSize)
	for x := range want {
		want[x] = make([]int, ChunkSize)
		for z := range want[x] {
			want[x][z] = 62
		}
	}
	for _, chunk := range [][2]int{{0, 0}, {-3, 7}} {
		got := gen.SurfaceHeights(nil, chunk[0], chunk[1])
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("unexpected heights for chunk %v:\n%s", chunk, diff)
		}
	}
}
