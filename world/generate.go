package world

import (
	"context"
	"errors"
	"log"
	"runtime"
	"sync"

	"github.com/astei/endgen/generator"
)

// GenerateOptions selects the square of chunks to generate around the origin.
type GenerateOptions struct {
	Seed int64
	// Radius in chunks; chunks from -Radius to Radius inclusive are generated on both axes.
	Radius int
	// Workers bounds the number of chunks filled at once. Zero uses one worker per CPU.
	Workers int
}

// Generate fills every chunk in the requested square with gen and returns the chunks that ended up holding
// blocks. Each chunk is filled by a separate Fill call so workers never share noise state.
func Generate(ctx context.Context, gen generator.TerrainGenerator, opts GenerateOptions) (*World, error) {
	if opts.Radius < 0 {
		return nil, errors.New("world: radius cannot be negative")
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	side := 2*opts.Radius + 1
	total := side * side
	biomes := gen.Biomes()

	tasks := make(chan ChunkCoord, workers)
	results := make(chan *Chunk, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for coord := range tasks {
				chunk := NewChunk(coord)
				buf := NewChunkBuffer(chunk)
				x, y, z := buf.Origin()
				gen.Fill(buf, x, y, z, biomes, opts.Seed)
				chunk.Finish(biomes)

				select {
				case results <- chunk:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(tasks)
		for cx := -opts.Radius; cx <= opts.Radius; cx++ {
			for cz := -opts.Radius; cz <= opts.Radius; cz++ {
				select {
				case tasks <- ChunkCoord{X: cx, Z: cz}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	w := New()
	done, nextLogPercent := 0, 10
	for chunk := range results {
		done++
		if !chunk.Empty() {
			w.Put(chunk)
		}
		if progress := done * 100 / total; progress >= nextLogPercent {
			log.Printf("generated %d/%d chunks (%d%%)", done, total, progress)
			nextLogPercent = progress/10*10 + 10
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Printf("generated %d chunks, %d hold blocks", total, w.Len())
	return w, nil
}
