package world

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/klauspost/compress/zlib"
)

var regionFileName = regexp.MustCompile(`^r\.(-?\d+)\.(-?\d+)\.mca$`)

func regionPath(dir string, rx, rz int) string {
	return filepath.Join(dir, fmt.Sprintf("r.%d.%d.mca", rx, rz))
}

// OpenAnvil loads every region file in dir. Regions are decoded concurrently; a region that fails to decode
// aborts the load.
func OpenAnvil(dir string) (*World, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var readers []*AnvilReader
	for _, entry := range entries {
		if entry.IsDir() || !regionFileName.MatchString(entry.Name()) {
			continue
		}
		file, err := os.Open(filepath.Join(dir, entry.Name()))
		if err != nil {
			closeReaders(readers)
			return nil, err
		}
		reader, err := NewAnvilReader(file)
		if err != nil {
			_ = file.Close()
			closeReaders(readers)
			return nil, fmt.Errorf("open region %s: %w", entry.Name(), err)
		}
		readers = append(readers, reader)
	}
	defer closeReaders(readers)

	w := New()
	errs := make(chan error, len(readers))
	var wg sync.WaitGroup
	wg.Add(len(readers))
	for _, reader := range readers {
		go func(reader *AnvilReader) {
			defer wg.Done()
			if err := readRegion(reader, w); err != nil {
				errs <- err
			}
		}(reader)
	}
	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		return nil, err
	}
	log.Printf("loaded %d chunks from %d regions in %s", w.Len(), len(readers), dir)
	return w, nil
}

func readRegion(reader *AnvilReader, w *World) error {
	for x := 0; x < regionSize; x++ {
		for z := 0; z < regionSize; z++ {
			if !reader.ChunkExists(x, z) {
				continue
			}
			stream, err := reader.ReadChunk(x, z)
			if err != nil {
				return fmt.Errorf("could not read chunk %d,%d in %s: %w", x, z, reader.Name, err)
			}
			chunk, err := decodeAnvilChunk(stream)
			if err != nil {
				return fmt.Errorf("could not deserialize chunk %d,%d in %s: %w", x, z, reader.Name, err)
			}
			if chunk.Empty() {
				continue
			}
			w.Put(chunk)
		}
	}
	return nil
}

func closeReaders(readers []*AnvilReader) {
	for _, reader := range readers {
		_ = reader.Close()
	}
}

// WriteAnvil stores the world as zlib-compressed region files in dir, replacing regions of the same name.
func (w *World) WriteAnvil(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	byRegion := make(map[[2]int][]*Chunk)
	for _, coord := range w.Coords() {
		chunk, _ := w.Chunk(coord)
		key := [2]int{coord.X >> 5, coord.Z >> 5}
		byRegion[key] = append(byRegion[key], chunk)
	}

	for key, chunks := range byRegion {
		if err := writeRegion(regionPath(dir, key[0], key[1]), chunks); err != nil {
			return err
		}
	}
	log.Printf("wrote %d chunks in %d regions to %s", w.Len(), len(byRegion), dir)
	return nil
}

func writeRegion(path string, chunks []*Chunk) (err error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create region %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()

	region := NewAnvilWriter(file)
	for _, chunk := range chunks {
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		if err = encodeAnvilChunk(zw, chunk); err != nil {
			return fmt.Errorf("encode chunk %d,%d: %w", chunk.X, chunk.Z, err)
		}
		if err = zw.Close(); err != nil {
			return
		}
		if err = region.WriteChunk(chunk.X&(regionSize-1), chunk.Z&(regionSize-1), anvilCompressionZlib, buf.Bytes()); err != nil {
			return fmt.Errorf("write chunk %d,%d: %w", chunk.X, chunk.Z, err)
		}
	}
	return region.Flush()
}
