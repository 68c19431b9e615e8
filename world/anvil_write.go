package world

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"time"
)

// A sector count shares its location entry with the sector offset and only gets the low byte.
const maxChunkSectors = 0xff

var ErrChunkTooLarge = errors.New("anvil: chunk does not fit in 255 sectors")

// AnvilWriter lays out one region file: the location table, the timestamp table and the sector-aligned chunk
// payloads, in the order AnvilReader expects them. Nothing reaches the sink until Flush.
type AnvilWriter struct {
	sink        io.Writer
	sectorTable [regionChunks]int32
	timestamps  [regionChunks]int32
	sectors     bytes.Buffer
}

func NewAnvilWriter(sink io.Writer) *AnvilWriter {
	return &AnvilWriter{sink: sink}
}

// WriteChunk stores an already compressed chunk stream at region-local (x, z). Writing the same position twice
// replaces the location entry; the old sectors are left unreferenced.
func (w *AnvilWriter) WriteChunk(x, z int, compression anvilCompression, data []byte) error {
	total := 5 + len(data)
	occupied := (total + anvilSectorSize - 1) / anvilSectorSize
	if occupied > maxChunkSectors {
		return ErrChunkTooLarge
	}
	// Sectors 0 and 1 hold the two tables.
	sectorNumber := 2 + w.sectors.Len()/anvilSectorSize

	header := struct {
		Length      int32
		Compression anvilCompression
	}{int32(len(data) + 1), compression}
	if err := binary.Write(&w.sectors, binary.BigEndian, &header); err != nil {
		return err
	}
	w.sectors.Write(data)
	w.sectors.Write(make([]byte, occupied*anvilSectorSize-total))

	index := x + z*regionSize
	w.sectorTable[index] = int32(sectorNumber<<8 | occupied)
	w.timestamps[index] = int32(time.Now().Unix())
	return nil
}

func (w *AnvilWriter) Flush() (err error) {
	if err = binary.Write(w.sink, binary.BigEndian, &w.sectorTable); err != nil {
		return
	}
	if err = binary.Write(w.sink, binary.BigEndian, &w.timestamps); err != nil {
		return
	}
	_, err = w.sectors.WriteTo(w.sink)
	return
}
