package world

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

const (
	regionSize      = 32
	regionChunks    = regionSize * regionSize
	anvilSectorSize = 4096
)

var ErrNoChunk = errors.New("anvil: chunk not found")
var ErrInvalidChunkLength = errors.New("anvil: invalid chunk length")
var ErrInvalidCompression = errors.New("anvil: invalid compression format")

type anvilCompression byte

const (
	anvilCompressionGzip anvilCompression = 1
	anvilCompressionZlib anvilCompression = 2
	anvilCompressionNone anvilCompression = 3
)

// AnvilReader extracts chunk streams from one region file. It is not safe for concurrent use.
type AnvilReader struct {
	source      io.ReadSeeker
	sectorTable [regionChunks]int32
	Name        string
}

// NewAnvilReader reads the region's location table. Ownership of source moves to the reader.
func NewAnvilReader(source io.ReadSeeker) (reader *AnvilReader, err error) {
	reader = &AnvilReader{source: source}
	if file, ok := source.(*os.File); ok {
		reader.Name = file.Name()
	}
	err = reader.readSectorTable()
	return
}

func (r *AnvilReader) readSectorTable() (err error) {
	if _, err = r.source.Seek(0, io.SeekStart); err != nil {
		return
	}
	raw := make([]byte, anvilSectorSize)
	if _, err = io.ReadFull(r.source, raw); err != nil {
		return
	}
	return binary.Read(bytes.NewReader(raw), binary.BigEndian, &r.sectorTable)
}

func (r *AnvilReader) ChunkExists(x, z int) bool {
	return r.sectorTable[x+z*regionSize] != 0
}

// ReadChunk returns the decompressed NBT stream of the chunk at region-local (x, z).
func (r *AnvilReader) ReadChunk(x, z int) (chunk io.Reader, err error) {
	offset := r.sectorTable[x+z*regionSize]
	sectorNumber := offset >> 8
	occupiedSectors := offset & 0xff
	if sectorNumber == 0 {
		return nil, ErrNoChunk
	}

	if _, err = r.source.Seek(int64(sectorNumber)*anvilSectorSize, io.SeekStart); err != nil {
		return
	}
	sectorData := make([]byte, int(occupiedSectors)*anvilSectorSize)
	n, err := io.ReadFull(r.source, sectorData)
	if err == io.ErrUnexpectedEOF {
		// The last chunk of a region is not always padded to a full sector.
		sectorData, err = sectorData[:n], nil
	}
	if err != nil {
		return
	}

	sectorReader := bytes.NewReader(sectorData)
	var header struct {
		Length      int32
		Compression anvilCompression
	}
	if err = binary.Read(sectorReader, binary.BigEndian, &header); err != nil {
		return
	}
	// The length counts the compression byte.
	if header.Length < 1 || header.Length > int32(len(sectorData)-4) {
		return nil, ErrInvalidChunkLength
	}

	stream := io.LimitReader(sectorReader, int64(header.Length-1))
	switch header.Compression {
	case anvilCompressionGzip:
		return gzip.NewReader(stream)
	case anvilCompressionZlib:
		return zlib.NewReader(stream)
	case anvilCompressionNone:
		return stream, nil
	default:
		return nil, ErrInvalidCompression
	}
}

func (r *AnvilReader) Close() error {
	if closer, ok := r.source.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
