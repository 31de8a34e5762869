package savefile

import (
	"fmt"
)

const (
	HeaderLength      = 0x08 // Opaque file header, skipped entirely
	ChunkHeaderLength = 0x08 // length (4 bytes) + checksum (4 bytes)
	MinChunkLength    = 0x20 // Exclusive: real chunks are always bigger than this
	MaxChunkLength    = 0xFFFF
)

// A single section of the save, as found in the original data
type Chunk struct {
	Offset         int    // Start of the chunk header
	Length         uint32 // Payload length, not counting the chunk header
	StoredChecksum uint32 // All 4 bytes as stored, before any patch
	Checksum       uint16 // Computed over the payload
}

func (c Chunk) PayloadOffset() int {
	return c.Offset + ChunkHeaderLength
}

func (c Chunk) ChecksumOffset() int {
	return c.Offset + 4
}

// The stored field is compared whole, so junk in the upper 16 bits counts as
// a mismatch and gets cleared by the patch.
func (c Chunk) IsValid() bool {
	return uint32(c.Checksum) == c.StoredChecksum
}

func ValidChunkLength(length uint32) bool {
	return length > MinChunkLength && length <= MaxChunkLength
}

// Parse the chunk whose header starts at pos and compute its checksum. Length
// bounds are skipped in force mode, but nothing is ever read past the data.
func ReadChunk(data []byte, pos int, config Config) (Chunk, error) {
	if pos < 0 || len(data)-pos < ChunkHeaderLength {
		return Chunk{}, fmt.Errorf("%w: only %d bytes left for chunk header at %#x",
			ErrTruncatedChunk, len(data)-pos, pos)
	}
	chunk := Chunk{
		Offset:         pos,
		Length:         Get4ByteValue(data, pos),
		StoredChecksum: Get4ByteValue(data, pos+4),
	}
	payload := chunk.PayloadOffset()
	if !config.Force && !ValidChunkLength(chunk.Length) {
		return chunk, fmt.Errorf("%w: section %#x is %d bytes", ErrInvalidChunkLength, payload, chunk.Length)
	}
	if uint64(chunk.Length) > uint64(len(data)-payload) {
		return chunk, fmt.Errorf("%w: section %#x is %d bytes but only %d remain",
			ErrTruncatedChunk, payload, chunk.Length, len(data)-payload)
	}
	chunk.Checksum = ComputeChecksum(data[payload : payload+int(chunk.Length)])
	return chunk, nil
}

// Call f for every chunk in order, starting just past the file header. Stops at
// the first error, whether it's from parsing or from f.
func WalkChunks(data []byte, config Config, f func(Chunk) error) error {
	for pos := HeaderLength; pos < len(data); {
		chunk, err := ReadChunk(data, pos, config)
		if err != nil {
			return err
		}
		if err = f(chunk); err != nil {
			return err
		}
		pos = chunk.PayloadOffset() + int(chunk.Length)
	}
	return nil
}

// List every chunk without touching anything
func Scan(data []byte, config Config) ([]Chunk, error) {
	chunks := make([]Chunk, 0)
	err := WalkChunks(data, config, func(c Chunk) error {
		chunks = append(chunks, c)
		return nil
	})
	return chunks, err
}
