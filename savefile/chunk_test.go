package savefile

import (
	"errors"
	"testing"
)

func TestReadChunk_LengthBounds(t *testing.T) {
	check := func(length int, force bool, expect bool) {
		data := makeSave([][]byte{testPayload(length, 0xAA)}, nil)
		_, err := ReadChunk(data, HeaderLength, Config{Force: force})
		if (err == nil) != expect {
			t.Fatalf("Length %#x, force %t: expected ok=%t, err: %v", length, force, expect, err)
		}
		if err != nil && !errors.Is(err, ErrInvalidChunkLength) {
			t.Fatalf("Length %#x: expected invalid chunk length, got %s", length, err)
		}
	}
	check(0x20, false, false)
	check(0x21, false, true)
	check(0xFFFF, false, true)
	check(0x10000, false, false)
	check(0, false, false)
	check(0x20, true, true)
	check(0x10000, true, true)
	check(0, true, true)
}

func TestReadChunk_Fields(t *testing.T) {
	payload := testPayload(0x21, 0)
	data := makeSave([][]byte{payload}, map[int]uint32{0: 0x12345678})
	chunk, err := ReadChunk(data, HeaderLength, Config{})
	if err != nil {
		t.Fatalf("Error reading chunk: %s", err)
	}
	if chunk.Offset != 8 || chunk.PayloadOffset() != 16 || chunk.ChecksumOffset() != 12 {
		t.Fatalf("Wrong offsets: %d, %d, %d", chunk.Offset, chunk.PayloadOffset(), chunk.ChecksumOffset())
	}
	if chunk.Length != 0x21 {
		t.Fatalf("Expected length 0x21, got %#x", chunk.Length)
	}
	if chunk.StoredChecksum != 0x12345678 {
		t.Fatalf("Expected stored 0x12345678, got %#x", chunk.StoredChecksum)
	}
	if chunk.Checksum != 0xEDD1 {
		t.Fatalf("Expected computed 0xEDD1, got %#x", chunk.Checksum)
	}
	if chunk.IsValid() {
		t.Fatalf("Chunk with wrong stored checksum reported valid")
	}
}

func TestReadChunk_HighBitsMismatch(t *testing.T) {
	// Low 16 bits match, but the stored field is compared whole
	data := makeSave([][]byte{testPayload(0x21, 0)}, map[int]uint32{0: 0xFFFFEDD1})
	chunk, err := ReadChunk(data, HeaderLength, Config{})
	if err != nil {
		t.Fatalf("Error reading chunk: %s", err)
	}
	if chunk.IsValid() {
		t.Fatalf("Expected junk in the upper bits to count as a mismatch")
	}
}

func TestWalkChunks_TruncatedPayload(t *testing.T) {
	data := makeSave([][]byte{testPayload(0x40, 1)}, nil)
	data = data[:len(data)-1]
	for _, force := range []bool{false, true} {
		_, err := Scan(data, Config{Force: force})
		if !errors.Is(err, ErrTruncatedChunk) {
			t.Fatalf("Force %t: expected truncated chunk, got %v", force, err)
		}
	}
}

func TestWalkChunks_TruncatedHeader(t *testing.T) {
	data := makeSave([][]byte{testPayload(0x40, 1)}, nil)
	data = append(data, 0x40, 0, 0, 0)
	_, err := Scan(data, Config{})
	if !errors.Is(err, ErrTruncatedChunk) {
		t.Fatalf("Expected truncated chunk for partial header, got %v", err)
	}
}

func TestWalkChunks_HugeLengthForced(t *testing.T) {
	data := makeSave([][]byte{testPayload(0x40, 1)}, nil)
	Write4ByteValue(0xFFFFFFFF, data, HeaderLength)
	_, err := Scan(data, Config{Force: true})
	if !errors.Is(err, ErrTruncatedChunk) {
		t.Fatalf("Expected truncated chunk, got %v", err)
	}
}

func TestWalkChunks_StopsAtFirstError(t *testing.T) {
	data := makeSave([][]byte{testPayload(0x21, 0), testPayload(0x10, 0), testPayload(0x21, 0)}, nil)
	visited := 0
	err := WalkChunks(data, Config{}, func(c Chunk) error {
		visited++
		return nil
	})
	if !errors.Is(err, ErrInvalidChunkLength) {
		t.Fatalf("Expected invalid chunk length, got %v", err)
	}
	if visited != 1 {
		t.Fatalf("Expected only the first chunk visited, got %d", visited)
	}
}

func TestScan_Offsets(t *testing.T) {
	data := makeSave([][]byte{testPayload(0x21, 0), testPayload(0x100, 3), testPayload(0x30, 0xFF)}, nil)
	chunks, err := Scan(data, Config{})
	if err != nil {
		t.Fatalf("Error scanning: %s", err)
	}
	expected := []int{8, 8 + 8 + 0x21, 8 + 8 + 0x21 + 8 + 0x100}
	if len(chunks) != len(expected) {
		t.Fatalf("Expected %d chunks, got %d", len(expected), len(chunks))
	}
	for i, c := range chunks {
		if c.Offset != expected[i] {
			t.Fatalf("Chunk %d: expected offset %d, got %d", i, expected[i], c.Offset)
		}
		if !c.IsValid() {
			t.Fatalf("Chunk %d: expected valid checksum", i)
		}
	}
	if chunks[2].Checksum != 0xEA47 {
		t.Fatalf("Expected last chunk checksum 0xEA47, got %#x", chunks[2].Checksum)
	}
}

func TestScan_HeaderOnly(t *testing.T) {
	chunks, err := Scan(testHeader, Config{})
	if err != nil {
		t.Fatalf("Error scanning header only save: %s", err)
	}
	if len(chunks) != 0 {
		t.Fatalf("Expected no chunks, got %d", len(chunks))
	}
}
