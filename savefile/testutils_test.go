package savefile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

var testHeader = []byte("SAVEHDR\x01")

// Make a payload of the given length, every byte set to fill
func testPayload(length int, fill byte) []byte {
	return bytes.Repeat([]byte{fill}, length)
}

// Build a whole save: the header, then one chunk per payload. Checksums are
// correct unless the chunk index is in broken, in which case that value is
// stored instead.
func makeSave(payloads [][]byte, broken map[int]uint32) []byte {
	var buf bytes.Buffer
	buf.Write(testHeader)
	for i, p := range payloads {
		var chunkHeader [ChunkHeaderLength]byte
		Write4ByteValue(uint32(len(p)), chunkHeader[:], 0)
		stored, isBroken := broken[i]
		if !isBroken {
			stored = uint32(ComputeChecksum(p))
		}
		Write4ByteValue(stored, chunkHeader[:], 4)
		buf.Write(chunkHeader[:])
		buf.Write(p)
	}
	return buf.Bytes()
}

func writeTestSave(t *testing.T, data []byte) string {
	path := filepath.Join(t.TempDir(), "save.bin")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Couldn't write test save: %s", err)
	}
	return path
}

func readTestSave(t *testing.T, path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Couldn't read test save back: %s", err)
	}
	return data
}
