package savefile

import (
	"encoding/binary"
	"encoding/hex"

	xxh3 "github.com/zeebo/xxh3"
)

// Read a 4 byte little endian value in the middle of data
func Get4ByteValue(data []byte, index int) uint32 {
	return binary.LittleEndian.Uint32(data[index : index+4])
}

// Write a 4 byte little endian value directly into the middle of data
func Write4ByteValue(value uint32, data []byte, index int) {
	binary.LittleEndian.PutUint32(data[index:index+4], value)
}

// Produce an xxh3 string from given data (a simple shortcut)
func Xxh3String(data []byte) string {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], xxh3.Hash(data))
	return hex.EncodeToString(raw[:])
}
