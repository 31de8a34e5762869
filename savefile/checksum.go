package savefile

const (
	ChecksumSeed       = 0x8320 // Every chunk starts the register here
	ChecksumPolynomial = 0x1F45
)

// Compute the save checksum over a chunk payload. It's some sort of CRC-16, but
// not one of the named ones, so don't swap in a library for it. Shifts aren't
// masked until the very end.
func ComputeChecksum(payload []byte) uint16 {
	var checksum uint32 = ChecksumSeed
	for _, b := range payload {
		checksum ^= uint32(b&0xFF) << 8
		for bit := 0; bit < 8; bit++ {
			if checksum&0x8000 != 0 {
				checksum = (checksum << 1) ^ ChecksumPolynomial
			} else {
				checksum = checksum << 1
			}
		}
	}
	return uint16(checksum & 0xFFFF)
}
