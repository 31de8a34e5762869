package savefile

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Keep writing until the entire buffer is out. A writer that makes no progress
// without an error is treated as a short write rather than spun on forever.
func writeFull(w io.Writer, b []byte) (int, error) {
	written := 0
	for written < len(b) {
		count, err := w.Write(b[written:])
		written += count
		if err != nil {
			return written, err
		}
		if count == 0 {
			return written, io.ErrShortWrite
		}
	}
	return written, nil
}

// Overwrite the 4 bytes at offset with value (little endian). Only the file is
// changed; whatever was read into memory stays as it was.
func PatchChecksum(w io.WriteSeeker, offset int64, value uint32) error {
	if _, err := w.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("%w at %#x: %w", ErrWriteFailure, offset, err)
	}
	var raw [4]byte
	binary.LittleEndian.PutUint32(raw[:], value)
	written, err := writeFull(w, raw[:])
	if err != nil {
		return fmt.Errorf("%w at %#x (%d of 4 bytes): %w", ErrWriteFailure, offset, written, err)
	}
	return nil
}
