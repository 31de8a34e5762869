package savefile

import (
	"fmt"
	"io"
	"log"
)

// Everything that happened during a fix
type FixResult struct {
	Size         int
	Chunks       []Chunk
	Fixed        int
	BackupPath   string
	OriginalHash string // xxh3 of the file as it was read
	PatchedHash  string // xxh3 of the file as it should be on disk now
}

// Apply every checksum patch from the result to a copy of the original data
func (r *FixResult) PatchedData(original []byte) []byte {
	patched := make([]byte, len(original))
	copy(patched, original)
	for _, c := range r.Chunks {
		if !c.IsValid() {
			Write4ByteValue(uint32(c.Checksum), patched, c.ChecksumOffset())
		}
	}
	return patched
}

// Recompute every chunk checksum and rewrite the ones that don't match. The
// report gets a line per chunk unless the config is silent. On error, chunks
// before the bad one may already be patched on disk.
func (s *SaveFile) FixChecksums(config Config, report io.Writer) (*FixResult, error) {
	if config.Silent || report == nil {
		report = io.Discard
	}
	result := &FixResult{
		Size:         len(s.Data),
		Chunks:       make([]Chunk, 0),
		OriginalHash: Xxh3String(s.Data),
	}
	fmt.Fprintf(report, "All bytes read successfully, filesize: %d\n", len(s.Data))
	fmt.Fprintf(report, "Region\t\tRead checksum\tCalculated checksum\tStatus\n")

	err := WalkChunks(s.Data, config, func(chunk Chunk) error {
		result.Chunks = append(result.Chunks, chunk)
		fmt.Fprintf(report, "%#x\t\t%#x\t\t%#x\t\t\t",
			chunk.PayloadOffset(), chunk.StoredChecksum, chunk.Checksum)
		if chunk.IsValid() {
			fmt.Fprintln(report, "OK")
			return nil
		}
		if result.BackupPath == "" && config.Backup != "" {
			backup, err := WriteBackup(config.Backup, s.Data)
			if err != nil {
				fmt.Fprintln(report, "Failed!")
				return err
			}
			result.BackupPath = backup
			log.Printf("Wrote backup of %s to %s\n", s.Path, backup)
		}
		err := PatchChecksum(s.File, int64(chunk.ChecksumOffset()), uint32(chunk.Checksum))
		if err != nil {
			fmt.Fprintln(report, "Failed!")
			return err
		}
		result.Fixed++
		fmt.Fprintln(report, "Fixed!")
		return nil
	})
	if err != nil {
		return result, err
	}

	result.PatchedHash = Xxh3String(result.PatchedData(s.Data))
	fmt.Fprintf(report, "Checksums recalculated (%d of %d fixed), enjoy :)\n", result.Fixed, len(result.Chunks))
	return result, nil
}

// Open, fix and close the save at path. The file is always closed, even when
// the fix fails partway.
func FixFile(path string, config Config, report io.Writer) (result *FixResult, err error) {
	save, err := OpenSaveFile(path, config)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := save.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: couldn't close: %w", ErrOpen, cerr)
		}
	}()
	return save.FixChecksums(config, report)
}
