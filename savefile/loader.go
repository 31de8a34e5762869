package savefile

import (
	"fmt"
	"io"
	"os"
)

const (
	MaxSaveSize = 1000000 // Anything bigger is most likely not a save
)

// An open save file along with everything that was in it when it was opened.
// Data is never updated by patches; only the file on disk is.
type SaveFile struct {
	Path string
	File *os.File
	Data []byte
}

// Open the save for reading and updating, then read the whole thing into memory.
// The handle stays open for patching; call Close when done. Nothing is left open
// if this returns an error.
func OpenSaveFile(path string, config Config) (*SaveFile, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	save := &SaveFile{Path: path, File: file}
	if err = save.load(config); err != nil {
		file.Close()
		return nil, err
	}
	return save, nil
}

func (s *SaveFile) load(config Config) error {
	data, err := readSave(s.File, config)
	if err != nil {
		return err
	}
	s.Data = data
	return nil
}

// Measure r by seeking to the end, check it against the size limit, then read
// exactly that many bytes from the start.
func readSave(r io.ReadSeeker, config Config) ([]byte, error) {
	filesize, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: couldn't get file size: %w", ErrOpen, err)
	}
	if !config.Force && filesize > MaxSaveSize {
		return nil, fmt.Errorf("%w (%d bytes, max %d)", ErrSizeLimit, filesize, MaxSaveSize)
	}
	if _, err = r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: couldn't rewind: %w", ErrOpen, err)
	}
	data := make([]byte, filesize)
	read, err := io.ReadFull(r, data)
	if err != nil {
		return nil, fmt.Errorf("%w: only %d of %d bytes could be read: %w", ErrShortRead, read, filesize, err)
	}
	return data, nil
}

func (s *SaveFile) Close() error {
	return s.File.Close()
}
