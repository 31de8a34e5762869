package savefile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/klauspost/compress/zstd"
)

const (
	MaxBackupAttempts = 100
)

// Create a brand new file at path, or at path.1, path.2 ... if it's taken.
// Existing backups are never replaced.
func createUnique(path string) (*os.File, error) {
	candidate := path
	for i := 1; i <= MaxBackupAttempts; i++ {
		file, err := os.OpenFile(candidate, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			return file, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, err
		}
		candidate = fmt.Sprintf("%s.%d", path, i)
	}
	return nil, fmt.Errorf("%d backups already exist for %s", MaxBackupAttempts, path)
}

// Write a zstd compressed copy of data to a new file at (or next to) path.
// Returns the path actually written.
func WriteBackup(path string, data []byte) (string, error) {
	file, err := createUnique(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackup, err)
	}
	defer file.Close()
	enc, err := zstd.NewWriter(file, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackup, err)
	}
	if _, err = enc.Write(data); err != nil {
		enc.Close()
		return "", fmt.Errorf("%w: %w", ErrBackup, err)
	}
	if err = enc.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackup, err)
	}
	if err = file.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackup, err)
	}
	return file.Name(), nil
}

// Decompress a backup made by WriteBackup
func ReadBackup(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(raw, nil)
}
