package savefile

import (
	"errors"
)

var (
	ErrOpen               = errors.New("couldn't open save file")
	ErrSizeLimit          = errors.New("file is over the size limit, so is most likely not a save")
	ErrShortRead          = errors.New("couldn't read the whole file")
	ErrInvalidChunkLength = errors.New("invalid chunk length")
	ErrTruncatedChunk     = errors.New("chunk runs past the end of the file")
	ErrWriteFailure       = errors.New("couldn't write checksum")
	ErrBackup             = errors.New("couldn't write backup")
)

const (
	ExitOk = iota
	ExitUsage
	ExitIO
	ExitSizeLimit
	ExitShortRead
	ExitInvalidChunk
	ExitTruncatedChunk
	ExitWriteFailure
)

// Map an error from this package to a process exit code. Anything we don't
// recognize is considered an I/O problem.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOk
	case errors.Is(err, ErrSizeLimit):
		return ExitSizeLimit
	case errors.Is(err, ErrShortRead):
		return ExitShortRead
	case errors.Is(err, ErrInvalidChunkLength):
		return ExitInvalidChunk
	case errors.Is(err, ErrTruncatedChunk):
		return ExitTruncatedChunk
	case errors.Is(err, ErrWriteFailure):
		return ExitWriteFailure
	default:
		return ExitIO
	}
}
