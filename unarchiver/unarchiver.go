// Package unarchiver extracts archive files into a destination directory.
//
// ZIP and TAR archives are supported, as are TAR archives or single files
// compressed with gzip, bzip2, xz, zstd, lz4 or s2. The format is sniffed
// from the file content and falls back to the file extension.
package unarchiver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kacebover/plus-archiver/logging"
)

// Common errors
var (
	ErrSource           = errors.New("source is not a regular file")
	ErrDestination      = errors.New("destination is not a directory")
	ErrNotArchive       = errors.New("file is not a supported archive")
	ErrUnsupported      = errors.New("archive format is not supported")
	ErrFileExists       = errors.New("file already exists")
	ErrUnsafePath       = errors.New("entry path escapes the destination")
	ErrTooLarge         = errors.New("archive exceeds the extraction size limit")
	ErrPasswordRequired = errors.New("archive entry is encrypted and no password was given")
)

// Config holds extraction configuration
type Config struct {
	// MaxSize caps the total number of bytes written by one extraction.
	// Zero means no limit.
	MaxSize int64

	// BufferSize for streaming copies (default: 32KB)
	BufferSize int

	// Logger receives entry level diagnostics. Nil disables logging.
	Logger *zap.Logger
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		BufferSize: 32 * 1024,
	}
}

// Unarchiver extracts archives. It holds no per-extraction state and is safe
// for concurrent use.
type Unarchiver struct {
	config Config
	log    *zap.Logger
}

// New creates an Unarchiver with the given config
func New(config Config) *Unarchiver {
	if config.BufferSize <= 0 {
		config.BufferSize = 32 * 1024
	}
	if config.MaxSize < 0 {
		config.MaxSize = 0
	}
	return &Unarchiver{
		config: config,
		log:    logging.OrNop(config.Logger),
	}
}

// Result describes a finished extraction
type Result struct {
	Format  Format
	Files   int   // regular files written
	Dirs    int   // directories created
	Skipped int   // links and special files that were not extracted
	Bytes   int64 // uncompressed bytes written
}

// Unzip extracts every entry of src into dst.
//
// When overwrite is true existing files with the same name are replaced,
// otherwise the first collision fails with ErrFileExists. Password is only
// consulted for encrypted ZIP entries and may be nil.
func (u *Unarchiver) Unzip(src, dst string, overwrite bool, password *string) error {
	_, err := u.Extract(src, dst, overwrite, password)
	return err
}

// Extract is Unzip that also reports what was written.
func (u *Unarchiver) Extract(src, dst string, overwrite bool, password *string) (*Result, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	root, err := checkDestination(dst)
	if err != nil {
		return nil, err
	}

	format, err := Detect(src)
	if err != nil {
		return nil, err
	}

	x := &extraction{
		root:      root,
		overwrite: overwrite,
		limit:     u.config.MaxSize,
		buf:       make([]byte, u.config.BufferSize),
		log: u.log.With(
			zap.String("job_id", uuid.NewString()),
			zap.String("source", src),
		),
		result: &Result{Format: format},
	}

	start := time.Now()
	x.log.Debug("extraction started",
		zap.String("destination", root),
		zap.Stringer("format", format),
		zap.Bool("overwrite", overwrite))

	switch format {
	case FormatZip:
		err = x.zip(src, password)
	case FormatTar:
		err = x.tarFile(src)
	default:
		err = x.stream(src, format)
	}
	if err != nil {
		x.log.Warn("extraction failed", zap.Error(err))
		return x.result, err
	}

	x.log.Info("extraction finished",
		zap.Int("files", x.result.Files),
		zap.Int("dirs", x.result.Dirs),
		zap.Int("skipped", x.result.Skipped),
		zap.Int64("bytes", x.result.Bytes),
		zap.Duration("elapsed", time.Since(start)))
	return x.result, nil
}

func checkSource(src string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrSource, src)
	}
	return nil
}

// checkDestination returns the absolute, cleaned destination directory.
func checkDestination(dst string) (string, error) {
	if dst == "" {
		return "", fmt.Errorf("%w: empty path", ErrDestination)
	}
	info, err := os.Stat(dst)
	if err != nil {
		return "", fmt.Errorf("stat destination: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrDestination, dst)
	}
	root, err := filepath.Abs(dst)
	if err != nil {
		return "", fmt.Errorf("destination path: %w", err)
	}
	return root, nil
}
