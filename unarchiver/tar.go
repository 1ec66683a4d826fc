package unarchiver

import (
	"archive/tar"
	"bufio"
	"bytes"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

const (
	tarBlock       = 512
	tarMagicOffset = 257
)

func (x *extraction) tarFile(src string) error {
	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open tar: %w", err)
	}
	defer file.Close()
	return x.tar(file)
}

// stream extracts a compressed file. A TAR payload is unpacked, anything
// else is written as one file named after the source minus its extension.
func (x *extraction) stream(src string, format Format) error {
	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", format, err)
	}
	defer file.Close()

	dec, err := decompressor(format, file)
	if err != nil {
		return fmt.Errorf("%w: %s stream: %v", ErrNotArchive, format, err)
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, tarBlock)
	head, err := br.Peek(tarBlock)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read %s stream: %w", format, err)
	}
	if isTar(head) {
		return x.tar(br)
	}

	name := streamName(src)
	path, err := x.target(name)
	if err != nil {
		return err
	}
	return x.writeFile(path, name, br, fileMode)
}

func (x *extraction) tar(r io.Reader) error {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar header: %w", err)
		}

		path, err := x.target(hdr.Name)
		if errors.Is(err, errSkip) {
			continue
		}
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := x.mkdir(path); err != nil {
				return err
			}
		case tar.TypeReg, tar.TypeRegA: //nolint:staticcheck
			if err := x.writeFile(path, hdr.Name, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink, tar.TypeLink:
			x.skip(hdr.Name, "link")
		default:
			x.skip(hdr.Name, "special file")
		}
	}
}

// isTar reports whether the block starts with a tar header. POSIX and GNU
// headers carry the ustar magic; V7 headers are recognised by their checksum.
func isTar(block []byte) bool {
	if len(block) < tarBlock {
		return false
	}
	if bytes.Equal(block[tarMagicOffset:tarMagicOffset+5], []byte("ustar")) {
		return true
	}
	_, err := tar.NewReader(bytes.NewReader(block[:tarBlock])).Next()
	return err == nil
}

// streamName is the output name for a single compressed file,
// "notes.txt.gz" becomes "notes.txt".
func streamName(src string) string {
	base := filepath.Base(src)
	if ByExtension(base) != FormatUnknown {
		if name := strings.TrimSuffix(base, filepath.Ext(base)); name != "" {
			return name
		}
	}
	return base + ".out"
}

func decompressor(format Format, r io.Reader) (io.ReadCloser, error) {
	switch format {
	case FormatGzip:
		return gzip.NewReader(r)
	case FormatBzip2:
		return io.NopCloser(bzip2.NewReader(r)), nil
	case FormatXZ:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(xr), nil
	case FormatZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	case FormatLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case FormatS2:
		return io.NopCloser(s2.NewReader(r)), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, format)
}
