package unarchiver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Defacto2/magicnumber"
)

// Format is an archive or compressed stream format.
type Format int

const (
	FormatUnknown Format = iota
	FormatZip
	FormatTar
	FormatGzip
	FormatBzip2
	FormatXZ
	FormatZstd
	FormatLZ4
	FormatS2
)

func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatTar:
		return "tar"
	case FormatGzip:
		return "gzip"
	case FormatBzip2:
		return "bzip2"
	case FormatXZ:
		return "xz"
	case FormatZstd:
		return "zstd"
	case FormatLZ4:
		return "lz4"
	case FormatS2:
		return "s2"
	default:
		return "unknown"
	}
}

// Stream reports whether f is a compression wrapper rather than a container.
// A stream holds either a TAR archive or a single file.
func (f Format) Stream() bool {
	switch f {
	case FormatGzip, FormatBzip2, FormatXZ, FormatZstd, FormatLZ4, FormatS2:
		return true
	}
	return false
}

// extensions in picker order; the first match for a name wins.
var extensions = []struct {
	ext    string
	format Format
}{
	{".zip", FormatZip},
	{".tar", FormatTar},
	{".tgz", FormatGzip},
	{".gz", FormatGzip},
	{".tbz2", FormatBzip2},
	{".bz2", FormatBzip2},
	{".txz", FormatXZ},
	{".xz", FormatXZ},
	{".tzst", FormatZstd},
	{".zst", FormatZstd},
	{".lz4", FormatLZ4},
	{".sz", FormatS2},
}

// Extensions returns the file extensions, with a leading dot, of every
// format that can be extracted.
func Extensions() []string {
	exts := make([]string, 0, len(extensions))
	for _, e := range extensions {
		exts = append(exts, e.ext)
	}
	return exts
}

// ByExtension returns the format implied by the name's extension.
func ByExtension(name string) Format {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if e.ext == ext {
			return e.format
		}
	}
	return FormatUnknown
}

// Detect returns the format of the src file.
//
// The content signature is checked first. Files without a recognised
// signature, such as lz4 or s2 streams, fall back to their extension.
// Recognised archives that cannot be extracted, RAR or 7-Zip for example,
// return ErrUnsupported.
func Detect(src string) (Format, error) {
	r, err := os.Open(src)
	if err != nil {
		return FormatUnknown, fmt.Errorf("detect open: %w", err)
	}
	defer r.Close()

	sign, err := magicnumber.Archive(r)
	if err != nil {
		sign = magicnumber.Unknown
	}
	if format := bySignature(sign); format != FormatUnknown {
		return format, nil
	}
	if format := ByExtension(src); format != FormatUnknown {
		return format, nil
	}
	if sign != magicnumber.Unknown {
		return FormatUnknown, fmt.Errorf("%w: %s", ErrUnsupported, sign)
	}
	return FormatUnknown, fmt.Errorf("%w: %s", ErrNotArchive, filepath.Base(src))
}

func bySignature(sign magicnumber.Signature) Format {
	switch sign { //nolint:exhaustive
	case
		magicnumber.PKWAREZip,
		magicnumber.PKWAREZip64,
		magicnumber.PKWAREZipImplode,
		magicnumber.PKWAREZipReduce,
		magicnumber.PKWAREZipShrink:
		return FormatZip
	case magicnumber.TapeARchive:
		return FormatTar
	case magicnumber.GzipCompressArchive:
		return FormatGzip
	case magicnumber.Bzip2CompressArchive:
		return FormatBzip2
	case magicnumber.XZCompressArchive:
		return FormatXZ
	case magicnumber.ZStandardArchive:
		return FormatZstd
	}
	return FormatUnknown
}
