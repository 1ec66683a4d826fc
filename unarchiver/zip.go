package unarchiver

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexmullins/zip"
)

// zip extracts a PKWARE ZIP archive. Encrypted entries need a password;
// obsolete methods such as implode or shrink fail with zip.ErrAlgorithm.
func (x *extraction) zip(src string, password *string) error {
	reader, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("%w: open zip: %v", ErrNotArchive, err)
	}
	defer reader.Close()

	if x.limit > 0 {
		var total uint64
		for _, f := range reader.File {
			total += f.UncompressedSize64
		}
		if total > uint64(x.limit) {
			return fmt.Errorf("%w: %d bytes declared, limit %d", ErrTooLarge, total, x.limit)
		}
	}

	for _, f := range reader.File {
		if err := x.zipEntry(f, password); err != nil {
			return err
		}
	}
	return nil
}

func (x *extraction) zipEntry(f *zip.File, password *string) error {
	path, err := x.target(f.Name)
	if errors.Is(err, errSkip) {
		return nil
	}
	if err != nil {
		return err
	}

	mode := f.Mode()
	switch {
	case mode.IsDir():
		return x.mkdir(path)
	case mode&os.ModeSymlink != 0:
		x.skip(f.Name, "symlink")
		return nil
	case !mode.IsRegular():
		x.skip(f.Name, "special file")
		return nil
	}

	if f.IsEncrypted() {
		if password == nil {
			return fmt.Errorf("%w: %s", ErrPasswordRequired, f.Name)
		}
		f.SetPassword(*password)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open zip entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	return x.writeFile(path, f.Name, rc, mode.Perm())
}
