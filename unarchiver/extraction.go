package unarchiver

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	dirMode  fs.FileMode = 0o755
	fileMode fs.FileMode = 0o644
)

// errSkip marks an entry that names the destination itself.
var errSkip = errors.New("skip entry")

// extraction is the state of one Extract call.
type extraction struct {
	root      string
	overwrite bool
	limit     int64
	buf       []byte
	log       *zap.Logger
	result    *Result
}

// target resolves an archive entry name to a path under the root.
// Leading slashes are dropped the way tar does; anything that still
// resolves outside the root is rejected.
func (x *extraction) target(name string) (string, error) {
	clean := strings.ReplaceAll(name, `\`, "/")
	clean = strings.TrimLeft(clean, "/")
	if vol := filepath.VolumeName(clean); vol != "" {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	if clean == "" || clean == "." {
		return "", errSkip
	}

	path := filepath.Join(x.root, filepath.FromSlash(clean))
	rel, err := filepath.Rel(x.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	if rel == "." {
		return "", errSkip
	}
	return path, nil
}

// checkLinks rejects a path whose existing components under the root
// include a symlink, so writes cannot be redirected outside it.
func (x *extraction) checkLinks(path string) error {
	rel, err := filepath.Rel(x.root, path)
	if err != nil || rel == "." {
		return err
	}
	cur := x.root
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		cur = filepath.Join(cur, part)
		info, err := os.Lstat(cur)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("inspect %s: %w", cur, err)
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			return fmt.Errorf("%w: %s is a symlink", ErrUnsafePath, filepath.ToSlash(rel))
		}
	}
	return nil
}

func (x *extraction) mkdir(path string) error {
	if err := x.checkLinks(path); err != nil {
		return err
	}
	if err := os.MkdirAll(path, dirMode); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	x.result.Dirs++
	return nil
}

func (x *extraction) skip(name, reason string) {
	x.result.Skipped++
	x.log.Debug("entry skipped", zap.String("entry", name), zap.String("reason", reason))
}

// writeFile copies r to path, honouring the overwrite flag and the size limit.
func (x *extraction) writeFile(path, name string, r io.Reader, perm fs.FileMode) error {
	if err := x.checkLinks(filepath.Dir(path)); err != nil {
		return err
	}
	if info, err := os.Lstat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("%w: %s is a directory", ErrFileExists, name)
		}
		if !x.overwrite {
			return fmt.Errorf("%w: %s", ErrFileExists, name)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("replace %s: %w", name, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return fmt.Errorf("create parent directory for %s: %w", name, err)
	}

	if perm == 0 {
		perm = fileMode
	}
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm|0o600)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	src := r
	if x.limit > 0 {
		remaining := x.limit - x.result.Bytes
		src = io.LimitReader(r, remaining+1)
	}
	n, err := io.CopyBuffer(out, src, x.buf)
	closeErr := out.Close()
	x.result.Bytes += n
	if err != nil {
		return fmt.Errorf("extract %s: %w", name, err)
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", name, closeErr)
	}
	if x.limit > 0 && x.result.Bytes > x.limit {
		return fmt.Errorf("%w: more than %d bytes", ErrTooLarge, x.limit)
	}

	x.result.Files++
	return nil
}
