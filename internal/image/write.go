package image

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/vk/radioedit/internal/ctxlog"
	"github.com/vk/radioedit/internal/radioerr"
)

// defaultPerm is used when the destination does not exist yet.
const defaultPerm os.FileMode = 0o644

// Write stores the image at path, or at the buffer's own path when path is
// empty. The data goes to a temporary file in the destination directory that
// is renamed over the target, so a failed write leaves the old file intact.
// On success the buffer is clean and remembers path.
func (b *Buffer) Write(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx)
	if path == "" {
		path = b.path
	}
	if path == "" {
		return &radioerr.IOError{Op: "write", Path: path, Err: errors.New("no destination path")}
	}
	logger.Debug("Writing image file.", "path", path, "bytes", len(b.data))

	perm := defaultPerm
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := writeFileAtomic(path, b.data, perm); err != nil {
		return &radioerr.IOError{Op: "write", Path: path, Err: err}
	}

	b.path = path
	b.dirty = false
	logger.Debug("Image file written.", "path", path)
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
