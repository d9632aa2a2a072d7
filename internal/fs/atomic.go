package fs

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

const bufferSize = 256 * 1024

// WriteFile atomically replaces filename with the bytes produced by write.
// Missing parent directories are created. On failure the temporary file is
// removed and filename is left untouched.
func WriteFile(fsys FileSystem, filename string, perm os.FileMode, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(filename)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := fsys.CreateTemp(dir, filepath.Base(filename)+".tmp-*")
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = fsys.Remove(tmp.Name())
		}
	}()

	if err := tmp.Chmod(perm); err != nil {
		return err
	}

	buf := bufio.NewWriterSize(tmp, bufferSize)
	if err := write(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := fsys.Rename(tmp.Name(), filename); err != nil {
		return err
	}
	committed = true

	return fsys.SyncDir(dir)
}
