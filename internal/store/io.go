package store

import (
	"os"
	"path/filepath"
)

// stagedFile is a fully written and synced temp file waiting to be renamed
// over its target.
type stagedFile struct {
	tmp  string
	path string
}

// stageFile writes b to a temp file next to path. The file handle is closed
// on every return path and the temp file is removed if anything fails.
func stageFile(path string, b []byte, mode os.FileMode) (staged stagedFile, err error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	f, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return stagedFile{}, err
	}
	tmp := f.Name()

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(b); err != nil {
		return stagedFile{}, err
	}
	if err = f.Chmod(mode); err != nil {
		return stagedFile{}, err
	}
	if err = f.Sync(); err != nil {
		return stagedFile{}, err
	}
	return stagedFile{tmp: tmp, path: path}, nil
}

// commit atomically replaces the target with the staged file.
func (s stagedFile) commit() error {
	if err := os.Rename(s.tmp, s.path); err != nil {
		_ = os.Remove(s.tmp)
		return err
	}
	return nil
}

// discard removes the staged file without touching the target.
func (s stagedFile) discard() { _ = os.Remove(s.tmp) }

// syncDir flushes directory entries so renames survive a crash. Not all
// platforms support fsync on directories; failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
