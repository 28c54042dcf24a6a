package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zip"

	"credvault/internal/domain"
)

// Entry is one file to place in an archive.
type Entry struct {
	Name string
	Data []byte
}

// Write creates the archive at path containing entries, replacing any
// existing file only once the new archive is complete.
func Write(path string, entries []Entry) (err error) {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return domain.NewError(domain.KindWriteFile, "archive.write", err)
	}
	tmp := f.Name()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = domain.NewError(domain.KindWriteFile, "archive.write", cerr)
		}
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	zw := zip.NewWriter(f)
	modified := time.Now()
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.Name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			_ = zw.Close()
			return domain.NewError(domain.KindWriteFile, "archive.write", fmt.Errorf("%s: %w", e.Name, err))
		}
		if _, err := w.Write(e.Data); err != nil {
			_ = zw.Close()
			return domain.NewError(domain.KindWriteFile, "archive.write", fmt.Errorf("%s: %w", e.Name, err))
		}
	}
	if err := zw.Close(); err != nil {
		return domain.NewError(domain.KindWriteFile, "archive.write", err)
	}
	if err := f.Chmod(0o600); err != nil {
		return domain.NewError(domain.KindWriteFile, "archive.write", err)
	}
	if err := f.Sync(); err != nil {
		return domain.NewError(domain.KindWriteFile, "archive.write", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return domain.NewError(domain.KindWriteFile, "archive.write", err)
	}
	return nil
}
