package archive

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"

	"credvault/internal/domain"
)

// MaxEntrySize bounds a single decompressed entry. Account artifacts are a
// few kilobytes; anything larger is treated as unreadable.
const MaxEntrySize = 1 << 20

var (
	errMissingEntry = errors.New("entry not found")
	errEntryTooBig  = fmt.Errorf("entry exceeds %d bytes", MaxEntrySize)
)

// Extract opens the archive at path and returns the decompressed contents of
// each named entry. It fails with KindImportArchive when the container cannot
// be opened and KindImportReadFile when any entry is missing or unreadable.
func Extract(path string, names ...string) (map[string][]byte, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, domain.NewError(domain.KindImportArchive, "archive.open", err)
	}
	defer rc.Close()

	entries := make(map[string]*zip.File, len(rc.File))
	for _, f := range rc.File {
		if _, dup := entries[f.Name]; !dup {
			entries[f.Name] = f
		}
	}

	out := make(map[string][]byte, len(names))
	for _, name := range names {
		f, ok := entries[name]
		if !ok {
			return nil, domain.NewError(domain.KindImportReadFile, "archive.read",
				fmt.Errorf("%s: %w", name, errMissingEntry))
		}
		b, err := readEntry(f)
		if err != nil {
			return nil, domain.NewError(domain.KindImportReadFile, "archive.read",
				fmt.Errorf("%s: %w", name, err))
		}
		out[name] = b
	}
	return out, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	if f.FileInfo().IsDir() {
		return nil, errMissingEntry
	}
	if f.UncompressedSize64 > MaxEntrySize {
		return nil, errEntryTooBig
	}
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	b, err := io.ReadAll(io.LimitReader(r, MaxEntrySize+1))
	if err != nil {
		return nil, err
	}
	if len(b) > MaxEntrySize {
		return nil, errEntryTooBig
	}
	return b, nil
}
