package archive_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"credvault/internal/archive"
	"credvault/internal/domain"
)

func writeArchive(t *testing.T, entries ...archive.Entry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "account.zip")
	require.NoError(t, archive.Write(path, entries))
	return path
}

func TestExtract_OK(t *testing.T) {
	path := writeArchive(t,
		archive.Entry{Name: domain.PrivateKeyFile, Data: []byte("armored key")},
		archive.Entry{Name: domain.BridgeCertFile, Data: []byte("certificate")},
	)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	got, err := archive.Extract(path, domain.PrivateKeyFile, domain.BridgeCertFile)
	require.NoError(t, err)
	require.Equal(t, []byte("armored key"), got[domain.PrivateKeyFile])
	require.Equal(t, []byte("certificate"), got[domain.BridgeCertFile])

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, before, after, "extract must not modify the archive")
}

func TestExtract_MissingArchive(t *testing.T) {
	_, err := archive.Extract(filepath.Join(t.TempDir(), "nope.zip"), domain.PrivateKeyFile)
	require.ErrorIs(t, err, domain.ErrImportArchive)
}

func TestExtract_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.zip")
	require.NoError(t, os.WriteFile(path, []byte("this is not a zip file"), 0o600))

	_, err := archive.Extract(path, domain.PrivateKeyFile)
	require.ErrorIs(t, err, domain.ErrImportArchive)
}

func TestExtract_MissingEntry(t *testing.T) {
	path := writeArchive(t, archive.Entry{Name: domain.PrivateKeyFile, Data: []byte("key")})

	got, err := archive.Extract(path, domain.PrivateKeyFile, domain.BridgeCertFile)
	require.ErrorIs(t, err, domain.ErrImportReadFile)
	require.Nil(t, got, "no partial result on failure")
}

func TestExtract_EntryTooLarge(t *testing.T) {
	path := writeArchive(t,
		archive.Entry{Name: domain.PrivateKeyFile, Data: bytes.Repeat([]byte{'a'}, archive.MaxEntrySize+1)},
	)

	_, err := archive.Extract(path, domain.PrivateKeyFile)
	require.ErrorIs(t, err, domain.ErrImportReadFile)
}

func TestWrite_ReplacesExisting(t *testing.T) {
	path := writeArchive(t, archive.Entry{Name: "a", Data: []byte("1")})
	require.NoError(t, archive.Write(path, []archive.Entry{{Name: "b", Data: []byte("2")}}))

	_, err := archive.Extract(path, "a")
	require.ErrorIs(t, err, domain.ErrImportReadFile)
	got, err := archive.Extract(path, "b")
	require.NoError(t, err)
	require.Equal(t, []byte("2"), got["b"])
}

func TestWrite_BadDirectory(t *testing.T) {
	err := archive.Write(filepath.Join(t.TempDir(), "missing", "a.zip"), nil)
	require.ErrorIs(t, err, domain.ErrWriteFile)
}
