package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"credvault/internal/domain"
	"credvault/internal/settings"
)

func TestSettings_MissingFileIsEmpty(t *testing.T) {
	s, err := settings.Open(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "", s.GetString(domain.StoredPasswordKey))
}

func TestSettings_PersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()
	s, err := settings.Open(dir)
	require.NoError(t, err)

	require.NoError(t, s.SetString(domain.StoredPasswordKey, "generated-secret"))
	require.Equal(t, "generated-secret", s.GetString(domain.StoredPasswordKey))

	reopened, err := settings.Open(dir)
	require.NoError(t, err)
	require.Equal(t, "generated-secret", reopened.GetString(domain.StoredPasswordKey))

	info, err := os.Stat(filepath.Join(dir, settings.Filename))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSettings_ClearValue(t *testing.T) {
	dir := t.TempDir()
	s, err := settings.Open(dir)
	require.NoError(t, err)

	require.NoError(t, s.SetString(domain.StoredPasswordKey, "x"))
	require.NoError(t, s.SetString(domain.StoredPasswordKey, ""))

	reopened, err := settings.Open(dir)
	require.NoError(t, err)
	require.Equal(t, "", reopened.GetString(domain.StoredPasswordKey))
}

func TestSettings_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, settings.Filename), []byte("account: [unterminated"), 0o600))

	_, err := settings.Open(dir)
	require.Error(t, err)
}
