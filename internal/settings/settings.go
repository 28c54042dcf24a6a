// Package settings persists credvault's user settings, including the
// stored-password option, as a YAML file managed by viper.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"credvault/internal/domain"
)

// Filename is the settings file inside the credential directory.
const Filename = "settings.yaml"

// FileSettings is a domain.Settings backed by a YAML file.
type FileSettings struct {
	path string
	mu   sync.Mutex
	v    *viper.Viper
}

// Open loads the settings file in dir. A missing file yields empty settings.
func Open(dir string) (*FileSettings, error) {
	path := filepath.Join(dir, Filename)

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetConfigPermissions(0o600)
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}
	return &FileSettings{path: path, v: v}, nil
}

// GetString returns the value of key, "" when unset.
func (s *FileSettings) GetString(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetString(key)
}

// SetString sets key and writes the settings file. The file may hold a
// generated key passphrase, so it is created owner-only.
func (s *FileSettings) SetString(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.v.GetString(key)
	s.v.Set(key, value)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.v.Set(key, previous)
		return domain.NewError(domain.KindWriteFile, "settings.write", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		s.v.Set(key, previous)
		return domain.NewError(domain.KindWriteFile, "settings.write", err)
	}
	return nil
}

// Compile-time assertion that FileSettings implements domain.Settings.
var _ domain.Settings = (*FileSettings)(nil)
