package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"credvault/internal/armor"
	"credvault/internal/domain"
)

const (
	artifactMode = 0o600
	dirMode      = 0o700
)

// ArtifactFileStore persists credential artifacts as files in one directory.
// It does not know what the artifacts mean; callers decide what is armored.
type ArtifactFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewArtifactFileStore returns an ArtifactFileStore rooted at dir. The
// directory is created on first write.
func NewArtifactFileStore(dir string) *ArtifactFileStore {
	return &ArtifactFileStore{dir: dir}
}

// Dir returns the credential directory.
func (s *ArtifactFileStore) Dir() string { return s.dir }

// Read returns the stored bytes of name.
func (s *ArtifactFileStore) Read(name string) ([]byte, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, domain.NewError(domain.KindReadFile, "store.read", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewError(domain.KindReadFile, "store.read", err)
	}
	return b, nil
}

// Write replaces name with data, armoring it first when armored is set.
func (s *ArtifactFileStore) Write(name string, data []byte, armored bool) error {
	return s.WriteSet(domain.Artifact{Name: name, Data: data, Armored: armored})
}

// WriteSet replaces several artifacts together. Every artifact is staged to a
// synced temp file first; targets are only renamed once all staging has
// succeeded, so a failure while preparing any artifact leaves all of them as
// they were.
func (s *ArtifactFileStore) WriteSet(artifacts ...domain.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, dirMode); err != nil {
		return domain.NewError(domain.KindWriteFile, "store.write", err)
	}

	staged := make([]stagedFile, 0, len(artifacts))
	discardAll := func() {
		for _, f := range staged {
			f.discard()
		}
	}

	for _, a := range artifacts {
		path, err := s.path(a.Name)
		if err != nil {
			discardAll()
			return domain.NewError(domain.KindWriteFile, "store.write", err)
		}
		data := a.Data
		if a.Armored {
			if data, err = armor.Encode(a.Data); err != nil {
				discardAll()
				return domain.NewError(domain.KindWriteFile, "store.write", err)
			}
		}
		f, err := stageFile(path, data, artifactMode)
		if err != nil {
			discardAll()
			return domain.NewError(domain.KindWriteFile, "store.write",
				fmt.Errorf("staging %s: %w", a.Name, err))
		}
		staged = append(staged, f)
	}

	for i, f := range staged {
		if err := f.commit(); err != nil {
			for _, rest := range staged[i+1:] {
				rest.discard()
			}
			return domain.NewError(domain.KindWriteFile, "store.write", err)
		}
	}
	syncDir(s.dir)
	return nil
}

// Exists reports whether name is a regular file. Any access error counts as
// absent.
func (s *ArtifactFileStore) Exists(name string) bool {
	path, err := s.path(name)
	if err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

var errBadName = errors.New("artifact name must be a plain file name")

// path resolves name inside the directory, refusing anything that could
// escape it.
func (s *ArtifactFileStore) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", errBadName, name)
	}
	return filepath.Join(s.dir, name), nil
}

// Compile-time assertion that ArtifactFileStore implements domain.ArtifactStore.
var _ domain.ArtifactStore = (*ArtifactFileStore)(nil)
