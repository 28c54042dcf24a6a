package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"credvault/internal/archive"
	"credvault/internal/armor"
	"credvault/internal/crypto"
	"credvault/internal/domain"
	"credvault/internal/keyauthority"
)

// WorkFactor is the scrypt log2(N) used by test fixtures.
const WorkFactor = keyauthority.MinWorkFactor

// Account is a generated account in its on-disk form.
type Account struct {
	SigningPublic domain.Ed25519Public
	ArmoredKey    []byte // armored sealed private key, as stored on disk
	Certificate   []byte // DER bridge certificate
}

// NewAuthority returns a key authority using the test work factor.
func NewAuthority() *keyauthority.Authority {
	return keyauthority.New(keyauthority.WithWorkFactor(WorkFactor))
}

// NewAccount generates an account whose private key is sealed under password.
func NewAccount(t testing.TB, password string) Account {
	t.Helper()

	id, err := crypto.NewIdentity()
	if err != nil {
		t.Fatalf("generating identity: %v", err)
	}
	defer crypto.Wipe(id.EdSeed[:])
	defer crypto.Wipe(id.XPriv[:])

	cert, err := crypto.NewBridgeCertificate(id, "test@credvault.invalid", time.Hour)
	if err != nil {
		t.Fatalf("issuing bridge certificate: %v", err)
	}
	sealed, err := NewAuthority().Seal(id, domain.PasswordFromString(password))
	if err != nil {
		t.Fatalf("sealing key: %v", err)
	}
	armored, err := armor.Encode(sealed)
	if err != nil {
		t.Fatalf("armoring key: %v", err)
	}
	return Account{SigningPublic: id.EdPub, ArmoredKey: armored, Certificate: cert}
}

// WriteArchive packs the account into a zip archive and returns its path.
func (a Account) WriteArchive(t testing.TB) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "account.zip")
	err := archive.Write(path, []archive.Entry{
		{Name: domain.PrivateKeyFile, Data: a.ArmoredKey},
		{Name: domain.BridgeCertFile, Data: a.Certificate},
	})
	if err != nil {
		t.Fatalf("writing archive: %v", err)
	}
	return path
}

// WriteTo places the account's artifacts in dir.
func (a Account) WriteTo(t testing.TB, dir string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, domain.PrivateKeyFile), a.ArmoredKey, 0o600); err != nil {
		t.Fatalf("writing private key: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, domain.BridgeCertFile), a.Certificate, 0o600); err != nil {
		t.Fatalf("writing certificate: %v", err)
	}
}

// SealedKey returns the unarmored private key.
func (a Account) SealedKey(t testing.TB) []byte {
	t.Helper()

	raw, err := armor.Decode(a.ArmoredKey)
	if err != nil {
		t.Fatalf("unarmoring key: %v", err)
	}
	return raw
}

// Snapshot returns the name and contents of every file in dir.
func Snapshot(t testing.TB, dir string) map[string][]byte {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading %s: %v", dir, err)
	}
	out := make(map[string][]byte, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			t.Fatalf("reading %s: %v", e.Name(), err)
		}
		out[e.Name()] = b
	}
	return out
}
