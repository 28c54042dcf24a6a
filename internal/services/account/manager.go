package account

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"credvault/internal/archive"
	"credvault/internal/armor"
	"credvault/internal/crypto"
	"credvault/internal/domain"
)

// State is the observable lifecycle state of the account credentials.
type State int

const (
	// StateAbsent: no artifacts on disk and no key loaded.
	StateAbsent State = iota
	// StateLocked: artifacts on disk, no key loaded.
	StateLocked
	// StateLoaded: a PersonalKey is held in memory.
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateLocked:
		return "locked"
	case StateLoaded:
		return "loaded"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// sealer is implemented by key authorities that can seal newly generated
// identities. Only Create needs it.
type sealer interface {
	Seal(id *domain.Identity, password domain.Password) ([]byte, error)
}

var errCannotSeal = errors.New("key authority cannot seal new keys")

// Manager owns the account credentials: the two stored artifacts, the
// stored-password option and the single in-memory PersonalKey.
//
// A process constructs one Manager at startup and shares it by pointer. Every
// operation holds one mutex for its whole duration, covering both storage
// I/O and replacement of the current key; CurrentKey reads without blocking.
type Manager struct {
	mu        sync.Mutex
	store     domain.ArtifactStore
	authority domain.KeyAuthority
	settings  domain.Settings
	current   atomic.Pointer[domain.PersonalKey]

	logger        *slog.Logger
	metrics       *Metrics
	newPassphrase func() (string, error)
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithMetrics records every operation in metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(m *Manager) { m.metrics = metrics }
}

// WithPassphraseGenerator replaces the source of passwords generated for
// accounts without a user password.
func WithPassphraseGenerator(generate func() (string, error)) Option {
	return func(m *Manager) { m.newPassphrase = generate }
}

// New returns a Manager over the given collaborators. No key is loaded.
func New(store domain.ArtifactStore, authority domain.KeyAuthority, settings domain.Settings, opts ...Option) *Manager {
	m := &Manager{
		store:         store,
		authority:     authority,
		settings:      settings,
		logger:        slog.Default(),
		newPassphrase: crypto.GeneratePassphrase,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CurrentKey returns the loaded key, if any, without waiting for an
// operation in progress.
func (m *Manager) CurrentKey() (*domain.PersonalKey, bool) {
	key := m.current.Load()
	return key, key != nil
}

// State reports whether credentials are absent, locked or loaded.
func (m *Manager) State() State {
	if _, ok := m.CurrentKey(); ok {
		return StateLoaded
	}
	if m.IsPresent() {
		return StateLocked
	}
	return StateAbsent
}

// IsPresent reports whether both artifacts exist.
func (m *Manager) IsPresent() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isPresent()
}

func (m *Manager) isPresent() bool {
	return m.store.Exists(domain.PrivateKeyFile) && m.store.Exists(domain.BridgeCertFile)
}

// IsPasswordProtected reports whether the user chose a password. The key is
// encrypted at rest either way; without a user password it is sealed under a
// generated passphrase kept in the stored-password option.
func (m *Manager) IsPasswordProtected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings.GetString(domain.StoredPasswordKey) == ""
}

// Load unlocks the stored key with password and installs it. NoPassword
// uses the stored-password option. On failure the previously loaded key, if
// any, stays current.
func (m *Manager) Load(password domain.Password) (*domain.PersonalKey, error) {
	defer m.track("load", time.Now())()
	m.mu.Lock()
	defer m.mu.Unlock()

	key, err := m.load(password)
	m.result("load", err)
	return key, err
}

func (m *Manager) load(password domain.Password) (*domain.PersonalKey, error) {
	sealed, cert, err := m.readArtifacts()
	if err != nil {
		return nil, err
	}
	key, err := m.authority.DecryptAndValidate(sealed, m.resolveOld(password), cert)
	if err != nil {
		return nil, err
	}
	m.install(key)
	return key, nil
}

// ImportAccount replaces the account with the one in the archive at
// archivePath, whose key must unlock with password. Both artifacts are
// extracted and validated before anything is written; on any failure up to
// that point storage and the current key are unchanged. The imported key
// stays protected by password.
func (m *Manager) ImportAccount(archivePath string, password domain.Password) (*domain.PersonalKey, error) {
	defer m.track("import", time.Now())()
	m.mu.Lock()
	defer m.mu.Unlock()

	key, err := m.importAccount(archivePath, password)
	m.result("import", err)
	return key, err
}

func (m *Manager) importAccount(archivePath string, password domain.Password) (*domain.PersonalKey, error) {
	files, err := archive.Extract(archivePath, domain.PrivateKeyFile, domain.BridgeCertFile)
	if err != nil {
		return nil, err
	}
	sealed, err := armor.Decode(files[domain.PrivateKeyFile])
	if err != nil {
		return nil, err
	}
	cert := files[domain.BridgeCertFile]

	key, err := m.authority.DecryptAndValidate(sealed, password, cert)
	if err != nil {
		return nil, err
	}

	// Re-seal with local parameters, keeping the supplied password.
	err = m.protect(sealed, password, password,
		domain.Artifact{Name: domain.BridgeCertFile, Data: cert})
	if err != nil {
		return nil, err
	}
	m.install(key)
	return key, nil
}

// SetPassword re-protects the stored key. An unset oldPassword falls back to
// the stored-password option; an unset newPassword generates a random one so
// the key stays encrypted at rest. The loaded key, if any, is not affected.
// On failure the stored key is unchanged.
func (m *Manager) SetPassword(oldPassword, newPassword domain.Password) error {
	defer m.track("set_password", time.Now())()
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.setPassword(oldPassword, newPassword)
	m.result("set_password", err)
	return err
}

func (m *Manager) setPassword(oldPassword, newPassword domain.Password) error {
	raw, err := m.store.Read(domain.PrivateKeyFile)
	if err != nil {
		return err
	}
	sealed, err := armor.Decode(raw)
	if err != nil {
		return err
	}
	return m.protect(sealed, oldPassword, newPassword)
}

// Export writes the stored artifacts into a portable archive at archivePath.
func (m *Manager) Export(archivePath string) error {
	defer m.track("export", time.Now())()
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.export(archivePath)
	m.result("export", err)
	return err
}

func (m *Manager) export(archivePath string) error {
	key, err := m.store.Read(domain.PrivateKeyFile)
	if err != nil {
		return err
	}
	// An archive that cannot be imported back is useless.
	if _, err := armor.Decode(key); err != nil {
		return err
	}
	cert, err := m.store.Read(domain.BridgeCertFile)
	if err != nil {
		return err
	}
	return archive.Write(archivePath, []archive.Entry{
		{Name: domain.PrivateKeyFile, Data: key},
		{Name: domain.BridgeCertFile, Data: cert},
	})
}

// Create generates a new account with a bridge certificate for commonName
// and installs its key. An unset password generates one, as in SetPassword.
// Existing artifacts are never overwritten.
func (m *Manager) Create(commonName string, password domain.Password) (*domain.PersonalKey, error) {
	defer m.track("create", time.Now())()
	m.mu.Lock()
	defer m.mu.Unlock()

	key, err := m.create(commonName, password)
	m.result("create", err)
	return key, err
}

func (m *Manager) create(commonName string, password domain.Password) (*domain.PersonalKey, error) {
	const op = "account.create"

	if m.store.Exists(domain.PrivateKeyFile) || m.store.Exists(domain.BridgeCertFile) {
		return nil, domain.NewError(domain.KindWriteFile, op, domain.ErrAccountExists)
	}
	s, ok := m.authority.(sealer)
	if !ok {
		return nil, domain.NewError(domain.KindWriteFile, op, errCannotSeal)
	}
	password, generated, err := m.resolveNew(password)
	if err != nil {
		return nil, domain.NewError(domain.KindWriteFile, op, err)
	}

	id, err := crypto.NewIdentity()
	if err != nil {
		return nil, domain.NewError(domain.KindWriteFile, op, err)
	}
	defer crypto.Wipe(id.EdSeed[:])
	defer crypto.Wipe(id.XPriv[:])

	cert, err := crypto.NewBridgeCertificate(id, commonName, crypto.DefaultCertificateValidity)
	if err != nil {
		return nil, domain.NewError(domain.KindWriteFile, op, err)
	}
	sealed, err := s.Seal(id, password)
	if err != nil {
		return nil, domain.NewError(domain.KindWriteFile, op, err)
	}
	// Unlock what is about to be written, so a key that would not load is
	// never committed.
	key, err := m.authority.DecryptAndValidate(sealed, password, cert)
	if err != nil {
		return nil, err
	}

	err = m.commit(password, generated,
		domain.Artifact{Name: domain.PrivateKeyFile, Data: sealed, Armored: true},
		domain.Artifact{Name: domain.BridgeCertFile, Data: cert},
	)
	if err != nil {
		return nil, err
	}
	m.install(key)
	return key, nil
}

// readArtifacts reads both artifacts and unarmors the private key.
func (m *Manager) readArtifacts() (sealed, cert []byte, err error) {
	armored, err := m.store.Read(domain.PrivateKeyFile)
	if err != nil {
		return nil, nil, err
	}
	cert, err = m.store.Read(domain.BridgeCertFile)
	if err != nil {
		return nil, nil, err
	}
	sealed, err = armor.Decode(armored)
	if err != nil {
		return nil, nil, err
	}
	return sealed, cert, nil
}

// protect re-seals sealed under the resolved new password and commits it
// together with extra artifacts.
func (m *Manager) protect(sealed []byte, oldPassword, newPassword domain.Password, extra ...domain.Artifact) error {
	newPassword, generated, err := m.resolveNew(newPassword)
	if err != nil {
		return domain.NewError(domain.KindChangePass, "account.protect", err)
	}
	resealed, err := m.authority.Reencrypt(sealed, m.resolveOld(oldPassword), newPassword)
	if err != nil {
		return err
	}
	artifacts := append([]domain.Artifact{
		{Name: domain.PrivateKeyFile, Data: resealed, Armored: true},
	}, extra...)
	return m.commit(newPassword, generated, artifacts...)
}

// commit writes artifacts and records in the stored-password option whether
// password was generated. A generated password is stored before the key
// sealed under it is written, and restored if the write fails, so no
// failure leaves a key sealed under a password nobody has.
func (m *Manager) commit(password domain.Password, generated bool, artifacts ...domain.Artifact) error {
	if !generated {
		if err := m.store.WriteSet(artifacts...); err != nil {
			return err
		}
		return m.settings.SetString(domain.StoredPasswordKey, "")
	}

	previous := m.settings.GetString(domain.StoredPasswordKey)
	if err := m.settings.SetString(domain.StoredPasswordKey, password.Reveal()); err != nil {
		return err
	}
	if err := m.store.WriteSet(artifacts...); err != nil {
		if rerr := m.settings.SetString(domain.StoredPasswordKey, previous); rerr != nil {
			m.logger.Error("can't restore stored password option", "error", rerr)
		}
		return err
	}
	return nil
}

// resolveOld falls back to the stored-password option when no password was
// given. This cannot tell "never had a password" from "caller forgot to pass
// it"; both resolve to the stored value.
func (m *Manager) resolveOld(password domain.Password) domain.Password {
	if password.IsSet() {
		return password
	}
	return domain.PasswordFromString(m.settings.GetString(domain.StoredPasswordKey))
}

// resolveNew generates a password when none was given.
func (m *Manager) resolveNew(password domain.Password) (resolved domain.Password, generated bool, err error) {
	if password.IsSet() {
		return password, false, nil
	}
	s, err := m.newPassphrase()
	if err != nil {
		return domain.Password{}, false, fmt.Errorf("generating password: %w", err)
	}
	if s == "" {
		return domain.Password{}, false, errors.New("generating password: empty passphrase")
	}
	return domain.PasswordFromString(s), true, nil
}

func (m *Manager) install(key *domain.PersonalKey) {
	m.current.Store(key)
	pub := key.SigningPublicKey()
	m.logger.Info("personal key installed", "fingerprint", crypto.Fingerprint(pub.Slice()))
}

// track returns a func recording the duration and result of op. It is
// deferred before the mutex is taken so waiting time is included.
func (m *Manager) track(op string, start time.Time) func() {
	return func() { m.metrics.observeDuration(op, time.Since(start)) }
}

// result logs a failed operation and counts its outcome.
func (m *Manager) result(op string, err error) {
	m.metrics.count(op, err)
	if err == nil {
		return
	}
	attrs := []any{"op", op, "error", err}
	if kind, ok := domain.KindOf(err); ok {
		attrs = append(attrs, "kind", kind.String(), "retryable", kind.Retryable())
	}
	m.logger.Warn("account operation failed", attrs...)
}
