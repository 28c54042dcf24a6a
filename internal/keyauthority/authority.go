package keyauthority

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"filippo.io/age"

	"credvault/internal/crypto"
	"credvault/internal/domain"
)

const (
	// DefaultWorkFactor is the scrypt log2(N) used when sealing.
	DefaultWorkFactor = 18
	// MaxWorkFactor is the largest scrypt log2(N) accepted when unsealing.
	MaxWorkFactor = 22
	// MinWorkFactor is the smallest scrypt log2(N) accepted by WithWorkFactor.
	MinWorkFactor = 10
)

var errNoNewPassword = errors.New("new password is required")

// Authority implements domain.KeyAuthority with age scrypt sealing.
type Authority struct {
	workFactor int
}

// Option configures an Authority.
type Option func(*Authority)

// WithWorkFactor sets the scrypt log2(N) used when sealing. Values outside
// [MinWorkFactor, MaxWorkFactor] are clamped.
func WithWorkFactor(logN int) Option {
	return func(a *Authority) {
		a.workFactor = min(max(logN, MinWorkFactor), MaxWorkFactor)
	}
}

// New returns an Authority.
func New(opts ...Option) *Authority {
	a := &Authority{workFactor: DefaultWorkFactor}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Seal encrypts a freshly generated identity under password. The private
// fields of id are left untouched; the caller still owns them.
func (a *Authority) Seal(id *domain.Identity, password domain.Password) ([]byte, error) {
	if !password.IsSet() {
		return nil, errNoNewPassword
	}
	plaintext, err := encodeIdentity(id)
	if err != nil {
		return nil, fmt.Errorf("encoding identity: %w", err)
	}
	defer crypto.Wipe(plaintext)
	return a.seal(plaintext, password)
}

// DecryptAndValidate unlocks sealedKey and checks it against certificate.
func (a *Authority) DecryptAndValidate(
	sealedKey []byte,
	password domain.Password,
	certificate []byte,
) (*domain.PersonalKey, error) {
	const op = "authority.decrypt"

	plaintext, err := a.open(sealedKey, password)
	if err != nil {
		if errors.Is(err, domain.ErrIncorrectPassword) {
			return nil, domain.NewError(domain.KindLoadKeyDecrypt, op, err)
		}
		return nil, domain.NewError(domain.KindLoadKey, op, err)
	}
	id, err := decodeIdentity(plaintext)
	crypto.Wipe(plaintext)
	if err != nil {
		return nil, domain.NewError(domain.KindLoadKey, op, err)
	}

	cert, err := crypto.VerifyBridgeCertificate(certificate, id.EdPub)
	if err != nil {
		crypto.Wipe(id.EdSeed[:])
		crypto.Wipe(id.XPriv[:])
		return nil, domain.NewError(domain.KindLoadKey, op, err)
	}
	key, err := domain.NewPersonalKey(id, cert)
	if err != nil {
		return nil, domain.NewError(domain.KindLoadKey, op, err)
	}
	return key, nil
}

// Reencrypt unlocks sealedKey with oldPassword and seals the same key material
// under newPassword. sealedKey is only read.
func (a *Authority) Reencrypt(sealedKey []byte, oldPassword, newPassword domain.Password) ([]byte, error) {
	const op = "authority.reencrypt"

	if !newPassword.IsSet() {
		return nil, domain.NewError(domain.KindChangePass, op, errNoNewPassword)
	}
	plaintext, err := a.open(sealedKey, oldPassword)
	if err != nil {
		return nil, domain.NewError(domain.KindChangePass, op, err)
	}
	defer crypto.Wipe(plaintext)

	// Refuse to re-seal something that would not load afterwards.
	id, err := decodeIdentity(plaintext)
	if err != nil {
		return nil, domain.NewError(domain.KindChangePass, op, err)
	}
	crypto.Wipe(id.EdSeed[:])
	crypto.Wipe(id.XPriv[:])

	out, err := a.seal(plaintext, newPassword)
	if err != nil {
		return nil, domain.NewError(domain.KindChangePass, op, err)
	}
	return out, nil
}

func (a *Authority) seal(plaintext []byte, password domain.Password) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(password.Reveal())
	if err != nil {
		return nil, fmt.Errorf("creating scrypt recipient: %w", err)
	}
	recipient.SetWorkFactor(a.workFactor)

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("creating age encryptor: %w", err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing key to age encryptor: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing age encryption: %w", err)
	}
	return buf.Bytes(), nil
}

// open decrypts sealedKey. A rejected password is reported as
// domain.ErrIncorrectPassword; everything else means the sealed key is broken.
func (a *Authority) open(sealedKey []byte, password domain.Password) ([]byte, error) {
	if !password.IsSet() {
		return nil, domain.ErrIncorrectPassword
	}
	identity, err := age.NewScryptIdentity(password.Reveal())
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}
	identity.SetMaxWorkFactor(MaxWorkFactor)

	r, err := age.Decrypt(bytes.NewReader(sealedKey), identity)
	if err != nil {
		var noMatch *age.NoIdentityMatchError
		if errors.As(err, &noMatch) {
			return nil, domain.ErrIncorrectPassword
		}
		return nil, fmt.Errorf("decrypting sealed key: %w", err)
	}
	plaintext, err := io.ReadAll(r)
	if err != nil {
		crypto.Wipe(plaintext)
		return nil, fmt.Errorf("reading sealed key: %w", err)
	}
	return plaintext, nil
}

// Compile-time assertion that Authority implements domain.KeyAuthority.
var _ domain.KeyAuthority = (*Authority)(nil)
