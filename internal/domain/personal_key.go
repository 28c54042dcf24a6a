package domain

import (
	"bytes"
	"crypto/ed25519"
	"crypto/x509"
	"errors"
	"fmt"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/curve25519"
)

// PersonalKey is the unlocked account key: the signing and exchange private
// keys sealed in memguard enclaves, their public halves and the parsed bridge
// certificate. It is never serialized. A PersonalKey is read-only once built
// and safe for concurrent use.
type PersonalKey struct {
	signing  *memguard.Enclave
	exchange *memguard.Enclave
	edPub    Ed25519Public
	xPub     X25519Public
	cert     *x509.Certificate
}

// NewPersonalKey moves the private halves of id into protected memory. The
// private fields of id are wiped whether or not construction succeeds.
func NewPersonalKey(id *Identity, cert *x509.Certificate) (*PersonalKey, error) {
	if cert == nil {
		wipeIdentity(id)
		return nil, errors.New("personal key: missing certificate")
	}
	signing := memguard.NewEnclave(id.EdSeed[:])
	exchange := memguard.NewEnclave(id.XPriv[:])
	wipeIdentity(id)
	if signing == nil || exchange == nil {
		return nil, errors.New("personal key: empty private key")
	}
	return &PersonalKey{
		signing:  signing,
		exchange: exchange,
		edPub:    id.EdPub,
		xPub:     id.XPub,
		cert:     cert,
	}, nil
}

func wipeIdentity(id *Identity) {
	id.EdSeed = Ed25519Seed{}
	id.XPriv = X25519Private{}
}

// SigningPublicKey returns the Ed25519 public key.
func (k *PersonalKey) SigningPublicKey() Ed25519Public { return k.edPub }

// ExchangePublicKey returns the X25519 public key.
func (k *PersonalKey) ExchangePublicKey() X25519Public { return k.xPub }

// Certificate returns the bridge certificate. Callers must not modify it.
func (k *PersonalKey) Certificate() *x509.Certificate { return k.cert }

// Sign signs msg with the account's Ed25519 key.
func (k *PersonalKey) Sign(msg []byte) ([]byte, error) {
	buf, err := k.signing.Open()
	if err != nil {
		return nil, fmt.Errorf("opening signing key: %w", err)
	}
	defer buf.Destroy()

	priv := ed25519.NewKeyFromSeed(buf.Bytes())
	defer memguard.WipeBytes(priv)
	return ed25519.Sign(priv, msg), nil
}

// SharedSecret computes X25519(exchange private key, peer).
func (k *PersonalKey) SharedSecret(peer X25519Public) ([]byte, error) {
	buf, err := k.exchange.Open()
	if err != nil {
		return nil, fmt.Errorf("opening exchange key: %w", err)
	}
	defer buf.Destroy()

	return curve25519.X25519(buf.Bytes(), peer.Slice())
}

// Equal reports whether k and other hold the same key pair and certificate.
func (k *PersonalKey) Equal(other *PersonalKey) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.edPub == other.edPub &&
		k.xPub == other.xPub &&
		bytes.Equal(k.cert.Raw, other.cert.Raw)
}
