package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"fmt"
	"math/big"
	"time"

	"credvault/internal/domain"
)

// DefaultCertificateValidity is the lifetime of newly issued bridge certificates.
const DefaultCertificateValidity = 5 * 365 * 24 * time.Hour

var (
	errCertKeyType     = errors.New("bridge certificate key is not ed25519")
	errCertKeyMismatch = errors.New("bridge certificate does not match the account signing key")
)

// NewBridgeCertificate issues a self-signed certificate for id's signing key
// and returns it DER-encoded.
func NewBridgeCertificate(id *domain.Identity, commonName string, validity time.Duration) ([]byte, error) {
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, fmt.Errorf("generating serial: %w", err)
	}
	now := time.Now()
	tmpl := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: commonName},
		NotBefore:             now.Add(-time.Minute),
		NotAfter:              now.Add(validity),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
		BasicConstraintsValid: true,
	}

	priv := signer(id.EdSeed)
	defer Wipe(priv)

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, ed25519.PublicKey(id.EdPub.Slice()), priv)
	if err != nil {
		return nil, fmt.Errorf("creating bridge certificate: %w", err)
	}
	return der, nil
}

// VerifyBridgeCertificate parses der and checks that it carries signingKey
// and is self-signed by it. Expiry is not checked: an expired bridge
// certificate still identifies the key and is renewed by the server.
func VerifyBridgeCertificate(der []byte, signingKey domain.Ed25519Public) (*x509.Certificate, error) {
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("parsing bridge certificate: %w", err)
	}
	pub, ok := cert.PublicKey.(ed25519.PublicKey)
	if !ok {
		return nil, errCertKeyType
	}
	if !pub.Equal(ed25519.PublicKey(signingKey.Slice())) {
		return nil, errCertKeyMismatch
	}
	if err := cert.CheckSignature(cert.SignatureAlgorithm, cert.RawTBSCertificate, cert.Signature); err != nil {
		return nil, fmt.Errorf("bridge certificate signature: %w", err)
	}
	return cert, nil
}
