package crypto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"credvault/internal/crypto"
)

func TestNewIdentity_PublicKeysMatch(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	require.Equal(t, id.EdPub, crypto.Ed25519PublicFromSeed(id.EdSeed))
	xPub, err := crypto.X25519PublicFromPrivate(id.XPriv)
	require.NoError(t, err)
	require.Equal(t, id.XPub, xPub)
}

func TestBridgeCertificate_Verify_OK(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	der, err := crypto.NewBridgeCertificate(id, "alice@example.org", time.Hour)
	require.NoError(t, err)

	cert, err := crypto.VerifyBridgeCertificate(der, id.EdPub)
	require.NoError(t, err)
	require.Equal(t, "alice@example.org", cert.Subject.CommonName)
}

func TestBridgeCertificate_WrongKey_Fails(t *testing.T) {
	alice, err := crypto.NewIdentity()
	require.NoError(t, err)
	bob, err := crypto.NewIdentity()
	require.NoError(t, err)

	der, err := crypto.NewBridgeCertificate(alice, "alice", time.Hour)
	require.NoError(t, err)

	_, err = crypto.VerifyBridgeCertificate(der, bob.EdPub)
	require.Error(t, err)
}

func TestBridgeCertificate_Garbage_Fails(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	_, err = crypto.VerifyBridgeCertificate([]byte("not a certificate"), id.EdPub)
	require.Error(t, err)
}

func TestGeneratePassphrase(t *testing.T) {
	a, err := crypto.GeneratePassphrase()
	require.NoError(t, err)
	b, err := crypto.GeneratePassphrase()
	require.NoError(t, err)

	require.Len(t, a, crypto.PassphraseLength)
	require.NotEqual(t, a, b)
}

func TestFingerprint(t *testing.T) {
	fp := crypto.Fingerprint([]byte("public key"))
	require.Len(t, fp.String(), 20)
	require.Equal(t, fp, crypto.Fingerprint([]byte("public key")))
}

func TestWipe(t *testing.T) {
	b := []byte{1, 2, 3}
	crypto.Wipe(b)
	require.Equal(t, []byte{0, 0, 0}, b)
}
