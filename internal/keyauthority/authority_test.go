package keyauthority_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"credvault/internal/domain"
	"credvault/internal/keyauthority"
	"credvault/internal/testutil"
)

func TestDecryptAndValidate_OK(t *testing.T) {
	acct := testutil.NewAccount(t, "correctpass")
	auth := testutil.NewAuthority()

	key, err := auth.DecryptAndValidate(acct.SealedKey(t), domain.PasswordFromString("correctpass"), acct.Certificate)
	require.NoError(t, err)
	require.Equal(t, acct.SigningPublic, key.SigningPublicKey())
	require.Equal(t, acct.Certificate, key.Certificate().Raw)

	sig, err := key.Sign([]byte("hello"))
	require.NoError(t, err)
	require.Len(t, sig, 64)
}

func TestDecryptAndValidate_WrongPassword(t *testing.T) {
	acct := testutil.NewAccount(t, "correctpass")
	auth := testutil.NewAuthority()

	for _, pw := range []domain.Password{domain.PasswordFromString("wrongpass"), domain.NoPassword()} {
		_, err := auth.DecryptAndValidate(acct.SealedKey(t), pw, acct.Certificate)
		require.ErrorIs(t, err, domain.ErrLoadKeyDecrypt)
		require.ErrorIs(t, err, domain.ErrIncorrectPassword)

		kind, ok := domain.KindOf(err)
		require.True(t, ok)
		require.True(t, kind.Retryable())
	}
}

func TestDecryptAndValidate_CorruptKey(t *testing.T) {
	acct := testutil.NewAccount(t, "pw")
	auth := testutil.NewAuthority()

	sealed := acct.SealedKey(t)
	truncated := sealed[:len(sealed)-10]
	tampered := append([]byte(nil), sealed...)
	tampered[len(tampered)-1] ^= 0xFF

	for name, in := range map[string][]byte{
		"garbage":   []byte("not an age file"),
		"truncated": truncated,
		"tampered":  tampered,
	} {
		_, err := auth.DecryptAndValidate(in, domain.PasswordFromString("pw"), acct.Certificate)
		require.ErrorIs(t, err, domain.ErrLoadKey, name)
		require.NotErrorIs(t, err, domain.ErrLoadKeyDecrypt, name)
	}
}

func TestDecryptAndValidate_CertificateMismatch(t *testing.T) {
	alice := testutil.NewAccount(t, "pw")
	bob := testutil.NewAccount(t, "pw")
	auth := testutil.NewAuthority()

	_, err := auth.DecryptAndValidate(alice.SealedKey(t), domain.PasswordFromString("pw"), bob.Certificate)
	require.ErrorIs(t, err, domain.ErrLoadKey)

	_, err = auth.DecryptAndValidate(alice.SealedKey(t), domain.PasswordFromString("pw"), []byte("junk"))
	require.ErrorIs(t, err, domain.ErrLoadKey)
}

func TestReencrypt_OK(t *testing.T) {
	acct := testutil.NewAccount(t, "old")
	auth := testutil.NewAuthority()

	sealed := acct.SealedKey(t)
	original := append([]byte(nil), sealed...)

	rotated, err := auth.Reencrypt(sealed, domain.PasswordFromString("old"), domain.PasswordFromString("new"))
	require.NoError(t, err)
	require.Equal(t, original, sealed, "input must not be mutated")
	require.False(t, bytes.Equal(sealed, rotated))

	_, err = auth.DecryptAndValidate(rotated, domain.PasswordFromString("old"), acct.Certificate)
	require.ErrorIs(t, err, domain.ErrLoadKeyDecrypt)

	key, err := auth.DecryptAndValidate(rotated, domain.PasswordFromString("new"), acct.Certificate)
	require.NoError(t, err)
	require.Equal(t, acct.SigningPublic, key.SigningPublicKey())
}

func TestReencrypt_Failures(t *testing.T) {
	acct := testutil.NewAccount(t, "old")
	auth := testutil.NewAuthority()
	sealed := acct.SealedKey(t)

	_, err := auth.Reencrypt(sealed, domain.PasswordFromString("wrong"), domain.PasswordFromString("new"))
	require.ErrorIs(t, err, domain.ErrChangePass)
	require.ErrorIs(t, err, domain.ErrIncorrectPassword)

	_, err = auth.Reencrypt(sealed, domain.PasswordFromString("old"), domain.NoPassword())
	require.ErrorIs(t, err, domain.ErrChangePass)

	_, err = auth.Reencrypt([]byte("garbage"), domain.PasswordFromString("old"), domain.PasswordFromString("new"))
	require.ErrorIs(t, err, domain.ErrChangePass)
	require.NotErrorIs(t, err, domain.ErrIncorrectPassword)
}

func TestSeal_RequiresPassword(t *testing.T) {
	_, err := keyauthority.New().Seal(&domain.Identity{}, domain.NoPassword())
	require.Error(t, err)
}
