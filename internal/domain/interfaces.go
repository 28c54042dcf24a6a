package domain

// KeyAuthority unlocks and re-protects sealed key material. The sealed key is
// the unarmored private-key artifact.
type KeyAuthority interface {
	// DecryptAndValidate unlocks sealedKey with password and checks it
	// against the bridge certificate. Fails with KindLoadKeyDecrypt when the
	// password is rejected and KindLoadKey for anything else.
	DecryptAndValidate(sealedKey []byte, password Password, certificate []byte) (*PersonalKey, error)

	// Reencrypt returns a freshly allocated copy of sealedKey protected by
	// newPassword. sealedKey is not modified. Fails with KindChangePass.
	Reencrypt(sealedKey []byte, oldPassword, newPassword Password) ([]byte, error)
}

// ArtifactStore reads and writes named credential artifacts in one directory.
type ArtifactStore interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte, armored bool) error
	WriteSet(artifacts ...Artifact) error
	Exists(name string) bool
}

// Settings is the persisted application configuration, of which the
// credential manager only uses the stored-password option.
type Settings interface {
	GetString(key string) string
	SetString(key, value string) error
}
