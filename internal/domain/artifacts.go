package domain

// Names of the two credential artifacts, both on disk and inside archives.
const (
	PrivateKeyFile = "account-private.asc"
	BridgeCertFile = "account-login.crt"
)

// StoredPasswordKey is the settings key of the stored-password option.
const StoredPasswordKey = "account.passphrase"

// Artifact is one named blob of a credential artifact set.
type Artifact struct {
	Name    string
	Data    []byte
	Armored bool
}
