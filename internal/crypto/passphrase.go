package crypto

import (
	"crypto/rand"
	"encoding/base64"
)

// PassphraseLength is the length of generated passphrases, in characters.
const PassphraseLength = 40

// GeneratePassphrase returns PassphraseLength random URL-safe characters
// (240 bits of entropy).
func GeneratePassphrase() (string, error) {
	raw := make([]byte, PassphraseLength*3/4)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	defer Wipe(raw)
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
