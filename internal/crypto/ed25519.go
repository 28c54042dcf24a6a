package crypto

import (
	"crypto/ed25519"
	"crypto/rand"

	"credvault/internal/domain"
)

// GenerateEd25519 returns a new Ed25519 seed and its public key.
func GenerateEd25519() (seed domain.Ed25519Seed, pub domain.Ed25519Public, err error) {
	pk, sk, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return seed, pub, err
	}
	defer Wipe(sk)
	copy(seed[:], sk.Seed())
	copy(pub[:], pk)
	return seed, pub, nil
}

// Ed25519PublicFromSeed derives the public key of seed.
func Ed25519PublicFromSeed(seed domain.Ed25519Seed) (pub domain.Ed25519Public) {
	sk := ed25519.NewKeyFromSeed(seed.Slice())
	defer Wipe(sk)
	copy(pub[:], sk.Public().(ed25519.PublicKey))
	return pub
}

// signer expands seed into a private key usable as a crypto.Signer. The
// caller wipes the returned key.
func signer(seed domain.Ed25519Seed) ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(seed.Slice())
}
