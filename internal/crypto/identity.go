package crypto

import "credvault/internal/domain"

// NewIdentity generates a fresh signing and exchange key pair.
func NewIdentity() (*domain.Identity, error) {
	edSeed, edPub, err := GenerateEd25519()
	if err != nil {
		return nil, err
	}
	xPriv, xPub, err := GenerateX25519()
	if err != nil {
		Wipe(edSeed[:])
		return nil, err
	}
	return &domain.Identity{
		EdSeed: edSeed,
		EdPub:  edPub,
		XPriv:  xPriv,
		XPub:   xPub,
	}, nil
}
