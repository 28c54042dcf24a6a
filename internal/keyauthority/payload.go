package keyauthority

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"credvault/internal/crypto"
	"credvault/internal/domain"
)

const payloadVersion = 1

// payload is the plaintext inside a sealed key.
type payload struct {
	Version int    `cbor:"1,keyasint"`
	EdSeed  []byte `cbor:"2,keyasint"`
	XPriv   []byte `cbor:"3,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("keyauthority: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		MaxMapPairs: 16,
	}.DecMode()
	if err != nil {
		panic("keyauthority: CBOR decoder initialization failed: " + err.Error())
	}
}

func encodeIdentity(id *domain.Identity) ([]byte, error) {
	edSeed, xPriv := id.EdSeed, id.XPriv
	defer crypto.Wipe(edSeed[:])
	defer crypto.Wipe(xPriv[:])

	return encMode.Marshal(payload{
		Version: payloadVersion,
		EdSeed:  edSeed[:],
		XPriv:   xPriv[:],
	})
}

// decodeIdentity parses plaintext and re-derives the public keys. The
// decoded private fields are wiped before returning; plaintext is left to
// the caller.
func decodeIdentity(plaintext []byte) (*domain.Identity, error) {
	var p payload
	defer func() {
		crypto.Wipe(p.EdSeed)
		crypto.Wipe(p.XPriv)
	}()

	if err := decMode.Unmarshal(plaintext, &p); err != nil {
		return nil, fmt.Errorf("decoding key payload: %w", err)
	}
	if p.Version != payloadVersion {
		return nil, fmt.Errorf("unsupported key payload version %d", p.Version)
	}
	edSeed, err := domain.Ed25519SeedFrom(p.EdSeed)
	if err != nil {
		return nil, err
	}
	xPriv, err := domain.X25519PrivateFrom(p.XPriv)
	if err != nil {
		return nil, err
	}
	xPub, err := crypto.X25519PublicFromPrivate(xPriv)
	if err != nil {
		return nil, err
	}
	return &domain.Identity{
		EdSeed: edSeed,
		EdPub:  crypto.Ed25519PublicFromSeed(edSeed),
		XPriv:  xPriv,
		XPub:   xPub,
	}, nil
}
