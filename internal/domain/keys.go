package domain

import "fmt"

// X25519Private is a clamped Curve25519 private key.
type X25519Private [32]byte

// X25519Public is a Curve25519 public key.
type X25519Public [32]byte

func (k X25519Private) Slice() []byte { return k[:] }
func (k X25519Public) Slice() []byte  { return k[:] }

// Ed25519Seed is the RFC 8032 private seed of a signing key.
type Ed25519Seed [32]byte

// Ed25519Public is a signing public key.
type Ed25519Public [32]byte

func (k Ed25519Seed) Slice() []byte   { return k[:] }
func (k Ed25519Public) Slice() []byte { return k[:] }

// Fingerprint is a short hex identifier for a public key, shown to users.
type Fingerprint string

func (f Fingerprint) String() string { return string(f) }

// X25519PrivateFrom copies b into a fixed-size key.
func X25519PrivateFrom(b []byte) (X25519Private, error) {
	var out X25519Private
	if len(b) != len(out) {
		return out, fmt.Errorf("x25519 private: want %d bytes, got %d", len(out), len(b))
	}
	copy(out[:], b)
	return out, nil
}

// Ed25519SeedFrom copies b into a fixed-size seed.
func Ed25519SeedFrom(b []byte) (Ed25519Seed, error) {
	var out Ed25519Seed
	if len(b) != len(out) {
		return out, fmt.Errorf("ed25519 seed: want %d bytes, got %d", len(out), len(b))
	}
	copy(out[:], b)
	return out, nil
}
