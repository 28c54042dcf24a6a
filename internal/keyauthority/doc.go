// Package keyauthority seals account key material under a password and
// unlocks it again.
//
// A sealed key is an age file encrypted to a single scrypt recipient. Its
// plaintext is a deterministic CBOR map holding the Ed25519 seed and the
// X25519 private key; public keys are always re-derived on unseal so a sealed
// key can never carry a mismatched pair. Unsealing distinguishes a rejected
// password (domain.KindLoadKeyDecrypt) from every other failure
// (domain.KindLoadKey), which is what lets callers re-prompt instead of
// declaring the account corrupt.
package keyauthority
