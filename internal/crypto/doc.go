// Package crypto exposes the key-material primitives credvault needs.
//
// Contents
//
//   - Ed25519 and X25519 key generation (GenerateEd25519, GenerateX25519,
//     NewIdentity)
//   - Bridge certificates: self-signed X.509 certificates binding the
//     account's signing key (NewBridgeCertificate, VerifyBridgeCertificate)
//   - Random passphrases for accounts without a user password
//     (GeneratePassphrase)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Key types are the fixed-size arrays defined in internal/domain. Callers
// should treat returned secrets as sensitive and Wipe them once they have
// been sealed or moved into a PersonalKey.
package crypto
