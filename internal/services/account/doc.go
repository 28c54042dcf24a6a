// Package account manages the account's long-term key pair and bridge
// certificate: loading them, importing them from an archive, and rotating
// the password that protects the private key at rest.
//
// The Manager moves between three states. Absent: no artifacts on disk.
// Locked: artifacts on disk, no key in memory (the initial state when an
// account exists). Loaded: a PersonalKey is installed. Load and
// ImportAccount move to Loaded; SetPassword only re-protects the stored key.
//
// Every failure is a *domain.Error. Only domain.KindLoadKeyDecrypt is worth
// retrying with another password; the Manager itself never retries.
package account
