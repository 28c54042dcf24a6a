// Package testutil provides shared test fixtures for credvault packages.
//
// [NewAccount] generates a real account (identity, bridge certificate and
// sealed private key) protected by a given password, using a low scrypt work
// factor so tests stay fast. [Account.WriteArchive] packs it into an import
// archive and [Account.WriteTo] places its artifacts directly into a
// credential directory.
//
// All helpers call t.Fatalf on failure rather than returning errors, since
// test setup failures are not recoverable.
package testutil
