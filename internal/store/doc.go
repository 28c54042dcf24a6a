// Package store provides file-based persistence for credvault's account
// credentials.
//
// ArtifactFileStore keeps the two credential artifacts (the armored sealed
// private key and the bridge certificate) in a single configured directory.
// Writes go through a synced temp file and a rename, so a reader never sees
// a half-written artifact, and WriteSet stages several artifacts before
// renaming any of them. All methods are concurrency-safe via internal
// locking.
package store
