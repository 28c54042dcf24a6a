// Package app wires application dependencies for the CLI.
//
// It resolves Config from flags, CREDVAULT_* environment variables and an
// optional config.yaml, then builds the artifact store, settings, key
// authority and metrics registry around one account.Manager, exposing them
// via the Wire struct for commands to use.
package app
