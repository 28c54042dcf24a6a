// Package commands defines the credvault CLI and wires dependencies for subcommands.
//
// Commands
//
//   - status   Show whether credentials are present and password protected
//   - load     Unlock the account key and print its fingerprint
//   - import   Replace the account with one from an exported archive
//   - passwd   Change or remove the key password
//   - export   Write the credentials to a portable archive
//   - create   Generate a new key and bridge certificate
//
// # Implementation
//
// The root command resolves app.Config from flags, CREDVAULT_* environment
// variables and an optional config.yaml, then builds the dependency graph
// before any subcommand runs. Passwords come from --password-file style flags
// or an echo-free terminal prompt. Errors are returned unrendered; main maps
// them to a message and exit code with Describe and ExitCode.
package commands
