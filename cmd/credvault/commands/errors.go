package commands

import (
	"errors"

	"credvault/internal/domain"
)

// Exit codes returned by the credvault binary.
const (
	ExitFailure       = 1
	ExitWrongPassword = 2
)

// Describe renders err for the terminal.
func Describe(err error) string {
	kind, ok := domain.KindOf(err)
	if !ok {
		return err.Error()
	}
	var msg string
	switch kind {
	case domain.KindReadFile:
		msg = "account credentials are missing or unreadable"
	case domain.KindWriteFile:
		if errors.Is(err, domain.ErrAccountExists) {
			return "an account already exists in this directory"
		}
		msg = "could not save account credentials"
	case domain.KindFormat:
		msg = "the stored private key is damaged"
	case domain.KindImportArchive:
		msg = "the archive cannot be opened"
	case domain.KindImportReadFile:
		msg = "the archive does not contain a complete account"
	case domain.KindLoadKey:
		msg = "the private key or certificate is invalid"
	case domain.KindLoadKeyDecrypt:
		return "wrong password"
	case domain.KindChangePass:
		if errors.Is(err, domain.ErrIncorrectPassword) {
			return "wrong password"
		}
		msg = "could not change the password"
	default:
		return err.Error()
	}
	return msg + " (" + err.Error() + ")"
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if errors.Is(err, domain.ErrIncorrectPassword) {
		return ExitWrongPassword
	}
	return ExitFailure
}
