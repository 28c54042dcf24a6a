package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"credvault/internal/crypto"
	"credvault/internal/domain"
)

var (
	errNoTerminal       = errors.New("no terminal available for interactive password prompt (use a password file)")
	errPasswordMismatch = errors.New("passwords do not match")
	errEmptyPassword    = errors.New("password is empty")
)

// interactive reports whether passwords for file are read from the terminal.
func interactive(file string) bool { return file == "" || file == "-" }

// readPassword reads a password from file, or prompts on the terminal when
// file is empty or "-". With confirm, the prompt asks twice.
func readPassword(cmd *cobra.Command, file, prompt string, confirm bool) (domain.Password, error) {
	if !interactive(file) {
		return readPasswordFile(file)
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return domain.Password{}, errNoTerminal
	}
	stderr := cmd.ErrOrStderr()

	first, err := prompted(stderr, fd, prompt+": ")
	if err != nil {
		return domain.Password{}, err
	}
	defer crypto.Wipe(first)
	if len(first) == 0 {
		return domain.Password{}, errEmptyPassword
	}
	if confirm {
		second, err := prompted(stderr, fd, "Confirm "+prompt+": ")
		if err != nil {
			return domain.Password{}, err
		}
		match := bytes.Equal(first, second)
		crypto.Wipe(second)
		if !match {
			return domain.Password{}, errPasswordMismatch
		}
	}
	return domain.UserPassword(first), nil
}

func prompted(w io.Writer, fd int, prompt string) ([]byte, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}
	return b, nil
}

// readPasswordFile reads a password from path, stripping trailing newlines.
func readPasswordFile(path string) (domain.Password, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Password{}, fmt.Errorf("reading password file: %w", err)
	}
	defer crypto.Wipe(data)

	trimmed := bytes.TrimRight(data, "\r\n")
	if len(trimmed) == 0 {
		return domain.Password{}, fmt.Errorf("%s: %w", path, errEmptyPassword)
	}
	return domain.UserPassword(trimmed), nil
}
