package commands_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"credvault/cmd/credvault/commands"
	"credvault/internal/domain"
	"credvault/internal/keyauthority"
)

func run(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{
		"--home", home,
		"--work-factor", strconv.Itoa(keyauthority.MinWorkFactor),
	}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func passwordFile(t *testing.T, password string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "password")
	require.NoError(t, os.WriteFile(path, []byte(password+"\n"), 0o600))
	return path
}

func TestAccountLifecycle(t *testing.T) {
	home := t.TempDir()
	secret := passwordFile(t, "hunter2")

	out, err := run(t, home, "status")
	require.NoError(t, err)
	require.Contains(t, out, "State: absent")

	out, err = run(t, home, "create", "alice@example.org", "--password-file", secret)
	require.NoError(t, err)
	require.Contains(t, out, "Account created.")
	require.Contains(t, out, "Account: alice@example.org")

	out, err = run(t, home, "status")
	require.NoError(t, err)
	require.Contains(t, out, "State: locked")
	require.Contains(t, out, "Password protected: true")

	_, err = run(t, home, "load", "--password-file", passwordFile(t, "wrong"))
	require.ErrorIs(t, err, domain.ErrLoadKeyDecrypt)
	require.Equal(t, "wrong password", commands.Describe(err))
	require.Equal(t, commands.ExitWrongPassword, commands.ExitCode(err))

	out, err = run(t, home, "load", "--password-file", secret)
	require.NoError(t, err)
	require.Contains(t, out, "Fingerprint: ")

	_, err = run(t, home, "create", "again", "--password-file", secret)
	require.ErrorIs(t, err, domain.ErrAccountExists)
}

func TestExportImport(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	secret := passwordFile(t, "hunter2")
	archivePath := filepath.Join(t.TempDir(), "account.zip")

	created, err := run(t, src, "create", "bob", "--password-file", secret)
	require.NoError(t, err)

	out, err := run(t, src, "export", archivePath)
	require.NoError(t, err)
	require.Contains(t, out, "Account exported to")

	_, err = run(t, dst, "import", archivePath, "--password-file", passwordFile(t, "nope"))
	require.ErrorIs(t, err, domain.ErrLoadKeyDecrypt)

	imported, err := run(t, dst, "import", archivePath, "--password-file", secret)
	require.NoError(t, err)
	require.Contains(t, imported, "Account imported.")

	loaded, err := run(t, dst, "load", "--password-file", secret)
	require.NoError(t, err)
	require.Equal(t, fingerprintLine(t, created), fingerprintLine(t, loaded))
}

func TestPasswd(t *testing.T) {
	home := t.TempDir()
	first := passwordFile(t, "first")
	second := passwordFile(t, "second")

	_, err := run(t, home, "create", "carol", "--password-file", first)
	require.NoError(t, err)

	_, err = run(t, home, "passwd", "--old-password-file", second, "--new-password-file", second)
	require.ErrorIs(t, err, domain.ErrChangePass)
	require.Equal(t, commands.ExitWrongPassword, commands.ExitCode(err))

	out, err := run(t, home, "passwd", "--old-password-file", first, "--new-password-file", second)
	require.NoError(t, err)
	require.Contains(t, out, "Password changed.")

	_, err = run(t, home, "load", "--password-file", second)
	require.NoError(t, err)

	out, err = run(t, home, "passwd", "--old-password-file", second, "--no-password")
	require.NoError(t, err)
	require.Contains(t, out, "Password removed.")

	out, err = run(t, home, "status")
	require.NoError(t, err)
	require.Contains(t, out, "Password protected: false")

	// No prompt and no password file needed any more.
	_, err = run(t, home, "load")
	require.NoError(t, err)

	_, err = run(t, home, "export", filepath.Join(t.TempDir(), "x.zip"))
	require.Error(t, err)
}

func TestLoad_NoTerminal(t *testing.T) {
	home := t.TempDir()
	_, err := run(t, home, "create", "dave", "--password-file", passwordFile(t, "pw"))
	require.NoError(t, err)

	// Test stdin is never a terminal.
	_, err = run(t, home, "load")
	require.ErrorContains(t, err, "no terminal")
}

func TestLoad_Missing(t *testing.T) {
	_, err := run(t, t.TempDir(), "load")
	require.ErrorIs(t, err, domain.ErrReadFile)
	require.Contains(t, commands.Describe(err), "missing or unreadable")
	require.Equal(t, commands.ExitFailure, commands.ExitCode(err))
}

func TestMetricsFile(t *testing.T) {
	home := t.TempDir()
	metrics := filepath.Join(t.TempDir(), "credvault.prom")

	_, err := run(t, home, "--metrics-file", metrics, "create", "erin", "--no-password")
	require.NoError(t, err)

	body, err := os.ReadFile(metrics)
	require.NoError(t, err)
	require.Contains(t, string(body), `credvault_account_operations_total{operation="create",result="ok"} 1`)
}

func TestInvalidConfig(t *testing.T) {
	_, err := run(t, t.TempDir(), "--log-level", "loud", "status")
	require.Error(t, err)
}

func TestDescribe(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want string
	}{
		{domain.NewError(domain.KindReadFile, "op", nil), "account credentials are missing or unreadable (op: read_file)"},
		{domain.NewError(domain.KindWriteFile, "op", domain.ErrAccountExists), "an account already exists in this directory"},
		{domain.NewError(domain.KindFormat, "op", nil), "the stored private key is damaged (op: format)"},
		{domain.NewError(domain.KindImportArchive, "op", nil), "the archive cannot be opened (op: import_archive)"},
		{domain.NewError(domain.KindImportReadFile, "op", nil), "the archive does not contain a complete account (op: import_read_file)"},
		{domain.NewError(domain.KindLoadKey, "op", nil), "the private key or certificate is invalid (op: load_key)"},
		{domain.NewError(domain.KindLoadKeyDecrypt, "op", domain.ErrIncorrectPassword), "wrong password"},
		{domain.NewError(domain.KindChangePass, "op", domain.ErrIncorrectPassword), "wrong password"},
		{domain.NewError(domain.KindChangePass, "op", nil), "could not change the password (op: change_pass)"},
		{errors.New("plain"), "plain"},
	} {
		require.Equal(t, tc.want, commands.Describe(tc.err))
	}
}

func fingerprintLine(t *testing.T, out string) string {
	t.Helper()
	for _, line := range bytes.Split([]byte(out), []byte("\n")) {
		if bytes.HasPrefix(line, []byte("Fingerprint: ")) {
			return string(line)
		}
	}
	t.Fatalf("no fingerprint in output %q", out)
	return ""
}
