package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a credential failure. The set is closed; callers switch on
// it exhaustively to decide between re-prompting and aborting.
type Kind uint8

const (
	// KindReadFile is a failed read of a stored credential artifact.
	KindReadFile Kind = iota + 1
	// KindWriteFile is a failed write of a stored credential artifact.
	KindWriteFile
	// KindFormat is malformed or truncated armor around the private key.
	KindFormat
	// KindImportArchive is an archive that cannot be opened.
	KindImportArchive
	// KindImportReadFile is an archive entry that is missing or unreadable.
	KindImportReadFile
	// KindLoadKey is key material or a certificate that is structurally invalid.
	KindLoadKey
	// KindLoadKeyDecrypt is a password rejected while unlocking the key.
	KindLoadKeyDecrypt
	// KindChangePass is a failed re-encryption under a new password.
	KindChangePass
)

var kindNames = map[Kind]string{
	KindReadFile:       "read_file",
	KindWriteFile:      "write_file",
	KindFormat:         "format",
	KindImportArchive:  "import_archive",
	KindImportReadFile: "import_read_file",
	KindLoadKey:        "load_key",
	KindLoadKeyDecrypt: "load_key_decrypt",
	KindChangePass:     "change_pass",
}

// String returns a stable snake_case name, suitable for logs and metric labels.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(k))
}

// Retryable reports whether the failure is expected to go away with a
// different password. Every other kind means the data or the disk is broken.
func (k Kind) Retryable() bool { return k == KindLoadKeyDecrypt }

// Error is the only error type returned by the credential packages.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "load" or "store.read"
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is regardless of Op and cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrReadFile       = &Error{Kind: KindReadFile}
	ErrWriteFile      = &Error{Kind: KindWriteFile}
	ErrFormat         = &Error{Kind: KindFormat}
	ErrImportArchive  = &Error{Kind: KindImportArchive}
	ErrImportReadFile = &Error{Kind: KindImportReadFile}
	ErrLoadKey        = &Error{Kind: KindLoadKey}
	ErrLoadKeyDecrypt = &Error{Kind: KindLoadKeyDecrypt}
	ErrChangePass     = &Error{Kind: KindChangePass}
)

var (
	// ErrIncorrectPassword is the cause carried by password rejections, both
	// on load and on re-encryption.
	ErrIncorrectPassword = errors.New("incorrect password")

	// ErrAccountExists is returned when creating an account over existing artifacts.
	ErrAccountExists = errors.New("account artifacts already exist")
)

// NewError wraps err with a kind and the failing operation.
func NewError(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, and false when
// err did not come from the credential packages.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
